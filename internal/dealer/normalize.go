package dealer

// RejectReason tells why a row was not admitted.
type RejectReason int

const (
	// NotRejected is the reason carried by admitted outcomes.
	NotRejected RejectReason = iota
	RejectMissingName
	RejectMissingState
)

func (r RejectReason) String() string {
	switch r {
	case NotRejected:
		return "admitted"
	case RejectMissingName:
		return "missing dealer name"
	case RejectMissingState:
		return "missing state"
	default:
		return "unknown"
	}
}

// Outcome is the result of normalizing one row.
// Dealer is only meaningful when Admitted is true.
type Outcome struct {
	Dealer   Dealer
	Admitted bool
	Reason   RejectReason
}

// Normalize maps a raw row onto a Dealer.
//
// A row is rejected if and only if its name or state is empty or absent.
// Boolean columns are true only for the exact token "TRUE"; "true", "True",
// " TRUE" and blanks are all false.
func Normalize(row Row) Outcome {
	name := row[ColName]
	if name == "" {
		return Outcome{Reason: RejectMissingName}
	}
	state := row[ColState]
	if state == "" {
		return Outcome{Reason: RejectMissingState}
	}

	return Outcome{
		Admitted: true,
		Dealer: Dealer{
			ID:            row[ColSerial],
			Name:          name,
			Address:       row[ColAddress],
			City:          row[ColLocation],
			State:         state,
			Contact:       row[ColContact],
			ContactPerson: row[ColContactPerson],
			AIDealer:      parseFlag(row[ColAIDealer]),
			APIDealer:     parseFlag(row[ColAPIDealer]),
		},
	}
}

func parseFlag(s string) bool {
	return s == TrueToken
}

// NormalizeAll normalizes rows in order and returns the admitted dealers
// together with the outcome of every row.
func NormalizeAll(rows []Row) ([]Dealer, []Outcome) {
	dealers := make([]Dealer, 0, len(rows))
	outcomes := make([]Outcome, len(rows))
	for i, row := range rows {
		out := Normalize(row)
		outcomes[i] = out
		if out.Admitted {
			dealers = append(dealers, out.Dealer)
		}
	}
	return dealers, outcomes
}
