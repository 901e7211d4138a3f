package dealer

// Dealer is one admitted record of the directory.
type Dealer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Contact       string `json:"contact"`
	ContactPerson string `json:"contactPerson"`
	AIDealer      bool   `json:"aiDealer"`
	APIDealer     bool   `json:"apiDealer"`
}

// Row is one raw data row keyed by column label.
// A label missing from the map is treated the same as an empty value.
type Row map[string]string

// Column labels of the dealer sheet. Order in the file is irrelevant.
const (
	ColSerial        = "S. No."
	ColName          = "Dealer Name"
	ColAddress       = "Dealer Address"
	ColLocation      = "Location"
	ColState         = "State/Country"
	ColContact       = "Contact Number"
	ColContactPerson = "Contact Person"
	ColAIDealer      = "AI Dealer"
	ColAPIDealer     = "API Dealer"
)

// TrueToken is the only cell value that reads as true in a boolean column.
const TrueToken = "TRUE"

// Columns returns the expected column labels in sheet order.
func Columns() []string {
	return []string{
		ColSerial,
		ColName,
		ColAddress,
		ColLocation,
		ColState,
		ColContact,
		ColContactPerson,
		ColAIDealer,
		ColAPIDealer,
	}
}

// RequiredColumns returns the labels whose values must be present for a row
// to be admitted.
func RequiredColumns() []string {
	return []string{ColName, ColState}
}
