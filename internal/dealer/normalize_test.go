package dealer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		row        Row
		wantOK     bool
		wantReason RejectReason
		want       Dealer
	}{
		{
			name: "full row is mapped by label",
			row: Row{
				ColSerial:        "12",
				ColName:          "Acme Motors",
				ColAddress:       "MG Road",
				ColLocation:      "Kochi",
				ColState:         "Kerala",
				ColContact:       "+91 98470 00000",
				ColContactPerson: "Anil",
				ColAIDealer:      "TRUE",
				ColAPIDealer:     "TRUE",
				"Remarks":        "ignored",
			},
			wantOK: true,
			want: Dealer{
				ID:            "12",
				Name:          "Acme Motors",
				Address:       "MG Road",
				City:          "Kochi",
				State:         "Kerala",
				Contact:       "+91 98470 00000",
				ContactPerson: "Anil",
				AIDealer:      true,
				APIDealer:     true,
			},
		},
		{
			name:   "optional columns may be absent",
			row:    Row{ColName: "Solo", ColState: "Goa"},
			wantOK: true,
			want:   Dealer{Name: "Solo", State: "Goa"},
		},
		{
			name:       "empty name is rejected",
			row:        Row{ColSerial: "2", ColName: "", ColState: "Goa"},
			wantReason: RejectMissingName,
		},
		{
			name:       "absent name is rejected",
			row:        Row{ColState: "Goa"},
			wantReason: RejectMissingName,
		},
		{
			name:       "empty state is rejected",
			row:        Row{ColName: "Acme", ColState: ""},
			wantReason: RejectMissingState,
		},
		{
			name:       "absent state is rejected",
			row:        Row{ColName: "Acme"},
			wantReason: RejectMissingState,
		},
		{
			name:   "whitespace name is not empty",
			row:    Row{ColName: " ", ColState: "Goa"},
			wantOK: true,
			want:   Dealer{Name: " ", State: "Goa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.row)
			require.Equal(t, tt.wantOK, got.Admitted)
			if !tt.wantOK {
				assert.Equal(t, tt.wantReason, got.Reason)
				return
			}
			assert.Equal(t, NotRejected, got.Reason)
			assert.Equal(t, tt.want, got.Dealer)
		})
	}
}

func TestNormalize_BooleanToken(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"TRUE", true},
		{"true", false},
		{"True", false},
		{" TRUE", false},
		{"TRUE ", false},
		{"yes", false},
		{"1", false},
		{"", false},
		{"FALSE", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got := Normalize(Row{
				ColName:      "Acme",
				ColState:     "Goa",
				ColAIDealer:  tt.value,
				ColAPIDealer: tt.value,
			})
			require.True(t, got.Admitted)
			assert.Equal(t, tt.want, got.Dealer.AIDealer)
			assert.Equal(t, tt.want, got.Dealer.APIDealer)
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	rows := []Row{
		{ColSerial: "1", ColName: "Acme Motors", ColState: "Kerala", ColAIDealer: "TRUE", ColAPIDealer: ""},
		{ColSerial: "2", ColName: "", ColState: "Goa"},
	}

	dealers, outcomes := NormalizeAll(rows)

	require.Len(t, dealers, 1)
	assert.Equal(t, "1", dealers[0].ID)
	assert.True(t, dealers[0].AIDealer)
	assert.False(t, dealers[0].APIDealer)

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Admitted)
	assert.False(t, outcomes[1].Admitted)
	assert.Equal(t, RejectMissingName, outcomes[1].Reason)
}

func TestNormalizeAll_KeepsRowOrder(t *testing.T) {
	rows := []Row{
		{ColSerial: "3", ColName: "C", ColState: "Assam"},
		{ColSerial: "x", ColName: "", ColState: "Assam"},
		{ColSerial: "1", ColName: "A", ColState: "Bihar"},
		{ColSerial: "2", ColName: "B", ColState: ""},
		{ColSerial: "2", ColName: "B", ColState: "Goa"},
	}

	dealers, _ := NormalizeAll(rows)

	ids := make([]string, len(dealers))
	for i, d := range dealers {
		ids[i] = d.ID
	}
	assert.Equal(t, []string{"3", "1", "2"}, ids)
}

func TestRejectReason_String(t *testing.T) {
	assert.Equal(t, "admitted", NotRejected.String())
	assert.Equal(t, "missing dealer name", RejectMissingName.String())
	assert.Equal(t, "missing state", RejectMissingState.String())
	assert.Equal(t, "unknown", RejectReason(42).String())
}
