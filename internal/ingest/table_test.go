package ingest

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/dealerlocator/internal/dealer"
)

const sheetHeader = "S. No.,Dealer Name,Dealer Address,Location,State/Country,Contact Number,Contact Person,AI Dealer,API Dealer\n"

func TestParseCSV(t *testing.T) {
	input := sheetHeader +
		`1,Acme Motors,"12, MG Road",Kochi,Kerala,0484-111,Anil,TRUE,` + "\n" +
		`2,,Somewhere,Panaji,Goa,,,,` + "\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, dealer.Columns(), table.Header)
	require.Len(t, table.Records, 2)
	assert.Equal(t, "12, MG Road", table.Records[0][2])

	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme Motors", rows[0][dealer.ColName])
	assert.Equal(t, "TRUE", rows[0][dealer.ColAIDealer])
	assert.Equal(t, "", rows[1][dealer.ColName])
}

func TestParseCSV_ColumnOrderIrrelevant(t *testing.T) {
	input := "State/Country,Extra,Dealer Name,S. No.\nGoa,x,Coastal,9\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	rows := table.Rows()
	require.Len(t, rows, 1)
	out := dealer.Normalize(rows[0])
	require.True(t, out.Admitted)
	assert.Equal(t, dealer.Dealer{ID: "9", Name: "Coastal", State: "Goa"}, out.Dealer)
}

func TestParseCSV_StripsBOMAndTrimsLabels(t *testing.T) {
	input := "\xEF\xBB\xBFS. No., Dealer Name ,State/Country\n1,Acme,Goa\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"S. No.", "Dealer Name", "State/Country"}, table.Header)
}

func TestParseCSV_LabelsAreCaseSensitive(t *testing.T) {
	input := "S. No.,dealer name,State/Country\n1, Acme ,Goa\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	rows := table.Rows()
	require.Len(t, rows, 1)
	_, ok := rows[0][dealer.ColName]
	assert.False(t, ok)
	assert.Equal(t, " Acme ", rows[0]["dealer name"])
}

func TestParseCSV_RaggedRows(t *testing.T) {
	input := "S. No.,Dealer Name,State/Country,Location\n" +
		"1,Short,Goa\n" +
		"2,Long,Assam,Guwahati,extra,cells\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	rows := table.Rows()
	require.Len(t, rows, 2)
	_, hasLocation := rows[0][dealer.ColLocation]
	assert.False(t, hasLocation)
	assert.Equal(t, "Guwahati", rows[1][dealer.ColLocation])
	assert.Len(t, rows[1], 4)
}

func TestParseCSV_InvalidUTF8IsReplaced(t *testing.T) {
	input := "Dealer Name,State/Country\nBad\xffName,Goa\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Bad\uFFFDName", table.Records[0][0])
}

func TestParseCSV_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"only blank lines", "\n\n"},
		{"blank header labels", " , ,\n1,2,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	table, err := ParseCSV(strings.NewReader(sheetHeader))
	require.NoError(t, err)
	assert.Empty(t, table.Records)
	assert.Empty(t, table.Rows())
}

func TestTableRows_DuplicateLabelFirstWins(t *testing.T) {
	table := &Table{
		Header:  []string{"Dealer Name", "Dealer Name", ""},
		Records: [][]string{{"first", "second", "blank"}},
	}

	rows := table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, dealer.Row{"Dealer Name": "first"}, rows[0])
}

func TestCapReader(t *testing.T) {
	data := strings.Repeat("a", 10)

	got, err := io.ReadAll(newCapReader(strings.NewReader(data), 10))
	require.NoError(t, err)
	assert.Len(t, got, 10)

	_, err = io.ReadAll(newCapReader(strings.NewReader(data), 9))
	assert.True(t, errors.Is(err, ErrTooLarge))

	got, err = io.ReadAll(newCapReader(strings.NewReader(data), 0))
	require.NoError(t, err)
	assert.Len(t, got, 10)
}
