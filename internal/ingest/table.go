package ingest

// table.go turns raw bytes into a header-keyed table.
//
// Input is decoded before the CSV reader sees it:
//   - a UTF-8 (or UTF-16) byte order mark is dropped
//   - invalid UTF-8 sequences become U+FFFD
//
// Rows may be shorter or longer than the header. Missing cells are absent
// from the row; cells past the last header label are ignored.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/JonMunkholm/dealerlocator/internal/dealer"
)

// Table is a parsed tabular source: one header row plus data records.
type Table struct {
	Header  []string
	Records [][]string
}

// Rows keys every record by the header labels.
// Blank labels are skipped; for a repeated label the first column wins.
func (t *Table) Rows() []dealer.Row {
	rows := make([]dealer.Row, 0, len(t.Records))
	for _, rec := range t.Records {
		row := make(dealer.Row, len(t.Header))
		for i, label := range t.Header {
			if i >= len(rec) {
				break
			}
			if label == "" {
				continue
			}
			if _, dup := row[label]; dup {
				continue
			}
			row[label] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows
}

// ParseCSV reads a header-keyed CSV document.
// It fails when the input has no header row or is not valid CSV.
//
// Header labels are trimmed of surrounding whitespace, so " Dealer Name "
// satisfies the Dealer Name column. Matching is otherwise exact and
// case-sensitive. Cell values are kept as written.
func ParseCSV(r io.Reader) (*Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	blank := true
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
		if header[i] != "" {
			blank = false
		}
	}
	if blank {
		return nil, errors.New("header row has no column labels")
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", len(t.Records)+1, err)
		}
		t.Records = append(t.Records, rec)
	}

	return t, nil
}

// capReader fails with ErrTooLarge once more than limit bytes were read.
type capReader struct {
	r         io.Reader
	remaining int64
}

func newCapReader(r io.Reader, limit int64) io.Reader {
	if limit <= 0 {
		return r
	}
	return &capReader{r: r, remaining: limit}
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		return 0, ErrTooLarge
	}
	// Ask for one byte past the limit so an exact fit is not reported as too large.
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, ErrTooLarge
	}
	return n, err
}
