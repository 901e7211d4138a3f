package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/dealerlocator/internal/dealer"
)

// Querier is the subset of pgx used by PostgresSource.
// Satisfied by *pgx.Conn, *pgxpool.Pool and pgxmock pools.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads every row of one table. Column names play the role
// of the header row, so the table's columns must be named like the sheet
// ("Dealer Name", "State/Country", ...).
type PostgresSource struct {
	name    string
	table   string
	connect func(ctx context.Context) (Querier, func(), error)
}

// NewPostgresSource reads table through an existing connection or pool.
func NewPostgresSource(db Querier, table string) *PostgresSource {
	return &PostgresSource{
		name:  "postgres:" + table,
		table: table,
		connect: func(context.Context) (Querier, func(), error) {
			return db, func() {}, nil
		},
	}
}

// openPostgres builds a source that opens a fresh connection per read.
// The table comes from the "table" query parameter, which is removed
// before the rest of the URL is handed to pgx.
func openPostgres(u *url.URL) (*PostgresSource, error) {
	q := u.Query()
	table := q.Get("table")
	if table == "" {
		return nil, errors.New("postgres source requires a table query parameter")
	}
	q.Del("table")

	dsnURL := *u
	dsnURL.RawQuery = q.Encode()
	dsn := dsnURL.String()

	if _, err := pgx.ParseConfig(dsn); err != nil {
		return nil, fmt.Errorf("parse postgres source: %w", err)
	}

	name := *u
	name.User = nil
	name.RawQuery = ""

	return &PostgresSource{
		name:  name.String() + "#" + table,
		table: table,
		connect: func(ctx context.Context) (Querier, func(), error) {
			conn, err := pgx.Connect(ctx, dsn)
			if err != nil {
				return nil, nil, err
			}
			return conn, func() { conn.Close(context.Background()) }, nil
		},
	}, nil
}

func (s *PostgresSource) Name() string {
	return s.name
}

// Read selects the whole table. Connection and query failures are
// unavailability; a result without columns is malformed.
func (s *PostgresSource) Read(ctx context.Context) (*Table, error) {
	db, release, err := s.connect(ctx)
	if err != nil {
		return nil, unavailable(s.name, err)
	}
	defer release()

	rows, err := db.Query(ctx, "SELECT * FROM "+quoteTable(s.table))
	if err != nil {
		return nil, unavailable(s.name, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	if len(fields) == 0 {
		return nil, malformed(s.name, errors.New("table has no columns"))
	}

	t := &Table{Header: make([]string, len(fields))}
	for i, f := range fields {
		t.Header[i] = strings.TrimSpace(f.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, malformed(s.name, fmt.Errorf("decode row %d: %w", len(t.Records)+1, err))
		}
		rec := make([]string, len(values))
		for i, v := range values {
			rec[i] = cellText(v)
		}
		t.Records = append(t.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(s.name, err)
	}

	return t, nil
}

// quoteTable quotes a possibly schema-qualified table name.
func quoteTable(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

// cellText renders a database value the way it would appear in the sheet.
// Booleans use the sheet's literal tokens so that flag parsing stays exact.
func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		if val {
			return dealer.TrueToken
		}
		return "FALSE"
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return dealer.NormalizeID(val)
	}
}
