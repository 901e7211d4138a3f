package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Source yields the raw table of one load.
//
// Implementations report fetch failures as KindSourceUnavailable and parse
// failures as KindMalformedSource (see *Error).
type Source interface {
	// Name identifies the source in logs and errors. It never contains credentials.
	Name() string
	Read(ctx context.Context) (*Table, error)
}

// Fetcher opens the raw bytes of a CSV source.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (io.ReadCloser, error)
}

// Options configures sources created by Open.
type Options struct {
	// Timeout bounds HTTP fetches. Zero means no timeout beyond ctx.
	Timeout time.Duration

	// MaxBytes caps the size of CSV content. Zero disables the cap.
	MaxBytes int64

	// HTTPClient overrides the client used for http(s) sources.
	HTTPClient *http.Client

	S3 S3Options
}

// Open resolves a source reference:
//
//	/data/dealers.csv, file:///data/dealers.csv   local file
//	https://example.com/dealers.csv               HTTP GET
//	s3://bucket/path/dealers.csv                  object storage
//	postgres://user@host/db?table=dealers         PostgreSQL table
func Open(ref string, opts Options) (Source, error) {
	if ref == "" {
		return nil, fmt.Errorf("empty source reference")
	}

	u, err := url.Parse(ref)
	if err != nil || len(u.Scheme) <= 1 {
		// Plain paths, including Windows drive letters, are files.
		return NewCSVSource(&FileFetcher{Path: ref}, opts.MaxBytes), nil
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		path := u.Path
		if u.Host != "" && u.Host != "localhost" {
			path = "//" + u.Host + u.Path
		}
		return NewCSVSource(&FileFetcher{Path: filepath.FromSlash(path)}, opts.MaxBytes), nil
	case "http", "https":
		client := opts.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: opts.Timeout}
		}
		return NewCSVSource(&HTTPFetcher{URL: ref, Client: client}, opts.MaxBytes), nil
	case "s3":
		f, err := newS3Fetcher(u, opts.S3)
		if err != nil {
			return nil, err
		}
		return NewCSVSource(f, opts.MaxBytes), nil
	case "postgres", "postgresql":
		return openPostgres(u)
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
}

// CSVSource parses the bytes of a Fetcher as CSV.
type CSVSource struct {
	fetcher  Fetcher
	maxBytes int64
}

// NewCSVSource wraps f. maxBytes <= 0 disables the size cap.
func NewCSVSource(f Fetcher, maxBytes int64) *CSVSource {
	return &CSVSource{fetcher: f, maxBytes: maxBytes}
}

func (s *CSVSource) Name() string {
	return s.fetcher.Name()
}

// Read fetches then parses. Both steps must succeed for a table to be returned.
func (s *CSVSource) Read(ctx context.Context) (*Table, error) {
	rc, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	defer rc.Close()

	t, err := ParseCSV(newCapReader(rc, s.maxBytes))
	if err != nil {
		return nil, malformed(s.Name(), err)
	}
	return t, nil
}

// FileFetcher reads a local file.
type FileFetcher struct {
	Path string
}

func (f *FileFetcher) Name() string {
	return f.Path
}

func (f *FileFetcher) Fetch(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(f.Path)
}

// HTTPFetcher downloads the source with a GET request.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// Name returns the URL without user info or query string.
func (f *HTTPFetcher) Name() string {
	u, err := url.Parse(f.URL)
	if err != nil {
		return "http source"
	}
	u.User = nil
	u.RawQuery = ""
	return u.String()
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")
	req.Header.Set("User-Agent", "dealerlocator/1.0")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
