package web

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/JonMunkholm/dealerlocator/internal/dealer"
	"github.com/JonMunkholm/dealerlocator/internal/ingest"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"nil error returns empty", nil, "", http.StatusInternalServerError},
		{"dealer not found", fmt.Errorf("%w: id %q", dealer.ErrNotFound, "9"), "DLR001", http.StatusNotFound},
		{"invalid param", fmt.Errorf("%w: bad type", dealer.ErrInvalidParam), "QRY001", http.StatusBadRequest},
		{"source unavailable", &ingest.Error{Kind: ingest.KindSourceUnavailable, Source: "x", Err: errors.New("eof")}, "SRC001", http.StatusServiceUnavailable},
		{"malformed source", &ingest.Error{Kind: ingest.KindMalformedSource, Source: "x", Err: errors.New("no header row")}, "SRC002", http.StatusServiceUnavailable},
		{"too large is malformed", &ingest.Error{Kind: ingest.KindMalformedSource, Source: "x", Err: ingest.ErrTooLarge}, "SRC002", http.StatusServiceUnavailable},
		{"untyped connection refused", errors.New("dial tcp: connection refused"), "SRC001", http.StatusInternalServerError},
		{"unknown", errors.New("something odd"), "ERR000", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Error("MapError() message is empty")
			}
			if tt.err != nil {
				if status := statusFor(tt.err); status != tt.wantStatus {
					t.Errorf("statusFor() = %d, want %d", status, tt.wantStatus)
				}
			}
		})
	}
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		path   string
		accept string
		want   bool
	}{
		{"/api/dealers", "", true},
		{"/", "application/json", true},
		{"/", "text/html", false},
		{"/dealer/7", "", false},
	}

	for _, tt := range tests {
		r, _ := http.NewRequest(http.MethodGet, tt.path, nil)
		if tt.accept != "" {
			r.Header.Set("Accept", tt.accept)
		}
		if got := wantsJSON(r); got != tt.want {
			t.Errorf("wantsJSON(%s, %q) = %v, want %v", tt.path, tt.accept, got, tt.want)
		}
	}
}
