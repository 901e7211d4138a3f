package web

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/dealerlocator/internal/dealer"
	"github.com/JonMunkholm/dealerlocator/internal/directory"
	"github.com/JonMunkholm/dealerlocator/internal/ingest"
)

// DealerListResponse is the body of GET /api/dealers.
type DealerListResponse struct {
	LoadID  string          `json:"loadId,omitempty"`
	Count   int             `json:"count"`
	Search  string          `json:"q,omitempty"`
	Type    dealer.Category `json:"type"`
	Sort    string          `json:"sort"`
	Dealers []dealer.Dealer `json:"dealers"`
}

// CoverageResponse is the body of GET /api/coverage.
type CoverageResponse struct {
	Type      dealer.Category      `json:"type"`
	Regions   []dealer.RegionCount `json:"regions"`
	Total     int                  `json:"total"`
	Unmatched int                  `json:"unmatched"`
	Active    int                  `json:"activeMarkets"`
	Potential []string             `json:"potentialMarkets"`
}

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Ready    bool         `json:"ready"`
	LoadID   string       `json:"loadId,omitempty"`
	LoadedAt *time.Time   `json:"loadedAt,omitempty"`
	Source   string       `json:"source"`
	Dealers  int          `json:"dealers"`
	Stats    ingest.Stats `json:"stats"`
	Error    *UserMessage `json:"error,omitempty"`
}

func (s *Server) handleAPIDealers(w http.ResponseWriter, r *http.Request) {
	p, err := parseParams(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	snap := s.dir.Snapshot()
	dealers := snap.Query(p)
	if dealers == nil {
		dealers = []dealer.Dealer{}
	}

	resp := DealerListResponse{
		Count:   len(dealers),
		Search:  p.Search,
		Type:    p.Category,
		Sort:    dealer.SortToken(p.Sort, p.Direction),
		Dealers: dealers,
	}
	if !snap.LoadedAt.IsZero() {
		resp.LoadID = snap.LoadID.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPIDealer(w http.ResponseWriter, r *http.Request) {
	d, err := s.dir.Snapshot().Repository.Get(dealerID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleAPICoverage(w http.ResponseWriter, r *http.Request) {
	cat, err := dealer.ParseCategory(r.URL.Query().Get("type"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	cov := s.dir.Snapshot().Coverage(cat)
	writeJSON(w, http.StatusOK, CoverageResponse{
		Type:      cat,
		Regions:   cov.Regions,
		Total:     cov.Total(),
		Unmatched: cov.Unmatched,
		Active:    len(cov.Active()),
		Potential: cov.Potential(),
	})
}

func (s *Server) handleAPIStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, status(s.dir.Snapshot()))
}

// handleHealth answers 200 while dealers can be served: the last load
// succeeded, or it failed but a previous set is kept.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.dir.Snapshot()
	if snap.Ready() || (snap.Err != nil && snap.Repository.Len() > 0) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, status(snap))
}

func status(snap *directory.Snapshot) StatusResponse {
	resp := StatusResponse{
		Ready:   snap.Ready(),
		Source:  snap.Source,
		Dealers: snap.Repository.Len(),
		Stats:   snap.Stats,
	}
	if !snap.LoadedAt.IsZero() {
		resp.LoadID = snap.LoadID.String()
		at := snap.LoadedAt
		resp.LoadedAt = &at
	}
	if snap.Err != nil {
		msg := MapError(snap.Err)
		resp.Error = &msg
	}
	return resp
}
