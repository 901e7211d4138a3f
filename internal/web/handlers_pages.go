package web

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/dealerlocator/internal/dealer"
	"github.com/JonMunkholm/dealerlocator/internal/directory"
	"github.com/JonMunkholm/dealerlocator/internal/logging"
	"github.com/JonMunkholm/dealerlocator/internal/web/templates"
)

// parseParams reads q, type and sort from the query string. Missing values
// take the list defaults.
func parseParams(r *http.Request) (dealer.Params, error) {
	q := r.URL.Query()
	p := dealer.DefaultParams()
	p.Search = q.Get("q")

	cat, err := dealer.ParseCategory(q.Get("type"))
	if err != nil {
		return p, err
	}
	p.Category = cat

	if sort := q.Get("sort"); sort != "" {
		key, dir, err := dealer.ParseSort(sort)
		if err != nil {
			return p, err
		}
		p.Sort, p.Direction = key, dir
	}
	return p, nil
}

// dealerID returns the {id} path segment decoded. chi matches on RawPath when
// the request has one, which leaves escapes such as %2F in the param.
func dealerID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id
	}
	if decoded, err := url.PathUnescape(id); err == nil {
		return decoded
	}
	return id
}

// handleList renders the dealer list with the coverage panel.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	p, err := parseParams(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	snap := s.dir.Snapshot()
	page := templates.ListPage{
		Dealers:  snap.Query(p),
		Coverage: snap.Coverage(p.Category),
		Params:   p,
		Notice:   notice(snap),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.DealerList(page).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render dealer list", "error", err)
	}
}

// handleDealer renders one dealer, or the not-found page.
func (s *Server) handleDealer(w http.ResponseWriter, r *http.Request) {
	id := dealerID(r)

	d, ok := s.dir.Snapshot().Lookup(id)
	if !ok {
		logging.FromContext(r.Context()).Info("dealer not found", "id", id)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_ = templates.DealerNotFound().Render(r.Context(), w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.DealerDetail(d).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render dealer", "id", id, "error", err)
	}
}

// notice describes a failed last load for the page banner.
func notice(snap *directory.Snapshot) string {
	if snap.Err == nil {
		return ""
	}
	msg := MapError(snap.Err)
	if snap.Repository.Len() > 0 {
		return msg.Message + ". Showing the last loaded dealer list. (" + msg.Code + ")"
	}
	return msg.Message + ". " + msg.Action + ". (" + msg.Code + ")"
}
