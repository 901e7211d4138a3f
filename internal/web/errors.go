package web

// errors.go maps errors to user-facing messages and renders them.
//
// Error codes:
//
//	SRC001 - Source unavailable: the dealer data could not be fetched
//	SRC002 - Malformed source: the dealer data could not be parsed
//	DLR001 - Dealer not found: no dealer has the requested id
//	QRY001 - Invalid query: a search, type or sort parameter is not recognized
//	ERR000 - Unknown error: fallback when nothing else matches
//
// Typed errors are matched with errors.Is first. Errors that lost their type
// on the way in fall back to case-insensitive substring patterns.

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/dealerlocator/internal/dealer"
	"github.com/JonMunkholm/dealerlocator/internal/ingest"
	"github.com/JonMunkholm/dealerlocator/internal/logging"
	"github.com/JonMunkholm/dealerlocator/internal/web/templates"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

var (
	msgSourceUnavailable = UserMessage{
		Code:    "SRC001",
		Message: "Dealer data is currently unavailable",
		Action:  "Please try again in a few moments",
	}
	msgMalformedSource = UserMessage{
		Code:    "SRC002",
		Message: "Dealer data could not be read",
		Action:  "Check that the dealer sheet is a valid CSV export",
	}
	msgDealerNotFound = UserMessage{
		Code:    "DLR001",
		Message: "Dealer not found",
		Action:  "Return to the list and pick a dealer",
	}
	msgInvalidQuery = UserMessage{
		Code:    "QRY001",
		Message: "Invalid search parameter",
		Action:  "Use type all, ai or api and sort state, city or name with ascending or descending",
	}
	defaultMessage = UserMessage{
		Code:    "ERR000",
		Message: "An unexpected error occurred",
		Action:  "Please try again or contact support",
	}
)

// Order matters: the more specific target comes first.
var errorKinds = []struct {
	target error
	msg    UserMessage
	status int
}{
	{dealer.ErrNotFound, msgDealerNotFound, http.StatusNotFound},
	{dealer.ErrInvalidParam, msgInvalidQuery, http.StatusBadRequest},
	{ingest.ErrMalformedSource, msgMalformedSource, http.StatusServiceUnavailable},
	{ingest.ErrSourceUnavailable, msgSourceUnavailable, http.StatusServiceUnavailable},
}

var errorPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"connection refused", msgSourceUnavailable},
	{"no such host", msgSourceUnavailable},
	{"not found", msgDealerNotFound},
}

// MapError returns the user message for err. A nil error maps to the zero
// message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.status
		}
	}
	return http.StatusInternalServerError
}

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error UserMessage `json:"error"`
}

// respondError logs the technical error and writes the user message as JSON
// for API clients or as an HTML page otherwise.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	userMsg := MapError(err)
	status := statusFor(err)

	logger := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request error",
			"path", r.URL.Path,
			"method", r.Method,
			"status", status,
			"error", err.Error(),
			"code", userMsg.Code,
		)
	} else {
		logger.Info("request rejected",
			"path", r.URL.Path,
			"status", status,
			"error", err.Error(),
			"code", userMsg.Code,
		)
	}

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, status)
		return
	}
	respondErrorHTML(w, r, userMsg, status)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg UserMessage, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

// respondErrorHTML renders the error page.
func respondErrorHTML(w http.ResponseWriter, r *http.Request, msg UserMessage, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = templates.ErrorPage(msg.Message, msg.Action, msg.Code).Render(r.Context(), w)
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
