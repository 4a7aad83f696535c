package middleware

import (
	"encoding/json"
	"net/http"
)

// RequestIDHeader echoes the request id on error responses so a visitor's report
// can be matched to the access log.
const RequestIDHeader = "X-Request-Id"

type errorBody struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError answers htmx requests with a JSON error body and plain requests with
// text. Both carry the request id when the Logger middleware has recorded one.
func WriteError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	id, _ := RequestID(r.Context())
	if id != "" {
		w.Header().Set(RequestIDHeader, id)
	}
	if IsHTMX(r.Context()) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(errorBody{Status: code, Error: msg, RequestID: id})
		return
	}
	if id != "" {
		msg += " (request " + id + ")"
	}
	http.Error(w, msg, code)
}
