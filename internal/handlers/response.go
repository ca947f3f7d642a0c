package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the standardised JSON error envelope.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a standardised JSON error response. requestID is omitted
// from the body when empty.
func WriteError(w http.ResponseWriter, status int, msg, requestID string) {
	WriteJSON(w, status, ErrorResponse{Error: msg, RequestID: requestID})
}
