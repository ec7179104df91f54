package httpapi

import (
	"net/http"
	"strings"
)

// requireJSON ensures the request has Content-Type application/json
// (optionally with params). Writes 415 and returns false otherwise.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		toJSON(w, http.StatusUnsupportedMediaType, messageResponse{Code: http.StatusUnsupportedMediaType, Message: "Content-Type must be application/json"})
		return false
	}
	mime := strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	if mime != "application/json" {
		toJSON(w, http.StatusUnsupportedMediaType, messageResponse{Code: http.StatusUnsupportedMediaType, Message: "Content-Type must be application/json"})
		return false
	}
	return true
}
