// Package handlers contains the JSON handlers behind the storefront API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/maisonbelle/storefront/internal/http/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// sessionID pulls the session from the request context, failing the request
// when the session middleware is missing.
func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.SessionID(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "session not initialised")
		return "", false
	}
	return id, true
}
