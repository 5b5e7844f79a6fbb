package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"ballmate_server/errs"
)

// writeJSON encodes a response body with the given status.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeError maps a service error to its HTTP status and a JSON body
// carrying the error code. Untyped errors are treated as transient
// store failures and hidden behind a 500.
func writeError(w http.ResponseWriter, err error) {
	if appErr := errs.As(err); appErr != nil {
		writeJSON(w, appErr.Status, map[string]string{
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}
	log.Printf("internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"code":    "INTERNAL",
		"message": "internal server error",
	})
}

// HealthCheckHandler reports liveness.
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
