package api

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	errs "scootershare/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.WithError(err).Error("encoding response")
		}
	}
}

// writeError renders a service error with its mapped status. Unclassified
// errors become 500s with a generic message so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	message := err.Error()
	kind := errs.KindOf(err)
	if kind == "" {
		log.WithError(err).Error("internal error")
		message = "internal server error"
		kind = "internal"
	}
	writeJSON(w, status, map[string]string{
		"error":   string(kind),
		"message": message,
	})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.Validation("malformed request body")
	}
	return nil
}
