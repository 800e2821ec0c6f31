package utils

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"bistro/apperrors"
)

func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logrus.WithError(err).Error("failed to encode response")
		}
	}
}

// RespondError maps the error taxonomy onto status codes. Internal errors
// are logged and their details withheld from the client.
func RespondError(w http.ResponseWriter, err error) {
	status := apperrors.Status(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("request failed")
		RespondJSON(w, status, map[string]string{"error": "internal server error"})
		return
	}
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}
