package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"isp-admin/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError is the single place that turns service failures into HTTP
// responses. Anything that is not a typed apierror becomes an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.Status, apiErr)
		return
	}

	slog.Error("unhandled error", "error", err.Error())
	writeJSON(w, http.StatusInternalServerError, &apierror.Error{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
	})
}
