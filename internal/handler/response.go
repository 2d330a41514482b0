package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"problem-hunt-api/internal/model"
	"problem-hunt-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps any error to the wire envelope. Unclassified errors
// become a generic 500; the underlying message goes to the log, not the
// client.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.HTTPStatus, model.ErrorResponse{Error: apiErr.Message, Details: apiErr.Details})
		return
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "resource not found"})
	case errors.Is(err, model.ErrConflict):
		writeJSON(w, http.StatusConflict, model.ErrorResponse{Error: "resource already exists"})
	default:
		slog.Error("unhandled error", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: "internal server error"})
	}
}
