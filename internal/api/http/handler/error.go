package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskhive/taskhive-server/internal/model"
)

// errorResponse is the JSON body for every failed request.
type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// writeError maps a service error to an HTTP status and writes the JSON
// body. Not-found and not-owned collapse into the same 404.
func writeError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Fields: verr.Fields})
		return
	}

	var derr *model.DisallowedFieldError
	if errors.As(err, &derr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: derr.Error()})
		return
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: model.ErrNotFound.Error()})
	case errors.Is(err, model.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: model.ErrUnauthorized.Error()})
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrMissingFile),
		errors.Is(err, model.ErrFileTooLarge),
		errors.Is(err, model.ErrUnsupportedFileType):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
