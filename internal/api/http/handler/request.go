package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-server/internal/image"
	"github.com/taskhive/taskhive-server/internal/model"
)

// formOverhead leaves room for multipart boundaries and headers on top of
// the image size cap; the cap itself is enforced on the file content.
const formOverhead = 64 << 10

var errInvalidPayload = errors.New("invalid payload")

// decodeAllowed decodes a JSON object and rejects any key outside the
// allow-list before a single field is applied.
func decodeAllowed(r *http.Request, allowed []string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, errInvalidPayload
	}
	for key := range raw {
		if !slices.Contains(allowed, key) {
			return nil, &model.DisallowedFieldError{Field: key}
		}
	}
	return raw, nil
}

func unmarshalField[T any](raw map[string]json.RawMessage, key string) (*T, error) {
	data, ok := raw[key]
	if !ok {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errInvalidPayload
	}
	return &v, nil
}

// formImage extracts the uploaded file from a multipart request. The body
// is bounded before parsing so an oversized upload is rejected before any
// decode or resize work.
func formImage(w http.ResponseWriter, r *http.Request, field string) (multipart.File, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, image.MaxUploadSize+formOverhead)

	file, header, err := r.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, "", model.ErrFileTooLarge
		}
		return nil, "", model.ErrMissingFile
	}
	return file, header.Filename, nil
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", model.ErrNotFound, r.PathValue("id"))
	}
	return id, nil
}
