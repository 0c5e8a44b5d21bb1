package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apicontext "github.com/taskhive/taskhive-server/internal/api/http/context"
	"github.com/taskhive/taskhive-server/internal/model"
	"github.com/taskhive/taskhive-server/internal/testutil"
)

type fakeTokenService struct {
	user model.User
	err  error

	gotToken string
}

func (f *fakeTokenService) Authenticate(_ context.Context, token string) (model.User, error) {
	f.gotToken = token
	return f.user, f.err
}

func TestAuthenticate_ValidToken(t *testing.T) {
	userID := uuid.New()
	tokens := &fakeTokenService{user: model.User{ID: userID}}
	cm := apicontext.NewManager()

	var gotUserID uuid.UUID
	var gotToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = cm.GetUserID(r.Context())
		gotToken, _ = cm.GetToken(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	m := NewAuthenticate(tokens, cm, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer signed-token")
	rec := httptest.NewRecorder()

	m.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "signed-token", tokens.gotToken)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, "signed-token", gotToken)
}

func TestAuthenticate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
	}{
		{name: "no header"},
		{name: "not a bearer header", header: "Basic abc123"},
		{name: "bare token without scheme", header: "signed-token"},
		{name: "rejected token", header: "Bearer revoked", err: model.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &fakeTokenService{err: tt.err}
			m := NewAuthenticate(tokens, apicontext.NewManager(), testutil.MakeNoopLogger())

			called := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			m.Handle(next).ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "please authenticate", body["error"])
		})
	}
}
