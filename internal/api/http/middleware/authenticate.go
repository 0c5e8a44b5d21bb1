package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/taskhive/taskhive-server/internal/logger"
	"github.com/taskhive/taskhive-server/internal/model"
)

// TokenService resolves bearer tokens to users.
type TokenService interface {
	Authenticate(ctx context.Context, token string) (model.User, error)
}

// Authenticate validates bearer tokens and injects the caller identity
// into the request context. On any failure the wrapped handler never
// runs.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handle wraps next with bearer-token authentication.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			m.reject(w)
			return
		}

		user, err := m.tokenService.Authenticate(r.Context(), tokenString)
		if err != nil {
			m.reject(w)
			return
		}

		ctx := m.contextManager.SetIdentity(r.Context(), user.ID, tokenString)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) reject(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": model.ErrUnauthorized.Error()})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}
