package service

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-server/internal/mocks"
	"github.com/taskhive/taskhive-server/internal/model"
	"github.com/taskhive/taskhive-server/internal/testutil"
)

func hashOf(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func TestTokenService_Issue(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	manager := mocks.NewTokenManager(t)
	store := mocks.NewAuthTokenStore(t)
	userStore := &mocks.UserStore{}

	manager.On("Generate", userID).Return("signed-token", nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(at model.AuthToken) bool {
		return at.UserID == userID && assert.ObjectsAreEqual(hashOf("signed-token"), at.TokenHash)
	})).Return(nil)

	s := NewTokenService(manager, store, userStore, testutil.MakeNoopLogger())

	token, err := s.Issue(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
}

func TestTokenService_Authenticate_Valid(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	manager := mocks.NewTokenManager(t)
	store := mocks.NewAuthTokenStore(t)
	userStore := mocks.NewUserStore(t)

	manager.On("Parse", "signed-token").Return(userID, nil)
	store.On("GetByHash", mock.Anything, hashOf("signed-token")).
		Return(model.AuthToken{UserID: userID, TokenHash: hashOf("signed-token")}, nil)
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, Email: "a@x.com"}, nil)

	s := NewTokenService(manager, store, userStore, testutil.MakeNoopLogger())

	user, err := s.Authenticate(ctx, "signed-token")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
}

func TestTokenService_Authenticate_BadSignature(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	store := &mocks.AuthTokenStore{}
	userStore := &mocks.UserStore{}

	manager.On("Parse", "garbage").Return(uuid.Nil, assert.AnError)

	s := NewTokenService(manager, store, userStore, testutil.MakeNoopLogger())

	_, err := s.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestTokenService_Authenticate_RevokedToken(t *testing.T) {
	userID := uuid.New()

	manager := mocks.NewTokenManager(t)
	store := mocks.NewAuthTokenStore(t)
	userStore := &mocks.UserStore{}

	manager.On("Parse", "signed-token").Return(userID, nil)
	store.On("GetByHash", mock.Anything, hashOf("signed-token")).
		Return(model.AuthToken{}, model.ErrNotFound)

	s := NewTokenService(manager, store, userStore, testutil.MakeNoopLogger())

	_, err := s.Authenticate(context.Background(), "signed-token")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestTokenService_Authenticate_TokenOwnedByOtherUser(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	store := mocks.NewAuthTokenStore(t)
	userStore := &mocks.UserStore{}

	manager.On("Parse", "signed-token").Return(uuid.New(), nil)
	store.On("GetByHash", mock.Anything, hashOf("signed-token")).
		Return(model.AuthToken{UserID: uuid.New(), TokenHash: hashOf("signed-token")}, nil)

	s := NewTokenService(manager, store, userStore, testutil.MakeNoopLogger())

	_, err := s.Authenticate(context.Background(), "signed-token")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestTokenService_Authenticate_UserGone(t *testing.T) {
	userID := uuid.New()

	manager := mocks.NewTokenManager(t)
	store := mocks.NewAuthTokenStore(t)
	userStore := mocks.NewUserStore(t)

	manager.On("Parse", "signed-token").Return(userID, nil)
	store.On("GetByHash", mock.Anything, hashOf("signed-token")).
		Return(model.AuthToken{UserID: userID, TokenHash: hashOf("signed-token")}, nil)
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)

	s := NewTokenService(manager, store, userStore, testutil.MakeNoopLogger())

	_, err := s.Authenticate(context.Background(), "signed-token")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestTokenService_Revoke(t *testing.T) {
	userID := uuid.New()

	manager := &mocks.TokenManager{}
	store := mocks.NewAuthTokenStore(t)
	userStore := &mocks.UserStore{}

	store.On("DeleteByHash", mock.Anything, userID, hashOf("signed-token")).Return(nil)

	s := NewTokenService(manager, store, userStore, testutil.MakeNoopLogger())

	require.NoError(t, s.Revoke(context.Background(), userID, "signed-token"))
}

func TestTokenService_Revoke_AlreadyRevoked(t *testing.T) {
	userID := uuid.New()

	manager := &mocks.TokenManager{}
	store := mocks.NewAuthTokenStore(t)
	userStore := &mocks.UserStore{}

	store.On("DeleteByHash", mock.Anything, userID, hashOf("signed-token")).Return(model.ErrNotFound)

	s := NewTokenService(manager, store, userStore, testutil.MakeNoopLogger())

	// Logout is idempotent.
	require.NoError(t, s.Revoke(context.Background(), userID, "signed-token"))
}

func TestTokenService_RevokeAll(t *testing.T) {
	userID := uuid.New()

	manager := &mocks.TokenManager{}
	store := mocks.NewAuthTokenStore(t)
	userStore := &mocks.UserStore{}

	store.On("DeleteAllByUser", mock.Anything, userID).Return(nil)

	s := NewTokenService(manager, store, userStore, testutil.MakeNoopLogger())

	require.NoError(t, s.RevokeAll(context.Background(), userID))
}
