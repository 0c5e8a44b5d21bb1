package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/taskhive-server/internal/mocks"
	"github.com/taskhive/taskhive-server/internal/model"
	"github.com/taskhive/taskhive-server/internal/password"
	"github.com/taskhive/taskhive-server/internal/testutil"
	"github.com/taskhive/taskhive-server/internal/validate"
)

func newAuth(userStore model.UserStore, tokenStore model.AuthTokenStore, manager model.TokenManager) *Auth {
	log := testutil.MakeNoopLogger()
	tokens := NewTokenService(manager, tokenStore, userStore, log)
	return NewAuth(userStore, tokens, password.NewHasher(bcrypt.MinCost), validate.New(), log)
}

func TestAuth_Register(t *testing.T) {
	userStore := mocks.NewUserStore(t)
	tokenStore := mocks.NewAuthTokenStore(t)
	manager := mocks.NewTokenManager(t)

	var created model.User
	userStore.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Name == "Mike" &&
			u.Email == "mike@example.com" &&
			u.Age == 30 &&
			u.PasswordHash != "" &&
			u.PasswordHash != "s3cret!pass"
	})).Run(func(args mock.Arguments) {
		created = args.Get(1).(model.User)
	}).Return(model.User{}, nil)
	manager.On("Generate", mock.Anything).Return("signed-token", nil)
	tokenStore.On("Create", mock.Anything, mock.Anything).Return(nil)

	a := newAuth(userStore, tokenStore, manager)

	_, token, err := a.Register(context.Background(), RegisterInput{
		Name:     "  Mike ",
		Email:    " Mike@Example.COM ",
		Age:      30,
		Password: "s3cret!pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, "mike@example.com", created.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret!pass")))

	// The row reaches the store already stamped.
	assert.False(t, created.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Minute)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestAuth_Register_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		input  RegisterInput
		fields []string
	}{
		{
			name:   "missing everything",
			input:  RegisterInput{},
			fields: []string{"name", "email", "password"},
		},
		{
			name:   "bad email",
			input:  RegisterInput{Name: "Mike", Email: "not-an-email", Password: "s3cret!pass"},
			fields: []string{"email"},
		},
		{
			name:   "negative age",
			input:  RegisterInput{Name: "Mike", Email: "m@x.com", Age: -1, Password: "s3cret!pass"},
			fields: []string{"age"},
		},
		{
			name:   "short password",
			input:  RegisterInput{Name: "Mike", Email: "m@x.com", Password: "short"},
			fields: []string{"password"},
		},
		{
			name:   "password contains password",
			input:  RegisterInput{Name: "Mike", Email: "m@x.com", Password: "MyPassword123"},
			fields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAuth(&mocks.UserStore{}, &mocks.AuthTokenStore{}, &mocks.TokenManager{})

			_, _, err := a.Register(context.Background(), tt.input)

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	userStore := mocks.NewUserStore(t)

	userStore.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrEmailTaken)

	a := newAuth(userStore, &mocks.AuthTokenStore{}, &mocks.TokenManager{})

	_, _, err := a.Register(context.Background(), RegisterInput{
		Name:     "Mike",
		Email:    "mike@example.com",
		Password: "s3cret!pass",
	})
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestAuth_Login(t *testing.T) {
	hasher := password.NewHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("s3cret!pass")
	require.NoError(t, err)

	userID := uuid.New()
	stored := model.User{ID: userID, Email: "mike@example.com", PasswordHash: hash}

	userStore := mocks.NewUserStore(t)
	tokenStore := mocks.NewAuthTokenStore(t)
	manager := mocks.NewTokenManager(t)

	userStore.On("GetByEmail", mock.Anything, "mike@example.com").Return(stored, nil)
	manager.On("Generate", userID).Return("signed-token", nil)
	tokenStore.On("Create", mock.Anything, mock.Anything).Return(nil)

	a := newAuth(userStore, tokenStore, manager)

	user, token, err := a.Login(context.Background(), " Mike@Example.com ", "s3cret!pass")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, userID, user.ID)
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	userStore := mocks.NewUserStore(t)
	userStore.On("GetByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, model.ErrNotFound)

	a := newAuth(userStore, &mocks.AuthTokenStore{}, &mocks.TokenManager{})

	_, _, err := a.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	hasher := password.NewHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct-pass")
	require.NoError(t, err)

	userStore := mocks.NewUserStore(t)
	userStore.On("GetByEmail", mock.Anything, "mike@example.com").
		Return(model.User{ID: uuid.New(), Email: "mike@example.com", PasswordHash: hash}, nil)

	a := newAuth(userStore, &mocks.AuthTokenStore{}, &mocks.TokenManager{})

	_, _, err = a.Login(context.Background(), "mike@example.com", "wrong-pass")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Logout(t *testing.T) {
	userID := uuid.New()

	tokenStore := mocks.NewAuthTokenStore(t)
	tokenStore.On("DeleteByHash", mock.Anything, userID, mock.Anything).Return(nil)

	a := newAuth(&mocks.UserStore{}, tokenStore, &mocks.TokenManager{})

	require.NoError(t, a.Logout(context.Background(), userID, "signed-token"))
}

func TestAuth_LogoutAll(t *testing.T) {
	userID := uuid.New()

	tokenStore := mocks.NewAuthTokenStore(t)
	tokenStore.On("DeleteAllByUser", mock.Anything, userID).Return(nil)

	a := newAuth(&mocks.UserStore{}, tokenStore, &mocks.TokenManager{})

	require.NoError(t, a.LogoutAll(context.Background(), userID))
}
