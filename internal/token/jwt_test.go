package token

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret")
	u := uuid.New()

	token, err := j.Generate(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := j.Parse(token)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestJWT_UniquePerIssue(t *testing.T) {
	j := NewJWT("secret")
	u := uuid.New()

	first, err := j.Generate(u)
	require.NoError(t, err)
	second, err := j.Generate(u)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestJWT_WrongSecret(t *testing.T) {
	issuer := NewJWT("secret")
	verifier := NewJWT("other-secret")

	token, err := issuer.Generate(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	require.Error(t, err)
}

func TestJWT_Malformed(t *testing.T) {
	j := NewJWT("secret")

	_, err := j.Parse("not-a-token")
	require.Error(t, err)

	_, err = j.Parse("")
	require.Error(t, err)
}

func TestJWT_Tampered(t *testing.T) {
	j := NewJWT("secret")

	token, err := j.Generate(uuid.New())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = j.Parse(tampered)
	require.Error(t, err)
}
