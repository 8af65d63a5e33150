package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)

	tok, err := NewTokenWithSubject(jwtAuth, time.Hour, "admin")
	require.NoError(t, err)

	sub, err := VerifyToken(jwtAuth, tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)

	tok, err = NewToken(jwtAuth, time.Hour)
	require.NoError(t, err)
	sub, err = VerifyToken(jwtAuth, tok)
	require.NoError(t, err)
	assert.Empty(t, sub)
}

func TestTokenRejected(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)

	expired, err := NewToken(jwtAuth, -time.Minute)
	require.NoError(t, err)
	_, err = VerifyToken(jwtAuth, expired)
	assert.Error(t, err)

	other := jwtauth.New("HS256", []byte("other"), nil)
	foreign, err := NewToken(other, time.Hour)
	require.NoError(t, err)
	_, err = VerifyToken(jwtAuth, foreign)
	assert.Error(t, err)
}
