package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jekabolt/storefront-ledger/internal/auth/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	jwtSecret      = "hehe"
	masterPassword = "FJKqDyBvr9pAQMB3f8Uj4s"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(&Config{JWTSecret: jwtSecret, MasterPassword: masterPassword, JWTTTL: "60m"})
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	_, err := New(&Config{})
	assert.Error(t, err)

	_, err = New(&Config{JWTSecret: "x", JWTTTL: "soon"})
	assert.Error(t, err)

	s, err := New(&Config{JWTSecret: "x"})
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, s.jwtTTL)
}

func TestLogin(t *testing.T) {
	s := newServer(t)

	rec := httptest.NewRecorder()
	s.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"Admin","password":"`+masterPassword+`"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	sub, err := jwt.VerifyToken(s.JwtAuth, resp.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)

	rec = httptest.NewRecorder()
	s.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"admin","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	s.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`nope`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginDisabledWithoutMasterPassword(t *testing.T) {
	s, err := New(&Config{JWTSecret: jwtSecret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"admin","password":""}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWithAuth(t *testing.T) {
	s := newServer(t)
	h := s.WithAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	valid, err := jwt.NewToken(s.JwtAuth, time.Hour)
	require.NoError(t, err)
	expired, err := jwt.NewToken(s.JwtAuth, -time.Hour)
	require.NoError(t, err)
	foreign, err := jwt.NewToken(jwtauth.New("HS256", []byte("other"), nil), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + valid, http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"foreign", "Bearer " + foreign, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/analytics", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
