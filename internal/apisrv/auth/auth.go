package auth

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jekabolt/storefront-ledger/internal/apisrv/response"
	"github.com/jekabolt/storefront-ledger/internal/auth/jwt"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
)

// Config contains the configuration for the admin auth.
type Config struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	MasterPassword string `mapstructure:"master_password"`
	JWTTTL         string `mapstructure:"jwt_ttl"`
}

// Server issues admin tokens and guards admin routes.
type Server struct {
	JwtAuth *jwtauth.JWTAuth
	jwtTTL  time.Duration
	c       *Config
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AuthToken string `json:"authToken"`
}

func New(c *Config) (*Server, error) {
	if c == nil || c.JWTSecret == "" {
		return nil, errors.New("auth: jwt secret is required")
	}
	ttl := 24 * time.Hour
	if c.JWTTTL != "" {
		d, err := time.ParseDuration(c.JWTTTL)
		if err != nil {
			return nil, err
		}
		ttl = d
	}
	return &Server{
		JwtAuth: jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:  ttl,
		c:       c,
	}, nil
}

// Login exchanges the master password for a token. Login is disabled when no
// master password is configured.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Error(w, r, err, "")
		return
	}
	if s.c.MasterPassword == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.c.MasterPassword)) != 1 {
		slog.Default().WarnContext(r.Context(), "admin login rejected",
			slog.String("username", req.Username),
		)
		response.Error(w, r, gerr.Unauthorized, "")
		return
	}

	token, err := jwt.NewTokenWithSubject(s.JwtAuth, s.jwtTTL, strings.ToLower(req.Username))
	if err != nil {
		response.Error(w, r, err, "Failed to issue token")
		return
	}
	response.JSON(w, http.StatusOK, LoginResponse{AuthToken: token})
}

// WithAuth lets a request through only with a valid bearer token.
func (s *Server) WithAuth(next http.Handler) http.Handler {
	return jwtauth.Verifier(s.JwtAuth)(authenticator(next))
}

func authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.Error(w, r, gerr.Unauthorized, "")
			return
		}
		next.ServeHTTP(w, r)
	})
}
