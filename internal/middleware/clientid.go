package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

type contextKey struct{}

// Client identifies the caller of a request.
type Client struct {
	IP string
	// Session is a fingerprint of the client headers, stable across requests
	// from the same browser.
	Session string
}

// ClientIdentifier resolves the caller behind proxies and stores it in the
// request context.
func ClientIdentifier(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		c := Client{IP: ip, Session: fingerprint(r, ip)}
		next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), c)))
	})
}

func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// ClientFrom returns the caller stored by ClientIdentifier, "unknown" when
// the request did not pass through it.
func ClientFrom(ctx context.Context) Client {
	if c, ok := ctx.Value(contextKey{}).(Client); ok {
		return c
	}
	return Client{IP: "unknown", Session: "unknown"}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	for _, h := range []string{"X-Real-IP", "CF-Connecting-IP"} {
		if v := r.Header.Get(h); v != "" {
			return v
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func fingerprint(r *http.Request, ip string) string {
	data := strings.Join([]string{
		r.Header.Get("User-Agent"),
		r.Header.Get("Accept-Language"),
		ip,
	}, "|")
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:16])
}
