package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		wantIP  string
	}{
		{name: "remote addr", remote: "192.0.2.10:5123", wantIP: "192.0.2.10"},
		{name: "ipv6 remote addr", remote: "[2001:db8::1]:443", wantIP: "2001:db8::1"},
		{
			name:    "forwarded for first hop",
			remote:  "10.0.0.1:80",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			wantIP:  "203.0.113.7",
		},
		{
			name:    "real ip",
			remote:  "10.0.0.1:80",
			headers: map[string]string{"X-Real-IP": "198.51.100.4"},
			wantIP:  "198.51.100.4",
		},
		{
			name:    "cloudflare",
			remote:  "10.0.0.1:80",
			headers: map[string]string{"CF-Connecting-IP": "198.51.100.9"},
			wantIP:  "198.51.100.9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Client
			h := ClientIdentifier(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ClientFrom(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.wantIP, got.IP)
			assert.Len(t, got.Session, 32)
		})
	}
}

func TestClientFromEmptyContext(t *testing.T) {
	c := ClientFrom(context.Background())
	assert.Equal(t, "unknown", c.IP)
}

func TestFingerprintStable(t *testing.T) {
	r1 := httptest.NewRequest(http.MethodGet, "/", nil)
	r1.Header.Set("User-Agent", "curl")
	r2 := httptest.NewRequest(http.MethodPost, "/other", nil)
	r2.Header.Set("User-Agent", "curl")
	assert.Equal(t, fingerprint(r1, "1.1.1.1"), fingerprint(r2, "1.1.1.1"))
	assert.NotEqual(t, fingerprint(r1, "1.1.1.1"), fingerprint(r1, "2.2.2.2"))
}
