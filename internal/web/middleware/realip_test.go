package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseProxies(t *testing.T) {
	list := ParseProxies([]string{" 10.0.0.0/8 ", "127.0.0.1", "::1", "not-an-ip", "", "192.168.1.7/24"})
	if len(list) != 4 {
		t.Fatalf("len(ParseProxies()) = %d, want 4: %v", len(list), list)
	}
	if got := list[3].String(); got != "192.168.1.0/24" {
		t.Errorf("masked prefix = %s, want 192.168.1.0/24", got)
	}
}

func TestTrustedRealIP(t *testing.T) {
	trusted := []string{"10.0.0.0/8", "127.0.0.1"}

	tests := []struct {
		name    string
		remote  string
		realIP  string
		xff     string
		trusted []string
		want    string
	}{
		{"no proxies configured", "203.0.113.9:5555", "198.51.100.1", "", nil, "203.0.113.9:5555"},
		{"untrusted remote ignores headers", "203.0.113.9:5555", "198.51.100.1", "198.51.100.2", trusted, "203.0.113.9"},
		{"trusted remote uses X-Real-IP", "10.1.2.3:80", "198.51.100.1", "198.51.100.2", trusted, "198.51.100.1"},
		{"invalid X-Real-IP falls back to XFF", "10.1.2.3:80", "garbage", "198.51.100.2", trusted, "198.51.100.2"},
		{"XFF skips trusted hops", "127.0.0.1:80", "", "198.51.100.5, 203.0.113.1, 10.0.0.4", trusted, "203.0.113.1"},
		{"XFF all trusted takes leftmost", "127.0.0.1:80", "", "10.0.0.9, 10.0.0.4", trusted, "10.0.0.9"},
		{"XFF invalid hop keeps remote", "127.0.0.1:80", "", "198.51.100.5, bogus", trusted, "127.0.0.1"},
		{"no headers keeps remote", "10.1.2.3:80", "", "", trusted, "10.1.2.3"},
		{"ipv6 remote", "[::1]:8080", "", "", []string{"::1"}, "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/offices", nil)
			req.RemoteAddr = tt.remote
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}
