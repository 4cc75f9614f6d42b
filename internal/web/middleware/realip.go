package middleware

import (
	"log/slog"
	"net/http"
	"net/netip"
	"strings"
)

// ProxyList is a set of trusted proxy networks.
type ProxyList []netip.Prefix

// ParseProxies parses CIDRs or bare addresses. Invalid entries are logged
// and skipped.
func ParseProxies(entries []string) ProxyList {
	var list ProxyList
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			list = append(list, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			slog.Warn("realip: invalid trusted proxy, skipping", "proxy", entry, "error", err)
			continue
		}
		list = append(list, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}
	return list
}

// Trusts reports whether addr belongs to a trusted network.
func (l ProxyList) Trusts(addr netip.Addr) bool {
	if !addr.IsValid() {
		return false
	}
	addr = addr.Unmap()
	for _, p := range l {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientAddr resolves the client address of r. Forwarding headers are
// only honoured when the connection comes from a trusted proxy.
// X-Forwarded-For is walked right to left, skipping trusted hops, so a
// client cannot spoof its address by prepending entries.
func (l ProxyList) ClientAddr(r *http.Request) (netip.Addr, bool) {
	remote, ok := parseHost(r.RemoteAddr)
	if !ok || !l.Trusts(remote) {
		return remote, ok
	}

	if rip, ok := parseHost(r.Header.Get("X-Real-IP")); ok {
		return rip, true
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop, ok := parseHost(hops[i])
		if !ok {
			break
		}
		if !l.Trusts(hop) || i == 0 {
			return hop, true
		}
	}
	return remote, true
}

// TrustedRealIP rewrites RemoteAddr to the resolved client address.
// The rewritten value keys the rate limiter and the audit entries of
// mutations.
func TrustedRealIP(trusted []string) func(http.Handler) http.Handler {
	proxies := ParseProxies(trusted)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(proxies) > 0 {
				if addr, ok := proxies.ClientAddr(r); ok {
					r.RemoteAddr = addr.String()
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// parseHost parses "ip", "ip:port" or "[ipv6]:port".
func parseHost(s string) (netip.Addr, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return netip.Addr{}, false
	}
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap(), true
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
