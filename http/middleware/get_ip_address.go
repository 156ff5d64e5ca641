package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/poorify/poorify"
)

const unknownIP = "0.0.0.0"

// proxiedHeaders are searched, in order, for the address of the client behind a proxy.
var proxiedHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// sharedPrefixes are IANA non-public IPv4 ranges IsPrivate does not cover.
var sharedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress promotes the client's IP address to *http.Request.Context under poorify.IpAddrKey.
//
// Forwarding headers win over the connection's remote address.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.Clone(context.WithValue(r.Context(), poorify.IpAddrKey, clientIP(r)))
			h.ServeHTTP(w, r)
		})
	}
}

// GetIPAddress parses "X-Forwarded-For" and "X-Real-Ip" headers for the IP address
// of the client, returning 0.0.0.0 when none is public.
func GetIPAddress(hm http.Header) string {
	for _, h := range proxiedHeaders {
		addresses := strings.Split(hm.Get(h), ",")
		// the rightmost public address is the one our proxy saw
		for i := len(addresses) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(addresses[i]))
			if err != nil || !isPublic(addr) {
				continue
			}

			return addr.String()
		}
	}

	return unknownIP
}

// clientIP returns the address stashed by InjectIPAddress,
// otherwise it resolves the address from headers and then the connection.
func clientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(poorify.IpAddrKey).(string); ok && ip != "" {
		return ip
	}

	if ip := GetIPAddress(r.Header); ip != unknownIP {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return unknownIP
	}

	return host
}

func isPublic(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}

	for _, p := range sharedPrefixes {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
