package utils

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/denelabs/walletbridge/pkg/constants"
)

func CreateHTTPClientWithTimeouts() *http.Client {
	return &http.Client{
		Timeout: constants.RPCRequestTimeout,
		Transport: &http.Transport{
			TLSHandshakeTimeout:   constants.TLSHandshakeTimeout,
			ResponseHeaderTimeout: constants.ResponseHeaderTimeout,
			ExpectContinueTimeout: constants.ExpectContinueTimeout,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse // Disable redirects to prevent redirect-based SSRF
		},
	}
}

// ValidateRPCURL validates that an RPC URL is secure
// Returns error if URL doesn't use HTTPS (except for plain http to localhost, 127.0.0.1 or [::1])
func ValidateRPCURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid RPC URL: %q", rawURL)
	}
	if u.Scheme == "https" || IsLocalURL(rawURL) {
		return nil
	}
	return fmt.Errorf("RPC URL must use HTTPS: %s", rawURL)
}

var loopbackHosts = map[string]bool{"localhost": true, "127.0.0.1": true, "::1": true}

// IsLocalURL reports whether rawURL is plain http to the local machine
func IsLocalURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "http" || u.User != nil {
		return false
	}
	return loopbackHosts[u.Hostname()]
}

// ShortAddress abbreviates a G-address for log lines
func ShortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// SplitList splits a comma separated list, dropping blanks
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
