package rawcookie

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

type requestOrigin struct {
	scheme string
	host   string
	path   string
}

func parseOrigin(rawURL string) (requestOrigin, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return requestOrigin{}, err
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return requestOrigin{}, errors.New("rawcookie: URL must include scheme and host")
	}
	return requestOrigin{
		scheme: strings.ToLower(u.Scheme),
		host:   normalizeHost(u.Hostname()),
		path:   normalizePath(u.EscapedPath()),
	}, nil
}

func cookieMatchesOrigin(c *Cookie, o requestOrigin, now time.Time) bool {
	if expires, ok := c.Expires(); ok && expires.Before(now) {
		return false
	}

	domain, ok := c.Domain()
	if !ok || domain == "" {
		return false
	}
	if !hostMatchesCookieDomain(o.host, domain) {
		return false
	}

	if c.Secure() && o.scheme != "https" && o.scheme != "wss" {
		return false
	}

	path, _ := c.Path()
	return pathMatchesCookiePath(o.path, path)
}

func hostMatchesCookieDomain(host, cookieDomain string) bool {
	host = normalizeHost(host)
	cookieDomain = normalizeHost(cookieDomain)
	if host == "" || cookieDomain == "" {
		return false
	}
	if host == cookieDomain {
		return true
	}
	return strings.HasSuffix(host, "."+cookieDomain)
}

func pathMatchesCookiePath(requestPath, cookiePath string) bool {
	requestPath = normalizePath(requestPath)
	cookiePath = normalizePath(cookiePath)
	if cookiePath == "/" {
		return true
	}
	if requestPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(requestPath, cookiePath) {
		return false
	}
	if cookiePath[len(cookiePath)-1] == '/' {
		return true
	}
	return len(requestPath) > len(cookiePath) && requestPath[len(cookiePath)] == '/'
}

func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimPrefix(host, ".")
	return strings.ToLower(host)
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path[0] != '/' {
		return "/"
	}
	return path
}
