package rawcookie

import (
	"testing"
	"time"
)

func TestCookieMatchesOrigin(t *testing.T) {
	now := time.Now()
	o := requestOrigin{scheme: "https", host: "app.example.com", path: "/a/b"}

	c := New("sid", "x")
	c.SetDomain("example.com")
	c.SetPath("/a")
	c.SetSecure(true)
	if !cookieMatchesOrigin(c, o, now) {
		t.Fatal("expected match")
	}

	o.scheme = "http"
	if cookieMatchesOrigin(c, o, now) {
		t.Fatal("expected no match for secure cookie over http")
	}

	o.scheme = "https"
	c.Expire()
	if cookieMatchesOrigin(c, o, now) {
		t.Fatal("expected no match for expired cookie")
	}
}

func TestCookieMatchesOrigin_NoDomain(t *testing.T) {
	c := New("sid", "x")
	c.SetPath("/")
	o := requestOrigin{scheme: "https", host: "example.com", path: "/"}
	if cookieMatchesOrigin(c, o, time.Now()) {
		t.Fatal("cookie without Domain must not match")
	}
}

func TestHostMatchesCookieDomain(t *testing.T) {
	cases := []struct {
		host, domain string
		want         bool
	}{
		{"example.com", "example.com", true},
		{"app.example.com", "example.com", true},
		{"app.example.com", ".example.com", true},
		{"EXAMPLE.com", "example.COM", true},
		{"badexample.com", "example.com", false},
		{"example.com", "app.example.com", false},
		{"", "example.com", false},
		{"example.com", "", false},
	}
	for _, tc := range cases {
		if got := hostMatchesCookieDomain(tc.host, tc.domain); got != tc.want {
			t.Fatalf("hostMatchesCookieDomain(%q, %q) = %v, want %v", tc.host, tc.domain, got, tc.want)
		}
	}
}

func TestPathMatchesCookiePath(t *testing.T) {
	cases := []struct {
		request, cookie string
		want            bool
	}{
		{"/anything", "/", true},
		{"/a", "/a", true},
		{"/a/b", "/a", true},
		{"/a/b", "/a/", true},
		{"/ab", "/a", false},
		{"/", "/a", false},
		{"", "", true}, // both normalize to "/"
	}
	for _, tc := range cases {
		if got := pathMatchesCookiePath(tc.request, tc.cookie); got != tc.want {
			t.Fatalf("pathMatchesCookiePath(%q, %q) = %v, want %v", tc.request, tc.cookie, got, tc.want)
		}
	}
}

func TestParseOrigin(t *testing.T) {
	o, err := parseOrigin("HTTPS://App.Example.com/Some/Path")
	if err != nil {
		t.Fatal(err)
	}
	if o.scheme != "https" || o.host != "app.example.com" || o.path != "/Some/Path" {
		t.Fatalf("unexpected origin %+v", o)
	}

	for _, bad := range []string{"", "example.com", "/relative", "https://"} {
		if _, err := parseOrigin(bad); err == nil {
			t.Fatalf("parseOrigin(%q) should fail", bad)
		}
	}
}
