package rawcookie

import "strings"

// Attribute identifies a cookie attribute this package recognizes. The set
// is closed: attribute names outside it are ignored on set and dropped on
// parse (RFC 6265 section 5.2 step 6).
type Attribute string

const (
	// AttrExpires is the Expires attribute (HTTP date).
	AttrExpires Attribute = "Expires"
	// AttrMaxAge is the Max-Age attribute (seconds).
	AttrMaxAge Attribute = "Max-Age"
	// AttrDomain is the Domain attribute.
	AttrDomain Attribute = "Domain"
	// AttrPath is the Path attribute.
	AttrPath Attribute = "Path"
	// AttrSecure is the valueless Secure flag.
	AttrSecure Attribute = "Secure"
	// AttrHTTPOnly is the valueless HttpOnly flag.
	AttrHTTPOnly Attribute = "HttpOnly"
	// AttrSameSite is the SameSite attribute.
	AttrSameSite Attribute = "SameSite"
)

// SameSite is the cookie SameSite attribute value.
type SameSite string

const (
	// SameSiteNone is SameSite=None.
	SameSiteNone SameSite = "None"
	// SameSiteLax is SameSite=Lax.
	SameSiteLax SameSite = "Lax"
	// SameSiteStrict is SameSite=Strict.
	SameSiteStrict SameSite = "Strict"
)

var attributeNames = map[string]Attribute{
	"expires":  AttrExpires,
	"max-age":  AttrMaxAge,
	"domain":   AttrDomain,
	"path":     AttrPath,
	"secure":   AttrSecure,
	"httponly": AttrHTTPOnly,
	"samesite": AttrSameSite,
}

// recognizeAttribute maps an external attribute name, case-insensitively,
// onto the closed Attribute set. The second return is false for anything
// outside the set; callers treat that as "ignore", not as an error.
func recognizeAttribute(name string) (Attribute, bool) {
	a, ok := attributeNames[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// IsFlag reports whether the attribute is presence-only (Secure, HttpOnly).
func (a Attribute) IsFlag() bool {
	return a == AttrSecure || a == AttrHTTPOnly
}

// normalizeSameSite maps a SameSite token onto its canonical spelling.
// Tokens outside Strict/Lax/None are kept verbatim.
func normalizeSameSite(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "none":
		return string(SameSiteNone)
	case "lax":
		return string(SameSiteLax)
	case "strict":
		return string(SameSiteStrict)
	default:
		return strings.TrimSpace(v)
	}
}
