package rawcookie

import (
	"fmt"
	"strings"
)

// Parse builds a Cookie from a raw Set-Cookie value.
//
// The first ";"-separated segment must be a cookie-pair with a nonempty
// name, otherwise Parse fails with ErrMalformed. Every later segment is a
// cookie-av: "Attr=Val" or a bare flag "Attr". Segments whose attribute
// name falls outside the recognized set are dropped, a value supplied for
// Secure or HttpOnly is discarded with the flag kept, and a duplicate
// attribute overwrites the earlier value in place. Whitespace around ";"
// and "=" is trimmed.
func Parse(raw string) (*Cookie, error) {
	segs := strings.Split(raw, ";")

	pair := strings.TrimSpace(segs[0])
	eq := strings.IndexByte(pair, '=')
	if eq < 0 {
		return nil, fmt.Errorf("%w: missing cookie-pair in %q", ErrMalformed, pair)
	}
	name := strings.TrimSpace(pair[:eq])
	if name == "" {
		return nil, fmt.Errorf("%w: empty cookie name", ErrMalformed)
	}

	c := New(name, pair[eq+1:])
	for _, seg := range segs[1:] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		attrName, attrValue := seg, ""
		if eq := strings.IndexByte(seg, '='); eq >= 0 {
			attrName, attrValue = seg[:eq], seg[eq+1:]
		}
		a, ok := recognizeAttribute(attrName)
		if !ok {
			continue
		}
		c.setAttr(a, attrValue)
	}
	return c, nil
}
