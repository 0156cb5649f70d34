package rawcookie

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// httpTimeFormat is the RFC 1123 GMT layout mandated for Expires values.
const httpTimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// expiresParseLayouts are the date layouts accepted when reading an Expires
// value back out of the buffer (RFC 1123 GMT first, then the legacy forms
// RFC 6265 section 5.1.1 still requires consumers to accept).
var expiresParseLayouts = []string{
	httpTimeFormat,
	time.RFC850,
	time.ANSIC,
}

// earliestExpiry is the conventional "delete this cookie" timestamp used by
// Expire.
var earliestExpiry = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// span is a half-open byte range [start, end) into the cookie buffer.
type span struct {
	start, end int
}

// attrEntry records where one attribute lives in the buffer. seg covers the
// whole "; Name=Value" (or "; Name") segment including the separator; val
// covers just the value and is zero-width for flag attributes.
type attrEntry struct {
	attr Attribute
	seg  span
	val  span
}

// Cookie is a Set-Cookie value backed by a single serialized buffer.
//
// The buffer is the source of truth: every accessor slices it directly and
// every mutator splices it in place, shifting the recorded offsets of the
// fields that follow. String therefore never re-serializes anything.
//
// A Cookie is a plain value object with no internal locking; share one
// across goroutines only behind external synchronization, or Clone it.
type Cookie struct {
	buf   []byte
	name  span
	value span
	// attrs is kept in first-set order; new attributes append at the end
	// of the buffer, existing ones are edited in place.
	attrs []attrEntry
}

// New builds a Cookie from a name/value pair with no attributes. Leading
// and trailing whitespace is trimmed from both parts.
func New(name, value string) *Cookie {
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)

	buf := make([]byte, 0, len(name)+1+len(value))
	buf = append(buf, name...)
	buf = append(buf, '=')
	buf = append(buf, value...)

	return &Cookie{
		buf:   buf,
		name:  span{0, len(name)},
		value: span{len(name) + 1, len(buf)},
	}
}

// String returns the serialized Set-Cookie value. This is an identity read
// of the buffer, not a re-serialization.
func (c *Cookie) String() string { return string(c.buf) }

// Name returns the cookie name.
func (c *Cookie) Name() string { return c.slice(c.name) }

// Value returns the cookie value.
func (c *Cookie) Value() string { return c.slice(c.value) }

// Pair returns the cookie-pair (name, value).
func (c *Cookie) Pair() (name, value string) { return c.Name(), c.Value() }

// Clone returns an independent copy of the cookie.
func (c *Cookie) Clone() *Cookie {
	out := &Cookie{
		buf:   append([]byte(nil), c.buf...),
		name:  c.name,
		value: c.value,
	}
	if len(c.attrs) > 0 {
		out.attrs = append([]attrEntry(nil), c.attrs...)
	}
	return out
}

// SetName replaces the cookie name. The name is trimmed; an empty result
// violates the mandatory cookie-pair and returns ErrInvalidOperation.
func (c *Cookie) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: cookie name must not be empty", ErrInvalidOperation)
	}
	start := c.name.start
	c.splice(start, c.name.end, name)
	c.name = span{start, start + len(name)}
	return nil
}

// SetValue replaces the cookie value. The value is trimmed; empty is legal.
func (c *Cookie) SetValue(value string) {
	value = strings.TrimSpace(value)
	start := c.value.start
	c.splice(start, c.value.end, value)
	c.value = span{start, start + len(value)}
}

// SetAttribute sets an attribute by its external name. Unrecognized names
// are silently ignored (RFC 6265 section 5.2 step 6). For the flag
// attributes Secure and HttpOnly any supplied value is discarded and the
// flag is set present. Setting a valued attribute to an empty value removes
// it.
func (c *Cookie) SetAttribute(name, value string) {
	a, ok := recognizeAttribute(name)
	if !ok {
		return
	}
	c.setAttr(a, value)
}

// Attribute returns the value of an attribute by its external name. For
// flags the value is empty and the bool reports presence. Unrecognized
// names report absent.
func (c *Cookie) Attribute(name string) (string, bool) {
	a, ok := recognizeAttribute(name)
	if !ok {
		return "", false
	}
	return c.Lookup(a)
}

// Lookup returns the value of a recognized attribute and whether it is
// present. Flag attributes yield an empty value.
func (c *Cookie) Lookup(a Attribute) (string, bool) {
	i := c.findAttr(a)
	if i < 0 {
		return "", false
	}
	return c.slice(c.attrs[i].val), true
}

// Remove deletes a field by its external name. Removing the mandatory
// "name" or "value" field fails with ErrInvalidOperation and leaves the
// buffer untouched. Removing an absent or unrecognized attribute is a
// no-op.
func (c *Cookie) Remove(field string) error {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "name", "value":
		return fmt.Errorf("%w: %s is mandatory", ErrInvalidOperation, strings.TrimSpace(field))
	}
	a, ok := recognizeAttribute(field)
	if !ok {
		return nil
	}
	if i := c.findAttr(a); i >= 0 {
		c.removeAt(i)
	}
	return nil
}

// Domain returns the Domain attribute.
func (c *Cookie) Domain() (string, bool) { return c.Lookup(AttrDomain) }

// SetDomain sets the Domain attribute. An empty (or all-space) domain
// removes it.
func (c *Cookie) SetDomain(domain string) { c.setAttr(AttrDomain, domain) }

// Path returns the Path attribute.
func (c *Cookie) Path() (string, bool) { return c.Lookup(AttrPath) }

// SetPath sets the Path attribute. An empty (or all-space) path removes it.
func (c *Cookie) SetPath(path string) { c.setAttr(AttrPath, path) }

// MaxAge returns the Max-Age attribute in seconds.
func (c *Cookie) MaxAge() (int64, bool) {
	v, ok := c.Lookup(AttrMaxAge)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetMaxAge sets the Max-Age attribute in seconds. A value of zero or less
// removes it; use SetAttribute("Max-Age", "0") to emit a literal zero.
func (c *Cookie) SetMaxAge(seconds int64) {
	if seconds <= 0 {
		if i := c.findAttr(AttrMaxAge); i >= 0 {
			c.removeAt(i)
		}
		return
	}
	c.setValuedAttr(AttrMaxAge, strconv.FormatInt(seconds, 10))
}

// Secure reports whether the Secure flag is present.
func (c *Cookie) Secure() bool { return c.findAttr(AttrSecure) >= 0 }

// SetSecure sets or clears the Secure flag.
func (c *Cookie) SetSecure(on bool) { c.setFlag(AttrSecure, on) }

// HTTPOnly reports whether the HttpOnly flag is present.
func (c *Cookie) HTTPOnly() bool { return c.findAttr(AttrHTTPOnly) >= 0 }

// SetHTTPOnly sets or clears the HttpOnly flag.
func (c *Cookie) SetHTTPOnly(on bool) { c.setFlag(AttrHTTPOnly, on) }

// SameSite returns the SameSite attribute.
func (c *Cookie) SameSite() (SameSite, bool) {
	v, ok := c.Lookup(AttrSameSite)
	return SameSite(v), ok
}

// SetSameSite sets the SameSite attribute. An empty value removes it.
func (c *Cookie) SetSameSite(v SameSite) { c.setAttr(AttrSameSite, string(v)) }

// Expires returns the Expires attribute as a time. It reports absent when
// the attribute is missing or its text does not parse as an HTTP date.
func (c *Cookie) Expires() (time.Time, bool) {
	v, ok := c.Lookup(AttrExpires)
	if !ok {
		return time.Time{}, false
	}
	t, err := parseHTTPDate(v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SetExpires sets the Expires attribute, formatted as an RFC 1123 GMT date.
// The zero time removes the attribute.
func (c *Cookie) SetExpires(t time.Time) {
	if t.IsZero() {
		if i := c.findAttr(AttrExpires); i >= 0 {
			c.removeAt(i)
		}
		return
	}
	c.setValuedAttr(AttrExpires, t.UTC().Format(httpTimeFormat))
}

// Expire stamps the cookie with the earliest representable expiry
// (01 Jan 1900), the conventional way to instruct a client to drop it.
func (c *Cookie) Expire() {
	c.SetExpires(earliestExpiry)
}

func parseHTTPDate(v string) (time.Time, error) {
	var err error
	for _, layout := range expiresParseLayouts {
		var t time.Time
		if t, err = time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// setAttr routes a raw attribute value through per-attribute validation.
// Invalid values (non-numeric Max-Age, unparseable Expires) are ignored,
// mirroring the parse rules of RFC 6265 section 5.2.
func (c *Cookie) setAttr(a Attribute, value string) {
	if a.IsFlag() {
		c.setFlag(a, true)
		return
	}
	value = strings.TrimSpace(value)
	switch a {
	case AttrMaxAge:
		if value != "" {
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				return
			}
		}
	case AttrExpires:
		if value != "" {
			if _, err := parseHTTPDate(value); err != nil {
				return
			}
		}
	case AttrSameSite:
		value = normalizeSameSite(value)
	}
	c.setValuedAttr(a, value)
}

// setValuedAttr edits an attribute value in place, appends the attribute at
// the buffer end if absent, or removes it when the new value is empty.
func (c *Cookie) setValuedAttr(a Attribute, value string) {
	i := c.findAttr(a)

	if value == "" {
		if i >= 0 {
			c.removeAt(i)
		}
		return
	}

	if i >= 0 {
		e := &c.attrs[i]
		c.splice(e.val.start, e.val.end, value)
		e.val.end = e.val.start + len(value)
		e.seg.end = e.val.end
		return
	}

	start := len(c.buf)
	seg := "; " + string(a) + "=" + value
	c.splice(start, start, seg)
	valStart := start + len("; ") + len(a) + len("=")
	c.attrs = append(c.attrs, attrEntry{
		attr: a,
		seg:  span{start, start + len(seg)},
		val:  span{valStart, start + len(seg)},
	})
}

func (c *Cookie) setFlag(a Attribute, on bool) {
	i := c.findAttr(a)
	if on == (i >= 0) {
		return
	}
	if !on {
		c.removeAt(i)
		return
	}
	start := len(c.buf)
	seg := "; " + string(a)
	c.splice(start, start, seg)
	end := start + len(seg)
	c.attrs = append(c.attrs, attrEntry{
		attr: a,
		seg:  span{start, end},
		val:  span{end, end},
	})
}

func (c *Cookie) findAttr(a Attribute) int {
	for i := range c.attrs {
		if c.attrs[i].attr == a {
			return i
		}
	}
	return -1
}

// removeAt deletes the i-th attribute segment, including its leading
// separator, and drops its index entry.
func (c *Cookie) removeAt(i int) {
	e := c.attrs[i]
	c.splice(e.seg.start, e.seg.end, "")
	c.attrs = append(c.attrs[:i], c.attrs[i+1:]...)
}

func (c *Cookie) slice(s span) string { return string(c.buf[s.start:s.end]) }

// splice replaces buf[start:end] with repl and shifts every recorded span
// that begins at or after the replaced region's old end. The span covering
// the replaced region itself is the caller's to fix up.
func (c *Cookie) splice(start, end int, repl string) {
	delta := len(repl) - (end - start)
	out := make([]byte, 0, len(c.buf)+delta)
	out = append(out, c.buf[:start]...)
	out = append(out, repl...)
	out = append(out, c.buf[end:]...)
	c.buf = out
	c.shift(end, delta)
}

func (c *Cookie) shift(from, delta int) {
	if delta == 0 {
		return
	}
	adj := func(s *span) {
		if s.start >= from {
			s.start += delta
			s.end += delta
		}
	}
	adj(&c.name)
	adj(&c.value)
	for i := range c.attrs {
		adj(&c.attrs[i].seg)
		adj(&c.attrs[i].val)
	}
}
