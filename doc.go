// Package rawcookie models an RFC 6265 Set-Cookie value as a single
// serialized buffer. A Cookie owns one string of the form
// "name=value; Attr=Val; Attr" plus a span index into it; accessors are
// plain slices of the buffer and mutators splice it in place, so the
// serialized form is always current and String is a free read.
//
// Unrecognized attribute names are ignored on set and dropped on parse,
// per RFC 6265 section 5.2 step 6. The package also ships a SQLite-backed
// Jar for persisting cookies, INI attribute presets, and a Sealer for
// encrypting cookie values.
package rawcookie
