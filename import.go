package rawcookie

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// ImportSource is a JSON cookie payload for Jar.Import. Exactly one field
// is expected to be set; if multiple are set, JSON wins over Base64 over
// File.
type ImportSource struct {
	JSON   []byte
	Base64 string
	File   string
}

type importPayload struct {
	Cookies []importCookie `json:"cookies"`
}

type importCookie struct {
	Name     string      `json:"name"`
	Value    string      `json:"value"`
	Domain   string      `json:"domain"`
	Path     string      `json:"path"`
	Secure   bool        `json:"secure"`
	HTTPOnly bool        `json:"httpOnly"`
	SameSite string      `json:"sameSite"`
	MaxAge   int64       `json:"maxAge"`
	Expires  interface{} `json:"expires"`
}

// Import reads a JSON cookie payload and stores each cookie in the jar.
// Both a bare array and a `{"cookies": [...]}` wrapper are accepted.
// Entries without a name are skipped with a warning instead of failing the
// whole import. Returns the number of cookies stored.
func (j *Jar) Import(ctx context.Context, src ImportSource) (int, []string, error) {
	raw, err := readImportBytes(src)
	if err != nil {
		return 0, nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, nil, errors.New("rawcookie: import payload empty")
	}

	entries, err := decodeImportEntries(raw)
	if err != nil {
		return 0, nil, err
	}

	var warnings []string
	stored := 0
	for i, e := range entries {
		if e.Name == "" {
			warnings = append(warnings, fmt.Sprintf("rawcookie: import entry %d has no name", i))
			continue
		}
		if err := j.Put(ctx, importToCookie(e)); err != nil {
			return stored, warnings, err
		}
		stored++
	}
	return stored, warnings, nil
}

func readImportBytes(src ImportSource) ([]byte, error) {
	switch {
	case len(src.JSON) > 0:
		return src.JSON, nil
	case src.Base64 != "":
		return base64.StdEncoding.DecodeString(src.Base64)
	case src.File != "":
		return os.ReadFile(src.File)
	default:
		return nil, errors.New("rawcookie: no import source provided")
	}
}

func decodeImportEntries(raw []byte) ([]importCookie, error) {
	// Support both `Cookie[]` and `{ cookies: Cookie[] }`.
	var payload importPayload
	if err := json.Unmarshal(raw, &payload); err == nil && len(payload.Cookies) > 0 {
		return payload.Cookies, nil
	}

	var arr []importCookie
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, err
	}
	return arr, nil
}

func importToCookie(e importCookie) *Cookie {
	c := New(e.Name, e.Value)
	c.SetDomain(e.Domain)
	c.SetPath(e.Path)
	if e.MaxAge > 0 {
		c.SetMaxAge(e.MaxAge)
	}
	if e.Secure {
		c.SetSecure(true)
	}
	if e.HTTPOnly {
		c.SetHTTPOnly(true)
	}
	if e.SameSite != "" {
		c.SetSameSite(SameSite(normalizeSameSite(e.SameSite)))
	}
	if t, ok := importExpires(e.Expires); ok {
		c.SetExpires(t)
	}
	return c
}

func importExpires(v interface{}) (time.Time, bool) {
	switch vv := v.(type) {
	case nil:
		return time.Time{}, false
	case float64:
		// JSON numbers come through as float64.
		sec := int64(vv)
		if sec <= 0 {
			return time.Time{}, false
		}
		return time.Unix(sec, 0).UTC(), true
	case string:
		if vv == "" {
			return time.Time{}, false
		}
		if t, err := time.Parse(time.RFC3339, vv); err == nil {
			return t.UTC(), true
		}
		if t, err := parseHTTPDate(vv); err == nil {
			return t, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
