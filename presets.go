package rawcookie

import (
	"github.com/go-ini/ini"
)

// Preset is a named bundle of cookie attributes, typically loaded from an
// INI file with one section per preset:
//
//	[session]
//	Path = /
//	Secure = true
//	HttpOnly = true
//	SameSite = Lax
//	MaxAge = 86400
type Preset struct {
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool
	SameSite SameSite
	MaxAge   int64
}

// LoadPresets reads attribute presets from the INI file at path. Recognized
// keys are Domain, Path, Secure, HttpOnly, SameSite and MaxAge; anything
// else in a section is ignored.
func LoadPresets(path string) (map[string]Preset, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]Preset)
	for _, name := range cfg.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		sec := cfg.Section(name)
		out[name] = Preset{
			Domain:   sec.Key("Domain").String(),
			Path:     sec.Key("Path").String(),
			Secure:   sec.Key("Secure").MustBool(false),
			HTTPOnly: sec.Key("HttpOnly").MustBool(false),
			SameSite: SameSite(normalizeSameSite(sec.Key("SameSite").String())),
			MaxAge:   sec.Key("MaxAge").MustInt64(0),
		}
	}
	return out, nil
}

// Apply stamps the preset's attributes onto c. Zero-valued preset fields
// leave the corresponding cookie attribute untouched.
func (p Preset) Apply(c *Cookie) {
	if p.Domain != "" {
		c.SetDomain(p.Domain)
	}
	if p.Path != "" {
		c.SetPath(p.Path)
	}
	if p.MaxAge > 0 {
		c.SetMaxAge(p.MaxAge)
	}
	if p.Secure {
		c.SetSecure(true)
	}
	if p.HTTPOnly {
		c.SetHTTPOnly(true)
	}
	if p.SameSite != "" {
		c.SetSameSite(p.SameSite)
	}
}
