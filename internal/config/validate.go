package config

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"

	"cocomig/internal/diag"
)

// Validate checks marker names and glob patterns.
func (c *Config) Validate() error {
	markers := []struct{ key, val string }{
		{"markers.module", c.Markers.Module},
		{"markers.coroutine", c.Markers.Coroutine},
		{"markers.fork", c.Markers.Fork},
		{"markers.start_soon", c.Markers.StartSoon},
		{"markers.return_value", c.Markers.ReturnValue},
	}
	for _, m := range markers {
		if !isIdentifier(m.val) {
			return c.fail(diag.CfgBadMarker, fmt.Sprintf("%s: %q is not a Python identifier", m.key, m.val))
		}
	}
	for _, pat := range c.Files.Exclude {
		if !doublestar.ValidatePattern(pat) {
			return c.fail(diag.CfgBadGlob, fmt.Sprintf("files.exclude: invalid pattern %q", pat))
		}
	}
	for _, ext := range c.Files.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return c.fail(diag.CfgInvalid, fmt.Sprintf("files.extensions: %q must start with a dot", ext))
		}
	}
	if strings.ContainsAny(c.Files.Suffix, `/\`) || !strings.HasPrefix(c.Files.Suffix, ".") {
		return c.fail(diag.CfgInvalid, fmt.Sprintf("files.suffix: %q must be a file suffix starting with a dot", c.Files.Suffix))
	}
	return nil
}

func (c *Config) fail(code diag.Code, msg string) error {
	return &Error{Path: c.Path, Code: code, Msg: msg}
}

// isIdentifier approximates Python's identifier rule (XID_Start XID_Continue*).
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r)):
		default:
			return false
		}
	}
	return true
}
