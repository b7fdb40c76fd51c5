//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// Locale selects the language of prompts, progress messages and exported documents.
type Locale string

// Supported locales.
const (
	LocaleEnglish Locale = "en"
	LocaleSpanish Locale = "es"
)

// DefaultLocale is used when nothing else is configured.
const DefaultLocale = LocaleEnglish

// ParseLocale accepts "en", "es" and region-qualified forms such as "es-MX".
func ParseLocale(s string) (Locale, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLocale, nil
	}
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	switch Locale(s) {
	case LocaleEnglish, LocaleSpanish:
		return Locale(s), nil
	default:
		return "", fmt.Errorf("unsupported locale %q", s)
	}
}
