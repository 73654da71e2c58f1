package utils

import (
	"strings"
	"unicode"
)

// NewNullString is a helper for string pointers, returning nil if the trimmed string is empty.
func NewNullString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or fallback when p is nil.
func Deref(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

// AlnumPrefix upper-cases s, drops everything that is not A-Z or 0-9 and keeps at most n runes.
func AlnumPrefix(s string, n int) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if b.Len() >= n {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
