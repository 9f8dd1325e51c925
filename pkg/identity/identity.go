// Package identity canonicalizes national identity numbers so keys from
// heterogeneous sources compare equal. Every raw identity string must pass
// through Normalize before it is used as a join key anywhere in the system.
package identity

import "strings"

// Normalize strips every character that is not a digit or the decimal
// separator. It is idempotent and total: the empty string is a valid result
// and means "no identity" (it never matches any record).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c >= '0' && c <= '9') || c == '.' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
