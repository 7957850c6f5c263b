// Package slug derives URL-safe identifiers from free-form titles.
package slug

import "strings"

// Make lowercases the title, collapses every run of characters outside
// [a-z0-9] into a single hyphen and trims hyphens from both ends.
// It is pure and idempotent: Make(Make(s)) == Make(s).
func Make(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(title))
	pendingHyphen := false
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
