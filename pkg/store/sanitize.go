package store

import "strings"

// escaper covers the five characters with HTML meaning. Ampersand first
// so earlier replacements are not re-escaped.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Sanitize trims surrounding whitespace and HTML-escapes user-supplied
// text. It must never be applied to trusted bot markup.
func Sanitize(text string) string {
	return escaper.Replace(strings.TrimSpace(text))
}
