package utilities

import "regexp"

// Submitted values are later rendered inside the admin dashboard, so
// script and iframe blocks are stripped before storage. Anything else,
// including ordinary markup, passes through untouched.
var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	iframeBlockRe = regexp.MustCompile(`(?is)<iframe\b[^>]*>.*?</iframe>`)
	scriptTagRe   = regexp.MustCompile(`(?i)</?script\b[^>]*>`)
	iframeTagRe   = regexp.MustCompile(`(?i)</?iframe\b[^>]*>`)
)

// StripUnsafeMarkup removes embedded script/iframe blocks (and any stray
// unmatched script/iframe tags) from a free-text value.
func StripUnsafeMarkup(s string) string {
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = iframeBlockRe.ReplaceAllString(s, "")
	s = scriptTagRe.ReplaceAllString(s, "")
	s = iframeTagRe.ReplaceAllString(s, "")
	return s
}
