package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize strips dangerous HTML from user supplied text. Markdown passes
// through untouched; inline HTML fragments inside it are cleaned, since the
// front-end renders post content and comments as rich text.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
