// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy allows the basic formatting users may paste into announcement
// bodies, journal captions, and chat text while stripping scripts and
// event handlers.
var policy = bluemonday.UGCPolicy()

// Sanitize returns s with unsafe HTML removed.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// Strict strips all HTML, leaving plain text. Used for fields that are
// rendered into push notification payloads.
var strict = bluemonday.StrictPolicy()

// PlainText returns s with every tag removed.
func PlainText(s string) string {
	return strict.Sanitize(s)
}
