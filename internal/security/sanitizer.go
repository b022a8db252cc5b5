package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeDisplay strips HTML and control bytes from user-controlled display
// fields (names, headlines) before they leave the API. The consuming page
// layer renders these verbatim.
func SanitizeDisplay(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return htmlPolicy.Sanitize(input)
}
