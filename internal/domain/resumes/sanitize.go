package resumes

import (
	"regexp"
	"strings"
)

// markup matches the markdown characters the model is forbidden to emit
// but occasionally does anyway.
var markup = regexp.MustCompile("[#*`]")

// Sanitize strips residual markdown markers from a model reply: every
// '#', '*' and backtick is removed, every "- " bullet is rewritten as
// "• ", and the whitespace stripped heading markers leave behind is
// trimmed from the ends. The transform is deterministic and idempotent;
// no step can reintroduce a match for another.
func Sanitize(s string) string {
	s = markup.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "- ", "• ")
	return strings.TrimSpace(s)
}
