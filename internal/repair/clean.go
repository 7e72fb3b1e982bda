package repair

import (
	"regexp"
	"strings"
)

var (
	fenceLineRe   = regexp.MustCompile("(?m)^[ \t]*```[a-zA-Z0-9_+-]*[ \t]*$\n?")
	inlineFenceRe = regexp.MustCompile("```")
	headingRe     = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]+`)
	bulletRe      = regexp.MustCompile(`(?m)^([ \t]*)[*•+][ \t]+`)
	boldStarRe    = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	boldUnderRe   = regexp.MustCompile(`__([^_\n]+)__`)
	italStarRe    = regexp.MustCompile(`\*([^*\n]+)\*`)
	italUnderRe   = regexp.MustCompile(`\b_([^_\n]+)_\b`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
)

// CleanResponse strips Markdown artifacts for display. Bullets are normalized
// before emphasis so a leading "* " is not read as an italic marker.
func CleanResponse(text string) string {
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = fenceLineRe.ReplaceAllString(s, "")
	s = inlineFenceRe.ReplaceAllString(s, "")
	s = headingRe.ReplaceAllString(s, "")
	s = bulletRe.ReplaceAllString(s, "${1}- ")
	s = boldStarRe.ReplaceAllString(s, "$1")
	s = boldUnderRe.ReplaceAllString(s, "$1")
	s = italStarRe.ReplaceAllString(s, "$1")
	s = italUnderRe.ReplaceAllString(s, "$1")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
