// Package labels derives filesystem-safe, human-readable labels for job records.
package labels

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxLength is the maximum number of characters in a sanitized label.
const MaxLength = 60

var (
	pathSpecialRE = regexp.MustCompile(`[/\\:?*"<>|]`)
	whitespaceRE  = regexp.MustCompile(`[\s\v\x{85}\p{Z}]+`)
	dashRunRE     = regexp.MustCompile(`[-–—]+`)
	separatorRE   = regexp.MustCompile(`[\s\v\x{85}\p{Z}]*[-|•:@][\s\v\x{85}\p{Z}]*`)
	plainDashRE   = regexp.MustCompile(`-{2,}`)
)

// Sanitize turns arbitrary text into a label that is safe to use as a path
// component. It returns fallback unchanged when nothing usable remains.
//
// Sanitize is idempotent: Sanitize(Sanitize(s, fb), fb) == Sanitize(s, fb).
func Sanitize(raw, fallback string) string {
	s := strings.TrimFunc(raw, unicode.IsSpace)
	s = pathSpecialRE.ReplaceAllString(s, "_")
	s = whitespaceRE.ReplaceAllString(s, " ")
	s = dashRunRE.ReplaceAllString(s, "-")
	s = separatorRE.ReplaceAllString(s, "-")
	// "a - - b" leaves adjacent dashes after the separator pass
	s = plainDashRE.ReplaceAllString(s, "-")
	s = truncateRunes(s, MaxLength)
	s = strings.Trim(s, ". ")

	if s == "" {
		return fallback
	}
	return s
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
