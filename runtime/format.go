package runtime

import (
	"regexp"
	"strings"
)

var (
	hyphenStartOrEndRe = regexp.MustCompile(`(^|[^ ])-([^ ]|$)`)
	hyphenMiddleRe     = regexp.MustCompile(`([^ ])-([^ ])`)
)

// FormatKey normalizes a value key to the flat underscore convention:
// dots and embedded hyphens become underscores.
func FormatKey(key string) string {
	key = strings.ReplaceAll(key, ".", "_")
	key = hyphenStartOrEndRe.ReplaceAllString(key, "${1}_${2}")
	key = hyphenMiddleRe.ReplaceAllString(key, "${1}_${2}")
	return key
}
