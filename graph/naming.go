package graph

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// accessorStyle is the getter shape of an accessor name.
type accessorStyle int

const (
	styleNone accessorStyle = iota
	styleValue
	styleBoolean
)

var prefixes = []struct {
	prefix string
	style  accessorStyle
}{
	{"Get", styleValue},
	{"get", styleValue},
	{"Is", styleBoolean},
	{"is", styleBoolean},
	{"Has", styleBoolean},
	{"has", styleBoolean},
}

var lower = cases.Lower(language.Und)

// relationName derives the canonical relation name of an accessor:
// the getter prefix is stripped and the first word lower-cased.
//
//	GetX         → x
//	GetFirstName → firstName
//	GetURL       → url
//	GetHTTPPort  → httpPort
//	IsClosed     → closed
func relationName(accessor string) (string, accessorStyle) {
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(accessor, p.prefix)
		if !ok || rest == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(rest)
		if !unicode.IsUpper(r) {
			continue
		}
		return lowerFirstWord(rest), p.style
	}
	return "", styleNone
}

// lowerFirstWord lower-cases the leading upper-case run of s. When the run
// is followed by lower-case letters, its last letter starts the next word.
func lowerFirstWord(s string) string {
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}
	return lower.String(string(runes[:n])) + string(runes[n:])
}
