package gen

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var acronyms = map[string]bool{
	"api": true, "ascii": true, "cpu": true, "css": true, "dns": true,
	"html": true, "http": true, "https": true, "id": true, "ip": true,
	"json": true, "sql": true, "tcp": true, "tls": true, "udp": true,
	"ui": true, "uri": true, "url": true, "uuid": true, "xml": true,
}

// words splits a camel-case or snake-case identifier into words.
func words(s string) []string {
	var (
		out  []string
		cur  []rune
		prev rune
	)
	runes := []rune(s)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = nil
		}
	}
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			// A new word starts at an upper-case letter that follows a
			// lower-case letter or digit, or that ends an acronym run.
			next := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && next) {
				flush()
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return out
}

// Pascal returns the exported form of an identifier.
//
//	firstName → FirstName
//	url       → URL
//	userID    → UserID
func Pascal(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		lw := strings.ToLower(w)
		if acronyms[lw] {
			b.WriteString(strings.ToUpper(w))
			continue
		}
		rs := []rune(w)
		b.WriteRune(unicode.ToUpper(rs[0]))
		b.WriteString(string(rs[1:]))
	}
	return b.String()
}

// Camel returns the unexported form of an identifier.
//
//	FirstName → firstName
//	URLPath   → urlPath
func Camel(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(ws[0]))
	for _, w := range ws[1:] {
		b.WriteString(Pascal(w))
	}
	return b.String()
}

// Snake returns the snake-case form of an identifier.
//
//	PolygonView → polygon_view
//	URLPath     → url_path
func Snake(s string) string {
	ws := words(s)
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}
	return strings.Join(ws, "_")
}

// Singular returns the singular form of a relation name.
func Singular(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return s
	}
	last := ws[len(ws)-1]
	prefix := strings.TrimSuffix(s, last)
	return prefix + inflect.Singularize(last)
}

// Plural returns the plural form of a relation name.
func Plural(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return s
	}
	last := ws[len(ws)-1]
	prefix := strings.TrimSuffix(s, last)
	return prefix + inflect.Pluralize(last)
}

// Receiver returns the receiver name for methods of the named type: its
// first letter, lower-cased. "v" is reserved for parameters.
func Receiver(name string) string {
	ws := words(name)
	if len(ws) == 0 {
		return "x"
	}
	r := strings.ToLower(ws[0][:1])
	if r == "v" {
		return strings.ToLower(ws[0][:min(2, len(ws[0]))])
	}
	return r
}

// reserved holds the local names used by generated bodies.
var reserved = map[string]bool{
	"v": true, "items": true, "item": true, "value": true, "sub": true,
	"in": true, "out": true, "facet": true,
}

// Ident returns name as a local identifier that does not collide with a
// keyword, the receiver or the local names of generated bodies.
func Ident(name, receiver string) string {
	if token.IsKeyword(name) || name == receiver || reserved[name] {
		return name + "_"
	}
	return name
}
