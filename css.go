package mdsanitizer

import (
	"strings"

	"github.com/gorilla/css/scanner"
)

// declaration is one "property: value" pair of a style attribute.
type declaration struct {
	text   string // trimmed source text, comments removed
	unsafe bool   // value loads a resource or runs an expression
}

func (d declaration) property() string {
	prop, _, _ := strings.Cut(d.text, ":")
	return strings.TrimSpace(prop)
}

func (d declaration) valid() bool {
	prop, val, ok := strings.Cut(d.text, ":")
	return ok && strings.TrimSpace(prop) != "" && strings.TrimSpace(val) != ""
}

// declarations splits a style attribute into declarations. Semicolons
// inside strings and parentheses do not split. A tokenizer error ends
// the input; the declaration it occurs in is marked unsafe, as is a
// declaration whose parentheses are still open when it ends.
func declarations(style string) []declaration {
	var (
		out   []declaration
		cur   strings.Builder
		depth int
		bad   bool
	)
	flush := func() {
		text := strings.TrimSpace(cur.String())
		if depth != 0 {
			bad = true
		}
		if lower := strings.ToLower(text); strings.ContainsRune(lower, '\\') ||
			strings.Contains(lower, "expression") || strings.Contains(lower, "url(") {
			bad = true
		}
		if text != "" {
			out = append(out, declaration{text: text, unsafe: bad})
		}
		cur.Reset()
		depth, bad = 0, false
	}

	s := scanner.New(style)
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			flush()
			return out
		case scanner.TokenError:
			bad = true
			cur.WriteString(tok.Value)
			flush()
			return out
		case scanner.TokenComment:
			continue
		case scanner.TokenURI, scanner.TokenAtKeyword, scanner.TokenCDO, scanner.TokenCDC:
			bad = true
		case scanner.TokenFunction:
			depth++
			switch name := strings.ToLower(strings.TrimSuffix(tok.Value, "(")); {
			case name == "url", strings.Contains(name, "expression"), strings.ContainsRune(name, '\\'):
				bad = true
			}
		case scanner.TokenChar:
			switch tok.Value {
			case "(":
				depth++
			case ")":
				if depth > 0 {
					depth--
				}
			case ";":
				if depth == 0 {
					flush()
					continue
				}
			}
		}
		cur.WriteString(tok.Value)
	}
}

// filterStyle rebuilds a style attribute from the declarations whose
// property the rule allows. It returns the number of declarations
// dropped; an empty result means the attribute should go.
func (r *RuleSet) filterStyle(style string) (string, int) {
	var (
		out     strings.Builder
		dropped int
	)
	for _, d := range declarations(style) {
		if d.unsafe || !d.valid() || !r.AllowsCSSProperty(d.property()) {
			dropped++
			continue
		}
		out.WriteString(d.text)
		out.WriteByte(';')
	}
	return out.String(), dropped
}
