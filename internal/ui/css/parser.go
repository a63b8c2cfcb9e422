// Package css parses the small stylesheet dialect the editor panels are styled with:
// ".class" and "#id" selectors with "key: value;" declarations. No combinators, no @rules.
package css

import (
	"strings"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string
	Props    map[string]string
}

// Stylesheet is a list of rules. Later rules override earlier ones.
type Stylesheet struct {
	Rules []Rule
}

// Parse reads content into a stylesheet. Blocks with unsupported selectors are skipped;
// an unterminated block ends parsing.
func Parse(content string) *Stylesheet {
	sheet := &Stylesheet{}
	rest := stripComments(content)
	for {
		rule, next, ok := nextRule(rest)
		if !ok {
			break
		}
		if rule.Selector != "" {
			sheet.Rules = append(sheet.Rules, rule)
		}
		rest = next
	}
	return sheet
}

func stripComments(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "/*")
		if start == -1 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])
		end := strings.Index(s[start+2:], "*/")
		if end == -1 {
			return b.String()
		}
		s = s[start+2+end+2:]
	}
}

// nextRule finds the next "selector { ... }" block. A block whose selector is not a class
// or id comes back with an empty Selector so the caller can skip it.
func nextRule(s string) (Rule, string, bool) {
	open := strings.Index(s, "{")
	if open == -1 {
		return Rule{}, "", false
	}
	end := matchingBrace(s, open)
	if end == -1 {
		return Rule{}, "", false
	}
	rest := s[end+1:]
	selector := strings.TrimSpace(s[:open])
	if len(selector) < 2 || (selector[0] != '.' && selector[0] != '#') {
		return Rule{}, rest, true
	}
	return Rule{Selector: selector, Props: declarations(s[open+1 : end])}, rest, true
}

func matchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func declarations(body string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(body, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k != "" {
			props[k] = strings.TrimSpace(v)
		}
	}
	return props
}

// Match merges the properties of every rule selecting class or id, in sheet order.
func (s *Stylesheet) Match(class, id string) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	for _, r := range s.Rules {
		name := r.Selector[1:]
		if (r.Selector[0] == '.' && name == class && class != "") || (r.Selector[0] == '#' && name == id && id != "") {
			for k, v := range r.Props {
				merged[k] = v
			}
		}
	}
	return merged
}
