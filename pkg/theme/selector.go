package theme

import "strings"

// compound is one space separated part of a selector, e.g. ".dark.panel".
type compound struct {
	any     bool // *, :root, html, body, :host
	id      string
	classes []string
}

// selector is a descendant chain of compounds. Combinators are treated as
// plain descendant combinators and every compound is matched against the
// whole target, since Target flattens the ancestor chain.
type selector struct {
	compounds   []compound
	specificity int
}

func parseSelector(s string) (selector, bool) {
	s = strings.NewReplacer(">", " ", "+", " ", "~", " ").Replace(s)
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return selector{}, false
	}
	var sel selector
	for _, f := range fields {
		c, weight, ok := parseCompound(f)
		if !ok {
			return selector{}, false
		}
		sel.compounds = append(sel.compounds, c)
		sel.specificity += weight
	}
	return sel, true
}

func parseCompound(s string) (compound, int, bool) {
	var (
		c      compound
		weight int
	)
	switch s {
	case "*":
		return compound{any: true}, 0, true
	case ":root", ":host":
		return compound{any: true}, 10, true
	case "html", "body":
		return compound{any: true}, 1, true
	}
	for len(s) > 0 {
		switch s[0] {
		case '.':
			name, rest := splitSimple(s[1:])
			if name == "" {
				return compound{}, 0, false
			}
			c.classes = append(c.classes, name)
			weight += 10
			s = rest
		case '#':
			name, rest := splitSimple(s[1:])
			if name == "" || c.id != "" {
				return compound{}, 0, false
			}
			c.id = name
			weight += 100
			s = rest
		default:
			// type, attribute and pseudo selectors are not supported
			return compound{}, 0, false
		}
	}
	return c, weight, true
}

func splitSimple(s string) (string, string) {
	i := strings.IndexAny(s, ".#[:")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

func (sel selector) matches(t *Target) bool {
	for _, c := range sel.compounds {
		if c.any {
			continue
		}
		if c.id != "" && c.id != t.ID {
			return false
		}
		for _, class := range c.classes {
			if !t.hasClass(class) {
				return false
			}
		}
	}
	return true
}
