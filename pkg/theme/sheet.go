// Package theme resolves the icon color custom properties from CSS.
//
// A Sheet is a parsed stylesheet. It knows just enough CSS to answer "which
// value does --color-icon-fill-primary have on this target": rulesets with
// simple selectors, custom property declarations, specificity and source
// order, inline declarations and var() references. At-rules are skipped.
package theme

import (
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.trai.ch/zerr"

	"github.com/hrko/streamdeck-gridicon/internal/errs"
	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
)

//go:embed default.css
var defaultCSS string

// maxVarDepth bounds var() substitution so reference cycles terminate.
const maxVarDepth = 8

type declaration struct {
	property string
	value    string
}

type rule struct {
	selectors []selector
	decls     []declaration
}

// Sheet is a parsed stylesheet. It is immutable once parsed.
type Sheet struct {
	rules []rule
}

// Default returns the stylesheet compiled into the binary.
func Default() *Sheet {
	s, err := Parse(defaultCSS)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultCSS returns the source of the built-in stylesheet.
func DefaultCSS() string {
	return defaultCSS
}

// Load reads and parses the stylesheet at path.
func Load(path string) (*Sheet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, errs.ErrThemeRead.Error()), "path", path)
	}
	s, err := Parse(string(b))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return s, nil
}

// Parse parses a stylesheet.
func Parse(src string) (*Sheet, error) {
	p := css.NewParser(parse.NewInputString(src), false)
	s := &Sheet{}

	var (
		pending  []selector
		current  *rule
		atDepth  int
		selector strings.Builder
	)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				return nil, zerr.Wrap(err, errs.ErrThemeParse.Error())
			}
			return s, nil
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			if atDepth > 0 {
				atDepth--
			}
		case css.QualifiedRuleGrammar, css.BeginRulesetGrammar:
			selector.Reset()
			for _, v := range p.Values() {
				selector.Write(v.Data)
			}
			if sel, ok := parseSelector(selector.String()); ok {
				pending = append(pending, sel)
			}
			if gt == css.BeginRulesetGrammar {
				current = &rule{selectors: pending}
				pending = nil
			}
		case css.EndRulesetGrammar:
			if current != nil && atDepth == 0 && len(current.selectors) > 0 && len(current.decls) > 0 {
				s.rules = append(s.rules, *current)
			}
			current = nil
		case css.CustomPropertyGrammar, css.DeclarationGrammar:
			if current == nil {
				continue
			}
			current.decls = append(current.decls, declaration{
				property: string(data),
				value:    valueString(p.Values()),
			})
		}
	}
}

// parseInline parses the declarations of a style attribute.
func parseInline(style string) []declaration {
	if strings.TrimSpace(style) == "" {
		return nil
	}
	p := css.NewParser(parse.NewInputString(style), true)
	var decls []declaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return decls
		case css.CustomPropertyGrammar, css.DeclarationGrammar:
			decls = append(decls, declaration{property: string(data), value: valueString(p.Values())})
		}
	}
}

func valueString(values []css.Token) string {
	var b strings.Builder
	for _, v := range values {
		b.Write(v.Data)
	}
	v := strings.TrimSpace(b.String())
	v = strings.TrimSpace(strings.TrimSuffix(v, "!important"))
	return v
}

// Properties returns the cascaded value of every custom property that
// applies to target, with var() references resolved. A nil target only
// matches the :root rules.
func (s *Sheet) Properties(target *Target) map[string]string {
	if target == nil {
		target = &Target{}
	}
	type winner struct {
		value       string
		specificity int
	}
	won := make(map[string]winner)
	for _, r := range s.rules {
		weight, ok := r.match(target)
		if !ok {
			continue
		}
		for _, d := range r.decls {
			if !strings.HasPrefix(d.property, "--") {
				continue
			}
			// later rules win on equal specificity
			if w, seen := won[d.property]; seen && w.specificity > weight {
				continue
			}
			won[d.property] = winner{value: d.value, specificity: weight}
		}
	}

	props := make(map[string]string, len(won))
	for k, w := range won {
		props[k] = w.value
	}
	for _, d := range parseInline(target.Style) {
		if strings.HasPrefix(d.property, "--") {
			props[d.property] = d.value
		}
	}

	resolved := make(map[string]string, len(props))
	for k, v := range props {
		resolved[k] = resolveVars(v, props, 0)
	}
	return resolved
}

// Property returns the resolved value of one custom property on target, or
// "" when it is not set.
func (s *Sheet) Property(target *Target, name string) string {
	return s.Properties(target)[name]
}

// ColorSet resolves the six icon colors for target. Properties the sheet
// does not set resolve to the empty string.
func (s *Sheet) ColorSet(target *Target) graphics.ColorSet {
	props := s.Properties(target)
	var cs graphics.ColorSet
	for _, t := range graphics.Tokens() {
		cs.Set(t, props[t.CustomProperty()])
	}
	return cs
}

func (r rule) match(t *Target) (int, bool) {
	best, ok := -1, false
	for _, sel := range r.selectors {
		if sel.matches(t) && sel.specificity > best {
			best, ok = sel.specificity, true
		}
	}
	return best, ok
}

// resolveVars substitutes var(--name) and var(--name, fallback) references.
func resolveVars(value string, props map[string]string, depth int) string {
	if depth >= maxVarDepth {
		return ""
	}
	for {
		start := strings.Index(value, "var(")
		if start < 0 {
			return value
		}
		end := matchingParen(value, start+len("var("))
		if end < 0 {
			return value
		}
		inner := value[start+len("var(") : end]
		name, fallback, _ := strings.Cut(inner, ",")
		name = strings.TrimSpace(name)
		fallback = strings.TrimSpace(fallback)

		replacement, ok := props[name]
		if ok {
			replacement = resolveVars(replacement, props, depth+1)
		}
		if !ok || replacement == "" {
			replacement = resolveVars(fallback, props, depth+1)
		}
		value = value[:start] + replacement + value[end+1:]
	}
}

func matchingParen(s string, from int) int {
	depth := 1
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
