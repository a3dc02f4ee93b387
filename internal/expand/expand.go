// Package expand renders templates repeatedly until no placeholders remain.
package expand

import (
	"regexp"

	"github.com/antithesishq/promptgen/internal/placeholder"
)

// MaxIterations bounds the number of render passes, so self-referential
// lists terminate.
const MaxIterations = 10

// unresolved matches anything that still looks like a placeholder.
var unresolved = regexp.MustCompile(`\{.*?\}`)

// Expander renders templates with values drawn by a placeholder.Resolver.
type Expander struct {
	resolver *placeholder.Resolver
}

// New constructs an Expander.
func New(resolver *placeholder.Resolver) *Expander {
	return &Expander{resolver: resolver}
}

// Expand substitutes placeholders until none are left or MaxIterations
// passes have run, and reports the number of passes. Hitting the limit isn't
// an error: leftover placeholders stay in the output verbatim.
func (e *Expander) Expand(template string) (string, int, error) {
	passes := 0
	for passes < MaxIterations && unresolved.MatchString(template) {
		values, err := e.resolver.Resolve(template)
		if err != nil {
			return "", passes, err
		}
		passes++
		if len(values) == 0 {
			// Only braces outside the identifier grammar are left.
			break
		}
		template = Substitute(template, values)
	}
	return template, passes, nil
}

// Substitute replaces every placeholder whose identifier has a value.
func Substitute(template string, values map[string]string) string {
	return placeholder.Pattern.ReplaceAllStringFunc(template, func(token string) string {
		if v, ok := values[token[1:len(token)-1]]; ok {
			return v
		}
		return token
	})
}
