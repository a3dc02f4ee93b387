// Package placeholder parses {identifier} tokens in templates and draws a
// value for each one from a word list store.
package placeholder

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/antithesishq/promptgen/internal/wordlist"
)

// DefaultDelimiter separates an alias base from its suffix, as in
// "{artist 1}".
const DefaultDelimiter = " "

// Pattern matches a placeholder; the first submatch is the identifier.
var Pattern = regexp.MustCompile(`\{([a-z0-9+\-_ ]+)\}`)

// ErrUndefinedIdentifier matches any *UndefinedIdentifierError.
var ErrUndefinedIdentifier = errors.New("undefined identifier")

// UndefinedIdentifierError reports a derived identifier whose base list
// isn't registered.
type UndefinedIdentifierError struct {
	Identifier string
	Base       string
}

// Error implements error.
func (e *UndefinedIdentifierError) Error() string {
	return fmt.Sprintf("identifier %q: base list %q is not defined", e.Identifier, e.Base)
}

// Is makes UndefinedIdentifierError match ErrUndefinedIdentifier.
func (e *UndefinedIdentifierError) Is(target error) bool {
	return target == ErrUndefinedIdentifier
}

// Identifiers returns the identifiers of every placeholder in template, in
// order and including repeats.
func Identifiers(template string) []string {
	matches := Pattern.FindAllStringSubmatch(template, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}

// Resolver draws values for placeholders, registering derived lists in the
// store as it encounters them.
type Resolver struct {
	store     *wordlist.Store
	delimiter string
}

// New constructs a Resolver. An empty delimiter disables alias syntax.
func New(store *wordlist.Store, delimiter string) *Resolver {
	return &Resolver{store: store, delimiter: delimiter}
}

// Resolve maps each identifier in template to a freshly drawn item. When an
// identifier repeats, the last draw wins.
func (r *Resolver) Resolve(template string) (map[string]string, error) {
	ids := Identifiers(template)
	values := make(map[string]string, len(ids))
	for _, id := range ids {
		if err := r.prepare(id); err != nil {
			return nil, err
		}
		item, err := r.store.DrawOne(id)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", id, err)
		}
		values[id] = item
	}
	return values, nil
}

// prepare makes sure id names a list with material to draw from.
func (r *Resolver) prepare(id string) error {
	if r.store.Has(id) {
		return r.store.Refill(id)
	}
	if r.delimiter != "" && strings.Contains(id, r.delimiter) {
		base, _, _ := strings.Cut(id, r.delimiter)
		items, err := r.restore(id, base)
		if err != nil {
			return err
		}
		r.store.AddList(id, items)
		return nil
	}
	if left, right, ok := strings.Cut(id, "+"); ok {
		a, err := r.restore(id, left)
		if err != nil {
			return err
		}
		b, err := r.restore(id, right)
		if err != nil {
			return err
		}
		r.store.AddList(id, slices.Concat(a, b))
		return nil
	}
	// Concrete names fall through to the store, which reports them as
	// unknown lists.
	return nil
}

func (r *Resolver) restore(id, base string) ([]string, error) {
	items, err := r.store.Restore(base)
	if errors.Is(err, wordlist.ErrUnknownList) {
		return nil, &UndefinedIdentifierError{Identifier: id, Base: base}
	}
	return items, err
}
