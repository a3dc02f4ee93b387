// Package proptest provides utilities for writing property-based tests for
// prompt generation.
package proptest

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/antithesishq/antithesis-sdk-go/assert"
	"github.com/antithesishq/promptgen/internal/diceware"
	"github.com/antithesishq/promptgen/internal/generate"
	"github.com/antithesishq/promptgen/internal/normalize"
	"github.com/antithesishq/promptgen/internal/placeholder"
	"github.com/antithesishq/promptgen/internal/wordlist"
)

// Error is returned from the Check functions when a workload violates a
// property.
type Error struct {
	Seed     uint64
	Property string
	Detail   string
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("seed %d: %s: %s", e.Seed, e.Property, e.Detail)
}

// A Workload is one randomized generation run. Running the same Workload
// twice produces the same prompts.
type Workload struct {
	Seed     uint64              `yaml:"seed"`
	Lists    map[string][]string `yaml:"lists"`
	Template string              `yaml:"template"`
	Count    int                 `yaml:"count"`
	Exhaust  bool                `yaml:"exhaust_list"`
}

// GenWorkload generates a workload.
func GenWorkload(r *rand.Rand) Workload {
	lists := diceware.GenLists(r)
	return Workload{
		Seed:     r.Uint64(),
		Lists:    lists,
		Template: diceware.GenTemplate(r, len(lists)),
		Count:    r.IntN(32) + 1, // 1-32 prompts
		Exhaust:  r.IntN(2) == 0,
	}
}

// RunWorkload generates the workload's prompts.
func RunWorkload(ctx context.Context, logger *slog.Logger, w Workload) (*generate.Result, error) {
	store := wordlist.NewSeeded(w.Seed)
	store.AddLists(w.Lists)
	gen := generate.New(logger, store, w.Template, placeholder.DefaultDelimiter)
	return gen.Generate(ctx, w.Count, w.Exhaust)
}

// CheckWorkload verifies a workload's result:
//   - every round ran, and duplicates only ever shrink the output,
//   - every prompt is keyed by its own fingerprint and is already normalized,
//   - expansion resolved every placeholder,
//   - every word came from the corpus.
func CheckWorkload(w Workload, res *generate.Result) error {
	fail := func(property, format string, args ...any) error {
		err := &Error{Seed: w.Seed, Property: property, Detail: fmt.Sprintf(format, args...)}
		assert.Unreachable("Generated prompts violate a property", map[string]any{
			"property": property,
			"seed":     w.Seed,
			"template": w.Template,
			"detail":   err.Detail,
		})
		return err
	}

	if res.Rounds != w.Count {
		return fail("rounds", "ran %d of %d rounds", res.Rounds, w.Count)
	}
	if res.Distinct() < 1 || res.Distinct() > w.Count {
		return fail("distinct", "%d distinct prompts from %d rounds", res.Distinct(), w.Count)
	}
	for fp, text := range res.Prompts {
		if again := normalize.Normalize(text); again.Fingerprint != fp || again.Text != text {
			return fail("idempotent", "%q (%s) normalizes to %q (%s)", text, fp, again.Text, again.Fingerprint)
		}
		if strings.ContainsAny(text, "{}") {
			return fail("expanded", "unresolved placeholder in %q", text)
		}
		for _, fragment := range strings.Split(text, normalize.Separator) {
			for _, word := range strings.Fields(fragment) {
				if !diceware.IsWord(word) {
					return fail("origin", "word %q in %q isn't from any list", word, text)
				}
			}
		}
	}
	return nil
}

// CheckDraws drains a random list several times and verifies that each
// cycle returns exactly the original items before the list refills.
func CheckDraws(r *rand.Rand) error {
	seed := r.Uint64()
	items := diceware.GenList(r)
	want := slices.Clone(items)
	slices.Sort(want)

	store := wordlist.NewSeeded(seed)
	store.AddList("items", items)
	for cycle := range r.IntN(4) + 1 {
		drawn := make([]string, 0, len(items))
		for range items {
			item, err := store.DrawOne("items")
			if err != nil {
				return err
			}
			drawn = append(drawn, item)
		}
		slices.Sort(drawn)
		ok := slices.Equal(drawn, want)
		assert.Always(ok, "Each draw cycle returns every item exactly once", map[string]any{
			"seed":  seed,
			"cycle": cycle,
		})
		if !ok {
			return &Error{Seed: seed, Property: "draws", Detail: fmt.Sprintf("cycle %d drew %v, want %v", cycle, drawn, want)}
		}
	}
	return nil
}
