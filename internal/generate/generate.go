// Package generate produces batches of deduplicated prompts from a template
// and a word list store.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/antithesishq/promptgen/internal/expand"
	"github.com/antithesishq/promptgen/internal/normalize"
	"github.com/antithesishq/promptgen/internal/placeholder"
	"github.com/antithesishq/promptgen/internal/wordlist"
)

// State is the lifecycle stage of a Generator.
type State int

const (
	Idle State = iota
	Running
	Done
)

// String implements Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result holds the prompts from one Generate call, keyed by fingerprint.
type Result struct {
	Prompts map[string]string
	// Last is the text of the final round, even if it collided with an
	// earlier prompt.
	Last string
	// Rounds is the number of rounds run; Distinct may be smaller.
	Rounds int
}

// Distinct returns the number of prompts with distinct fingerprints.
func (r *Result) Distinct() int {
	return len(r.Prompts)
}

// Sorted returns the prompt texts in lexicographic order.
func (r *Result) Sorted() []string {
	texts := make([]string, 0, len(r.Prompts))
	for _, text := range r.Prompts {
		texts = append(texts, text)
	}
	slices.Sort(texts)
	return texts
}

// Generator renders one template against a store. It owns the store while
// generating; callers shouldn't draw from it concurrently.
type Generator struct {
	logger   *slog.Logger
	store    *wordlist.Store
	expander *expand.Expander
	template string
	state    State
}

// New constructs a Generator for template. The delimiter marks alias
// placeholders such as "{artist 1}".
func New(logger *slog.Logger, store *wordlist.Store, template, delimiter string) *Generator {
	return &Generator{
		logger:   logger,
		store:    store,
		expander: expand.New(placeholder.New(store, delimiter)),
		template: template,
	}
}

// State reports where the Generator is in its lifecycle.
func (g *Generator) State() State {
	return g.state
}

// Prompt renders and normalizes a single prompt.
func (g *Generator) Prompt() (normalize.Prompt, error) {
	text, passes, err := g.expander.Expand(g.template)
	if err != nil {
		return normalize.Prompt{}, err
	}
	if passes == expand.MaxIterations && placeholder.Pattern.MatchString(text) {
		g.logger.Debug("expansion limit reached", "passes", passes, "text", text)
	}
	return normalize.Normalize(text), nil
}

// Generate runs count rounds. Every run starts from the store's restore
// snapshots. With exhaust set, lists drain across rounds and each refills
// only once empty; otherwise every round starts with full lists.
//
// Prompts that share a fingerprint overwrite each other, so the result may
// hold fewer than count prompts.
func (g *Generator) Generate(ctx context.Context, count int, exhaust bool) (*Result, error) {
	g.state = Running
	defer func() { g.state = Done }()

	g.store.Reset()
	res := &Result{Prompts: make(map[string]string, max(count, 0))}
	for i := range max(count, 0) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p, err := g.Prompt()
		if err != nil {
			return res, fmt.Errorf("round %d: %w", i, err)
		}
		if prev, ok := res.Prompts[p.Fingerprint]; ok {
			g.logger.Debug("duplicate prompt", "fingerprint", p.Fingerprint, "previous", prev)
		}
		res.Prompts[p.Fingerprint] = p.Text
		res.Last = p.Text
		res.Rounds++
		if !exhaust {
			g.store.Reset()
		}
	}
	g.logger.Debug("generated prompts", "rounds", res.Rounds, "distinct", res.Distinct())
	return res, nil
}
