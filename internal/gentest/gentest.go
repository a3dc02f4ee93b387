// Package gentest provides utilities for testing prompt generation.
package gentest

import (
	"log/slog"
	"testing"

	"github.com/antithesishq/promptgen/internal/wordlist"
)

// NewStore creates a store holding lists whose draws are deterministic for
// a given seed.
func NewStore(tb testing.TB, seed uint64, lists map[string][]string) *wordlist.Store {
	tb.Helper()
	store := wordlist.NewSeeded(seed)
	store.AddLists(lists)
	for name := range lists {
		if !store.Has(name) {
			tb.Fatalf("list %q missing after load", name)
		}
	}
	return store
}

// NewLogger creates a structured logger that writes to the supplied
// testing.TB.
func NewLogger(tb testing.TB) *slog.Logger {
	handler := slog.NewTextHandler(tb.Output(), &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
	})
	return slog.New(handler)
}
