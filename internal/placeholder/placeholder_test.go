package placeholder

import (
	"errors"
	"slices"
	"testing"

	"github.com/antithesishq/promptgen/internal/wordlist"
	"go.akshayshah.org/attest"
)

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		template string
		want     []string
	}{
		{"no placeholders", []string{}},
		{"a {x}", []string{"x"}},
		{"{x} and {x}", []string{"x", "x"}},
		{"{artist 1}, {color+shape}, {a-b_c9}", []string{"artist 1", "color+shape", "a-b_c9"}},
		{"{Upper} {dot.ted} {}", []string{}},
	}
	for _, tt := range tests {
		attest.Equal(t, Identifiers(tt.template), tt.want, attest.Sprintf("template %q", tt.template))
	}
}

func TestResolveConcrete(t *testing.T) {
	store := wordlist.NewSeeded(1)
	store.AddList("x", []string{"b"})
	r := New(store, DefaultDelimiter)

	values, err := r.Resolve("a {x}")
	attest.Ok(t, err)
	attest.Equal(t, values, map[string]string{"x": "b"})
}

func TestResolveRepeatedIdentifierDrawsEachTime(t *testing.T) {
	store := wordlist.NewSeeded(1)
	store.AddList("x", []string{"b", "c"})
	r := New(store, DefaultDelimiter)

	values, err := r.Resolve("{x} {x}")
	attest.Ok(t, err)
	attest.True(t, values["x"] == "b" || values["x"] == "c")
	// Both items were drawn, so the working list is drained.
	attest.Equal(t, store.Len("x"), 0)
}

func TestResolveAlias(t *testing.T) {
	store := wordlist.NewSeeded(9)
	store.AddList("color", []string{"red", "blue"})
	r := New(store, DefaultDelimiter)

	// Drain the canonical list first; the alias must not care.
	_, err := r.Resolve("{color} {color}")
	attest.Ok(t, err)
	attest.Equal(t, store.Len("color"), 0)

	values, err := r.Resolve("{color 1}")
	attest.Ok(t, err)
	attest.True(t, slices.Contains([]string{"red", "blue"}, values["color 1"]))
	attest.True(t, store.Has("color 1"))
	attest.Equal(t, store.Len("color 1"), 1)
	attest.Equal(t, store.Len("color"), 0)

	restore, err := store.Restore("color 1")
	attest.Ok(t, err)
	attest.Equal(t, restore, []string{"red", "blue"})
}

func TestResolveCustomDelimiter(t *testing.T) {
	store := wordlist.NewSeeded(2)
	store.AddList("artist", []string{"monet"})
	r := New(store, "_")

	values, err := r.Resolve("{artist_a} {artist_b}")
	attest.Ok(t, err)
	attest.Equal(t, values, map[string]string{"artist_a": "monet", "artist_b": "monet"})

	// With "_" as the delimiter a space is an ordinary character.
	_, err = r.Resolve("{artist 1}")
	attest.ErrorIs(t, err, wordlist.ErrUnknownList)
}

func TestResolveConcatenation(t *testing.T) {
	store := wordlist.NewSeeded(4)
	store.AddList("color", []string{"red", "blue"})
	store.AddList("shape", []string{"circle"})
	r := New(store, DefaultDelimiter)

	values, err := r.Resolve("{color+shape}")
	attest.Ok(t, err)
	attest.True(t, slices.Contains([]string{"red", "blue", "circle"}, values["color+shape"]))

	restore, err := store.Restore("color+shape")
	attest.Ok(t, err)
	attest.Equal(t, restore, []string{"red", "blue", "circle"})
}

func TestResolveRefillsDrainedList(t *testing.T) {
	store := wordlist.NewSeeded(4)
	store.AddList("x", []string{"only"})
	r := New(store, DefaultDelimiter)
	for range 3 {
		values, err := r.Resolve("{x}")
		attest.Ok(t, err)
		attest.Equal(t, values["x"], "only")
	}
}

func TestResolveErrors(t *testing.T) {
	store := wordlist.NewSeeded(1)
	store.AddList("color", []string{"red"})
	r := New(store, DefaultDelimiter)

	_, err := r.Resolve("{shape}")
	attest.ErrorIs(t, err, wordlist.ErrUnknownList)

	_, err = r.Resolve("{shape 1}")
	attest.ErrorIs(t, err, ErrUndefinedIdentifier)
	var undefined *UndefinedIdentifierError
	attest.True(t, errors.As(err, &undefined))
	attest.Equal(t, undefined.Base, "shape")

	_, err = r.Resolve("{color+shape}")
	attest.ErrorIs(t, err, ErrUndefinedIdentifier)
	// A failed derivation registers nothing.
	attest.True(t, !store.Has("color+shape"))
}
