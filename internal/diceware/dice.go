// Package diceware provides utilities for generating memorable-but-random
// word lists and prompt templates.
package diceware

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// GenWord generates a single word from the corpus.
func GenWord(r *rand.Rand) string {
	return corpus[r.IntN(len(corpus))]
}

// GenPhrase generates one to three space-separated words.
func GenPhrase(r *rand.Rand) string {
	var sb strings.Builder
	for i := range r.IntN(3) + 1 {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(GenWord(r))
	}
	return sb.String()
}

// GenList generates a list of 1-8 phrases. Duplicates are allowed.
func GenList(r *rand.Rand) []string {
	items := make([]string, r.IntN(8)+1)
	for i := range items {
		items[i] = GenPhrase(r)
	}
	return items
}

// GenLists generates 2-5 lists named list0, list1, and so on. A list may
// reference lists with a lower index, so expansion always terminates in
// fewer passes than there are lists.
func GenLists(r *rand.Rand) map[string][]string {
	lists := make(map[string][]string)
	for i := range r.IntN(4) + 2 {
		items := GenList(r)
		if i > 0 && r.IntN(3) == 0 {
			items[r.IntN(len(items))] = fmt.Sprintf("%s {%s}", GenWord(r), ListName(r.IntN(i)))
		}
		lists[ListName(i)] = items
	}
	return lists
}

// ListName returns the name GenLists gives the i'th list.
func ListName(i int) string {
	return fmt.Sprintf("list%d", i)
}

// GenTemplate generates a comma-separated template of literal phrases and
// placeholders over the n lists from GenLists, including alias and
// concatenation placeholders.
func GenTemplate(r *rand.Rand, n int) string {
	fragments := make([]string, r.IntN(5)+1)
	for i := range fragments {
		name := ListName(r.IntN(n))
		switch r.IntN(5) {
		case 0:
			fragments[i] = GenPhrase(r)
		case 1:
			fragments[i] = fmt.Sprintf("{%s %d}", name, r.IntN(3))
		case 2:
			fragments[i] = fmt.Sprintf("{%s+%s}", name, ListName(r.IntN(n)))
		default:
			fragments[i] = fmt.Sprintf("%s {%s}", GenWord(r), name)
		}
	}
	return strings.Join(fragments, ", ")
}

// IsWord reports whether w is in the corpus.
func IsWord(w string) bool {
	_, ok := words[w]
	return ok
}

var words = func() map[string]struct{} {
	m := make(map[string]struct{}, len(corpus))
	for _, w := range corpus {
		m[w] = struct{}{}
	}
	return m
}()

var corpus = []string{
	"acorn", "amber", "anchor", "apple", "arch", "aspen", "atlas", "autumn",
	"badge", "bamboo", "banner", "basil", "beacon", "birch", "blossom", "bramble",
	"breeze", "bronze", "cabin", "cactus", "candle", "canyon", "cedar", "chalk",
	"cherry", "cinder", "clover", "cobalt", "comet", "coral", "cotton", "crater",
	"dagger", "daisy", "delta", "denim", "dune", "dusk", "ember", "falcon",
	"fennel", "fern", "fjord", "flint", "forest", "fossil", "garnet", "geyser",
	"ginger", "glacier", "granite", "grove", "harbor", "hazel", "heron", "hollow",
	"indigo", "iris", "ivory", "jade", "jasper", "juniper", "kelp", "kestrel",
	"lagoon", "lantern", "larch", "lemon", "lichen", "linen", "lotus", "maple",
	"marble", "meadow", "mesa", "mint", "moss", "nectar", "nickel", "oak",
	"ochre", "onyx", "orchid", "otter", "pebble", "pepper", "pine", "plum",
	"quartz", "quill", "raven", "reef", "ridge", "river", "saffron", "sage",
	"sierra", "slate", "sparrow", "spruce", "tide", "thistle", "tundra", "umber",
	"valley", "velvet", "willow", "wren", "yarrow", "zephyr",
}
