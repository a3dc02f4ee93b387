// Package normalize canonicalizes rendered prompts and fingerprints them for
// deduplication.
package normalize

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"strings"

	"github.com/antithesishq/promptgen/internal/set"
	"github.com/cespare/xxhash/v2"
)

// Separator joins prompt fragments.
const Separator = ", "

var (
	whitespace       = regexp.MustCompile(`\s+`)
	spaceBeforeComma = regexp.MustCompile(`\s+,`)
)

// A Prompt is a normalized prompt and its fingerprint. Prompts made of the
// same fragments share a fingerprint regardless of fragment order.
type Prompt struct {
	Fingerprint string
	Text        string
}

// Normalize collapses whitespace, drops repeated fragments and fingerprints
// the remaining fragment set. Fragments are trimmed of separator characters
// and empty ones are dropped, so normalizing a normalized prompt is a no-op.
func Normalize(s string) Prompt {
	s = whitespace.ReplaceAllString(s, " ")
	s = spaceBeforeComma.ReplaceAllString(s, ",")

	fragments := set.New()
	for _, f := range strings.Split(s, Separator) {
		if f = strings.Trim(f, Separator); f != "" {
			fragments.Add(f)
		}
	}
	return Prompt{
		Fingerprint: Fingerprint(fragments.Sorted()),
		Text:        strings.Trim(strings.Join(fragments.Items(), Separator), Separator),
	}
}

// Fingerprint hashes fragments in the given order. Each fragment is length
// prefixed, so fragment boundaries affect the result.
func Fingerprint(fragments []string) string {
	d := xxhash.New()
	var n [binary.MaxVarintLen64]byte
	for _, f := range fragments {
		_, _ = d.Write(n[:binary.PutUvarint(n[:], uint64(len(f)))])
		_, _ = d.WriteString(f)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
