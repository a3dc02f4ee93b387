package normalize

import (
	"strings"
	"testing"

	"go.akshayshah.org/attest"
	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a b", "a b"},
		{"  a \t b\n", "a b"},
		{"a , b", "a, b"},
		{"a, b, a, c, b", "a, b, c"},
		{", a, b,", "a, b"},
		{"a,b, c", "a,b, c"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.in)
		attest.Equal(t, got.Text, tt.want, attest.Sprintf("normalize %q", tt.in))
		attest.Equal(t, len(got.Fingerprint), 16)
	}
}

func TestFingerprintIgnoresOrder(t *testing.T) {
	ab := Normalize("a, b")
	ba := Normalize("b, a")
	attest.Equal(t, ab.Fingerprint, ba.Fingerprint)
	attest.NotEqual(t, ab.Text, ba.Text)

	// Duplicates don't count either.
	attest.Equal(t, Normalize("a, b, b, a").Fingerprint, ab.Fingerprint)
	attest.NotEqual(t, Normalize("a, c").Fingerprint, ab.Fingerprint)
}

func TestFingerprintRespectsBoundaries(t *testing.T) {
	attest.NotEqual(t, Fingerprint([]string{"ab", "c"}), Fingerprint([]string{"a", "bc"}))
	attest.Equal(t, Fingerprint([]string{"x"}), Fingerprint([]string{"x"}))
}

var pieces = []string{"a", "b", "cat", "red hat", " ", "  ", "\t", ",", ", ", " ,", "\n"}

func genText(t *rapid.T) string {
	return strings.Join(rapid.SliceOf(rapid.SampledFrom(pieces)).Draw(t, "pieces"), "")
}

func TestNormalizeIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		once := Normalize(genText(t))
		twice := Normalize(once.Text)
		if once != twice {
			t.Fatalf("normalize not idempotent: %+v then %+v", once, twice)
		}
	})
}

func TestFingerprintPermutationInvariant(t *testing.T) {
	words := []string{"a", "b", "cat", "red hat", "blue"}
	rapid.Check(t, func(t *rapid.T) {
		fragments := rapid.SliceOfN(rapid.SampledFrom(words), 1, 8).Draw(t, "fragments")
		shuffled := rapid.Permutation(fragments).Draw(t, "shuffled")
		left := Normalize(strings.Join(fragments, Separator))
		right := Normalize(strings.Join(shuffled, Separator))
		if left.Fingerprint != right.Fingerprint {
			t.Fatalf("%q and %q fingerprint differently", left.Text, right.Text)
		}
	})
}
