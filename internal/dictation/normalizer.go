// Package dictation implements the periovox dictation-command interpreter:
// normalization of free-form spoken/typed shorthand into a canonical token
// stream, multi-pass parsing of that stream into structured measurement
// updates and navigation/context directives, debounced text intake, and
// phonetic "did you mean" suggestions for unrecognized input.
//
// Raw dictation is rarely clean — clinicians say "buckle one seven" or type
// "3-4-5" and expect the chart to react. The [Normalizer] collapses every
// documented idiom to one canonical vocabulary, and the [Parser] applies an
// ordered set of pattern passes where the first match wins.
package dictation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// CanonicalVocabulary lists the canonical command words the normalizer
// rewrites synonyms to. Extra synonyms (configured at construction) must map
// onto one of these words or onto a single digit, otherwise normalization
// would no longer be idempotent.
var CanonicalVocabulary = []string{"buccal", "lingual", "pd", "rec", "mob"}

// synonymTable maps each canonical word to the dictation variants it absorbs.
// Multi-word variants are supported ("pocket depth"). Substitution is
// whole-word: a variant never matches inside a longer token.
var synonymTable = map[string][]string{
	"buccal":  {"buckle", "bocal", "bucc", "buck", "b"},
	"lingual": {"palatal", "pal", "ling"},
	"pd":      {"pocket depths", "pocket depth", "pocky", "period", "depths", "bed"},
	"rec":     {"recession", "receding"},
	"mob":     {"mobility"},
	"0":       {"zero"},
	"1":       {"one"},
	"2":       {"two"},
	"3":       {"three"},
	"4":       {"four"},
	"5":       {"five"},
	"6":       {"six"},
	"7":       {"seven"},
	"8":       {"eight"},
	"9":       {"nine"},
}

// fillerWords are discarded as whole tokens after synonym substitution.
// "for" is safe to drop because "four" has already become "4" by then.
var fillerWords = map[string]struct{}{
	"and": {}, "for": {}, "the": {}, "is": {}, "a": {}, "to": {}, "please": {}, "set": {},
}

var (
	// digitDelimiterRe rewrites "3,4" / "3-4" into "3 4". It must run twice:
	// matches cannot overlap, so "3,4,5" needs a second pass for the ",5".
	digitDelimiterRe = regexp.MustCompile(`(\d)\s*[,-]\s*(\d)`)

	// quadrantToothRe splits navigation shorthand like "1-7" into "1 7".
	// Narrower than digitDelimiterRe on purpose: quadrant 1–4, tooth 1–8.
	quadrantToothRe = regexp.MustCompile(`\b([1-4])-([1-8])\b`)

	// variantTokenRe constrains configured synonym variants to lowercase
	// word tokens (optionally multi-word).
	variantTokenRe = regexp.MustCompile(`^[a-z]+( [a-z]+)*$`)
)

// synonymRule is one compiled whole-word rewrite.
type synonymRule struct {
	re        *regexp.Regexp
	canonical string
}

// NormalizerOption is a functional option for configuring a [Normalizer].
type NormalizerOption func(*Normalizer)

// WithSynonyms adds extra variant→canonical rewrites on top of the built-in
// table. Keys are dictation variants, values must be canonical words from
// [CanonicalVocabulary] or single digits. Invalid entries surface as an
// error from [NewNormalizer].
func WithSynonyms(extra map[string]string) NormalizerOption {
	return func(n *Normalizer) {
		for variant, canonical := range extra {
			n.extra[variant] = canonical
		}
	}
}

// Normalizer rewrites arbitrary dictation text into the canonical,
// single-spaced, lowercase command form consumed by the [Parser].
//
// Normalization is idempotent: Normalize(Normalize(t)) == Normalize(t) for
// every input t. Callers may safely re-normalize cached text. A Normalizer
// is read-only after construction and safe for concurrent use.
type Normalizer struct {
	rules []synonymRule
	extra map[string]string
}

// NewNormalizer compiles the synonym table (plus any configured extras) and
// returns a ready Normalizer. It returns an error when an extra synonym
// would break idempotence: a variant that is itself canonical, a canonical
// target outside the known vocabulary, or a variant that is not a plain
// lowercase word token.
func NewNormalizer(opts ...NormalizerOption) (*Normalizer, error) {
	n := &Normalizer{extra: make(map[string]string)}
	for _, o := range opts {
		o(n)
	}

	variants := make(map[string][]string, len(synonymTable))
	for canonical, vs := range synonymTable {
		variants[canonical] = append(variants[canonical], vs...)
	}
	for variant, canonical := range n.extra {
		if err := validateSynonym(variant, canonical); err != nil {
			return nil, fmt.Errorf("dictation: synonym %q: %w", variant, err)
		}
		variants[canonical] = append(variants[canonical], variant)
	}

	// Deterministic rule order: canonical words sorted, and within each
	// rule longer variants first so regexp alternation prefers "pocket
	// depths" over "pocket depth" over "pd"-adjacent fragments.
	canonicals := make([]string, 0, len(variants))
	for c := range variants {
		canonicals = append(canonicals, c)
	}
	sort.Strings(canonicals)

	for _, canonical := range canonicals {
		vs := variants[canonical]
		sort.Slice(vs, func(i, j int) bool {
			if len(vs[i]) != len(vs[j]) {
				return len(vs[i]) > len(vs[j])
			}
			return vs[i] < vs[j]
		})
		quoted := make([]string, len(vs))
		for i, v := range vs {
			quoted[i] = regexp.QuoteMeta(v)
		}
		re, err := regexp.Compile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("dictation: compile synonyms for %q: %w", canonical, err)
		}
		n.rules = append(n.rules, synonymRule{re: re, canonical: canonical})
	}

	return n, nil
}

// MustNewNormalizer is like [NewNormalizer] but panics on error. Intended
// for the built-in table only (which is known-good); configured synonyms
// should go through NewNormalizer.
func MustNewNormalizer(opts ...NormalizerOption) *Normalizer {
	n, err := NewNormalizer(opts...)
	if err != nil {
		panic(err)
	}
	return n
}

// Normalize canonicalizes text. Steps, in order:
//
//  1. Lowercase; pad with a single leading/trailing space so whole-word
//     matching is safe at the string edges.
//  2. Whole-word synonym substitution (synonymTable + configured extras).
//  3. Digit delimiter normalization: "3,4" / "3-4" → "3 4", applied twice
//     to collapse three-element runs written with mixed delimiters.
//  4. Quadrant-tooth hyphen normalization: "1-7" → "1 7".
//  5. Filler-word removal as whole tokens.
//  6. Whitespace collapse and trim.
//
// The result is a trimmed, single-spaced, lowercase string.
func (n *Normalizer) Normalize(text string) string {
	s := " " + strings.ToLower(text) + " "

	for _, r := range n.rules {
		s = r.re.ReplaceAllString(s, r.canonical)
	}

	s = digitDelimiterRe.ReplaceAllString(s, "$1 $2")
	s = digitDelimiterRe.ReplaceAllString(s, "$1 $2")
	s = quadrantToothRe.ReplaceAllString(s, "$1 $2")

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if _, filler := fillerWords[f]; filler {
			continue
		}
		kept = append(kept, f)
	}

	return strings.Join(kept, " ")
}

// validateSynonym checks one configured variant→canonical pair for the
// properties that keep normalization idempotent.
func validateSynonym(variant, canonical string) error {
	if !variantTokenRe.MatchString(variant) {
		return fmt.Errorf("variant must be one or more lowercase words, got %q", variant)
	}
	if !isCanonical(canonical) {
		return fmt.Errorf("target %q is not a canonical word or digit", canonical)
	}
	if isCanonical(variant) {
		return fmt.Errorf("variant %q is itself canonical", variant)
	}
	return nil
}

// isCanonical reports whether w is a canonical command word or single digit.
func isCanonical(w string) bool {
	for _, c := range CanonicalVocabulary {
		if w == c {
			return true
		}
	}
	return len(w) == 1 && w[0] >= '0' && w[0] <= '9'
}
