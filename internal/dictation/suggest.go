package dictation

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
)

// SuggesterOption is a functional option for configuring a [Suggester].
type SuggesterOption func(*Suggester)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-matched vocabulary word to be suggested. Default: 0.70.
func WithPhoneticThreshold(threshold float64) SuggesterOption {
	return func(s *Suggester) {
		s.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// phonetic candidate is found and the suggester falls back to pure string
// similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) SuggesterOption {
	return func(s *Suggester) {
		s.fuzzyThreshold = threshold
	}
}

// WithVocabulary replaces the default command vocabulary the suggester
// matches against.
func WithVocabulary(words []string) SuggesterOption {
	return func(s *Suggester) {
		s.vocabulary = words
	}
}

// Suggester produces "did you mean" hints for dictation that no parser pass
// understood. Each unknown token is matched against the command vocabulary
// in two stages:
//
//  1. Phonetic candidate filtering: Double Metaphone codes of the token are
//     compared against each vocabulary word; overlapping codes make the word
//     a candidate, accepted when its Jaro-Winkler similarity (on the raw
//     strings) exceeds the phonetic threshold.
//  2. Fuzzy fallback: when no phonetic candidate passes, pure Jaro-Winkler
//     similarity is tested against a higher threshold.
//
// Suggestions are hints only. The parser never acts on them — acting on a
// guess would violate the interpreter's no-guess contract.
//
// A Suggester is read-only after construction and safe for concurrent use.
type Suggester struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
	vocabulary        []string
}

// NewSuggester returns a Suggester over the canonical command vocabulary
// with default thresholds (0.70 phonetic, 0.85 fuzzy fallback).
func NewSuggester(opts ...SuggesterOption) *Suggester {
	s := &Suggester{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
		vocabulary:        CanonicalVocabulary,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Suggest rewrites the unknown tokens of a normalized command to their best
// vocabulary matches. It returns the rewritten command and true when at
// least one token was corrected; otherwise it returns "" and false.
//
// Digits and tokens already in the vocabulary are left untouched, so a
// suggestion for "bucal 1 7" comes back as "buccal 1 7".
func (s *Suggester) Suggest(normalized string) (string, bool) {
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return "", false
	}

	corrected := false
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if isDigits(tok) || s.inVocabulary(tok) {
			out[i] = tok
			continue
		}
		match, ok := s.matchToken(tok)
		if !ok {
			out[i] = tok
			continue
		}
		out[i] = match
		corrected = true
	}

	if !corrected {
		return "", false
	}
	return strings.Join(out, " "), true
}

// matchToken finds the best vocabulary word for one unknown token.
func (s *Suggester) matchToken(token string) (string, bool) {
	primary, secondary := matchr.DoubleMetaphone(token)

	type candidate struct {
		word     string
		score    float64
		phonetic bool
	}
	var best candidate

	for _, word := range s.vocabulary {
		wp, ws := matchr.DoubleMetaphone(word)
		phonetic := codesOverlap(primary, secondary, wp, ws)
		score := matchr.JaroWinkler(token, word, false)

		if phonetic {
			if score >= s.phoneticThreshold && (!best.phonetic || score > best.score) {
				best = candidate{word: word, score: score, phonetic: true}
			}
		} else if !best.phonetic {
			if score >= s.fuzzyThreshold && score > best.score {
				best = candidate{word: word, score: score, phonetic: false}
			}
		}
	}

	return best.word, best.word != ""
}

// codesOverlap reports whether any non-empty Double Metaphone code is shared
// between the two (primary, secondary) pairs.
func codesOverlap(ap, as, bp, bs string) bool {
	for _, a := range [2]string{ap, as} {
		if a == "" {
			continue
		}
		if a == bp || a == bs {
			return true
		}
	}
	return false
}

// inVocabulary reports whether token is already a known command word.
func (s *Suggester) inVocabulary(token string) bool {
	for _, w := range s.vocabulary {
		if token == w {
			return true
		}
	}
	return false
}

// isDigits reports whether token consists solely of ASCII digits.
func isDigits(token string) bool {
	if token == "" {
		return false
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return true
}
