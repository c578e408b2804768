// Package sentiment scores news text and folds scored items into a
// per-instrument verdict.
package sentiment

import (
	"math"
	"strings"
	"unicode"
)

const (
	boostIncr = 0.293
	boostDecr = -0.293
	capsIncr  = 0.733
	negScalar = -0.74

	// normAlpha approximates the maximum expected sum of valences.
	normAlpha = 15.0
)

// Scorer maps text to a compound score in [-1, 1]. Implementations must
// be pure and safe for concurrent use.
type Scorer interface {
	Score(text string) float64
}

// LexiconScorer is a rule-based compound scorer in the style of VADER:
// word valences with booster, negation, capitalisation, contrast and
// punctuation rules, normalised into [-1, 1].
type LexiconScorer struct {
	lexicon map[string]float64
}

// NewLexiconScorer returns a scorer over the built-in lexicon. Entries in
// extra are added to, or override, the built-in valences.
func NewLexiconScorer(extra map[string]float64) *LexiconScorer {
	lex := defaultLexicon
	if len(extra) > 0 {
		lex = make(map[string]float64, len(defaultLexicon)+len(extra))
		for k, v := range defaultLexicon {
			lex[k] = v
		}
		for k, v := range extra {
			lex[strings.ToLower(k)] = v
		}
	}
	return &LexiconScorer{lexicon: lex}
}

func (s *LexiconScorer) Score(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}
	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}
	capDiff := mixedCase(words)

	valences := make([]float64, len(words))
	for i := range words {
		valences[i] = s.valence(words, lower, i, capDiff)
	}
	applyContrast(lower, valences)

	var sum float64
	for _, v := range valences {
		sum += v
	}
	if sum != 0 {
		emphasis := punctuationEmphasis(text)
		if sum > 0 {
			sum += emphasis
		} else {
			sum -= emphasis
		}
	}
	return normalize(sum)
}

func (s *LexiconScorer) valence(words, lower []string, i int, capDiff bool) float64 {
	if _, ok := boosters[lower[i]]; ok {
		return 0
	}
	v, ok := s.lexicon[lower[i]]
	if !ok {
		return 0
	}
	if capDiff && isUpper(words[i]) {
		v += capsIncr * sign(v)
	}
	for back := 1; back <= 3 && i-back >= 0; back++ {
		j := i - back
		if _, known := s.lexicon[lower[j]]; !known {
			b := boosterScalar(words[j], lower[j], v, capDiff)
			switch back {
			case 2:
				b *= 0.95
			case 3:
				b *= 0.9
			}
			v += b
		}
		if negated(lower[j]) {
			v *= negScalar
		}
	}
	return v
}

func boosterScalar(word, lower string, valence float64, capDiff bool) float64 {
	b, ok := boosters[lower]
	if !ok || valence == 0 {
		return 0
	}
	if valence < 0 {
		b = -b
	}
	if capDiff && isUpper(word) {
		b += capsIncr * sign(valence)
	}
	return b
}

// applyContrast dampens sentiment before the first "but" and amplifies it after.
func applyContrast(lower []string, valences []float64) {
	idx := -1
	for i, w := range lower {
		if w == "but" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	for i := range valences {
		switch {
		case i < idx:
			valences[i] *= 0.5
		case i > idx:
			valences[i] *= 1.5
		}
	}
}

func punctuationEmphasis(text string) float64 {
	ep := strings.Count(text, "!")
	if ep > 4 {
		ep = 4
	}
	emphasis := float64(ep) * 0.292

	if qm := strings.Count(text, "?"); qm > 1 {
		if qm <= 3 {
			emphasis += float64(qm) * 0.18
		} else {
			emphasis += 0.96
		}
	}
	return emphasis
}

func normalize(sum float64) float64 {
	if sum == 0 || math.IsNaN(sum) {
		return 0
	}
	n := sum / math.Sqrt(sum*sum+normAlpha)
	switch {
	case n < -1:
		return -1
	case n > 1:
		return 1
	}
	return n
}

// tokenize splits on whitespace and strips surrounding punctuation.
// Single-character tokens carry no sentiment and are dropped.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if len([]rune(w)) <= 1 {
			continue
		}
		out = append(out, w)
	}
	return out
}

func negated(lower string) bool {
	if _, ok := negations[lower]; ok {
		return true
	}
	return strings.Contains(lower, "n't") || strings.Contains(lower, "n’t")
}

// mixedCase reports whether some, but not all, words are shouted.
func mixedCase(words []string) bool {
	upper := 0
	for _, w := range words {
		if isUpper(w) {
			upper++
		}
	}
	return upper > 0 && upper < len(words)
}

func isUpper(w string) bool {
	hasLetter := false
	for _, r := range w {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			hasLetter = true
		}
	}
	return hasLetter
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
