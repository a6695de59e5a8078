package twitsent

import (
	"strings"

	"github.com/jonreiter/govader"
)

// VADER compound thresholds for a single token.
const (
	vaderPositive = 0.05
	vaderNegative = -0.05
)

// VaderLexicon is a LexiconEvaluator backed by the VADER lexicon. Each word
// or hashtag is scored on its own, prefixed by the preceding token when that
// token is a negator, and counts +1 or -1 by the sign of its compound score.
type VaderLexicon struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderLexicon creates a VaderLexicon.
func NewVaderLexicon() *VaderLexicon {
	return &VaderLexicon{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score implements LexiconEvaluator.
func (v *VaderLexicon) Score(msg Message) (ScorePair, error) {
	var sp ScorePair
	for i, tok := range msg.Tokens {
		word := lexiconKey(tok)
		if word == "" || tok.Stop {
			continue
		}

		phrase := word
		if i > 0 && msg.Tokens[i-1].Tag == TagNegation {
			phrase = strings.Join([]string{vaderNegator(msg.Tokens[i-1].Norm), word}, " ")
		}

		compound := v.analyzer.PolarityScores(phrase).Compound
		switch {
		case compound >= vaderPositive:
			sp.Positive++
		case compound <= vaderNegative:
			sp.Negative--
		}
	}
	return sp, nil
}

// vaderNegator maps split contraction tails back to a word VADER's negation
// list recognizes.
func vaderNegator(norm string) string {
	if norm == "n't" {
		return "not"
	}
	return norm
}
