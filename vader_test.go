package twitsent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaderLexicon(t *testing.T) {
	tests := []struct {
		text     string
		expected ScorePair
		desc     string
	}{
		{"love", ScorePair{Positive: 1}, "Positive word"},
		{"horrible", ScorePair{Negative: -1}, "Negative word"},
		{"not good", ScorePair{Negative: -1}, "Negated positive"},
		{"table", ScorePair{}, "Neutral word"},
	}

	lex := NewVaderLexicon()
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			sp, err := lex.Score(normalizeOne(t, tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sp)
		})
	}
}

func TestVaderNegator(t *testing.T) {
	assert.Equal(t, "not", vaderNegator("n't"))
	assert.Equal(t, "never", vaderNegator("never"))
}
