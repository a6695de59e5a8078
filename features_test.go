package twitsent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureExtraction(t *testing.T) {
	msg := Message{Tokens: []Token{
		{Text: "I", Norm: "i", Tag: TagWord, Stop: true},
		{Text: "do", Norm: "do", Tag: TagWord, Stop: true},
		{Text: "n't", Norm: "n't", Tag: TagNegation},
		{Text: "LIKE", Norm: "like", Tag: TagWord},
		{Text: "it", Norm: "it", Tag: TagWord, Stop: true},
		{Text: "!", Norm: "!", Tag: TagPunct},
		{Text: "sooo", Norm: "soo", Tag: TagWord, Elongated: true},
		{Text: ":(", Norm: ":(", Tag: TagEmoticon},
		{Text: "?", Norm: "?", Tag: TagPunct},
	}}

	features := newFeatureExtractor().extract(msg)

	tests := []struct {
		name     string
		expected string
		desc     string
	}{
		{"unigram:like", "1", "Content unigram"},
		{"bigram:n't_like", "1", "Bigram across negator"},
		{"NOT_like", "1", "Negated word"},
		{"NOT_it", "1", "Negation runs until punctuation"},
		{"tag:WORD", "4+", "Bucketed tag count"},
		{"tag:PUNCT", "2", "Punctuation count"},
		{"all_caps", "1", "All caps word"},
		{"elongated", "1", "Elongated word"},
		{"exclamation", "1", "Exclamation count"},
		{"last:question", "1", "Last token is a question mark"},
		{"emoticon:negative", "1", "Negative emoticon"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.expected, features[tt.name])
		})
	}

	assert.NotContains(t, features, "unigram:i", "stop words are not unigrams")
	assert.NotContains(t, features, "unigram:!", "punctuation is not a unigram")
	assert.NotContains(t, features, "NOT_soo", "punctuation ends the negation")
	assert.NotContains(t, features, "last:exclamation")
}

func TestBucket(t *testing.T) {
	assert.Equal(t, "1", bucket(1))
	assert.Equal(t, "3", bucket(3))
	assert.Equal(t, "4+", bucket(4))
	assert.Equal(t, "4+", bucket(40))
}
