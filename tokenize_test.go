package twitsent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tokenTexts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		text     string
		expected []string
		desc     string
	}{
		{"I don't like it", []string{"I", "do", "n't", "like", "it"}, "Negative contraction"},
		{"they'll see it's done", []string{"they", "'ll", "see", "it", "'s", "done"}, "Other contractions"},
		{"@bob check http://t.co/abc #win!", []string{"@bob", "check", "http://t.co/abc", "#win", "!"}, "Twitter entities"},
		{"great :) but sad :(", []string{"great", ":)", "but", "sad", ":("}, "Emoticons kept whole"},
		{"($100)", []string{"(", "$", "100", ")"}, "Prefixes and suffixes"},
		{"Well, U.S. is big.", []string{"Well", ",", "U.S.", "is", "big", "."}, "Abbreviations"},
		{"wow!!! <3", []string{"wow", "!", "!", "!", "<3"}, "Repeated punctuation"},
		{"   ", nil, "Whitespace only"},
	}

	tokenizer := NewIterTokenizer()
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := tokenizer.Tokenize(tt.text)
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, tokenTexts(got))
		})
	}
}

func TestTokenizeOffsets(t *testing.T) {
	text := "so  happy, don't   stop :)"
	for _, tok := range NewIterTokenizer().Tokenize(text) {
		assert.Equal(t, tok.Text, text[tok.Start:tok.End])
	}
}

func TestTokenizeSanitizes(t *testing.T) {
	got := NewIterTokenizer().Tokenize("Tom &amp; Jerry")
	assert.Equal(t, []string{"Tom", "&", "Jerry"}, tokenTexts(got))
}

func TestTokenizerOptions(t *testing.T) {
	tokenizer := NewIterTokenizer(
		UsingEmoticons(map[string]int{"^_^": 1}),
		UsingIsUnsplittable(func(s string) bool { return s == "e.g.," }),
	)
	got := tokenizer.Tokenize("^_^ e.g., this")
	assert.Equal(t, []string{"^_^", "e.g.,", "this"}, tokenTexts(got))
}
