package twitsent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalizeOne(t *testing.T, text string) Message {
	t.Helper()
	pre, err := NewTextPreprocessor()
	require.NoError(t, err)
	msgs, err := pre.Normalize(context.Background(), []string{text})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	return msgs[0]
}

func findToken(msg Message, text string) (Token, bool) {
	for _, tok := range msg.Tokens {
		if tok.Text == text {
			return tok, true
		}
	}
	return Token{}, false
}

func TestPreprocessTags(t *testing.T) {
	tests := []struct {
		token string
		tag   string
		norm  string
		desc  string
	}{
		{"@Bob", TagUser, "_user_", "Mention"},
		{"http://t.co/xyz", TagURL, "_url_", "URL"},
		{"#Winning", TagHashtag, "#winning", "Hashtag lower cased"},
		{":)", TagEmoticon, ":)", "Emoticon kept verbatim"},
		{"42", TagNumber, "42", "Number"},
		{"never", TagNegation, "never", "Negator"},
		{"Great", TagWord, "great", "Word lower cased"},
	}

	msg := normalizeOne(t, "@Bob http://t.co/xyz #Winning :) 42 never Great")
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			tok, found := findToken(msg, tt.token)
			require.True(t, found, "token %q missing", tt.token)
			assert.Equal(t, tt.tag, tok.Tag)
			assert.Equal(t, tt.norm, tok.Norm)
		})
	}
}

func TestPreprocessContractionNegation(t *testing.T) {
	msg := normalizeOne(t, "I don't like it")
	tok, found := findToken(msg, "n't")
	require.True(t, found)
	assert.Equal(t, TagNegation, tok.Tag)
}

func TestPreprocessStopWords(t *testing.T) {
	msg := normalizeOne(t, "the movie was good")

	the, found := findToken(msg, "the")
	require.True(t, found)
	assert.True(t, the.Stop)

	good, found := findToken(msg, "good")
	require.True(t, found)
	assert.False(t, good.Stop)

	pre, err := NewTextPreprocessor(UsingStopWords(""))
	require.NoError(t, err)
	msgs, err := pre.Normalize(context.Background(), []string{"the movie"})
	require.NoError(t, err)
	for _, tok := range msgs[0].Tokens {
		assert.False(t, tok.Stop, tok.Text)
	}
}

func TestPreprocessElongation(t *testing.T) {
	msg := normalizeOne(t, "sooooo goooood")

	so, found := findToken(msg, "sooooo")
	require.True(t, found)
	assert.Equal(t, "soo", so.Norm)
	assert.True(t, so.Elongated)

	good, found := findToken(msg, "goooood")
	require.True(t, found)
	assert.Equal(t, "good", good.Norm)
	assert.True(t, good.Elongated)
}

func TestPreprocessBatchResolvesElongations(t *testing.T) {
	pre, err := NewTextPreprocessor()
	require.NoError(t, err)

	msgs, err := pre.Normalize(context.Background(), []string{
		"that was fuuuun",
		"fun times",
		"so much fun",
	})
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	tok, found := findToken(msgs[0], "fuuuun")
	require.True(t, found)
	assert.Equal(t, "fun", tok.Norm)
}

func TestPreprocessSentenceOffsets(t *testing.T) {
	text := "I loved the first half. The ending was bad! See you tomorrow"
	msg := normalizeOne(t, text)

	require.NotEmpty(t, msg.Tokens)
	assert.Equal(t, text, msg.Text)
	for _, tok := range msg.Tokens {
		assert.Equal(t, tok.Text, text[tok.Start:tok.End])
	}

	pre, err := NewTextPreprocessor(WithSegmentation(false))
	require.NoError(t, err)
	msgs, err := pre.Normalize(context.Background(), []string{text})
	require.NoError(t, err)
	assert.Equal(t, tokenTexts(msg.Tokens), tokenTexts(msgs[0].Tokens))
}

func TestPreprocessPositional(t *testing.T) {
	pre, err := NewTextPreprocessor()
	require.NoError(t, err)

	texts := []string{"first", "", "third one"}
	msgs, err := pre.Normalize(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, msgs, len(texts))
	for i := range texts {
		assert.Equal(t, texts[i], msgs[i].Text)
	}
	assert.Empty(t, msgs[1].Tokens)
}

func TestPreprocessCanceled(t *testing.T) {
	pre, err := NewTextPreprocessor()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = pre.Normalize(ctx, []string{"hello"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSqueezeAndCollapse(t *testing.T) {
	tests := []struct {
		in        string
		squeezed  string
		elongated bool
		collapsed string
		desc      string
	}{
		{"good", "good", false, "god", "Double letter untouched"},
		{"gooood", "good", true, "god", "Run squeezed to two"},
		{"yaaaay!!!", "yaay!!", true, "yay!", "Several runs"},
		{"ab", "ab", false, "ab", "Short word"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, elongated := squeeze(tt.in)
			assert.Equal(t, tt.squeezed, got)
			assert.Equal(t, tt.elongated, elongated)
			assert.Equal(t, tt.collapsed, collapse(tt.in))
		})
	}
}
