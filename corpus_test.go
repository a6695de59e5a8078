package twitsent

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSplitTrain(t *testing.T) {
	data := strings.Join([]string{
		"1\t10\t\"positive\"\t  I love it  ",
		"2\t11\t\"objective-OR-neutral\"\tjust a fact",
		"3\t12\t\"negative\"\tNot Available",
		"4\t13\t\"negative\"\tit\\'s bad",
		"",
	}, "\n")

	got, err := ReadSplit(strings.NewReader(data), TrainSplit, WithCorpusLogger(discardLogger()))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, LabeledExample{ID: "1", AuthorID: "10", Sentiment: Positive, Text: "I love it"}, got[0])
	assert.Equal(t, Neutral, got[1].Sentiment)
	assert.Equal(t, "4", got[2].ID)
	assert.Equal(t, `it\'s bad`, got[2].Text, "train text is not unescaped")
}

func TestReadSplitDev(t *testing.T) {
	data := "1\t10\tobjective\t  it\\'s \\\"fine\\\"  \n" +
		"2\t11\tnegative\tNot Available\n"

	got, err := ReadSplit(strings.NewReader(data), DevSplit, WithCorpusLogger(discardLogger()))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, Neutral, got[0].Sentiment)
	assert.Equal(t, `it's "fine"`, got[0].Text)
	assert.Equal(t, "Not Available", got[1].Text, "only train drops unavailable tweets")
}

func TestReadSplitTest(t *testing.T) {
	data := "1\t10\tobjective-OR-neutral\tGood \\u2019day\\u002c   \n"

	got, err := ReadSplit(strings.NewReader(data), TestSplit, WithCorpusLogger(discardLogger()))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, Sentiment("objective-OR-neutral"), got[0].Sentiment, "test labels stay raw")
	assert.Equal(t, "Good 'day,", got[0].Text)
}

func TestReadSplitTestKeepsInnerWhitespace(t *testing.T) {
	data := "1\t10\tpositive\t  spaced  out\n"

	got, err := ReadSplit(strings.NewReader(data), TestSplit, WithCorpusLogger(discardLogger()))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "  spaced  out", got[0].Text)
}

func TestReadSplitMalformed(t *testing.T) {
	data := "1\t10\tpositive\n2\t11\tnegative\tok text\n"

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	got, err := ReadSplit(strings.NewReader(data), DevSplit, WithCorpusLogger(logger))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Positive, got[0].Sentiment)
	assert.Empty(t, got[0].Text)
	assert.Contains(t, logs.String(), "malformed record")

	logs.Reset()
	got, err = ReadSplit(strings.NewReader(data), DevSplit,
		WithCorpusLogger(logger), WithMalformedPolicy(DropMalformed))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
	assert.Contains(t, logs.String(), "malformed record")
}

func TestReadSplitBlankLines(t *testing.T) {
	data := "1\t10\tpositive\thello\n\n   \n2\t11\tnegative\tbye\n"

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	got, err := ReadSplit(strings.NewReader(data), DevSplit, WithCorpusLogger(logger))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[1].ID)
	assert.Equal(t, 2, strings.Count(logs.String(), "blank record"))
	assert.Contains(t, logs.String(), "line=3")
}

func TestReadSplitBOM(t *testing.T) {
	data := "\xef\xbb\xbf1\t10\tpositive\thello\n"

	got, err := ReadSplit(strings.NewReader(data), DevSplit, WithCorpusLogger(discardLogger()))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		desc     string
	}{
		{`a\\b`, `a\b`, "Backslash"},
		{`a\\"b`, `a"b`, "Backslash replaced before quote"},
		{`say \"hi\"`, `say "hi"`, "Double quote"},
		{`it\'s`, `it's`, "Single quote"},
		{`it\u2019s`, `it's`, "Right single quotation mark"},
		{`a\u002cb`, `a,b`, "Comma"},
		{`\"don\u2019t\"\u002c ok`, `"don't", ok`, "Several escapes"},
		{"no escapes here", "no escapes here", "Plain text"},
		{`\u00e9`, `\u00e9`, "Unknown escape kept"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := Unescape(tt.in)
			assert.Equal(t, tt.expected, got)
			if !strings.Contains(got, `\`) {
				assert.Equal(t, got, Unescape(got), "unescaped text is stable")
			}
		})
	}
}

func TestReadSplitFileMissing(t *testing.T) {
	got, err := ReadSplitFile(filepath.Join(t.TempDir(), "missing.tsv"), TrainSplit, WithCorpusLogger(discardLogger()))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ReadSplitFile("", TestSplit, WithCorpusLogger(discardLogger()))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()
	train := filepath.Join(dir, "train.tsv")
	dev := filepath.Join(dir, "dev.tsv")
	require.NoError(t, os.WriteFile(train, []byte("1\t10\t\"positive\"\tgood day\n"), 0o644))
	require.NoError(t, os.WriteFile(dev, []byte("2\t11\tobjective\tnews at ten\n"), 0o644))

	corpus, err := LoadCorpus(train, dev, filepath.Join(dir, "test.tsv"), WithCorpusLogger(discardLogger()))
	require.NoError(t, err)
	assert.Len(t, corpus.Train, 1)
	assert.Len(t, corpus.Dev, 1)
	assert.Empty(t, corpus.Test)

	pairs := corpus.TrainingPairs()
	assert.Equal(t, []TextLabel{
		{Text: "good day", Label: Positive},
		{Text: "news at ten", Label: Neutral},
	}, pairs)
	assert.Empty(t, corpus.TestPairs())
}

func TestSplitString(t *testing.T) {
	assert.Equal(t, "train", TrainSplit.String())
	assert.Equal(t, "dev", DevSplit.String())
	assert.Equal(t, "test", TestSplit.String())
}
