package twitsent

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFixture(t *testing.T, pre *stubPreprocessor) *Classifier {
	t.Helper()

	stat := &stubStatistical{decision: map[string]Confidence{
		`he said "hi"`: {Positive: 0.5, Negative: -1.5, Neutral: 0.25},
	}}
	c, err := New(context.Background(),
		WithPreprocessor(pre),
		WithRules(stubScores{`he said "hi"`: {Positive: 1}}),
		WithLexicon(stubScores{`he said "hi"`: {Positive: 2, Negative: -3}}),
		WithStatisticalClassifier(stat),
		WithLogger(discardLogger()),
	)
	require.NoError(t, err)
	return c
}

func TestReport(t *testing.T) {
	pre := &stubPreprocessor{}
	c := reportFixture(t, pre)

	var buf bytes.Buffer
	err := c.Report(context.Background(), &buf, []TextLabel{
		{Text: `he said "hi"`, Label: Positive},
		{Text: "plain text", Label: "objective"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pre.calls, "all messages are normalized in one call")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, ReportHeader, lines[0])
	assert.Equal(t, "1\t0\t2\t-3\t0.5\t-1.5\t0.25\tpositive\t\"he said hi\"", lines[1])
	assert.Equal(t, "0\t0\t0\t0\t0\t0\t0\tobjective\t\"plain text\"", lines[2])

	for _, line := range lines {
		assert.Len(t, strings.Split(line, "\t"), 9)
	}
}

func TestReportEmpty(t *testing.T) {
	pre := &stubPreprocessor{}
	c := reportFixture(t, pre)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(context.Background(), &buf, c, nil))
	assert.Equal(t, ReportHeader+"\n", buf.String())
	assert.Zero(t, pre.calls)
}
