package twitsent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmotionDominant(t *testing.T) {
	profile := func(values map[Emotion]float64) EmotionProfile {
		var p EmotionProfile
		for e, v := range values {
			p[e] = v
		}
		return p
	}

	tests := []struct {
		profile  EmotionProfile
		expected Emotion
		desc     string
	}{
		{EmotionProfile{}, Anger, "All zero goes to the first emotion"},
		{profile(map[Emotion]float64{Fear: 2, Joy: 1}), Fear, "Clear maximum"},
		{profile(map[Emotion]float64{Joy: 1, Trust: 1}), Joy, "Tie goes to the earlier emotion"},
		{profile(map[Emotion]float64{Sadness: 1, Anger: 1}), Anger, "Tie with the first emotion"},
		{profile(map[Emotion]float64{Trust: 0.5}), Trust, "Last emotion"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.profile.Dominant())
		})
	}
}

func TestEmotionLexiconScore(t *testing.T) {
	el := NewEmotionLexicon()

	p, err := el.Score(normalizeOne(t, "so happy and excited"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, p[Joy])
	assert.Equal(t, 1.0, p[Anticipation])
	assert.Equal(t, Anticipation, p.Dominant())
	assert.Equal(t, 2.0, p.Total())

	p, err = el.Score(normalizeOne(t, "not happy"))
	require.NoError(t, err)
	assert.Zero(t, p.Total())

	el.Add("meh", Sadness)
	el.Add("meh", Sadness)
	p, err = el.Score(normalizeOne(t, "meh"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, p[Sadness])
}

func TestEmotionNames(t *testing.T) {
	all := Emotions()
	require.Len(t, all, 8)
	assert.Equal(t, Anger, all[0])
	assert.Equal(t, Trust, all[7])
	assert.Equal(t, "anticipation", Anticipation.String())
	assert.Equal(t, "Emotion(9)", Emotion(9).String())
}
