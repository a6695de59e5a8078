package twitsent

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tinyCorpus = []TextLabel{
	{"I love this, what a lovely day", Positive},
	{"great game tonight, so happy", Positive},
	{"love love love this song", Positive},
	{"awesome news, very happy", Positive},
	{"I hate mondays, terrible traffic", Negative},
	{"this is awful, worst service ever", Negative},
	{"so sad and angry about the news", Negative},
	{"terrible weather, hate it", Negative},
	{"the meeting is at 3pm in room 4", Neutral},
	{"new episode airs on thursday", Neutral},
	{"the store opens at nine tomorrow", Neutral},
	{"reading the report on the train", Neutral},
}

func trainTiny(t *testing.T, iterations int) *Model {
	t.Helper()

	pre, err := NewTextPreprocessor()
	require.NoError(t, err)

	cfg := DefaultTrainingConfig()
	cfg.Iterations = iterations
	cfg.MinIterations = 1
	cfg.Logger = discardLogger()

	model, err := TrainModel(context.Background(), pre, NewTrainer(cfg), tinyCorpus)
	require.NoError(t, err)
	return model
}

func TestTrainModel(t *testing.T) {
	model := trainTiny(t, 50)

	require.NoError(t, model.Validate())
	assert.Equal(t, []Sentiment{Positive, Negative, Neutral}, model.Labels)
	assert.Len(t, model.Weights, len(model.Mapping))
	assert.Equal(t, len(tinyCorpus), model.Metrics.Examples)
	assert.Equal(t, len(model.Mapping), model.Metrics.Features)
	assert.Positive(t, model.Metrics.Iterations)
	assert.False(t, model.TrainedAt.IsZero())
	assert.GreaterOrEqual(t, model.Metrics.TrainingAccuracy, 0.75)
}

func TestTrainedClassifierSeparatesClasses(t *testing.T) {
	model := trainTiny(t, 50)
	clf, err := model.Classifier()
	require.NoError(t, err)

	pre, err := NewTextPreprocessor()
	require.NoError(t, err)
	msgs, err := pre.Normalize(context.Background(), []string{
		"love love love this song",
		"terrible weather, hate it",
	})
	require.NoError(t, err)

	pos, err := clf.Classify(msgs[0])
	require.NoError(t, err)
	assert.Greater(t, pos.Positive, pos.Negative)
	assert.Greater(t, pos.Positive, pos.Neutral)

	neg, err := clf.Classify(msgs[1])
	require.NoError(t, err)
	assert.Greater(t, neg.Negative, neg.Positive)

	for _, v := range []float64{pos.Positive, pos.Negative, pos.Neutral} {
		assert.LessOrEqual(t, math.Abs(v), maxLogit)
	}
}

func TestTrainProgressCallback(t *testing.T) {
	pre, err := NewTextPreprocessor()
	require.NoError(t, err)

	var calls []int
	cfg := DefaultTrainingConfig()
	cfg.Iterations = 5
	cfg.MinIterations = 5
	cfg.Logger = discardLogger()
	cfg.ProgressCallback = func(iteration int, _ float64) {
		calls = append(calls, iteration)
	}

	model, err := TrainModel(context.Background(), pre, NewTrainer(cfg), tinyCorpus)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, calls)
	assert.Equal(t, 5, model.Metrics.Iterations)
}

func TestTrainErrors(t *testing.T) {
	trainer := NewTrainer(TrainingConfig{Logger: discardLogger()})

	_, err := trainer.Train(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyTrainingSet)

	_, err = trainer.Train(context.Background(), []TrainingExample{{Label: "mixed"}, {Label: ""}})
	assert.ErrorIs(t, err, ErrEmptyTrainingSet, "only unknown labels leaves nothing to fit")

	pre, err := NewTextPreprocessor()
	require.NoError(t, err)
	_, err = TrainModel(context.Background(), pre, trainer, nil)
	assert.ErrorIs(t, err, ErrEmptyTrainingSet)
}

func TestTrainNormalizesLabels(t *testing.T) {
	trainer := NewTrainer(TrainingConfig{Iterations: 3, Logger: discardLogger()})
	model, err := trainer.Train(context.Background(), []TrainingExample{
		{Message: Message{Tokens: []Token{{Text: "good", Norm: "good", Tag: TagWord}}}, Label: Positive},
		{Message: Message{Tokens: []Token{{Text: "table", Norm: "table", Tag: TagWord}}}, Label: "objective"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Sentiment{Positive, Neutral}, model.Labels)
}

func TestTrainSkipsUnknownLabels(t *testing.T) {
	trainer := NewTrainer(TrainingConfig{Iterations: 3, Logger: discardLogger()})
	model, err := trainer.Train(context.Background(), []TrainingExample{
		{Message: Message{Tokens: []Token{{Text: "good", Norm: "good", Tag: TagWord}}}, Label: Positive},
		{Message: Message{Tokens: []Token{{Text: "stray", Norm: "stray", Tag: TagWord}}}, Label: ""},
		{Message: Message{Tokens: []Token{{Text: "bad", Norm: "bad", Tag: TagWord}}}, Label: Negative},
		{Message: Message{Tokens: []Token{{Text: "meh", Norm: "meh", Tag: TagWord}}}, Label: "mixed"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Sentiment{Positive, Negative}, model.Labels)
	assert.Equal(t, 2, model.Metrics.Examples)
}

func TestUnseenLabelScores(t *testing.T) {
	trainer := NewTrainer(TrainingConfig{Iterations: 3, Logger: discardLogger()})
	model, err := trainer.Train(context.Background(), []TrainingExample{
		{Message: Message{Tokens: []Token{{Text: "good", Norm: "good", Tag: TagWord}}}, Label: Positive},
		{Message: Message{Tokens: []Token{{Text: "bad", Norm: "bad", Tag: TagWord}}}, Label: Negative},
	})
	require.NoError(t, err)

	clf, err := model.Classifier()
	require.NoError(t, err)
	msg := Message{Tokens: []Token{{Text: "good", Norm: "good", Tag: TagWord}}}

	conf, err := clf.Classify(msg)
	require.NoError(t, err)
	assert.Equal(t, -maxLogit, conf.Neutral)
	assert.Greater(t, conf.Positive, conf.Negative)

	raw, err := clf.DecisionScores(msg)
	require.NoError(t, err)
	assert.Equal(t, -maxLogit, raw.Neutral)
}

func TestModelBinaryRejectsInvalid(t *testing.T) {
	bad := &Model{Labels: []Sentiment{"mixed"}}
	b, err := bad.MarshalBinary()
	require.NoError(t, err)

	var m Model
	assert.Error(t, m.UnmarshalBinary(b))
	assert.Error(t, m.UnmarshalBinary([]byte("not gob")))

	_, err = (&Model{Labels: []Sentiment{Positive}, Mapping: map[string]int{"x": 3}}).Classifier()
	assert.Error(t, err)
}
