package twitsent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Classifier is the decision cascade. It tries a rule evaluator, then a
// lexicon evaluator, then a statistical classifier, and reports which stage
// decided.
//
// A Classifier is safe for concurrent use once New returns.
type Classifier struct {
	preprocessor Preprocessor
	rules        RuleEvaluator
	lexicon      LexiconEvaluator
	emotions     EmotionEvaluator
	statistical  StatisticalClassifier

	repository   ModelRepository
	trainer      ModelTrainer
	trainingData []TextLabel
	version      string
	logger       *slog.Logger
}

// An Option represents a setting that changes how the cascade is built.
type Option func(*Classifier)

// WithPreprocessor sets the Preprocessor. The default is a TextPreprocessor.
func WithPreprocessor(p Preprocessor) Option {
	return func(c *Classifier) {
		c.preprocessor = p
	}
}

// WithRules sets the rule stage evaluator. The default is EmoticonRules.
func WithRules(r RuleEvaluator) Option {
	return func(c *Classifier) {
		c.rules = r
	}
}

// WithLexicon sets the lexicon stage evaluator. The default is the built-in
// Lexicon.
func WithLexicon(l LexiconEvaluator) Option {
	return func(c *Classifier) {
		c.lexicon = l
	}
}

// WithEmotions sets the emotion evaluator used by ClassifyBatch.
func WithEmotions(e EmotionEvaluator) Option {
	return func(c *Classifier) {
		c.emotions = e
	}
}

// WithStatisticalClassifier sets the statistical stage directly, skipping
// the repository and training.
func WithStatisticalClassifier(s StatisticalClassifier) Option {
	return func(c *Classifier) {
		c.statistical = s
	}
}

// WithRepository sets where trained models are loaded from and saved to.
func WithRepository(r ModelRepository) Option {
	return func(c *Classifier) {
		c.repository = r
	}
}

// WithTrainer sets the trainer used when no stored model exists.
func WithTrainer(t ModelTrainer) Option {
	return func(c *Classifier) {
		c.trainer = t
	}
}

// WithTrainingData supplies the labeled messages to train on when no stored
// model exists.
func WithTrainingData(data []TextLabel) Option {
	return func(c *Classifier) {
		c.trainingData = data
	}
}

// WithModelVersion overrides the repository key. The default is
// ModelVersion().
func WithModelVersion(version string) Option {
	return func(c *Classifier) {
		c.version = version
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) {
		c.logger = l
	}
}

// New builds the cascade. Unless a statistical classifier is supplied, the
// model is loaded from the repository, or trained from the training data and
// saved when the repository has none. With neither a model nor training
// data, New returns a *PreconditionError.
func New(ctx context.Context, opts ...Option) (*Classifier, error) {
	c := &Classifier{}
	for _, applyOpt := range opts {
		applyOpt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.version == "" {
		c.version = ModelVersion()
	}
	if c.preprocessor == nil {
		p, err := NewTextPreprocessor()
		if err != nil {
			return nil, err
		}
		c.preprocessor = p
	}
	if c.rules == nil {
		c.rules = NewEmoticonRules()
	}
	if c.lexicon == nil {
		c.lexicon = NewLexicon()
	}
	if c.emotions == nil {
		c.emotions = NewEmotionLexicon()
	}
	if c.trainer == nil {
		cfg := DefaultTrainingConfig()
		cfg.Logger = c.logger
		c.trainer = NewTrainer(cfg)
	}

	if c.statistical == nil {
		if err := c.bootstrap(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// bootstrap loads the statistical model, training and saving one if the
// repository has none.
func (c *Classifier) bootstrap(ctx context.Context) error {
	if c.repository != nil {
		m, err := c.repository.Load(ctx, c.version)
		switch {
		case err == nil:
			c.logger.Info("[Cascade] loaded model", slog.String("version", c.version))
			return c.useModel(m)
		case !errors.Is(err, ErrModelNotFound):
			return fmt.Errorf("load model %s: %w", c.version, err)
		}
		c.logger.Info("[Cascade] no stored model", slog.String("version", c.version))
	}

	if len(c.trainingData) == 0 {
		return &PreconditionError{
			Resource: "statistical model",
			Reason:   fmt.Sprintf("no stored model %q and no training data", c.version),
		}
	}

	m, err := TrainModel(ctx, c.preprocessor, c.trainer, c.trainingData)
	if err != nil {
		return err
	}
	if c.repository != nil {
		if err := c.repository.Save(ctx, c.version, m); err != nil {
			return fmt.Errorf("save model %s: %w", c.version, err)
		}
		c.logger.Info("[Cascade] saved model", slog.String("version", c.version))
	}
	return c.useModel(m)
}

func (c *Classifier) useModel(m *Model) error {
	clf, err := m.Classifier()
	if err != nil {
		return err
	}
	c.statistical = clf
	return nil
}

// TrainModel normalizes every text in one batch call, pairs the messages
// with their labels and fits a model with trainer.
func TrainModel(ctx context.Context, p Preprocessor, trainer ModelTrainer, data []TextLabel) (*Model, error) {
	if len(data) == 0 {
		return nil, ErrEmptyTrainingSet
	}

	texts := make([]string, len(data))
	for i, d := range data {
		texts[i] = d.Text
	}
	msgs, err := p.Normalize(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("normalize training data: %w", err)
	}
	if len(msgs) != len(texts) {
		return nil, fmt.Errorf("normalize training data: got %d messages for %d texts", len(msgs), len(texts))
	}

	examples := make([]TrainingExample, len(data))
	for i, d := range data {
		examples[i] = TrainingExample{Message: msgs[i], Label: d.Label}
	}
	return trainer.Train(ctx, examples)
}

// Classify classifies one message. It does not compute emotions.
func (c *Classifier) Classify(ctx context.Context, text string) (Prediction, error) {
	msgs, err := c.normalize(ctx, []string{text})
	if err != nil {
		return Prediction{}, err
	}
	out, err := c.run(msgs[0], false)
	if err != nil {
		return Prediction{}, err
	}
	return out.prediction, nil
}

// EmotionAnnotation is the dominant emotion of one message of a batch.
type EmotionAnnotation struct {
	Index   int // position of the message in the batch
	Emotion Emotion
	Profile EmotionProfile
}

// BatchResult holds one prediction per input message, in input order, and
// the dominant emotion of every message the statistical stage decided.
type BatchResult struct {
	Predictions []Prediction
	Emotions    []EmotionAnnotation
}

// ClassifyBatch classifies texts with one preprocessing call. Messages that
// reach the lexicon stage are also scored for emotions; the dominant emotion
// is recorded only for messages the statistical stage decides.
func (c *Classifier) ClassifyBatch(ctx context.Context, texts []string) (*BatchResult, error) {
	res := &BatchResult{Predictions: make([]Prediction, 0, len(texts))}
	if len(texts) == 0 {
		return res, nil
	}

	msgs, err := c.normalize(ctx, texts)
	if err != nil {
		return nil, err
	}

	for i, msg := range msgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.logger.Debug("[Cascade] classifying", slog.Int("message", i+1), slog.Int("total", len(msgs)))

		out, err := c.run(msg, true)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		res.Predictions = append(res.Predictions, out.prediction)
		if out.profile != nil && out.prediction.Provenance == MLBased {
			res.Emotions = append(res.Emotions, EmotionAnnotation{
				Index:   i,
				Emotion: out.profile.Dominant(),
				Profile: *out.profile,
			})
		}
	}
	return res, nil
}

func (c *Classifier) normalize(ctx context.Context, texts []string) ([]Message, error) {
	msgs, err := c.preprocessor.Normalize(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}
	if len(msgs) != len(texts) {
		return nil, fmt.Errorf("preprocess: got %d messages for %d texts", len(msgs), len(texts))
	}
	return msgs, nil
}

type outcome struct {
	prediction Prediction
	profile    *EmotionProfile
}

// run drives one message through the cascade states.
func (c *Classifier) run(msg Message, withEmotions bool) (outcome, error) {
	var out outcome
	for st := stageRule; st != stageDone; st++ {
		v, err := c.evaluate(st, msg, withEmotions, &out)
		if err != nil {
			return outcome{}, fmt.Errorf("%s stage: %w", st, err)
		}
		if v.final {
			out.prediction = v.prediction
			return out, nil
		}
	}
	// decideStatistical always concludes.
	return outcome{}, fmt.Errorf("cascade finished without a verdict")
}

func (c *Classifier) evaluate(st stage, msg Message, withEmotions bool, out *outcome) (verdict, error) {
	switch st {
	case stageRule:
		sp, err := c.rules.Score(msg)
		if err != nil {
			return advance, err
		}
		if err := sp.Validate(); err != nil {
			return advance, err
		}
		return decideRule(sp), nil

	case stageLexicon:
		sp, err := c.lexicon.Score(msg)
		if err != nil {
			return advance, err
		}
		if err := sp.Validate(); err != nil {
			return advance, err
		}
		if withEmotions && c.emotions != nil {
			p, err := c.emotions.Score(msg)
			if err != nil {
				return advance, fmt.Errorf("emotions: %w", err)
			}
			out.profile = &p
		}
		return decideLexicon(sp), nil

	case stageStatistical:
		conf, err := c.statistical.Classify(msg)
		if err != nil {
			return advance, err
		}
		return decideStatistical(conf), nil
	}
	return advance, fmt.Errorf("unknown stage %d", st)
}
