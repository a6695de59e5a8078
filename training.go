package twitsent

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// TrainingExample pairs a normalized message with its gold label.
type TrainingExample struct {
	Message Message
	Label   Sentiment
}

// A ModelTrainer fits a statistical model to labeled messages.
type ModelTrainer interface {
	Train(ctx context.Context, examples []TrainingExample) (*Model, error)
}

// TrainingConfig contains configuration for model training
type TrainingConfig struct {
	Iterations       int     // Maximum GIS iterations
	MinDelta         float64 // Stop once the mean absolute weight update falls below this
	MinIterations    int     // Never stop before this many iterations
	ProgressCallback func(iteration int, avgDelta float64)
	Logger           *slog.Logger
}

// DefaultTrainingConfig returns a default training configuration
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Iterations:    100,
		MinDelta:      0.0005,
		MinIterations: 30,
	}
}

// TrainingMetrics contains metrics from training
type TrainingMetrics struct {
	Iterations       int
	Converged        bool
	TrainingAccuracy float64
	Examples         int
	Features         int
	TrainingTime     time.Duration
}

// Trainer trains the maximum entropy sentiment model.
type Trainer struct {
	config   TrainingConfig
	features *featureExtractor
	logger   *slog.Logger
}

// NewTrainer creates a new trainer with the given configuration
func NewTrainer(config TrainingConfig) *Trainer {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.Iterations <= 0 {
		config.Iterations = DefaultTrainingConfig().Iterations
	}
	return &Trainer{config: config, features: newFeatureExtractor(), logger: logger}
}

// Train fits a model to examples. Labels are normalized first; an example
// whose label is not a sentiment class is logged and skipped.
func (t *Trainer) Train(ctx context.Context, examples []TrainingExample) (*Model, error) {
	startTime := time.Now()

	corpus := make(featureSet, 0, len(examples))
	kept := make([]TrainingExample, 0, len(examples))
	for i, ex := range examples {
		label := NormalizeSentiment(string(ex.Label))
		if !label.Valid() {
			t.logger.Warn("[Trainer] skipping example with unknown label",
				slog.Int("example", i),
				slog.String("label", string(ex.Label)))
			continue
		}
		kept = append(kept, TrainingExample{Message: ex.Message, Label: label})
		corpus = append(corpus, featureEntry{
			features: t.features.extract(ex.Message),
			label:    label,
		})
	}
	if len(corpus) == 0 {
		return nil, ErrEmptyTrainingSet
	}

	t.logger.Info("[Trainer] training maxent model", slog.Int("examples", len(corpus)))
	model, metrics, err := trainMaxent(ctx, corpus, t.config, t.logger)
	if err != nil {
		return nil, fmt.Errorf("train maxent: %w", err)
	}

	metrics.Examples = len(kept)
	metrics.TrainingAccuracy = t.accuracy(model, kept)
	metrics.TrainingTime = time.Since(startTime)
	model.TrainedAt = startTime.UTC()
	model.Metrics = metrics

	t.logger.Info("[Trainer] training finished",
		slog.Int("iterations", metrics.Iterations),
		slog.Bool("converged", metrics.Converged),
		slog.Float64("accuracy", metrics.TrainingAccuracy),
		slog.Duration("duration", metrics.TrainingTime))

	return model, nil
}

// accuracy evaluates model on the examples it was trained on.
func (t *Trainer) accuracy(model *Model, examples []TrainingExample) float64 {
	clf := newMaxentClassifier(model)
	correct := 0
	for _, ex := range examples {
		if clf.predict(ex.Message) == NormalizeSentiment(string(ex.Label)) {
			correct++
		}
	}
	return float64(correct) / float64(len(examples))
}
