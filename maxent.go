package twitsent

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	biasFeature = "__BIAS__"

	// maxLogit bounds the calibrated confidence Classify reports.
	maxLogit = 20.0
)

// featureKey joins a feature, its value and a label into a mapping key.
func featureKey(fname, fval string, label Sentiment) string {
	return strings.Join([]string{fname, fval, string(label)}, "\x1f")
}

// maxentClassifier scores messages with a trained Model.
type maxentClassifier struct {
	model    *Model
	features *featureExtractor
}

func newMaxentClassifier(m *Model) *maxentClassifier {
	return &maxentClassifier{model: m, features: newFeatureExtractor()}
}

// activations returns the linear score of each class in Sentiments() order.
// Classes the model never saw get -Inf.
func (c *maxentClassifier) activations(msg Message) []float64 {
	feats := c.features.extract(msg)
	feats[biasFeature] = "1"

	out := make([]float64, len(sentiments))
	for i, label := range sentiments {
		if !c.hasLabel(label) {
			out[i] = math.Inf(-1)
			continue
		}
		for fname, fval := range feats {
			if idx, found := c.model.Mapping[featureKey(fname, fval, label)]; found {
				out[i] += c.model.Weights[idx]
			}
		}
	}
	return out
}

func (c *maxentClassifier) hasLabel(label Sentiment) bool {
	for _, l := range c.model.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// DecisionScores returns the raw activation of each class. A class the
// model was not trained on reports -maxLogit.
func (c *maxentClassifier) DecisionScores(msg Message) (Confidence, error) {
	act := c.activations(msg)
	for i, v := range act {
		if math.IsInf(v, -1) {
			act[i] = -maxLogit
		}
	}
	return Confidence{Positive: act[0], Negative: act[1], Neutral: act[2]}, nil
}

// Classify returns, per class, the log-odds log(p/(1-p)) of the class
// probability under the model, clamped to [-maxLogit, maxLogit].
func (c *maxentClassifier) Classify(msg Message) (Confidence, error) {
	act := c.activations(msg)
	logits := make([]float64, len(act))
	others := make([]float64, 0, len(act)-1)
	for i := range act {
		others = others[:0]
		for j, v := range act {
			if j != i {
				others = append(others, v)
			}
		}
		lse := floats.LogSumExp(others)
		if math.IsInf(lse, -1) || math.IsNaN(lse) {
			// No other class is possible.
			logits[i] = maxLogit
			if math.IsInf(act[i], -1) {
				logits[i] = -maxLogit
			}
			continue
		}
		logits[i] = clamp(act[i]-lse, maxLogit)
	}
	return Confidence{Positive: logits[0], Negative: logits[1], Neutral: logits[2]}, nil
}

func clamp(v, limit float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > limit:
		return limit
	case v < -limit:
		return -limit
	}
	return v
}

// predict returns the most probable class.
func (c *maxentClassifier) predict(msg Message) Sentiment {
	return sentiments[floats.MaxIdx(c.activations(msg))]
}

type featureEntry struct {
	features map[string]string
	label    Sentiment
}

type featureSet []featureEntry

// gisEncoding holds the feature mapping and, per example and label, the
// weight indices that fire.
type gisEncoding struct {
	labels      []Sentiment
	mapping     map[string]int
	active      [][][]int // example -> label -> weight indices
	cardinality int
}

// encodeMaxent builds the (feature, value, label) mapping from the attested
// pairs in corpus, adding the bias feature to every example.
func encodeMaxent(corpus featureSet) *gisEncoding {
	enc := &gisEncoding{mapping: make(map[string]int)}

	seen := make(map[Sentiment]bool)
	for i := range corpus {
		corpus[i].features[biasFeature] = "1"
		seen[corpus[i].label] = true

		for fname, fval := range corpus[i].features {
			key := featureKey(fname, fval, corpus[i].label)
			if _, found := enc.mapping[key]; !found {
				enc.mapping[key] = len(enc.mapping)
			}
		}
		if n := len(corpus[i].features); n > enc.cardinality {
			enc.cardinality = n
		}
	}
	for _, label := range sentiments {
		if seen[label] {
			enc.labels = append(enc.labels, label)
		}
	}

	enc.active = make([][][]int, len(corpus))
	for i, entry := range corpus {
		enc.active[i] = make([][]int, len(enc.labels))
		for j, label := range enc.labels {
			for fname, fval := range entry.features {
				if idx, found := enc.mapping[featureKey(fname, fval, label)]; found {
					enc.active[i][j] = append(enc.active[i][j], idx)
				}
			}
		}
	}
	return enc
}

func (enc *gisEncoding) labelIndex(label Sentiment) int {
	for j, l := range enc.labels {
		if l == label {
			return j
		}
	}
	return -1
}

// empiricalCount counts each (feature, value, label) index over the true
// labels of corpus.
func (enc *gisEncoding) empiricalCount(corpus featureSet) *mat.VecDense {
	count := mat.NewVecDense(len(enc.mapping), nil)
	for i, entry := range corpus {
		j := enc.labelIndex(entry.label)
		for _, idx := range enc.active[i][j] {
			count.SetVec(idx, count.AtVec(idx)+1)
		}
	}
	return count
}

// expectedCount computes the feature counts expected under weights.
func (enc *gisEncoding) expectedCount(weights *mat.VecDense) *mat.VecDense {
	count := mat.NewVecDense(len(enc.mapping), nil)
	scores := make([]float64, len(enc.labels))
	for i := range enc.active {
		for j, idxs := range enc.active[i] {
			scores[j] = 0
			for _, idx := range idxs {
				scores[j] += weights.AtVec(idx)
			}
		}
		lse := floats.LogSumExp(scores)
		for j, idxs := range enc.active[i] {
			p := math.Exp(scores[j] - lse)
			for _, idx := range idxs {
				count.SetVec(idx, count.AtVec(idx)+p)
			}
		}
	}
	return count
}

// trainMaxent fits a multinomial maximum entropy model with Generalized
// Iterative Scaling.
func trainMaxent(ctx context.Context, corpus featureSet, cfg TrainingConfig, logger *slog.Logger) (*Model, TrainingMetrics, error) {
	var metrics TrainingMetrics

	enc := encodeMaxent(corpus)
	rows := len(enc.mapping)
	logger.Info("[Trainer] encoded features",
		slog.Int("features", rows),
		slog.Int("labels", len(enc.labels)),
		slog.Int("cardinality", enc.cardinality))

	empCount := enc.empiricalCount(corpus)
	for i := 0; i < rows; i++ {
		empCount.SetVec(i, math.Log(empCount.AtVec(i)))
	}

	weights := mat.NewVecDense(rows, nil)
	delta := mat.NewVecDense(rows, nil)
	cInv := 1.0 / float64(enc.cardinality)

	for iter := 0; iter < cfg.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, metrics, err
		}

		estCount := enc.expectedCount(weights)
		for i := 0; i < rows; i++ {
			if v := estCount.AtVec(i); v > 0 {
				estCount.SetVec(i, math.Log(v))
			} else {
				estCount.SetVec(i, empCount.AtVec(i))
			}
		}

		// w_i += (1/C) * (log(empirical) - log(expected))
		delta.SubVec(empCount, estCount)
		delta.ScaleVec(cInv, delta)
		weights.AddVec(weights, delta)

		metrics.Iterations = iter + 1
		avgDelta := mat.Norm(delta, 1) / float64(rows)
		if cfg.ProgressCallback != nil {
			cfg.ProgressCallback(iter+1, avgDelta)
		}
		if iter%20 == 0 {
			logger.Debug("[Trainer] iteration",
				slog.Int("iteration", iter+1),
				slog.Float64("avg_delta", avgDelta))
		}
		if iter+1 >= cfg.MinIterations && avgDelta < cfg.MinDelta {
			metrics.Converged = true
			logger.Info("[Trainer] converged",
				slog.Int("iteration", iter+1),
				slog.Float64("avg_delta", avgDelta))
			break
		}
	}

	w := make([]float64, rows)
	copy(w, weights.RawVector().Data)
	model := &Model{
		Labels:  enc.labels,
		Mapping: enc.mapping,
		Weights: w,
	}
	metrics.Features = rows
	return model, metrics, nil
}
