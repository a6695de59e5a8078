package twitsent

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"
)

// A StatisticalClassifier scores a message for each sentiment class.
//
// Classify returns calibrated confidences the cascade thresholds against.
// DecisionScores returns the raw, pre-calibration margins; it is only used
// for diagnostics.
type StatisticalClassifier interface {
	Classify(Message) (Confidence, error)
	DecisionScores(Message) (Confidence, error)
}

// A Model holds the trained maximum entropy weights. It is the artifact a
// ModelRepository stores.
type Model struct {
	Labels    []Sentiment
	Mapping   map[string]int // (feature, value, label) -> weight index
	Weights   []float64
	TrainedAt time.Time
	Metrics   TrainingMetrics
}

// modelPayload is the gob wire form of a Model.
type modelPayload struct {
	Labels    []string
	Mapping   map[string]int
	Weights   []float64
	TrainedAt time.Time
	Metrics   TrainingMetrics
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *Model) MarshalBinary() ([]byte, error) {
	p := modelPayload{
		Labels:    make([]string, len(m.Labels)),
		Mapping:   m.Mapping,
		Weights:   m.Weights,
		TrainedAt: m.TrainedAt,
		Metrics:   m.Metrics,
	}
	for i, l := range m.Labels {
		p.Labels[i] = string(l)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(p); err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (m *Model) UnmarshalBinary(data []byte) error {
	var p modelPayload
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&p); err != nil {
		return fmt.Errorf("decode model: %w", err)
	}

	labels := make([]Sentiment, len(p.Labels))
	for i, l := range p.Labels {
		labels[i] = Sentiment(l)
	}
	decoded := Model{
		Labels:    labels,
		Mapping:   p.Mapping,
		Weights:   p.Weights,
		TrainedAt: p.TrainedAt,
		Metrics:   p.Metrics,
	}
	if err := decoded.Validate(); err != nil {
		return err
	}
	*m = decoded
	return nil
}

// Validate checks that the weights cover every mapped feature and that every
// label is a sentiment class.
func (m *Model) Validate() error {
	if len(m.Labels) == 0 {
		return fmt.Errorf("invalid model: no labels")
	}
	for _, l := range m.Labels {
		if !l.Valid() {
			return fmt.Errorf("invalid model: unknown label %q", l)
		}
	}
	for key, idx := range m.Mapping {
		if idx < 0 || idx >= len(m.Weights) {
			return fmt.Errorf("invalid model: feature %q maps to weight %d of %d", key, idx, len(m.Weights))
		}
	}
	return nil
}

// Classifier returns a StatisticalClassifier that scores messages with m.
func (m *Model) Classifier() (StatisticalClassifier, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return newMaxentClassifier(m), nil
}
