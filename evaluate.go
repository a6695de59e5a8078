package twitsent

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ClassMetrics holds precision, recall and F1 for one class.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int // gold examples of the class
	Predicted int // predictions of the class
}

// ProvenanceMetrics counts how many predictions one cascade stage made and
// how many were right.
type ProvenanceMetrics struct {
	Count    int
	Correct  int
	Accuracy float64
}

// Evaluation summarizes predictions against gold labels.
type Evaluation struct {
	Total    int
	Correct  int
	Accuracy float64

	// AvgF1PosNeg is the mean F1 of the positive and negative classes, the
	// SemEval tweet polarity score.
	AvgF1PosNeg float64
	MacroF1     float64

	Classes    map[Sentiment]ClassMetrics
	Provenance map[Provenance]ProvenanceMetrics
	Confusion  map[Sentiment]map[Sentiment]int // gold -> predicted -> count
}

// Evaluate scores preds against gold. Gold labels are normalized first, so
// raw test split labels such as "objective" count as neutral.
func Evaluate(gold []Sentiment, preds []Prediction) (Evaluation, error) {
	if len(gold) != len(preds) {
		return Evaluation{}, fmt.Errorf("evaluate: %d gold labels for %d predictions", len(gold), len(preds))
	}

	ev := Evaluation{
		Total:      len(gold),
		Classes:    make(map[Sentiment]ClassMetrics, len(sentiments)),
		Provenance: make(map[Provenance]ProvenanceMetrics, 3),
		Confusion:  make(map[Sentiment]map[Sentiment]int, len(sentiments)),
	}

	tp := make(map[Sentiment]int)
	for i, g := range gold {
		label := NormalizeSentiment(string(g))
		pred := preds[i]

		if ev.Confusion[label] == nil {
			ev.Confusion[label] = make(map[Sentiment]int)
		}
		ev.Confusion[label][pred.Sentiment]++

		cm := ev.Classes[label]
		cm.Support++
		ev.Classes[label] = cm
		pm := ev.Classes[pred.Sentiment]
		pm.Predicted++
		ev.Classes[pred.Sentiment] = pm

		prov := ev.Provenance[pred.Provenance]
		prov.Count++
		if label == pred.Sentiment {
			ev.Correct++
			tp[label]++
			prov.Correct++
		}
		ev.Provenance[pred.Provenance] = prov
	}

	if ev.Total > 0 {
		ev.Accuracy = float64(ev.Correct) / float64(ev.Total)
	}
	for p, pm := range ev.Provenance {
		if pm.Count > 0 {
			pm.Accuracy = float64(pm.Correct) / float64(pm.Count)
		}
		ev.Provenance[p] = pm
	}

	f1s := make([]float64, 0, len(sentiments))
	for _, s := range sentiments {
		cm := ev.Classes[s]
		if cm.Predicted > 0 {
			cm.Precision = float64(tp[s]) / float64(cm.Predicted)
		}
		if cm.Support > 0 {
			cm.Recall = float64(tp[s]) / float64(cm.Support)
		}
		if cm.Precision+cm.Recall > 0 {
			cm.F1 = 2 * cm.Precision * cm.Recall / (cm.Precision + cm.Recall)
		}
		ev.Classes[s] = cm
		f1s = append(f1s, cm.F1)
	}

	ev.AvgF1PosNeg = (ev.Classes[Positive].F1 + ev.Classes[Negative].F1) / 2
	ev.MacroF1 = floats.Sum(f1s) / float64(len(f1s))
	return ev, nil
}
