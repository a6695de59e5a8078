package twitsent

// Cascade thresholds. They are calibrated against the SemEval tweet corpus
// and must not be changed independently.
const (
	ruleMinPositive    = 1.0  // rule stage: positive needs p >= 1 and n == 0
	ruleMaxNegative    = -1.0 // rule stage: negative needs p == 0 and n <= -1
	lexiconMinPositive = 1.0  // lexicon stage: positive needs p >= 1 and n == 0
	lexiconMaxNegative = -2.0 // lexicon stage: negative needs n <= -2, whatever p is
	mlNegativeFloor    = -0.4 // statistical stage: negative when c.Negative >= -0.4
)

// stage is a state of the cascade.
type stage int

const (
	stageRule stage = iota
	stageLexicon
	stageStatistical
	stageDone
)

func (s stage) String() string {
	switch s {
	case stageRule:
		return "rule"
	case stageLexicon:
		return "lexicon"
	case stageStatistical:
		return "statistical"
	case stageDone:
		return "done"
	}
	return "unknown"
}

// A verdict is what one stage decides: either a terminal prediction or
// advance to the next stage.
type verdict struct {
	prediction Prediction
	final      bool
}

var advance = verdict{}

func conclude(s Sentiment, p Provenance) verdict {
	return verdict{prediction: Prediction{Sentiment: s, Provenance: p}, final: true}
}

// decideRule applies the rule stage thresholds.
func decideRule(sp ScorePair) verdict {
	switch {
	case sp.Positive >= ruleMinPositive && sp.Negative == 0:
		return conclude(Positive, RuleBased)
	case sp.Positive == 0 && sp.Negative <= ruleMaxNegative:
		return conclude(Negative, RuleBased)
	}
	return advance
}

// decideLexicon applies the lexicon stage thresholds. Positive requires no
// negative evidence at all while negative tolerates positive evidence.
func decideLexicon(sp ScorePair) verdict {
	switch {
	case sp.Positive >= lexiconMinPositive && sp.Negative == 0:
		return conclude(Positive, LexiconBased)
	case sp.Negative <= lexiconMaxNegative:
		return conclude(Negative, LexiconBased)
	}
	return advance
}

// decideStatistical applies the statistical stage thresholds. It always
// concludes.
func decideStatistical(c Confidence) verdict {
	switch {
	case c.Negative >= mlNegativeFloor:
		return conclude(Negative, MLBased)
	case c.Positive > c.Neutral:
		return conclude(Positive, MLBased)
	}
	return conclude(Neutral, MLBased)
}
