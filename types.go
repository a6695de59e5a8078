package twitsent

import "fmt"

// Sentiment is the polarity label of a message.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// sentiments lists the three classes in the order reports and models use.
var sentiments = []Sentiment{Positive, Negative, Neutral}

// Sentiments returns the three sentiment classes in canonical order.
func Sentiments() []Sentiment {
	out := make([]Sentiment, len(sentiments))
	copy(out, sentiments)
	return out
}

// NormalizeSentiment folds the corpus labels "objective" and
// "objective-OR-neutral" into Neutral. Other labels are returned unchanged.
func NormalizeSentiment(label string) Sentiment {
	switch label {
	case "objective", "objective-OR-neutral":
		return Neutral
	}
	return Sentiment(label)
}

// Valid reports whether s is one of the three sentiment classes.
func (s Sentiment) Valid() bool {
	return s == Positive || s == Negative || s == Neutral
}

// Provenance records which cascade stage produced a verdict.
type Provenance string

const (
	RuleBased    Provenance = "RB"
	LexiconBased Provenance = "LB"
	MLBased      Provenance = "ML"
)

// A Prediction is the output of the cascade for one message.
type Prediction struct {
	Sentiment  Sentiment
	Provenance Provenance
}

// String returns the prediction as "sentiment (provenance)".
func (p Prediction) String() string {
	return fmt.Sprintf("%s (%s)", p.Sentiment, p.Provenance)
}

// Token tags produced by the default preprocessor.
const (
	TagWord     = "WORD"
	TagURL      = "URL"
	TagUser     = "USR"
	TagHashtag  = "HT"
	TagEmoticon = "EMO"
	TagNumber   = "NUM"
	TagPunct    = "PUNCT"
	TagNegation = "NEG"
)

// A Token represents an individual token of a message such as a word,
// emoticon, or punctuation symbol.
type Token struct {
	Text      string // The token's content as it appeared in the message.
	Norm      string // The normalized form evaluators look up.
	Tag       string // The token's tag.
	Start     int    // Byte offset of the token in the sanitized message.
	End       int    // Byte offset just past the token.
	Stop      bool   // Whether Norm is a stop word.
	Elongated bool   // Whether Norm was squeezed from a longer repetition.
}

// A Message is one tokenized, normalized message. Messages are produced by a
// Preprocessor and are never mutated afterwards.
type Message struct {
	Text   string
	Tokens []Token
}

// Norms returns the normalized form of every token.
func (m Message) Norms() []string {
	out := make([]string, len(m.Tokens))
	for i, tok := range m.Tokens {
		out[i] = tok.Norm
	}
	return out
}

// A ScorePair holds signed evidence from a rule or lexicon evaluator.
// Positive is never negative and Negative is never positive.
type ScorePair struct {
	Positive float64
	Negative float64
}

// Validate reports ErrInvalidScore when sp breaks the sign convention.
func (sp ScorePair) Validate() error {
	if sp.Positive < 0 || sp.Negative > 0 {
		return fmt.Errorf("%w: positive=%g negative=%g", ErrInvalidScore, sp.Positive, sp.Negative)
	}
	return nil
}

// Confidence holds the per-class confidence of the statistical classifier.
// Values are not normalized and may be negative.
type Confidence struct {
	Positive float64
	Negative float64
	Neutral  float64
}

// ConfidenceFromMap builds a Confidence from a class-name keyed map. The map
// must contain exactly the three sentiment classes.
func ConfidenceFromMap(m map[string]float64) (Confidence, error) {
	var c Confidence
	if len(m) != len(sentiments) {
		return c, fmt.Errorf("%w: want %d classes, got %d", ErrInvalidConfidence, len(sentiments), len(m))
	}
	for key, v := range m {
		switch Sentiment(key) {
		case Positive:
			c.Positive = v
		case Negative:
			c.Negative = v
		case Neutral:
			c.Neutral = v
		default:
			return Confidence{}, fmt.Errorf("%w: unknown class %q", ErrInvalidConfidence, key)
		}
	}
	return c, nil
}

// Of returns the confidence for class s.
func (c Confidence) Of(s Sentiment) float64 {
	switch s {
	case Positive:
		return c.Positive
	case Negative:
		return c.Negative
	default:
		return c.Neutral
	}
}

// String formats the triple in positive, negative, neutral order.
func (c Confidence) String() string {
	return fmt.Sprintf("positive=%.4f negative=%.4f neutral=%.4f", c.Positive, c.Negative, c.Neutral)
}

// TextLabel pairs a raw message with its gold label.
type TextLabel struct {
	Text  string
	Label Sentiment
}
