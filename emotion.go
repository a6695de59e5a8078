package twitsent

import "fmt"

// Emotion is one of the eight basic emotions.
type Emotion int

// Emotions in canonical order. Ties in EmotionProfile.Dominant go to the
// earliest emotion in this order.
const (
	Anger Emotion = iota
	Anticipation
	Disgust
	Fear
	Joy
	Sadness
	Surprise
	Trust
	numEmotions
)

var emotionNames = [numEmotions]string{
	"anger", "anticipation", "disgust", "fear", "joy", "sadness", "surprise", "trust",
}

func (e Emotion) String() string {
	if e < 0 || e >= numEmotions {
		return fmt.Sprintf("Emotion(%d)", int(e))
	}
	return emotionNames[e]
}

// Emotions returns the eight emotions in canonical order.
func Emotions() []Emotion {
	out := make([]Emotion, numEmotions)
	for i := range out {
		out[i] = Emotion(i)
	}
	return out
}

// An EmotionProfile holds a non-negative intensity per emotion, indexed by
// Emotion.
type EmotionProfile [numEmotions]float64

// Dominant returns the emotion with the highest intensity. Ties go to the
// emotion that comes first in canonical order, so an all-zero profile is
// dominated by Anger.
func (p EmotionProfile) Dominant() Emotion {
	best := Anger
	for e := Anger + 1; e < numEmotions; e++ {
		if p[e] > p[best] {
			best = e
		}
	}
	return best
}

// Total returns the sum of all intensities.
func (p EmotionProfile) Total() float64 {
	var sum float64
	for _, v := range p {
		sum += v
	}
	return sum
}

// An EmotionEvaluator scores a message on the eight emotions.
type EmotionEvaluator interface {
	Score(Message) (EmotionProfile, error)
}

// EmotionLexicon counts words from a per-emotion word list. A word inside a
// negation window is not counted.
type EmotionLexicon struct {
	words     map[string][]Emotion
	negations map[string]bool
}

// NewEmotionLexicon returns the built-in English emotion lexicon.
func NewEmotionLexicon() *EmotionLexicon {
	el := &EmotionLexicon{
		words:     make(map[string][]Emotion),
		negations: defaultNegations(),
	}
	for e, list := range emotionWords {
		for _, w := range list {
			el.Add(w, Emotion(e))
		}
	}
	return el
}

// Add associates word with emotion e.
func (el *EmotionLexicon) Add(word string, e Emotion) {
	for _, have := range el.words[word] {
		if have == e {
			return
		}
	}
	el.words[word] = append(el.words[word], e)
}

// Score implements EmotionEvaluator.
func (el *EmotionLexicon) Score(msg Message) (EmotionProfile, error) {
	var p EmotionProfile
	for i, tok := range msg.Tokens {
		word := lexiconKey(tok)
		if word == "" {
			continue
		}
		emotions := el.words[word]
		if len(emotions) == 0 || el.negated(msg.Tokens, i) {
			continue
		}
		for _, e := range emotions {
			p[e]++
		}
	}
	return p, nil
}

func (el *EmotionLexicon) negated(toks []Token, position int) bool {
	for i := position - 1; i >= 0 && i >= position-NegationWindow; i-- {
		if isClauseBoundary(toks[i]) {
			return false
		}
		if toks[i].Tag == TagNegation || el.negations[toks[i].Norm] {
			return true
		}
	}
	return false
}

var emotionWords = [numEmotions][]string{
	Anger: {
		"angry", "anger", "mad", "furious", "rage", "hate", "hated", "annoyed",
		"annoying", "irritated", "outraged", "pissed", "fuming", "frustrated",
		"hostile", "livid", "kill", "fight", "damn", "wtf",
	},
	Anticipation: {
		"anticipate", "expect", "excited", "waiting", "wait", "soon",
		"tomorrow", "tonight", "countdown", "hope", "hopefully", "plan",
		"ready", "upcoming", "eager", "prepare", "looking", "coming",
	},
	Disgust: {
		"disgust", "disgusting", "gross", "nasty", "yuck", "ew", "eww",
		"sick", "vile", "revolting", "awful", "horrible", "filthy", "rotten",
		"creepy", "pathetic",
	},
	Fear: {
		"afraid", "scared", "fear", "frightened", "terrified", "anxious",
		"nervous", "worried", "worry", "panic", "horror", "threat", "danger",
		"dangerous", "alarmed", "dread",
	},
	Joy: {
		"happy", "joy", "cheerful", "delighted", "pleased", "glad", "joyful",
		"elated", "love", "fun", "awesome", "great", "yay", "smile", "laugh",
		"lol", "haha", "celebrate", "wonderful", "amazing",
	},
	Sadness: {
		"sad", "unhappy", "depressed", "miserable", "cry", "crying", "tears",
		"lonely", "miss", "lost", "grief", "heartbroken", "sorry", "hurt",
		"died", "death", "rip", "gloomy",
	},
	Surprise: {
		"surprise", "surprised", "shocked", "amazed", "astonished", "wow",
		"omg", "unexpected", "suddenly", "whoa", "unbelievable", "stunned",
		"sudden",
	},
	Trust: {
		"trust", "believe", "faith", "honest", "loyal", "reliable", "true",
		"friend", "friends", "family", "sure", "safe", "support", "proud",
		"respect", "confident",
	},
}
