package twitsent

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// A LexiconEvaluator scores a message by looking its words up in a polarity
// lexicon. Positive evidence goes in ScorePair.Positive (>= 0), negative
// evidence in ScorePair.Negative (<= 0).
type LexiconEvaluator interface {
	Score(Message) (ScorePair, error)
}

// NegationWindow is the number of tokens a negator reaches forward.
const NegationWindow = 3

// Lexicon manages polarity word lists.
type Lexicon struct {
	words     map[string]float64
	modifiers map[string]float64
	negations map[string]bool
	mutex     sync.RWMutex
}

// ExternalLexicon represents the JSON structure for external lexicon files.
type ExternalLexicon struct {
	Languages map[string]LanguageLexicon `json:"languages"`
}

// LanguageLexicon contains all word categories for a specific language.
type LanguageLexicon struct {
	Words        []WordEntry     `json:"words,omitempty"`
	Modifiers    []ModifierEntry `json:"modifiers,omitempty"`
	Negations    []string        `json:"negations,omitempty"`
	Positive     []WordEntry     `json:"positive,omitempty"`
	Negative     []WordEntry     `json:"negative,omitempty"`
	Intensifiers []string        `json:"intensifiers,omitempty"`
	Diminishers  []string        `json:"diminishers,omitempty"`
}

// WordEntry represents a sentiment word in JSON format. Only the sign of
// Sentiment is used.
type WordEntry struct {
	Word      string  `json:"word"`
	Sentiment float64 `json:"sentiment"`
}

// ModifierEntry represents a modifier word in JSON format.
type ModifierEntry struct {
	Word   string  `json:"word"`
	Factor float64 `json:"factor"`
}

// NewLexicon returns the built-in English lexicon.
func NewLexicon() *Lexicon {
	lex := &Lexicon{
		words:     make(map[string]float64, len(positiveWords)+len(negativeWords)),
		modifiers: make(map[string]float64, len(modifierWords)),
		negations: make(map[string]bool, len(negationWords)),
	}
	for _, w := range positiveWords {
		lex.words[w] = 1
	}
	for _, w := range negativeWords {
		lex.words[w] = -1
	}
	for w, f := range modifierWords {
		lex.modifiers[w] = f
	}
	for _, w := range negationWords {
		lex.negations[w] = true
	}
	return lex
}

// LoadLexicon returns the built-in lexicon merged with the "english" section
// of the JSON file at path.
func LoadLexicon(path string) (*Lexicon, error) {
	lex := NewLexicon()
	if err := lex.LoadExternalLexicon(path, "english"); err != nil {
		return nil, fmt.Errorf("failed to load external lexicon: %w", err)
	}
	return lex, nil
}

// LoadExternalLexicon loads and merges external lexicon data for the given
// language keys.
func (lex *Lexicon) LoadExternalLexicon(path string, languages ...string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading lexicon file: %w", err)
	}

	var external ExternalLexicon
	if err := json.Unmarshal(data, &external); err != nil {
		return fmt.Errorf("error parsing lexicon JSON: %w", err)
	}

	lex.mutex.Lock()
	defer lex.mutex.Unlock()
	for _, lang := range languages {
		if langData, exists := external.Languages[strings.ToLower(lang)]; exists {
			lex.mergeLanguageData(langData)
		}
	}
	return nil
}

func (lex *Lexicon) mergeLanguageData(data LanguageLexicon) {
	for _, group := range [][]WordEntry{data.Words, data.Positive, data.Negative} {
		for _, entry := range group {
			if p := polarity(entry.Sentiment); p != 0 {
				lex.words[strings.ToLower(entry.Word)] = p
			} else {
				delete(lex.words, strings.ToLower(entry.Word))
			}
		}
	}
	for _, modifier := range data.Modifiers {
		lex.modifiers[strings.ToLower(modifier.Word)] = modifier.Factor
	}
	for _, intensifier := range data.Intensifiers {
		lex.modifiers[strings.ToLower(intensifier)] = 0.5
	}
	for _, diminisher := range data.Diminishers {
		lex.modifiers[strings.ToLower(diminisher)] = -0.5
	}
	for _, negation := range data.Negations {
		lex.negations[strings.ToLower(negation)] = true
	}
}

func polarity(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Polarity returns +1, -1 or 0 for word.
func (lex *Lexicon) Polarity(word string) float64 {
	lex.mutex.RLock()
	defer lex.mutex.RUnlock()
	return lex.words[word]
}

// IsNegation checks if word is a negation.
func (lex *Lexicon) IsNegation(word string) bool {
	lex.mutex.RLock()
	defer lex.mutex.RUnlock()
	return lex.negations[word]
}

// ModifierStrength returns the modifier factor of word, or 0.
func (lex *Lexicon) ModifierStrength(word string) float64 {
	lex.mutex.RLock()
	defer lex.mutex.RUnlock()
	return lex.modifiers[word]
}

// AddWord adds or replaces a word. A zero polarity removes it.
func (lex *Lexicon) AddWord(word string, sentiment float64) {
	lex.mutex.Lock()
	defer lex.mutex.Unlock()

	word = strings.ToLower(word)
	if p := polarity(sentiment); p != 0 {
		lex.words[word] = p
	} else {
		delete(lex.words, word)
	}
}

// Size returns the number of polar words in the lexicon.
func (lex *Lexicon) Size() int {
	lex.mutex.RLock()
	defer lex.mutex.RUnlock()
	return len(lex.words)
}

// Score sums the positive and negative contributions of msg's words
// separately. Intensifiers and diminishers in the two preceding tokens scale
// a word; a negator within NegationWindow tokens flips it.
func (lex *Lexicon) Score(msg Message) (ScorePair, error) {
	var sp ScorePair
	toks := msg.Tokens
	for i, tok := range toks {
		word := lexiconKey(tok)
		if word == "" {
			continue
		}
		p := lex.Polarity(word)
		if p == 0 {
			continue
		}

		p = lex.applyModifiers(p, toks, i)
		if lex.negated(toks, i) {
			p = -p
		}

		if p > 0 {
			sp.Positive += p
		} else {
			sp.Negative += p
		}
	}
	return sp, nil
}

func lexiconKey(tok Token) string {
	switch tok.Tag {
	case TagWord:
		return tok.Norm
	case TagHashtag:
		return strings.TrimPrefix(tok.Norm, "#")
	}
	return ""
}

func (lex *Lexicon) applyModifiers(p float64, toks []Token, position int) float64 {
	for i := max(0, position-2); i < position; i++ {
		if m := lex.ModifierStrength(toks[i].Norm); m != 0 {
			return p * (1 + m)
		}
	}
	return p
}

// negated reports whether a negator precedes position within the window with
// no clause boundary in between.
func (lex *Lexicon) negated(toks []Token, position int) bool {
	for i := position - 1; i >= 0 && i >= position-NegationWindow; i-- {
		if isClauseBoundary(toks[i]) {
			return false
		}
		if toks[i].Tag == TagNegation || lex.IsNegation(toks[i].Norm) {
			return true
		}
	}
	return false
}

var clauseBoundaries = map[string]bool{
	",":        true,
	";":        true,
	":":        true,
	".":        true,
	"!":        true,
	"?":        true,
	"but":      true,
	"however":  true,
	"although": true,
}

func isClauseBoundary(tok Token) bool {
	return clauseBoundaries[tok.Norm]
}
