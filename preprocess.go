package twitsent

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bbalet/stopwords"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// A Preprocessor turns raw messages into tokenized, normalized Messages. The
// output is positional: one Message per input string, in input order.
//
// Implementations may use statistics over the whole batch, so normalizing a
// batch is not guaranteed to equal normalizing each message on its own.
type Preprocessor interface {
	Normalize(ctx context.Context, texts []string) ([]Message, error)
}

// A PreprocessOpt represents a setting that changes the preprocessor.
type PreprocessOpt func(*TextPreprocessor)

// UsingTokenizer specifies the Tokenizer to use.
func UsingTokenizer(t Tokenizer) PreprocessOpt {
	return func(p *TextPreprocessor) {
		p.tokenizer = t
	}
}

// UsingStopWords sets the ISO 639-1 language used for stop-word flags. An
// empty code disables them.
func UsingStopWords(lang string) PreprocessOpt {
	return func(p *TextPreprocessor) {
		p.stopLang = lang
	}
}

// WithSegmentation can enable (the default) or disable sentence segmentation.
func WithSegmentation(include bool) PreprocessOpt {
	return func(p *TextPreprocessor) {
		p.segment = include
	}
}

// TextPreprocessor is the default Preprocessor for English tweets.
type TextPreprocessor struct {
	tokenizer Tokenizer
	segmenter *sentences.DefaultSentenceTokenizer
	segment   bool
	stopLang  string
	negations map[string]bool
}

// NewTextPreprocessor creates a TextPreprocessor according to the
// user-specified options.
func NewTextPreprocessor(opts ...PreprocessOpt) (*TextPreprocessor, error) {
	p := &TextPreprocessor{
		tokenizer: NewIterTokenizer(),
		segment:   true,
		stopLang:  "en",
		negations: defaultNegations(),
	}
	for _, applyOpt := range opts {
		applyOpt(p)
	}

	if p.segment {
		seg, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			return nil, fmt.Errorf("load sentence tokenizer: %w", err)
		}
		p.segmenter = seg
	}
	return p, nil
}

// Normalize tokenizes, tags and normalizes every text. With more than one
// text, elongated words are resolved against the batch vocabulary.
func (p *TextPreprocessor) Normalize(ctx context.Context, texts []string) ([]Message, error) {
	msgs := make([]Message, len(texts))
	for i, text := range texts {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		msgs[i] = p.normalizeOne(text)
	}

	if len(msgs) > 1 {
		resolveElongations(msgs)
	}
	return msgs, nil
}

func (p *TextPreprocessor) normalizeOne(text string) Message {
	text = norm.NFC.String(strings.ToValidUTF8(text, "�"))
	lower := cases.Lower(language.English)

	var toks []Token
	for _, span := range p.sentenceSpans(text) {
		for _, tok := range p.tokenizer.Tokenize(span.text) {
			tok.Start += span.start
			tok.End += span.start
			toks = append(toks, tok)
		}
	}

	for i := range toks {
		tok := &toks[i]
		tok.Tag = p.tag(tok.Text)
		switch tok.Tag {
		case TagURL:
			tok.Norm = "_url_"
		case TagUser:
			tok.Norm = "_user_"
		case TagEmoticon:
			tok.Norm = tok.Text
		default:
			tok.Norm, tok.Elongated = squeeze(lower.String(tok.Text))
		}
		if tok.Tag == TagWord && p.stopLang != "" {
			tok.Stop = isStopWord(tok.Norm, p.stopLang)
		}
	}

	return Message{Text: text, Tokens: toks}
}

type textSpan struct {
	text  string
	start int
}

// sentenceSpans splits text into sentences and records where each one
// starts in text.
func (p *TextPreprocessor) sentenceSpans(text string) []textSpan {
	if p.segmenter == nil {
		return []textSpan{{text: text}}
	}

	var spans []textSpan
	offset := 0
	for _, sent := range p.segmenter.Tokenize(text) {
		s := strings.TrimSpace(sent.Text)
		if s == "" {
			continue
		}
		idx := strings.Index(text[offset:], s)
		if idx < 0 {
			// The segmenter rewrote the sentence; fall back to the whole text.
			return []textSpan{{text: text}}
		}
		spans = append(spans, textSpan{text: s, start: offset + idx})
		offset += idx + len(s)
	}
	if len(spans) == 0 {
		return []textSpan{{text: text}}
	}
	return spans
}

var numberRE = regexp.MustCompile(`^[+-]?\d+(?:[.,:/]\d+)*%?$`)

func (p *TextPreprocessor) tag(text string) string {
	if _, found := emoticons[text]; found {
		return TagEmoticon
	}
	switch {
	case strings.HasPrefix(text, "http://"), strings.HasPrefix(text, "https://"), strings.HasPrefix(text, "www."):
		return TagURL
	case len(text) > 1 && text[0] == '@':
		return TagUser
	case len(text) > 1 && text[0] == '#':
		return TagHashtag
	case numberRE.MatchString(text):
		return TagNumber
	case p.negations[strings.ToLower(text)]:
		return TagNegation
	case isPunct(text):
		return TagPunct
	}
	return TagWord
}

func isPunct(text string) bool {
	for _, r := range text {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return text != ""
}

// squeeze shortens any run of three or more identical runes to two, as in
// "sooooo" -> "soo".
func squeeze(s string) (string, bool) {
	if utf8.RuneCountInString(s) < 3 {
		return s, false
	}

	var b strings.Builder
	b.Grow(len(s))

	var prev rune
	run := 0
	squeezed := false
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run > 2 {
			squeezed = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), squeezed
}

// collapse shortens every run of repeated runes to one.
func collapse(s string) string {
	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && r == prev {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// resolveElongations maps each squeezed token to its fully collapsed form
// when the batch uses the collapsed form more often.
func resolveElongations(msgs []Message) {
	vocab := map[string]int{}
	for _, m := range msgs {
		for _, tok := range m.Tokens {
			if tok.Tag == TagWord {
				vocab[tok.Norm]++
			}
		}
	}

	for _, m := range msgs {
		for i := range m.Tokens {
			tok := &m.Tokens[i]
			if !tok.Elongated || tok.Tag != TagWord {
				continue
			}
			if c := collapse(tok.Norm); c != tok.Norm && vocab[c] > vocab[tok.Norm] {
				tok.Norm = c
			}
		}
	}
}

// isStopWord reports whether the stopwords library removes word.
func isStopWord(word, lang string) bool {
	return strings.TrimSpace(stopwords.CleanString(word, lang, false)) == ""
}

func defaultNegations() map[string]bool {
	m := make(map[string]bool, len(negationWords))
	for _, w := range negationWords {
		m[w] = true
	}
	return m
}

var negationWords = []string{
	"not", "no", "never", "n't", "nothing", "nobody", "none", "neither",
	"nor", "nowhere", "cannot", "without", "dont", "cant", "wont", "isnt",
	"aint", "didnt", "doesnt", "wasnt", "shouldnt", "wouldnt", "couldnt",
}
