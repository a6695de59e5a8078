package twitsent

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenTester func(string) bool

// A Tokenizer splits one sentence of text into tokens. Offsets are relative
// to the text it was given.
type Tokenizer interface {
	Tokenize(string) []Token
}

// iterTokenizer splits a message into words, keeping emoticons, mentions,
// hashtags and URLs whole.
type iterTokenizer struct {
	specialRE      *regexp.Regexp
	sanitizer      *strings.Replacer
	contractions   []string
	splitCases     []string
	suffixes       []string
	prefixes       []string
	emoticons      map[string]int
	isUnsplittable TokenTester
}

type TokenizerOptFunc func(*iterTokenizer)

// UsingIsUnsplittable gives a function that tests whether a token is splittable or not.
func UsingIsUnsplittable(x TokenTester) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.isUnsplittable = x
	}
}

// Use the provided special regex for unsplittable tokens.
func UsingSpecialRE(x *regexp.Regexp) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.specialRE = x
	}
}

// Use the provided sanitizer.
func UsingSanitizer(x *strings.Replacer) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.sanitizer = x
	}
}

// Use the provided map of emoticons to polarity.
func UsingEmoticons(x map[string]int) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.emoticons = x
	}
}

// Use the provided contractions.
func UsingContractions(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.contractions = x
	}
}

// NewIterTokenizer is the constructor for the default tweet tokenizer.
func NewIterTokenizer(opts ...TokenizerOptFunc) *iterTokenizer {
	tok := new(iterTokenizer)

	tok.contractions = contractions
	tok.emoticons = emoticons
	tok.isUnsplittable = func(_ string) bool { return false }
	tok.prefixes = prefixes
	tok.sanitizer = sanitizer
	tok.specialRE = internalRE
	tok.suffixes = suffixes

	for _, applyOpt := range opts {
		applyOpt(tok)
	}

	tok.splitCases = append(tok.splitCases, tok.contractions...)

	return tok
}

func addToken(s string, start int, toks []Token) []Token {
	if strings.TrimSpace(s) != "" {
		toks = append(toks, Token{Text: s, Start: start, End: start + len(s)})
	}
	return toks
}

func (t *iterTokenizer) isSpecial(token string) bool {
	_, found := t.emoticons[token]
	return found || t.specialRE.MatchString(token) || t.isUnsplittable(token)
}

// doSplit splits one whitespace-delimited span. Offsets are relative to the
// start of the span.
func (t *iterTokenizer) doSplit(token string) []Token {
	tokens := []Token{}
	suffs := []Token{}
	offset := 0

	last := 0
	for token != "" && utf8.RuneCountInString(token) != last {
		if t.isSpecial(token) {
			// Emoticons, mentions, hashtags and URLs are kept without any
			// further processing.
			tokens = addToken(token, offset, tokens)
			break
		}
		last = utf8.RuneCountInString(token)
		if hasAnyPrefix(token, t.prefixes) {
			// Remove prefixes -- e.g., $100 -> [$, 100].
			tokens = addToken(token[:1], offset, tokens)
			token = token[1:]
			offset++
		} else if idx := hasAnyIndex(token, t.splitCases); idx > 0 {
			// don't -> [do, n't], they'll -> [they, 'll].
			tokens = addToken(token[:idx], offset, tokens)
			offset += idx
			token = token[idx:]
		} else if hasAnySuffix(token, t.suffixes) {
			// Remove suffixes -- e.g., Well) -> [Well, )].
			end := offset + len(token) - 1
			suffs = append([]Token{{Text: token[len(token)-1:], Start: end, End: end + 1}}, suffs...)
			token = token[:len(token)-1]
		} else {
			tokens = addToken(token, offset, tokens)
			break
		}
	}

	return append(tokens, suffs...)
}

// Tokenize splits text into tokens. Offsets refer to the sanitized text.
func (t *iterTokenizer) Tokenize(text string) []Token {
	var tokens []Token

	clean := t.sanitizer.Replace(text)
	cache := map[string][]Token{}

	start := -1
	flush := func(end int) {
		span := clean[start:end]
		toks, found := cache[span]
		if !found {
			toks = t.doSplit(span)
			cache[span] = toks
		}
		for _, tok := range toks {
			tok.Start += start
			tok.End += start
			tokens = append(tokens, tok)
		}
		start = -1
	}

	for i, r := range clean {
		if unicode.IsSpace(r) {
			if start >= 0 {
				flush(i)
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		flush(len(clean))
	}

	return tokens
}

func hasAnyPrefix(s string, prefixes []string) bool {
	n := len(s)
	for _, prefix := range prefixes {
		if n > len(prefix) && strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	n := len(s)
	for _, suffix := range suffixes {
		if n >= len(suffix) && strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// hasAnyIndex returns the byte index of the first split case found in s
// (case-insensitive, ASCII), or -1.
func hasAnyIndex(s string, cases []string) int {
	lower := strings.ToLower(s)
	if len(lower) != len(s) {
		lower = s
	}
	for _, c := range cases {
		if idx := strings.Index(lower, c); idx >= 0 {
			return idx
		}
	}
	return -1
}

var internalRE = regexp.MustCompile(`^(?:[A-Za-z]\.){2,}$|^[A-Z][a-z]{1,2}\.$|^@\w+$|^#\w+$|^(?:https?://|www\.)\S+$`)
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`)
var contractions = []string{"'ll", "'s", "'re", "'m", "'ve", "'d", "n't"}
var suffixes = []string{",", ")", `"`, "]", "!", ";", ".", "?", ":", "'"}
var prefixes = []string{"$", "(", `"`, "["}

// emoticons maps each recognized emoticon to its polarity: 1 positive,
// -1 negative, 0 recognized but neutral.
var emoticons = map[string]int{
	":)":    1,
	":-)":   1,
	":))":   1,
	":-))":  1,
	":)))":  1,
	"(:":    1,
	"(-:":   1,
	":]":    1,
	":-]":   1,
	"[-:":   1,
	"=)":    1,
	"(=":    1,
	":D":    1,
	":-D":   1,
	"=D":    1,
	"8D":    1,
	"8-D":   1,
	"8-)":   1,
	"xD":    1,
	"XD":    1,
	"xDD":   1,
	"XDD":   1,
	";)":    1,
	";-)":   1,
	"(;":    1,
	"(-;":   1,
	":P":    1,
	":-P":   1,
	":p":    1,
	":-p":   1,
	":*":    1,
	":-*":   1,
	":3":    1,
	":o)":   1,
	"(o:":   1,
	"<3":    1,
	"^_^":   1,
	"^^":    1,
	"^___^": 1,
	":`)":   1,

	"\U0001F600": 1, // grinning face
	"\U0001F602": 1, // tears of joy
	"\U0001F60A": 1, // smiling eyes
	"\U0001F60D": 1, // heart eyes
	"\U0001F44D": 1, // thumbs up
	"❤":          1, // heart

	":(":          -1,
	":-(":         -1,
	":((":         -1,
	":(((":        -1,
	"):":          -1,
	")-:":         -1,
	":[":          -1,
	":-[":         -1,
	"=(":          -1,
	":'(":         -1,
	":`(":         -1,
	":`-(":        -1,
	"D:":          -1,
	":/":          -1,
	":-/":         -1,
	":\\":         -1,
	":|":          -1,
	":-|":         -1,
	"=|":          -1,
	">:(":         -1,
	":@":          -1,
	"</3":         -1,
	"-_-":         -1,
	"-__-":        -1,
	"v_v":         -1,
	"V_V":         -1,
	"(╯°□°）╯︵┻━┻": -1,

	"\U0001F622": -1, // crying face
	"\U0001F62D": -1, // loudly crying face
	"\U0001F620": -1, // angry face
	"\U0001F621": -1, // pouting face
	"\U0001F44E": -1, // thumbs down

	":o":       0,
	":-o":      0,
	":0":       0,
	":-X":      0,
	":-x":      0,
	"O.o":      0,
	"O_o":      0,
	"o_O":      0,
	"o_o":      0,
	"o_0":      0,
	"@_@":      0,
	"(-_-)":    0,
	"(._.)":    0,
	"(¬_¬)":    0,
	"(ಠ_ಠ)":    0,
	"¯\\(ツ)/¯": 0,
}
