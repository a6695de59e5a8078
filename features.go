package twitsent

import (
	"strconv"
	"strings"
	"unicode"
)

// featureExtractor turns a Message into the binary features the maximum
// entropy model is trained on.
type featureExtractor struct {
	bigrams bool
}

func newFeatureExtractor() *featureExtractor {
	return &featureExtractor{bigrams: true}
}

// extract returns the active features of msg. Every feature is binary; the
// value only distinguishes buckets of count features.
func (fe *featureExtractor) extract(msg Message) map[string]string {
	features := make(map[string]string)

	fe.extractNGrams(msg, features)
	fe.extractTagCounts(msg.Tokens, features)
	fe.extractNegationContext(msg.Tokens, features)
	fe.extractStyleFeatures(msg.Tokens, features)

	return features
}

// extractNGrams extracts word unigrams and bigrams. Stop words are skipped
// as unigrams but kept inside bigrams so "not good" survives.
func (fe *featureExtractor) extractNGrams(msg Message, features map[string]string) {
	tokens := msg.Tokens
	for _, tok := range tokens {
		if tok.Stop || tok.Tag == TagPunct {
			continue
		}
		features["unigram:"+tok.Norm] = "1"
	}

	if !fe.bigrams {
		return
	}
	norms := msg.Norms()
	for i := 0; i < len(norms)-1; i++ {
		if tokens[i].Tag == TagPunct || tokens[i+1].Tag == TagPunct {
			continue
		}
		features["bigram:"+norms[i]+"_"+norms[i+1]] = "1"
	}
}

func (fe *featureExtractor) extractTagCounts(tokens []Token, features map[string]string) {
	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok.Tag]++
	}
	for tag, n := range counts {
		features["tag:"+tag] = bucket(n)
	}
}

// extractNegationContext marks every word between a negator and the next
// punctuation, as in "not NOT_good NOT_at NOT_all".
func (fe *featureExtractor) extractNegationContext(tokens []Token, features map[string]string) {
	negated := false
	for _, tok := range tokens {
		switch tok.Tag {
		case TagNegation:
			negated = true
			continue
		case TagPunct:
			negated = false
			continue
		}
		if negated && tok.Tag == TagWord {
			features["NOT_"+tok.Norm] = "1"
		}
	}
}

func (fe *featureExtractor) extractStyleFeatures(tokens []Token, features map[string]string) {
	var elongated, allCaps, exclamations, questions int
	for _, tok := range tokens {
		if tok.Elongated {
			elongated++
		}
		if tok.Tag == TagWord && len(tok.Text) > 1 && isAllCaps(tok.Text) {
			allCaps++
		}
		exclamations += strings.Count(tok.Text, "!")
		questions += strings.Count(tok.Text, "?")

		if tok.Tag == TagEmoticon {
			switch emoticons[tok.Text] {
			case 1:
				features["emoticon:positive"] = "1"
			case -1:
				features["emoticon:negative"] = "1"
			default:
				features["emoticon:other"] = "1"
			}
		}
	}

	if elongated > 0 {
		features["elongated"] = "1"
	}
	if allCaps > 0 {
		features["all_caps"] = bucket(allCaps)
	}
	if exclamations > 0 {
		features["exclamation"] = bucket(exclamations)
	}
	if questions > 0 {
		features["question"] = bucket(questions)
	}
	if n := len(tokens); n > 0 {
		last := tokens[n-1]
		if strings.Contains(last.Text, "!") {
			features["last:exclamation"] = "1"
		} else if strings.Contains(last.Text, "?") {
			features["last:question"] = "1"
		}
	}
}

// bucket maps a count onto a small set of values so count features stay
// binary: "1", "2", "3" and "4+".
func bucket(n int) string {
	if n >= 4 {
		return "4+"
	}
	return strconv.Itoa(n)
}

func isAllCaps(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
