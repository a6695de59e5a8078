package twitsent

// A RuleEvaluator scores a message with high-precision rules. Positive
// evidence goes in ScorePair.Positive (>= 0), negative evidence in
// ScorePair.Negative (<= 0).
type RuleEvaluator interface {
	Score(Message) (ScorePair, error)
}

// EmoticonRules counts polar emoticons and a few conventional hashtags.
// An emoticon directly preceded by a negator is ignored, as in "not :)".
type EmoticonRules struct {
	emoticons map[string]int
	hashtags  map[string]int
}

// A RuleOpt represents a setting that changes the rule table.
type RuleOpt func(*EmoticonRules)

// WithEmoticon adds or overrides the polarity of one emoticon. The
// emoticon is matched against the token text whatever its tag, so it must
// survive tokenization as one token.
func WithEmoticon(emoticon string, polarity int) RuleOpt {
	return func(r *EmoticonRules) {
		r.emoticons[emoticon] = sign(polarity)
	}
}

// WithHashtagRule adds or overrides the polarity of one hashtag. The tag is
// matched against the normalized token, so it should be lower case and
// include the leading '#'.
func WithHashtagRule(tag string, polarity int) RuleOpt {
	return func(r *EmoticonRules) {
		r.hashtags[tag] = sign(polarity)
	}
}

// NewEmoticonRules creates the default rule table.
func NewEmoticonRules(opts ...RuleOpt) *EmoticonRules {
	r := &EmoticonRules{
		emoticons: make(map[string]int, len(emoticons)),
		hashtags:  make(map[string]int, len(hashtagRules)),
	}
	for k, v := range emoticons {
		r.emoticons[k] = v
	}
	for k, v := range hashtagRules {
		r.hashtags[k] = v
	}
	for _, applyOpt := range opts {
		applyOpt(r)
	}
	return r
}

// Score counts positive and negative rule hits in msg.
func (r *EmoticonRules) Score(msg Message) (ScorePair, error) {
	var sp ScorePair
	for i, tok := range msg.Tokens {
		var polarity int
		if tok.Tag == TagHashtag {
			polarity = r.hashtags[tok.Norm]
		} else {
			// Emoticons added with WithEmoticon are unknown to the tagger.
			polarity = r.emoticons[tok.Text]
		}
		if polarity == 0 {
			continue
		}
		if i > 0 && msg.Tokens[i-1].Tag == TagNegation {
			continue
		}
		if polarity > 0 {
			sp.Positive++
		} else {
			sp.Negative--
		}
	}
	return sp, nil
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

var hashtagRules = map[string]int{
	"#win":          1,
	"#winning":      1,
	"#happy":        1,
	"#love":         1,
	"#awesome":      1,
	"#blessed":      1,
	"#fail":         -1,
	"#epicfail":     -1,
	"#sad":          -1,
	"#fml":          -1,
	"#annoyed":      -1,
	"#disappointed": -1,
}
