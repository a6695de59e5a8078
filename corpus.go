package twitsent

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// A LabeledExample is one record of the SemEval tweet corpus.
type LabeledExample struct {
	ID        string
	AuthorID  string
	Sentiment Sentiment
	Text      string
}

// Split identifies one of the three corpus files.
type Split int

const (
	TrainSplit Split = iota
	DevSplit
	TestSplit
)

func (s Split) String() string {
	switch s {
	case TrainSplit:
		return "train"
	case DevSplit:
		return "dev"
	case TestSplit:
		return "test"
	}
	return fmt.Sprintf("Split(%d)", int(s))
}

// MalformedPolicy decides what happens to a record without exactly four
// fields. Either way a warning is logged.
type MalformedPolicy int

const (
	// BestEffort keeps the record: missing fields are empty and fields past
	// the fourth are ignored.
	BestEffort MalformedPolicy = iota
	// DropMalformed skips the record.
	DropMalformed
)

// notAvailable marks a training tweet whose text could not be downloaded.
const notAvailable = "Not Available"

const maxLineSize = 1 << 20

// A CorpusOpt represents a setting that changes how the corpus is read.
type CorpusOpt func(*corpusOpts)

type corpusOpts struct {
	logger *slog.Logger
	policy MalformedPolicy
}

// WithCorpusLogger sets the logger warnings go to.
func WithCorpusLogger(l *slog.Logger) CorpusOpt {
	return func(o *corpusOpts) {
		o.logger = l
	}
}

// WithMalformedPolicy sets how records with the wrong field count are
// handled. The default is BestEffort.
func WithMalformedPolicy(p MalformedPolicy) CorpusOpt {
	return func(o *corpusOpts) {
		o.policy = p
	}
}

func newCorpusOpts(opts []CorpusOpt) corpusOpts {
	o := corpusOpts{logger: slog.Default(), policy: BestEffort}
	for _, applyOpt := range opts {
		applyOpt(&o)
	}
	return o
}

// Corpus holds the three splits of the SemEval tweet corpus.
type Corpus struct {
	Train []LabeledExample
	Dev   []LabeledExample
	Test  []LabeledExample
}

// LoadCorpus reads the three split files. A missing file is logged and
// yields an empty split; a stored model can stand in for missing training
// data.
func LoadCorpus(trainPath, devPath, testPath string, opts ...CorpusOpt) (*Corpus, error) {
	var (
		c   Corpus
		err error
	)
	if c.Train, err = ReadSplitFile(trainPath, TrainSplit, opts...); err != nil {
		return nil, err
	}
	if c.Dev, err = ReadSplitFile(devPath, DevSplit, opts...); err != nil {
		return nil, err
	}
	if c.Test, err = ReadSplitFile(testPath, TestSplit, opts...); err != nil {
		return nil, err
	}
	return &c, nil
}

// ReadSplitFile reads one split from path. A missing file (or an empty
// path) is logged and returns no examples and no error.
func ReadSplitFile(path string, split Split, opts ...CorpusOpt) ([]LabeledExample, error) {
	o := newCorpusOpts(opts)

	if path == "" {
		o.logger.Warn("[Corpus] no file configured", slog.String("split", split.String()))
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			o.logger.Warn("[Corpus] file not found",
				slog.String("split", split.String()),
				slog.String("path", path))
			return nil, nil
		}
		return nil, fmt.Errorf("open %s split: %w", split, err)
	}
	defer f.Close()

	examples, err := ReadSplit(f, split, opts...)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	o.logger.Info("[Corpus] loaded split",
		slog.String("split", split.String()),
		slog.Int("examples", len(examples)))
	return examples, nil
}

// ReadSplit parses tab-separated records (id, author id, sentiment, text)
// from r according to the rules of split:
//
//   - train: the sentiment is quoted and the quotes are stripped; records
//     whose text is "Not Available" are dropped.
//   - dev, test: the whole line is unescaped with Unescape before it is
//     split into fields.
//   - train, dev: "objective" and "objective-OR-neutral" become neutral and
//     the text is trimmed. Test labels and text are kept as they are.
//
// A line without exactly four fields is logged and then handled by the
// MalformedPolicy. Blank lines are logged and always skipped.
//
// Input is decoded as UTF-8; invalid bytes are replaced.
func ReadSplit(r io.Reader, split Split, opts ...CorpusOpt) ([]LabeledExample, error) {
	o := newCorpusOpts(opts)

	scanner := bufio.NewScanner(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var examples []LabeledExample
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			// Nothing to attempt, whatever the policy.
			o.logger.Warn("[Corpus] blank record",
				slog.String("split", split.String()),
				slog.Int("line", lineNo))
			continue
		}
		if split != TrainSplit {
			line = Unescape(line)
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			o.logger.Warn("[Corpus] malformed record",
				slog.String("split", split.String()),
				slog.Int("line", lineNo),
				slog.Int("fields", len(fields)))
			if o.policy == DropMalformed {
				continue
			}
			for len(fields) < 4 {
				fields = append(fields, "")
			}
		}

		ex := LabeledExample{ID: fields[0], AuthorID: fields[1]}
		label := fields[2]
		text := fields[3]
		switch split {
		case TrainSplit:
			label = strings.TrimSuffix(strings.TrimPrefix(label, `"`), `"`)
			text = strings.TrimSpace(text)
			if text == notAvailable {
				continue
			}
			ex.Sentiment = NormalizeSentiment(label)
		case DevSplit:
			text = strings.TrimSpace(text)
			ex.Sentiment = NormalizeSentiment(label)
		default:
			ex.Sentiment = Sentiment(label)
		}
		ex.Text = text
		examples = append(examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return examples, fmt.Errorf("line %d: %w", lineNo+1, err)
	}
	return examples, nil
}

var unescaper = []struct{ from, to string }{
	{`\\`, `\`},
	{`\"`, `"`},
	{`\'`, `'`},
	{`\u2019`, `'`},
	{`\u002c`, `,`},
}

// Unescape replaces the escape sequences the dev and test files carry, one
// sequence at a time in this order: \\, \", \', \u2019 and \u002c. Text
// without escapes is returned unchanged.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	for _, r := range unescaper {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}

// TrainingPairs returns the train and dev examples as text/label pairs.
func (c *Corpus) TrainingPairs() []TextLabel {
	out := make([]TextLabel, 0, len(c.Train)+len(c.Dev))
	for _, split := range [][]LabeledExample{c.Train, c.Dev} {
		for _, ex := range split {
			out = append(out, TextLabel{Text: ex.Text, Label: ex.Sentiment})
		}
	}
	return out
}

// TestPairs returns the test examples as text/label pairs. Labels are raw.
func (c *Corpus) TestPairs() []TextLabel {
	out := make([]TextLabel, 0, len(c.Test))
	for _, ex := range c.Test {
		out = append(out, TextLabel{Text: ex.Text, Label: ex.Sentiment})
	}
	return out
}
