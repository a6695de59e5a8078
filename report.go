package twitsent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReportHeader is the first line of a diagnostics report.
const ReportHeader = "pos_score_rule\tneg_score_rule\tpos_score_lex\tneg_score_lex\tpos_conf\tneg_conf\tneutral_conf\tclass\tmessage"

// Report writes a tab-separated diagnostics table to w: a header, then one
// row per example with the rule and lexicon score pairs, the raw statistical
// decision scores, the gold label and the message. Double quotes are removed
// from the message before it is wrapped in quotes; nothing is escaped.
//
// All messages are normalized in one batch call.
func (c *Classifier) Report(ctx context.Context, w io.Writer, examples []TextLabel) error {
	texts := make([]string, len(examples))
	for i, ex := range examples {
		texts[i] = ex.Text
	}

	var msgs []Message
	if len(texts) > 0 {
		var err error
		if msgs, err = c.normalize(ctx, texts); err != nil {
			return err
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(ReportHeader + "\n"); err != nil {
		return err
	}

	for i, msg := range msgs {
		if err := ctx.Err(); err != nil {
			return err
		}

		rule, err := c.rules.Score(msg)
		if err != nil {
			return fmt.Errorf("example %d: rule stage: %w", i, err)
		}
		lex, err := c.lexicon.Score(msg)
		if err != nil {
			return fmt.Errorf("example %d: lexicon stage: %w", i, err)
		}
		conf, err := c.statistical.DecisionScores(msg)
		if err != nil {
			return fmt.Errorf("example %d: statistical stage: %w", i, err)
		}

		fields := []string{
			formatScore(rule.Positive),
			formatScore(rule.Negative),
			formatScore(lex.Positive),
			formatScore(lex.Negative),
			formatScore(conf.Positive),
			formatScore(conf.Negative),
			formatScore(conf.Neutral),
			string(examples[i].Label),
			`"` + strings.ReplaceAll(examples[i].Text, `"`, "") + `"`,
		}
		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteReport is the function form of Classifier.Report.
func WriteReport(ctx context.Context, w io.Writer, c *Classifier, examples []TextLabel) error {
	return c.Report(ctx, w, examples)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
