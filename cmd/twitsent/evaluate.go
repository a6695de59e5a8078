package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tsawler/twitsent"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Classify the test split and print SemEval scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		corpus, err := loadCorpus()
		if err != nil {
			return err
		}
		if len(corpus.Test) == 0 {
			return &twitsent.PreconditionError{Resource: "test corpus", Reason: "the test split is empty"}
		}
		c, closeRepo, err := newClassifier(ctx, corpus)
		if err != nil {
			return err
		}
		defer closeRepo()

		texts := make([]string, len(corpus.Test))
		gold := make([]twitsent.Sentiment, len(corpus.Test))
		for i, ex := range corpus.Test {
			texts[i] = ex.Text
			gold[i] = ex.Sentiment
		}

		res, err := c.ClassifyBatch(ctx, texts)
		if err != nil {
			return err
		}
		ev, err := twitsent.Evaluate(gold, res.Predictions)
		if err != nil {
			return err
		}
		printEvaluation(cmd.OutOrStdout(), ev)
		return nil
	},
}

func printEvaluation(w io.Writer, ev twitsent.Evaluation) {
	fmt.Fprintf(w, "examples: %d  accuracy: %.4f  avg F1(pos,neg): %.4f  macro F1: %.4f\n",
		ev.Total, ev.Accuracy, ev.AvgF1PosNeg, ev.MacroF1)
	for _, s := range twitsent.Sentiments() {
		cm := ev.Classes[s]
		fmt.Fprintf(w, "  %-8s P=%.4f R=%.4f F1=%.4f support=%d\n", s, cm.Precision, cm.Recall, cm.F1, cm.Support)
	}
	for _, p := range []twitsent.Provenance{twitsent.RuleBased, twitsent.LexiconBased, twitsent.MLBased} {
		pm := ev.Provenance[p]
		fmt.Fprintf(w, "  %s: %d predictions, accuracy %.4f\n", p, pm.Count, pm.Accuracy)
	}
}
