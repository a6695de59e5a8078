package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tsawler/twitsent"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write per-stage scores for a corpus split to a TSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		split, _ := cmd.Flags().GetString("split")
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = cfg.ReportPath
		}

		corpus, err := loadCorpus()
		if err != nil {
			return err
		}
		var examples []twitsent.TextLabel
		switch split {
		case "test":
			examples = corpus.TestPairs()
		case "train":
			examples = corpus.TrainingPairs()
		default:
			return fmt.Errorf("unknown split %q (want test or train)", split)
		}

		c, closeRepo, err := newClassifier(ctx, corpus)
		if err != nil {
			return err
		}
		defer closeRepo()

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		w := bufio.NewWriter(f)
		if err := twitsent.WriteReport(ctx, w, c, examples); err != nil {
			f.Close()
			return err
		}
		if err := w.Flush(); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		logger.Info("[Report] wrote report", "path", out, "rows", len(examples))
		return nil
	},
}

func init() {
	reportCmd.Flags().String("split", "test", "Split to report on: test, or train (train+dev)")
	reportCmd.Flags().String("out", "", "Output file (defaults to the configured report path)")
}
