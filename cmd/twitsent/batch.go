package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsawler/twitsent"
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Classify every line of a file (or stdin) in one batch, with emotions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var in io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		texts, err := readLines(in)
		if err != nil {
			return err
		}

		corpus, err := loadCorpus()
		if err != nil {
			return err
		}
		c, closeRepo, err := newClassifier(ctx, corpus)
		if err != nil {
			return err
		}
		defer closeRepo()

		res, err := c.ClassifyBatch(ctx, texts)
		if err != nil {
			return err
		}
		writeBatch(cmd.OutOrStdout(), texts, res)
		return nil
	},
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// writeBatch prints one row per message: sentiment, provenance, dominant
// emotion ("-" when none was recorded) and the text.
func writeBatch(w io.Writer, texts []string, res *twitsent.BatchResult) {
	emotions := make(map[int]twitsent.Emotion, len(res.Emotions))
	for _, a := range res.Emotions {
		emotions[a.Index] = a.Emotion
	}
	for i, pred := range res.Predictions {
		emotion := "-"
		if e, ok := emotions[i]; ok {
			emotion = e.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", pred.Sentiment, pred.Provenance, emotion, texts[i])
	}
}
