package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Classify one message, or each line of stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		corpus, err := loadCorpus()
		if err != nil {
			return err
		}
		c, closeRepo, err := newClassifier(ctx, corpus)
		if err != nil {
			return err
		}
		defer closeRepo()

		out := cmd.OutOrStdout()
		if len(args) > 0 {
			pred, err := c.Classify(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, pred)
			return nil
		}

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			pred, err := c.Classify(ctx, line)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\t%s\t%s\n", pred.Sentiment, pred.Provenance, line)
		}
		return scanner.Err()
	},
}
