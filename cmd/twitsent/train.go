package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsawler/twitsent"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the statistical model on train+dev and save it, replacing any stored model",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		iterations, _ := cmd.Flags().GetInt("iterations")
		corpus, err := loadCorpus()
		if err != nil {
			return err
		}
		pairs := corpus.TrainingPairs()
		if len(pairs) == 0 {
			return &twitsent.PreconditionError{Resource: "training corpus", Reason: "train and dev splits are empty"}
		}

		pre, err := twitsent.NewTextPreprocessor()
		if err != nil {
			return err
		}
		tc := twitsent.DefaultTrainingConfig()
		tc.Logger = logger
		if iterations > 0 {
			tc.Iterations = iterations
		}

		model, err := twitsent.TrainModel(ctx, pre, twitsent.NewTrainer(tc), pairs)
		if err != nil {
			return err
		}

		repo, closeRepo, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer closeRepo()

		version := twitsent.ModelVersion()
		if err := repo.Save(ctx, version, model); err != nil {
			return err
		}

		m := model.Metrics
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s: %d examples, %d features, %d iterations (converged: %t), training accuracy %.4f, %s\n",
			version, m.Examples, m.Features, m.Iterations, m.Converged, m.TrainingAccuracy, m.TrainingTime)
		return nil
	},
}

func init() {
	trainCmd.Flags().Int("iterations", 0, "Maximum GIS iterations (0 keeps the default)")
}
