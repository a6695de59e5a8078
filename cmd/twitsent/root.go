package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tsawler/twitsent"
	"github.com/tsawler/twitsent/internal/config"
	"github.com/tsawler/twitsent/internal/logging"
	"github.com/tsawler/twitsent/modelstore"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "twitsent",
	Short: "Hybrid cascade sentiment classifier for tweets",
	Long: "twitsent classifies short messages as positive, negative or neutral with a " +
		"rule stage, a lexicon stage and a maximum entropy model, reporting which stage decided.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

// Execute runs the root command. Canceling ctx stops batch work between
// messages.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("env", "", "Load config/envs/.env.<env> before reading TWITSENT_* variables")
	f.String("train", "", "Training split (TSV)")
	f.String("dev", "", "Dev split (TSV)")
	f.String("test", "", "Test split (TSV)")
	f.String("store", "", "Model store: file, sqlite or valkey")
	f.String("model-dir", "", "Directory of the file model store")
	f.String("sqlite", "", "Path to the SQLite model store")
	f.String("valkey", "", "Address of the Valkey model store")
	f.String("log-level", "", "Log level: debug, info, warn or error")
	f.String("lexicon", "", "Lexicon stage: builtin or vader")
	f.String("lexicon-file", "", "External JSON lexicon merged into the builtin lexicon")
	f.Bool("drop-malformed", false, "Skip corpus records that do not have four fields")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the configuration (env file, then TWITSENT_* variables, then
// flags), validates it and installs the logger.
func setup(cmd *cobra.Command) error {
	env, _ := cmd.Flags().GetString("env")
	cfg = config.Load(env)

	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("train", &cfg.TrainPath)
	override("dev", &cfg.DevPath)
	override("test", &cfg.TestPath)
	override("store", &cfg.ModelStore)
	override("model-dir", &cfg.ModelDir)
	override("sqlite", &cfg.SQLitePath)
	override("valkey", &cfg.ValkeyAddr)
	override("log-level", &cfg.LogLevel)
	override("lexicon", &cfg.Lexicon)
	override("lexicon-file", &cfg.LexiconPath)
	if flags.Changed("drop-malformed") {
		cfg.DropMalformed, _ = flags.GetBool("drop-malformed")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = logging.InitLogger(os.Stderr, level)
	return nil
}

// openRepository returns the configured model store and a function that
// releases it.
func openRepository(ctx context.Context) (twitsent.ModelRepository, func(), error) {
	switch cfg.ModelStore {
	case config.StoreSQLite:
		if err := modelstore.EnsureDir(cfg.SQLitePath); err != nil {
			return nil, nil, err
		}
		db, err := modelstore.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	case config.StoreValkey:
		v, err := modelstore.DialValkey(ctx, modelstore.ValkeyOptions{
			Addr:     cfg.ValkeyAddr,
			Password: cfg.ValkeyPassword,
			TLS:      cfg.ValkeyTLS,
		})
		if err != nil {
			return nil, nil, err
		}
		return v, v.Close, nil
	}
	return twitsent.NewFileRepository(cfg.ModelDir), func() {}, nil
}

func newLexicon() (twitsent.LexiconEvaluator, error) {
	if cfg.Lexicon == config.LexiconVader {
		return twitsent.NewVaderLexicon(), nil
	}
	if cfg.LexiconPath != "" {
		return twitsent.LoadLexicon(cfg.LexiconPath)
	}
	return twitsent.NewLexicon(), nil
}

func loadCorpus() (*twitsent.Corpus, error) {
	policy := twitsent.BestEffort
	if cfg.DropMalformed {
		policy = twitsent.DropMalformed
	}
	return twitsent.LoadCorpus(cfg.TrainPath, cfg.DevPath, cfg.TestPath,
		twitsent.WithCorpusLogger(logger),
		twitsent.WithMalformedPolicy(policy))
}

// newClassifier builds the cascade against the configured store. The
// training pairs are only used when the store has no model.
func newClassifier(ctx context.Context, corpus *twitsent.Corpus) (*twitsent.Classifier, func(), error) {
	repo, closeRepo, err := openRepository(ctx)
	if err != nil {
		return nil, nil, err
	}
	lex, err := newLexicon()
	if err != nil {
		closeRepo()
		return nil, nil, err
	}

	opts := []twitsent.Option{
		twitsent.WithRepository(repo),
		twitsent.WithLexicon(lex),
		twitsent.WithLogger(logger),
	}
	if corpus != nil {
		opts = append(opts, twitsent.WithTrainingData(corpus.TrainingPairs()))
	}

	c, err := twitsent.New(ctx, opts...)
	if err != nil {
		closeRepo()
		return nil, nil, err
	}
	return c, closeRepo, nil
}
