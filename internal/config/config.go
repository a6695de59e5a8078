package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/subosito/gotenv"
	"github.com/tsawler/twitsent/internal/logging"
)

// Model store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreValkey = "valkey"
)

// Lexicon evaluators.
const (
	LexiconBuiltin = "builtin"
	LexiconVader   = "vader"
)

// Config holds everything the CLI needs to build a classifier.
type Config struct {
	TrainPath string
	DevPath   string
	TestPath  string

	ModelStore     string
	ModelDir       string
	SQLitePath     string
	ValkeyAddr     string
	ValkeyPassword string
	ValkeyTLS      bool

	LogLevel      string
	Lexicon       string
	LexiconPath   string
	DropMalformed bool
	ReportPath    string
}

// Validate returns the first problem found in c.
func (c Config) Validate() error {
	switch c.ModelStore {
	case StoreFile:
		if c.ModelDir == "" {
			return errors.New("missing model dir for file store")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing sqlite path for sqlite store")
		}
	case StoreValkey:
		if c.ValkeyAddr == "" {
			return errors.New("missing valkey address for valkey store")
		}
	default:
		return errors.New("model store must be one of file, sqlite, valkey")
	}
	switch c.Lexicon {
	case LexiconBuiltin, LexiconVader:
	default:
		return errors.New("lexicon must be builtin or vader")
	}
	if c.LexiconPath != "" && c.Lexicon != LexiconBuiltin {
		return errors.New("an external lexicon file needs the builtin lexicon")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return errors.New("log level must be debug, info, warn or error")
	}
	return nil
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		TrainPath:  filepath.FromSlash("data/twitter-train-cleansed-B.tsv"),
		DevPath:    filepath.FromSlash("data/twitter-dev-gold-B.tsv"),
		TestPath:   filepath.FromSlash("data/twitter-test-gold-B.tsv"),
		ModelStore: StoreFile,
		ModelDir:   "models",
		SQLitePath: filepath.FromSlash("models/models.db"),
		ValkeyAddr: "localhost:6379",
		LogLevel:   "info",
		Lexicon:    LexiconBuiltin,
		ReportPath: "report.tsv",
	}
}

// LoadEnv loads config/envs/.env.<env> into the process environment. A
// missing file is not an error.
func LoadEnv(env string) {
	if env == "" {
		return
	}
	envFile := filepath.Join("config", "envs", ".env."+env)
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("[Config] No .env file found, using OS environment", slog.String("file", envFile))
	}
}

// Load returns the defaults overridden by TWITSENT_* variables, after
// loading the env file for env.
func Load(env string) Config {
	LoadEnv(env)
	c := Default()
	c.applyEnv(os.LookupEnv)
	return c
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			} else {
				slog.Warn("[Config] ignoring invalid boolean", slog.String("key", key), slog.String("value", v))
			}
		}
	}

	str("TWITSENT_TRAIN_PATH", &c.TrainPath)
	str("TWITSENT_DEV_PATH", &c.DevPath)
	str("TWITSENT_TEST_PATH", &c.TestPath)
	str("TWITSENT_MODEL_STORE", &c.ModelStore)
	str("TWITSENT_MODEL_DIR", &c.ModelDir)
	str("TWITSENT_SQLITE_PATH", &c.SQLitePath)
	str("TWITSENT_VALKEY_ADDR", &c.ValkeyAddr)
	str("TWITSENT_VALKEY_PASSWORD", &c.ValkeyPassword)
	boolean("TWITSENT_VALKEY_TLS", &c.ValkeyTLS)
	str("TWITSENT_LOG_LEVEL", &c.LogLevel)
	str("TWITSENT_LEXICON", &c.Lexicon)
	str("TWITSENT_LEXICON_PATH", &c.LexiconPath)
	boolean("TWITSENT_DROP_MALFORMED", &c.DropMalformed)
	str("TWITSENT_REPORT_PATH", &c.ReportPath)
}
