package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is stripped from environment variables before they are
// mapped to keys. A double underscore separates nested keys, so
// CARDTALLY_DECK__REPO sets deck.repo.
const EnvPrefix = "CARDTALLY_"

// Config holds all settings of a session.
type Config struct {
	File       string     `koanf:"config"`
	ImportFrom string     `koanf:"import_from"`
	ExportTo   string     `koanf:"export_to"`
	LogLevel   string     `koanf:"log_level" validate:"required,oneof=debug info warn error"`
	Seed       uint64     `koanf:"seed"`
	Deck       DeckConfig `koanf:"deck"`
}

// DeckConfig points at an optional git repository holding deck files.
// When Repo is set it is cloned or pulled into Dir before the session
// starts, and a relative import_from is resolved inside Dir. An empty
// Dir is derived from Repo under ReposDir.
type DeckConfig struct {
	Repo     string `koanf:"repo"`
	Dir      string `koanf:"dir"`
	ReposDir string `koanf:"repos_dir" validate:"required_with=Repo"`
}

// Level converts LogLevel for use with slog.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// NewFlagSet declares every command-line flag with its default.
func NewFlagSet(name string, output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.String("config", "", "Path to a YAML config file")
	fs.String("import_from", "", "Deck file to import when the session starts")
	fs.String("export_to", "", "Deck file to export to when the session ends")
	fs.String("log_level", "warn", "Diagnostic log level (debug, info, warn, error)")
	fs.Uint64("seed", 0, "Seed for question order, 0 picks one from the clock")
	fs.String("deck.repo", "", "Git URL of a repository of deck files")
	fs.String("deck.dir", "", "Local checkout directory for deck.repo")
	fs.String("deck.repos_dir", "repos", "Parent of derived checkout directories")
	return fs
}

// Load parses args and layers the config file, the environment, and
// the flags, later layers winning. Flags left at their default do not
// override earlier layers.
func Load(args []string, output io.Writer) (*Config, error) {
	fs := NewFlagSet("cardtally", output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path, _ := fs.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}
