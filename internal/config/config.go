// Package config loads the tunable rules and host settings of a game: a YAML
// file provides the base, environment variables override it.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/talgya/apparat/internal/interaction"
	"github.com/talgya/apparat/internal/policy"
)

// LogLevel is the minimum level the host logs at.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a known level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Slog returns the matching slog level. Unknown values map to Info.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config is the full host configuration.
type Config struct {
	// Seed for every random roll; 0 draws a fresh seed at start.
	Seed       int64    `yaml:"seed" env:"APPARAT_SEED"`
	DBPath     string   `yaml:"db_path" env:"APPARAT_DB_PATH"`
	LogLevel   LogLevel `yaml:"log_level" env:"APPARAT_LOG_LEVEL"`
	PlayerName string   `yaml:"player_name" env:"APPARAT_PLAYER_NAME"`
	Rules      Rules    `yaml:"rules"`
}

// Rules are the gameplay tunables.
type Rules struct {
	MaxInteractionsPerTurn    int  `yaml:"max_interactions_per_turn" env:"APPARAT_MAX_INTERACTIONS_PER_TURN"`
	ActionPointsPerTurn       int  `yaml:"action_points_per_turn" env:"APPARAT_ACTION_POINTS_PER_TURN"`
	DenounceCooldownTurns     int  `yaml:"denounce_cooldown_turns" env:"APPARAT_DENOUNCE_COOLDOWN_TURNS"`
	DenounceEvidenceThreshold int  `yaml:"denounce_evidence_threshold" env:"APPARAT_DENOUNCE_EVIDENCE_THRESHOLD"`
	DecreePowerPremium        int  `yaml:"decree_power_premium" env:"APPARAT_DECREE_POWER_PREMIUM"`
	DecreesEnabled            bool `yaml:"decrees_enabled" env:"APPARAT_DECREES_ENABLED"`
	JournalLimit              int  `yaml:"journal_limit" env:"APPARAT_JOURNAL_LIMIT"`
	ShuffleRelations          bool `yaml:"shuffle_relations" env:"APPARAT_SHUFFLE_RELATIONS"`
}

// Interaction returns the resolver rules.
func (r Rules) Interaction() interaction.Rules {
	return interaction.Rules{
		MaxInteractionsPerTurn:    r.MaxInteractionsPerTurn,
		ActionPointsPerTurn:       r.ActionPointsPerTurn,
		DenounceCooldownTurns:     r.DenounceCooldownTurns,
		DenounceEvidenceThreshold: r.DenounceEvidenceThreshold,
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	ir := interaction.DefaultRules()
	return &Config{
		DBPath:     "data/apparat.db",
		LogLevel:   LogInfo,
		PlayerName: "Comrade",
		Rules: Rules{
			MaxInteractionsPerTurn:    ir.MaxInteractionsPerTurn,
			ActionPointsPerTurn:       ir.ActionPointsPerTurn,
			DenounceCooldownTurns:     ir.DenounceCooldownTurns,
			DenounceEvidenceThreshold: ir.DenounceEvidenceThreshold,
			DecreePowerPremium:        policy.DefaultDecreePremium,
			JournalLimit:              1000,
		},
	}
}

// Load reads the YAML file at path (or starts from Default when path is
// empty), applies environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: open %q: %w", path, err)
		}
		defer f.Close()
		if err := decode(f, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over the defaults and validates the
// result. Environment variables are not consulted.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := decode(r, cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode yaml: %w", err)
	}
	return nil
}

// ParseEnv overrides target's fields from environment variables. Fields
// without a matching variable keep their value.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that cfg holds a coherent set of values. It returns a
// joined error listing every failure.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}

	r := cfg.Rules
	if r.MaxInteractionsPerTurn < 1 {
		errs = append(errs, fmt.Errorf("rules.max_interactions_per_turn %d must be at least 1", r.MaxInteractionsPerTurn))
	}
	if r.ActionPointsPerTurn < 1 {
		errs = append(errs, fmt.Errorf("rules.action_points_per_turn %d must be at least 1", r.ActionPointsPerTurn))
	}
	if r.DenounceCooldownTurns < 0 {
		errs = append(errs, fmt.Errorf("rules.denounce_cooldown_turns %d must not be negative", r.DenounceCooldownTurns))
	}
	if r.DenounceEvidenceThreshold < 0 || r.DenounceEvidenceThreshold > 100 {
		errs = append(errs, fmt.Errorf("rules.denounce_evidence_threshold %d is out of range [0, 100]", r.DenounceEvidenceThreshold))
	}
	if r.DecreePowerPremium < 0 || r.DecreePowerPremium > 100 {
		errs = append(errs, fmt.Errorf("rules.decree_power_premium %d is out of range [0, 100]", r.DecreePowerPremium))
	}
	if r.JournalLimit < 1 {
		errs = append(errs, fmt.Errorf("rules.journal_limit %d must be at least 1", r.JournalLimit))
	}

	return errors.Join(errs...)
}
