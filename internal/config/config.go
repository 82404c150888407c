// Package config defines the game's process configuration and its loading.
//
// Values are layered: defaults from New, then an optional YAML file, then
// SCOOT_ environment variables. Nested keys use a double underscore in the
// environment, so SCOOT_RULES__BREAK_CHANCE sets rules.break_chance.
package config

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/appengine-ltd/scooter-rentals/internal/game"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=trace debug info warn error disabled"`

	// LogFormat is json or console.
	LogFormat string `koanf:"log_format" validate:"oneof=json console"`

	// LogFile receives log output. Empty means stderr.
	LogFile string `koanf:"log_file"`

	// SavePath is where the game is saved on quit and loaded on start.
	SavePath string `koanf:"save_path" validate:"required"`

	// HistoryDB is the SQLite file recording each rental day. Empty disables history.
	HistoryDB string `koanf:"history_db"`

	// MetricsFile receives a Prometheus textfile after each day. Empty disables it.
	MetricsFile string `koanf:"metrics_file"`

	// Seed fixes the random source. Zero picks one from the clock.
	Seed int64 `koanf:"seed"`

	Rules Rules `koanf:"rules"`
}

// Rules mirrors game.Rules with configuration tags.
type Rules struct {
	BreakChance      float64 `koanf:"break_chance" validate:"gte=0,lte=1"`
	DaysPerSeason    int     `koanf:"days_per_season" validate:"gte=1"`
	ForecastAccuracy float64 `koanf:"forecast_accuracy" validate:"gte=0,lte=1"`
	OptimalPrice     float64 `koanf:"optimal_price" validate:"gt=0"`
	AdvertPrice      float64 `koanf:"advert_price" validate:"gte=0"`
	ScooterPrice     float64 `koanf:"scooter_price" validate:"gte=0"`
	PartPrice        float64 `koanf:"part_price" validate:"gte=0"`
	AdvertEffect     float64 `koanf:"advert_effect" validate:"gte=0"`
	StartingCash     float64 `koanf:"starting_cash"`
	StartingScooters int     `koanf:"starting_scooters" validate:"gte=0"`
}

// New creates a Config with defaults. Context is accepted first to follow
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	rules := game.DefaultRules()
	return &Config{
		LogLevel:  "info",
		LogFormat: "console",
		SavePath:  "savegame.yaml",
		Rules: Rules{
			BreakChance:      rules.BreakChance,
			DaysPerSeason:    rules.DaysPerSeason,
			ForecastAccuracy: rules.ForecastAccuracy,
			OptimalPrice:     rules.OptimalPrice,
			AdvertPrice:      rules.AdvertPrice,
			ScooterPrice:     rules.ScooterPrice,
			PartPrice:        rules.PartPrice,
			AdvertEffect:     rules.AdvertEffect,
			StartingCash:     rules.StartingCash,
			StartingScooters: rules.StartingScooters,
		},
	}
}

// GameRules converts the configured rules for the simulation.
func (c *Config) GameRules() game.Rules {
	return game.Rules{
		BreakChance:      c.Rules.BreakChance,
		DaysPerSeason:    c.Rules.DaysPerSeason,
		ForecastAccuracy: c.Rules.ForecastAccuracy,
		OptimalPrice:     c.Rules.OptimalPrice,
		AdvertPrice:      c.Rules.AdvertPrice,
		ScooterPrice:     c.Rules.ScooterPrice,
		PartPrice:        c.Rules.PartPrice,
		AdvertEffect:     c.Rules.AdvertEffect,
		StartingCash:     c.Rules.StartingCash,
		StartingScooters: c.Rules.StartingScooters,
	}
}

var validate = validator.New()

// Validate checks struct tags and then the simulation's own rule checks.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.GameRules().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
