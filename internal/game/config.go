package game

import (
	"fmt"
	"strings"
)

// Rules holds the tunable constants of the simulation.
type Rules struct {
	BreakChance      float64
	DaysPerSeason    int
	ForecastAccuracy float64
	OptimalPrice     float64
	AdvertPrice      float64
	ScooterPrice     float64
	PartPrice        float64
	AdvertEffect     float64
	StartingCash     float64
	StartingScooters int
}

// DefaultRules are the shop's standard prices and odds.
func DefaultRules() Rules {
	return Rules{
		BreakChance:      0.05,
		DaysPerSeason:    6,
		ForecastAccuracy: 0.70,
		OptimalPrice:     15.0,
		AdvertPrice:      5.0,
		ScooterPrice:     100.0,
		PartPrice:        25.0,
		AdvertEffect:     0.1,
		StartingCash:     100.0,
		StartingScooters: 10,
	}
}

// SellPrice is what a working scooter fetches when sold back.
func (r Rules) SellPrice() float64 {
	return r.ScooterPrice / 2
}

// Validate rejects rules the simulation cannot run with.
func (r Rules) Validate() error {
	if r.BreakChance < 0 || r.BreakChance > 1 {
		return fmt.Errorf("break chance must be between 0 and 1, got %v", r.BreakChance)
	}
	if r.ForecastAccuracy < 0 || r.ForecastAccuracy > 1 {
		return fmt.Errorf("forecast accuracy must be between 0 and 1, got %v", r.ForecastAccuracy)
	}
	if r.DaysPerSeason < 1 {
		return fmt.Errorf("days per season must be positive, got %d", r.DaysPerSeason)
	}
	if r.OptimalPrice <= 0 {
		return fmt.Errorf("optimal price must be positive, got %v", r.OptimalPrice)
	}
	if r.AdvertPrice < 0 || r.ScooterPrice < 0 || r.PartPrice < 0 {
		return fmt.Errorf("prices must not be negative")
	}
	if r.AdvertEffect < 0 {
		return fmt.Errorf("advert effect must not be negative, got %v", r.AdvertEffect)
	}
	if r.StartingScooters < 0 {
		return fmt.Errorf("starting scooters must not be negative, got %d", r.StartingScooters)
	}
	return nil
}

type RunConfig struct {
	BusinessName string
	Rules        Rules
	Seed         int64
}

func (c RunConfig) Validate() error {
	if strings.TrimSpace(c.BusinessName) == "" {
		return fmt.Errorf("business name must not be empty")
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	return nil
}
