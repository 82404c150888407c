package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RunState struct {
	Config   RunConfig
	GameID   string
	Day      int
	Business *Business
	Weather  *Weather
}

// Snapshot is the flat, primitive form of a run used by save files.
type Snapshot struct {
	GameID string `yaml:"game_id"`
	Day    int    `yaml:"day"`

	Name              string  `yaml:"name"`
	Cash              float64 `yaml:"cash"`
	ScootersWorking   int     `yaml:"scooters_working"`
	ScootersBroken    int     `yaml:"scooters_broken"`
	ScooterParts      int     `yaml:"scooter_parts"`
	NumAdvertisements int     `yaml:"num_advertisements"`

	Current      string `yaml:"current"`
	Forecast     string `yaml:"forecast"`
	Temperature  string `yaml:"temperature"`
	Season       string `yaml:"season"`
	DaysOfSeason int    `yaml:"days_of_season"`
}

func NewRunState(config RunConfig) (*RunState, error) {
	resolvedConfig, err := resolveRunConfig(config)
	if err != nil {
		return nil, err
	}

	rng := seededRNG(resolvedConfig.Seed)
	state := &RunState{
		Config:   resolvedConfig,
		GameID:   uuid.NewString(),
		Day:      1,
		Business: NewBusiness(resolvedConfig.BusinessName, resolvedConfig.Rules, rng),
		Weather:  NewWeather(resolvedConfig.Rules, rng),
	}
	return state, nil
}

// RestoreRunState rebuilds a run from a snapshot. The business name comes
// from the snapshot; rules and seed come from config.
func RestoreRunState(snap Snapshot, config RunConfig) (*RunState, error) {
	config.BusinessName = snap.Name
	resolvedConfig, err := resolveRunConfig(config)
	if err != nil {
		return nil, err
	}
	if snap.Day < 1 {
		return nil, fmt.Errorf("invalid day in snapshot: %d", snap.Day)
	}
	if snap.ScootersWorking < 0 || snap.ScootersBroken < 0 || snap.ScooterParts < 0 || snap.NumAdvertisements < 0 {
		return nil, fmt.Errorf("snapshot has negative fleet counts")
	}

	gameID := snap.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	}

	rng := seededRNG(resolvedConfig.Seed)
	business := RestoreBusiness(BusinessConfig{
		Name:            snap.Name,
		Cash:            snap.Cash,
		WorkingScooters: snap.ScootersWorking,
		BrokenScooters:  snap.ScootersBroken,
		ScooterParts:    snap.ScooterParts,
		Advertisements:  snap.NumAdvertisements,
	}, resolvedConfig.Rules, rng)
	weather := RestoreWeather(WeatherConfig{
		Current:      ParseWeatherType(snap.Current),
		Forecast:     ParseWeatherType(snap.Forecast),
		Temperature:  ParseTemperature(snap.Temperature),
		Season:       ParseSeason(snap.Season),
		DaysOfSeason: snap.DaysOfSeason,
	}, resolvedConfig.Rules, rng)

	return &RunState{
		Config:   resolvedConfig,
		GameID:   gameID,
		Day:      snap.Day,
		Business: business,
		Weather:  weather,
	}, nil
}

func (s *RunState) Snapshot() Snapshot {
	b := s.Business.Config()
	w := s.Weather.Config()
	return Snapshot{
		GameID:            s.GameID,
		Day:               s.Day,
		Name:              b.Name,
		Cash:              b.Cash,
		ScootersWorking:   b.WorkingScooters,
		ScootersBroken:    b.BrokenScooters,
		ScooterParts:      b.ScooterParts,
		NumAdvertisements: b.Advertisements,
		Current:           w.Current.String(),
		Forecast:          w.Forecast.String(),
		Temperature:       w.Temperature.String(),
		Season:            w.Season.String(),
		DaysOfSeason:      w.DaysOfSeason,
	}
}

// RentScooters rents the fleet out under today's weather.
func (s *RunState) RentScooters(price float64) (Receipt, error) {
	return s.Business.RentScooters(price, s.Weather.Temperature(), s.Weather.Current())
}

func resolveRunConfig(config RunConfig) (RunConfig, error) {
	resolvedConfig := config

	if err := resolvedConfig.Validate(); err != nil {
		return RunConfig{}, err
	}

	if resolvedConfig.Seed == 0 {
		resolvedConfig.Seed = time.Now().UnixNano()
	}
	return resolvedConfig, nil
}
