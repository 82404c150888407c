package game

import (
	"fmt"
	"strings"
)

type WeatherType string

const (
	WeatherSunny  WeatherType = "sunny"
	WeatherCloudy WeatherType = "cloudy"
	WeatherRainy  WeatherType = "rainy"
	WeatherStormy WeatherType = "stormy"
	WeatherSnowy  WeatherType = "snowy"
)

// WeatherTypes lists every weather category in declaration order.
func WeatherTypes() []WeatherType {
	return []WeatherType{WeatherSunny, WeatherCloudy, WeatherRainy, WeatherStormy, WeatherSnowy}
}

func (w WeatherType) String() string {
	return string(w)
}

// ParseWeatherType decodes a persisted weather name. Unknown names fall back
// to sunny.
func ParseWeatherType(raw string) WeatherType {
	switch WeatherType(strings.ToLower(strings.TrimSpace(raw))) {
	case WeatherSunny:
		return WeatherSunny
	case WeatherCloudy:
		return WeatherCloudy
	case WeatherRainy:
		return WeatherRainy
	case WeatherStormy:
		return WeatherStormy
	case WeatherSnowy:
		return WeatherSnowy
	default:
		return WeatherSunny
	}
}

// Temperature bands run from hottest to coldest.
type Temperature int

const (
	TemperatureScorching Temperature = iota
	TemperatureHot
	TemperatureWarm
	TemperatureCool
	TemperatureCold
	TemperatureFreezing
)

func Temperatures() []Temperature {
	return []Temperature{
		TemperatureScorching,
		TemperatureHot,
		TemperatureWarm,
		TemperatureCool,
		TemperatureCold,
		TemperatureFreezing,
	}
}

func (t Temperature) String() string {
	switch t {
	case TemperatureScorching:
		return "scorching"
	case TemperatureHot:
		return "hot"
	case TemperatureWarm:
		return "warm"
	case TemperatureCool:
		return "cool"
	case TemperatureCold:
		return "cold"
	case TemperatureFreezing:
		return "freezing"
	default:
		return "unknown"
	}
}

// ParseTemperature decodes a persisted temperature name. Unknown names fall
// back to warm, the temperature a new game starts with.
func ParseTemperature(raw string) Temperature {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "scorching":
		return TemperatureScorching
	case "hot":
		return TemperatureHot
	case "warm":
		return TemperatureWarm
	case "cool":
		return TemperatureCool
	case "cold":
		return TemperatureCold
	case "freezing":
		return TemperatureFreezing
	default:
		return TemperatureWarm
	}
}

type Season int

const (
	SeasonSpring Season = iota
	SeasonSummer
	SeasonFall
	SeasonWinter
)

func Seasons() []Season {
	return []Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}
}

func (s Season) String() string {
	switch s {
	case SeasonSpring:
		return "spring"
	case SeasonSummer:
		return "summer"
	case SeasonFall:
		return "fall"
	case SeasonWinter:
		return "winter"
	default:
		return "unknown"
	}
}

// ParseSeason decodes a persisted season name. Unknown names fall back to
// spring.
func ParseSeason(raw string) Season {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "spring":
		return SeasonSpring
	case "summer":
		return SeasonSummer
	case "fall":
		return SeasonFall
	case "winter":
		return SeasonWinter
	default:
		return SeasonSpring
	}
}

// Next returns the season that follows s in the yearly cycle.
func (s Season) Next() Season {
	switch s {
	case SeasonSpring:
		return SeasonSummer
	case SeasonSummer:
		return SeasonFall
	case SeasonFall:
		return SeasonWinter
	default:
		return SeasonSpring
	}
}

// Temperatures returns the three bands the season can draw from.
func (s Season) Temperatures() []Temperature {
	switch s {
	case SeasonSummer:
		return []Temperature{TemperatureWarm, TemperatureHot, TemperatureScorching}
	case SeasonFall:
		return []Temperature{TemperatureWarm, TemperatureCool, TemperatureCold}
	case SeasonWinter:
		return []Temperature{TemperatureCool, TemperatureCold, TemperatureFreezing}
	default:
		return []Temperature{TemperatureCool, TemperatureWarm, TemperatureHot}
	}
}

// weatherForDraw maps a uniform draw in [0, 1) onto a weather category.
// Winter turns the rain band into snow.
func (s Season) weatherForDraw(u float64) WeatherType {
	switch {
	case u < 0.3:
		return WeatherSunny
	case u < 0.6:
		return WeatherCloudy
	case u < 0.8:
		if s == SeasonWinter {
			return WeatherSnowy
		}
		return WeatherRainy
	default:
		return WeatherStormy
	}
}

type ForecastTime int

const (
	Today ForecastTime = iota
	Tomorrow
)

func (f ForecastTime) String() string {
	if f == Tomorrow {
		return "tomorrow"
	}
	return "today"
}

// WeatherConfig restores a weather system from persisted fields.
type WeatherConfig struct {
	Current      WeatherType
	Forecast     WeatherType
	Temperature  Temperature
	Season       Season
	DaysOfSeason int
}

// Weather tracks the season, today's weather and tomorrow's forecast.
type Weather struct {
	current      WeatherType
	forecast     WeatherType
	temperature  Temperature
	season       Season
	daysOfSeason int

	daysPerSeason    int
	forecastAccuracy float64
	rng              Random
}

// NewWeather starts a game on a warm, sunny spring day with a sunny forecast.
func NewWeather(rules Rules, rng Random) *Weather {
	return RestoreWeather(WeatherConfig{
		Current:      WeatherSunny,
		Forecast:     WeatherSunny,
		Temperature:  TemperatureWarm,
		Season:       SeasonSpring,
		DaysOfSeason: 0,
	}, rules, rng)
}

// RestoreWeather rebuilds the weather from a saved day.
func RestoreWeather(cfg WeatherConfig, rules Rules, rng Random) *Weather {
	return &Weather{
		current:          cfg.Current,
		forecast:         cfg.Forecast,
		temperature:      cfg.Temperature,
		season:           cfg.Season,
		daysOfSeason:     cfg.DaysOfSeason,
		daysPerSeason:    rules.DaysPerSeason,
		forecastAccuracy: rules.ForecastAccuracy,
		rng:              rng,
	}
}

func (w *Weather) Current() WeatherType { return w.current }
func (w *Weather) Forecast() WeatherType { return w.forecast }
func (w *Weather) Temperature() Temperature { return w.temperature }
func (w *Weather) Season() Season { return w.season }
func (w *Weather) DaysOfSeason() int { return w.daysOfSeason }

func (w *Weather) Config() WeatherConfig {
	return WeatherConfig{
		Current:      w.current,
		Forecast:     w.forecast,
		Temperature:  w.temperature,
		Season:       w.season,
		DaysOfSeason: w.daysOfSeason,
	}
}

// AdvanceDay settles today's weather from yesterday's forecast, draws a new
// temperature and forecast and moves the season along.
func (w *Weather) AdvanceDay() {
	if w.rng.Float64() > w.forecastAccuracy {
		// The forecast was wrong; today turns out differently.
		w.drawForecast()
	}
	w.current = w.forecast
	w.temperature = w.drawTemperature()
	w.drawForecast()

	w.daysOfSeason++
	if w.daysOfSeason > w.daysPerSeason {
		w.daysOfSeason = 1
		w.season = w.season.Next()
	}
}

// Describe renders today's weather or tomorrow's forecast as a sentence.
func (w *Weather) Describe(when ForecastTime) string {
	verb := "is"
	weather := w.current
	if when == Tomorrow {
		verb = "might be"
		weather = w.forecast
	}
	return fmt.Sprintf("It %s a %s %s %s day, %s.", verb, w.temperature, weather, w.season, when)
}

func (w *Weather) drawForecast() {
	w.forecast = w.season.weatherForDraw(w.rng.Float64())
}

func (w *Weather) drawTemperature() Temperature {
	choices := w.season.Temperatures()
	return choices[w.rng.IntN(len(choices))]
}
