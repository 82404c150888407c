package game

// demandTable scales rental demand by today's conditions. Snowy weather has
// no entries; looking one up during a rental is an invariant violation.
var demandTable = map[Temperature]map[WeatherType]float64{
	TemperatureScorching: {WeatherSunny: 0.05, WeatherCloudy: 0.25, WeatherRainy: 0.10, WeatherStormy: 0.00},
	TemperatureHot:       {WeatherSunny: 0.50, WeatherCloudy: 0.60, WeatherRainy: 0.10, WeatherStormy: 0.05},
	TemperatureWarm:      {WeatherSunny: 1.00, WeatherCloudy: 0.90, WeatherRainy: 0.20, WeatherStormy: 0.05},
	TemperatureCool:      {WeatherSunny: 1.00, WeatherCloudy: 0.90, WeatherRainy: 0.20, WeatherStormy: 0.05},
	TemperatureCold:      {WeatherSunny: 0.60, WeatherCloudy: 0.50, WeatherRainy: 0.10, WeatherStormy: 0.05},
	TemperatureFreezing:  {WeatherSunny: 0.25, WeatherCloudy: 0.10, WeatherRainy: 0.05, WeatherStormy: 0.00},
}

// DemandFactor reports the demand multiplier for the given conditions and
// whether the pair is defined.
func DemandFactor(temperature Temperature, weather WeatherType) (float64, bool) {
	row, ok := demandTable[temperature]
	if !ok {
		return 0, false
	}
	factor, ok := row[weather]
	return factor, ok
}

func clampFloat(number, min, max float64) float64 {
	if number < min {
		return min
	}

	if number > max {
		return max
	}

	return number
}
