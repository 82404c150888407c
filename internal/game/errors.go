package game

import (
	"errors"
	"fmt"
)

// Ledger errors. Operations wrap these with detail; match with errors.Is.
var (
	ErrInsufficientWorkingScooters = errors.New("insufficient working scooters")
	ErrInsufficientBrokenScooters  = errors.New("insufficient broken scooters")
	ErrInsufficientParts           = errors.New("insufficient scooter parts")
	ErrNotEnoughMoney              = errors.New("not enough money")
	ErrInvalidParameter            = errors.New("invalid parameter")
)

// UnmappedConditionsError is the panic value raised when demand is looked up
// for a temperature and weather pair the demand table does not cover.
type UnmappedConditionsError struct {
	Temperature Temperature
	Weather     WeatherType
}

func (e *UnmappedConditionsError) Error() string {
	return fmt.Sprintf("no rental demand defined for %s %s weather", e.Temperature, e.Weather)
}
