package game

import (
	"fmt"
	"math"
)

// BusinessConfig restores a ledger from persisted fields.
type BusinessConfig struct {
	Name            string
	Cash            float64
	WorkingScooters int
	BrokenScooters  int
	ScooterParts    int
	Advertisements  int
}

// Business is the rental ledger: cash, fleet, spare parts and today's
// advertising.
type Business struct {
	name              string
	cash              float64
	scootersWorking   int
	scootersBroken    int
	scooterParts      int
	numAdvertisements int

	rules Rules
	rng   Random
}

// Receipt summarises one day of rentals.
type Receipt struct {
	Profit float64
	Broken int
	Rented int
}

// NewBusiness opens a business with the starting cash and fleet from rules.
func NewBusiness(name string, rules Rules, rng Random) *Business {
	return RestoreBusiness(BusinessConfig{
		Name:            name,
		Cash:            rules.StartingCash,
		WorkingScooters: rules.StartingScooters,
	}, rules, rng)
}

// RestoreBusiness rebuilds a business from saved or configured values.
func RestoreBusiness(cfg BusinessConfig, rules Rules, rng Random) *Business {
	return &Business{
		name:              cfg.Name,
		cash:              cfg.Cash,
		scootersWorking:   cfg.WorkingScooters,
		scootersBroken:    cfg.BrokenScooters,
		scooterParts:      cfg.ScooterParts,
		numAdvertisements: cfg.Advertisements,
		rules:             rules,
		rng:               rng,
	}
}

func (b *Business) Name() string { return b.name }
func (b *Business) Cash() float64 { return b.cash }
func (b *Business) WorkingScooters() int { return b.scootersWorking }
func (b *Business) BrokenScooters() int { return b.scootersBroken }
func (b *Business) ScooterParts() int { return b.scooterParts }
func (b *Business) Advertisements() int { return b.numAdvertisements }
func (b *Business) FleetSize() int { return b.scootersWorking + b.scootersBroken }
func (b *Business) Rules() Rules { return b.rules }

func (b *Business) Config() BusinessConfig {
	return BusinessConfig{
		Name:            b.name,
		Cash:            b.cash,
		WorkingScooters: b.scootersWorking,
		BrokenScooters:  b.scootersBroken,
		ScooterParts:    b.scooterParts,
		Advertisements:  b.numAdvertisements,
	}
}

// RepairableScooters is how many broken scooters the parts on hand can fix.
func (b *Business) RepairableScooters() int {
	return min(b.scootersBroken, b.scooterParts)
}

func (b *Business) BuyScooters(count int, unitCost float64) error {
	cost, err := b.purchaseCost(count, unitCost)
	if err != nil {
		return fmt.Errorf("buy scooters: %w", err)
	}
	b.scootersWorking += count
	b.cash -= cost
	return nil
}

func (b *Business) SellWorkingScooters(count int, unitCost float64) error {
	if count < 0 || unitCost < 0 {
		return fmt.Errorf("sell scooters: %w: count=%d unit cost=%v", ErrInvalidParameter, count, unitCost)
	}
	if count > b.scootersWorking {
		return fmt.Errorf("sell scooters: %w: want %d, have %d", ErrInsufficientWorkingScooters, count, b.scootersWorking)
	}
	b.scootersWorking -= count
	b.cash += float64(count) * unitCost
	return nil
}

func (b *Business) BuyScooterParts(count int, unitCost float64) error {
	cost, err := b.purchaseCost(count, unitCost)
	if err != nil {
		return fmt.Errorf("buy parts: %w", err)
	}
	b.scooterParts += count
	b.cash -= cost
	return nil
}

func (b *Business) RepairScooters(count int) error {
	if count < 0 {
		return fmt.Errorf("repair scooters: %w: count=%d", ErrInvalidParameter, count)
	}
	if count > b.scooterParts {
		return fmt.Errorf("repair scooters: %w: want %d, have %d", ErrInsufficientParts, count, b.scooterParts)
	}
	if count > b.scootersBroken {
		return fmt.Errorf("repair scooters: %w: want %d, have %d", ErrInsufficientBrokenScooters, count, b.scootersBroken)
	}
	b.scootersBroken -= count
	b.scootersWorking += count
	b.scooterParts -= count
	return nil
}

// BuyAdvertisements replaces today's advertising with count adverts; it does
// not add to adverts already bought.
func (b *Business) BuyAdvertisements(count int, unitCost float64) error {
	if count < 0 {
		return fmt.Errorf("buy advertisements: %w: count=%d", ErrInvalidParameter, count)
	}
	cost := float64(count) * unitCost
	if cost > b.cash {
		return fmt.Errorf("buy advertisements: %w: cost %.2f, cash %.2f", ErrNotEnoughMoney, cost, b.cash)
	}
	b.numAdvertisements = count
	b.cash -= cost
	return nil
}

// AdvanceDay expires yesterday's advertising.
func (b *Business) AdvanceDay() {
	b.numAdvertisements = 0
}

// RentScooters runs one day of rentals at the given price. Demand depends on
// the conditions, advertising and how the price compares with the optimal
// price; every rented scooter may come back broken.
func (b *Business) RentScooters(price float64, temperature Temperature, weather WeatherType) (Receipt, error) {
	if price < 0 {
		return Receipt{}, fmt.Errorf("rent scooters: %w: price %v", ErrInvalidParameter, price)
	}
	working := b.scootersWorking

	combined := b.CombinedModifier(temperature, weather, price)
	priceMod := b.rules.OptimalPrice / price
	rented := clampRentals(float64(working)*combined*priceMod, working)

	profit := float64(rented) * price
	b.cash += profit

	broken := 0
	for i := 0; i < rented; i++ {
		if b.rng.Float64() < b.rules.BreakChance {
			broken++
		}
	}
	b.scootersWorking -= broken
	b.scootersBroken += broken

	return Receipt{Profit: profit, Broken: broken, Rented: rented}, nil
}

// CombinedModifier is the share of the working fleet that gets rented before
// the price modifier applies. It panics with *UnmappedConditionsError when the
// demand table has no entry for the conditions.
func (b *Business) CombinedModifier(temperature Temperature, weather WeatherType, price float64) float64 {
	factor, ok := DemandFactor(temperature, weather)
	if !ok {
		panic(&UnmappedConditionsError{Temperature: temperature, Weather: weather})
	}

	advertEffect := b.rules.AdvertEffect * float64(min(b.numAdvertisements, b.scootersWorking))
	costEffect := clampFloat((b.rules.OptimalPrice-price)/10, -1, 1)
	value := (1 + advertEffect + costEffect) * factor

	noise := b.rng.Float64()*0.2 - 0.1
	return clampFloat(value+noise, 0, 1)
}

// AffordableUnits is how many items at unitPrice the cash covers.
func AffordableUnits(cash, unitPrice float64) int {
	if unitPrice <= 0 || cash <= 0 {
		return 0
	}
	return int(math.Floor(cash / unitPrice))
}

func (b *Business) purchaseCost(count int, unitCost float64) (float64, error) {
	if count < 0 || unitCost < 0 {
		return 0, fmt.Errorf("%w: count=%d unit cost=%v", ErrInvalidParameter, count, unitCost)
	}
	cost := float64(count) * unitCost
	if cost > b.cash {
		return 0, fmt.Errorf("%w: cost %.2f, cash %.2f", ErrNotEnoughMoney, cost, b.cash)
	}
	return cost, nil
}

// clampRentals floors demand into [0, working]. A zero price makes demand
// infinite (or NaN when nothing else wants a scooter).
func clampRentals(demand float64, working int) int {
	switch {
	case math.IsNaN(demand) || demand <= 0:
		return 0
	case demand >= float64(working):
		return working
	default:
		return int(math.Floor(demand))
	}
}
