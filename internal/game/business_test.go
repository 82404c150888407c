package game

import (
	"errors"
	"math"
	"testing"
)

func newTestBusiness(rng Random) *Business {
	if rng == nil {
		rng = &scriptedRandom{fallback: 0.5}
	}
	return NewBusiness("New Scoots, Inc.", DefaultRules(), rng)
}

func TestNewBusinessStartsWithDefaults(t *testing.T) {
	b := newTestBusiness(nil)

	if b.Name() != "New Scoots, Inc." {
		t.Fatalf("expected name to be kept, got %q", b.Name())
	}
	if b.Cash() != 100 || b.WorkingScooters() != 10 || b.BrokenScooters() != 0 || b.ScooterParts() != 0 || b.Advertisements() != 0 {
		t.Fatalf("unexpected starting ledger: %+v", b.Config())
	}
}

func TestBuyScooters(t *testing.T) {
	b := newTestBusiness(nil)

	if err := b.BuyScooters(2, 40); err != nil {
		t.Fatalf("buy scooters: %v", err)
	}
	if b.Cash() != 20 {
		t.Fatalf("expected cash 20, got %v", b.Cash())
	}
	if b.WorkingScooters() != 12 {
		t.Fatalf("expected 12 working scooters, got %d", b.WorkingScooters())
	}
}

func TestLedgerRejectionsLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name string
		op   func(b *Business) error
		want error
	}{
		{name: "buy beyond cash", op: func(b *Business) error { return b.BuyScooters(10, 40) }, want: ErrNotEnoughMoney},
		{name: "buy negative cost", op: func(b *Business) error { return b.BuyScooters(10, -40) }, want: ErrInvalidParameter},
		{name: "buy negative count", op: func(b *Business) error { return b.BuyScooters(-1, 40) }, want: ErrInvalidParameter},
		{name: "sell too many", op: func(b *Business) error { return b.SellWorkingScooters(20, 40) }, want: ErrInsufficientWorkingScooters},
		{name: "sell negative cost", op: func(b *Business) error { return b.SellWorkingScooters(10, -40) }, want: ErrInvalidParameter},
		{name: "parts beyond cash", op: func(b *Business) error { return b.BuyScooterParts(5, 25) }, want: ErrNotEnoughMoney},
		{name: "parts negative cost", op: func(b *Business) error { return b.BuyScooterParts(1, -25) }, want: ErrInvalidParameter},
		{name: "repair without parts", op: func(b *Business) error { return b.RepairScooters(1) }, want: ErrInsufficientParts},
		{name: "adverts beyond cash", op: func(b *Business) error { return b.BuyAdvertisements(21, 5) }, want: ErrNotEnoughMoney},
		{name: "rent negative price", op: func(b *Business) error {
			_, err := b.RentScooters(-10, TemperatureCold, WeatherStormy)
			return err
		}, want: ErrInvalidParameter},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBusiness(nil)
			before := b.Config()

			err := tc.op(b)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if after := b.Config(); after != before {
				t.Fatalf("expected unchanged ledger, before=%+v after=%+v", before, after)
			}
		})
	}
}

func TestSellWorkingScooters(t *testing.T) {
	b := newTestBusiness(nil)

	if err := b.SellWorkingScooters(1, 10); err != nil {
		t.Fatalf("sell scooters: %v", err)
	}
	if b.Cash() != 110 {
		t.Fatalf("expected cash 110, got %v", b.Cash())
	}
	if b.WorkingScooters() != 9 {
		t.Fatalf("expected 9 working scooters, got %d", b.WorkingScooters())
	}
}

func TestBuyScooterPartsAccumulates(t *testing.T) {
	b := newTestBusiness(nil)

	if err := b.BuyScooterParts(2, 25); err != nil {
		t.Fatalf("buy parts: %v", err)
	}
	if err := b.BuyScooterParts(1, 25); err != nil {
		t.Fatalf("buy parts: %v", err)
	}
	if b.ScooterParts() != 3 || b.Cash() != 25 {
		t.Fatalf("expected 3 parts and cash 25, got parts=%d cash=%v", b.ScooterParts(), b.Cash())
	}
}

func TestRepairScooters(t *testing.T) {
	tests := []struct {
		name    string
		broken  int
		parts   int
		repair  int
		wantErr error
	}{
		{name: "repairs all", broken: 3, parts: 3, repair: 3},
		{name: "repairs some", broken: 4, parts: 2, repair: 2},
		{name: "short of parts", broken: 4, parts: 1, repair: 2, wantErr: ErrInsufficientParts},
		{name: "short of broken", broken: 1, parts: 5, repair: 2, wantErr: ErrInsufficientBrokenScooters},
		{name: "parts checked first", broken: 0, parts: 0, repair: 1, wantErr: ErrInsufficientParts},
		{name: "negative count", broken: 1, parts: 1, repair: -1, wantErr: ErrInvalidParameter},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := RestoreBusiness(BusinessConfig{
				Name:            "Fixers",
				Cash:            50,
				WorkingScooters: 5,
				BrokenScooters:  tc.broken,
				ScooterParts:    tc.parts,
			}, DefaultRules(), &scriptedRandom{})
			fleet := b.FleetSize()

			err := b.RepairScooters(tc.repair)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if b.BrokenScooters() != tc.broken || b.ScooterParts() != tc.parts {
					t.Fatalf("expected unchanged ledger after rejected repair, got %+v", b.Config())
				}
				return
			}
			if err != nil {
				t.Fatalf("repair: %v", err)
			}
			if b.BrokenScooters() != tc.broken-tc.repair || b.ScooterParts() != tc.parts-tc.repair {
				t.Fatalf("unexpected ledger after repair: %+v", b.Config())
			}
			if b.WorkingScooters() != 5+tc.repair {
				t.Fatalf("expected %d working scooters, got %d", 5+tc.repair, b.WorkingScooters())
			}
			if b.FleetSize() != fleet {
				t.Fatalf("expected fleet size %d to be kept, got %d", fleet, b.FleetSize())
			}
		})
	}
}

func TestRepairableScooters(t *testing.T) {
	b := RestoreBusiness(BusinessConfig{BrokenScooters: 4, ScooterParts: 2}, DefaultRules(), &scriptedRandom{})
	if got := b.RepairableScooters(); got != 2 {
		t.Fatalf("expected 2 repairable scooters, got %d", got)
	}
}

func TestBuyAdvertisementsReplacesCount(t *testing.T) {
	b := newTestBusiness(nil)

	if err := b.BuyAdvertisements(4, 5); err != nil {
		t.Fatalf("buy adverts: %v", err)
	}
	if err := b.BuyAdvertisements(2, 5); err != nil {
		t.Fatalf("buy adverts: %v", err)
	}
	if b.Advertisements() != 2 {
		t.Fatalf("expected advert count to be replaced with 2, got %d", b.Advertisements())
	}
	if b.Cash() != 70 {
		t.Fatalf("expected both purchases to be charged, cash=%v", b.Cash())
	}
}

func TestBusinessAdvanceDayResetsAdvertisements(t *testing.T) {
	for _, ads := range []int{0, 1, 7, 40} {
		b := RestoreBusiness(BusinessConfig{Name: "Ads", Cash: 12.5, WorkingScooters: 3, Advertisements: ads}, DefaultRules(), &scriptedRandom{})
		before := b.Config()

		b.AdvanceDay()

		if b.Advertisements() != 0 {
			t.Fatalf("expected adverts reset to 0 from %d, got %d", ads, b.Advertisements())
		}
		before.Advertisements = 0
		if b.Config() != before {
			t.Fatalf("expected only adverts to change, got %+v", b.Config())
		}
	}
}

func TestRentScootersAtOptimalPrice(t *testing.T) {
	// noise draw 0.5 => no noise; first rented scooter breaks, the rest hold.
	rng := &scriptedRandom{floats: []float64{0.5, 0.01}, fallback: 0.9}
	b := newTestBusiness(rng)

	receipt, err := b.RentScooters(15, TemperatureWarm, WeatherSunny)
	if err != nil {
		t.Fatalf("rent scooters: %v", err)
	}
	if receipt.Rented != 10 {
		t.Fatalf("expected whole fleet rented on an ideal day, got %d", receipt.Rented)
	}
	if receipt.Profit != 150 || b.Cash() != 250 {
		t.Fatalf("expected profit 150 and cash 250, got profit=%v cash=%v", receipt.Profit, b.Cash())
	}
	if receipt.Broken != 1 || b.WorkingScooters() != 9 || b.BrokenScooters() != 1 {
		t.Fatalf("expected one scooter broken, got receipt=%+v ledger=%+v", receipt, b.Config())
	}
}

func TestRentScootersInAStormRentsNothing(t *testing.T) {
	rng := &scriptedRandom{floats: []float64{0}, fallback: 0}
	b := newTestBusiness(rng)

	receipt, err := b.RentScooters(15, TemperatureScorching, WeatherStormy)
	if err != nil {
		t.Fatalf("rent scooters: %v", err)
	}
	if receipt != (Receipt{}) {
		t.Fatalf("expected empty receipt, got %+v", receipt)
	}
	if b.Cash() != 100 || b.WorkingScooters() != 10 {
		t.Fatalf("expected untouched ledger, got %+v", b.Config())
	}
}

func TestRentScootersTinyPriceIsCappedAtFleet(t *testing.T) {
	b := newTestBusiness(&scriptedRandom{fallback: 0.5})

	receipt, err := b.RentScooters(0.01, TemperatureCold, WeatherCloudy)
	if err != nil {
		t.Fatalf("rent scooters: %v", err)
	}
	if receipt.Rented != 10 {
		t.Fatalf("expected rentals capped at the fleet, got %d", receipt.Rented)
	}
	if math.Abs(receipt.Profit-0.1) > 1e-9 {
		t.Fatalf("expected profit of 0.1, got %v", receipt.Profit)
	}
}

func TestRentScootersAtZeroPrice(t *testing.T) {
	t.Run("demand rents whole fleet for free", func(t *testing.T) {
		b := newTestBusiness(&scriptedRandom{fallback: 0.5})
		receipt, err := b.RentScooters(0, TemperatureWarm, WeatherSunny)
		if err != nil {
			t.Fatalf("rent scooters: %v", err)
		}
		if receipt.Rented != 10 || receipt.Profit != 0 || b.Cash() != 100 {
			t.Fatalf("unexpected free rental outcome: %+v cash=%v", receipt, b.Cash())
		}
	})
	t.Run("no demand rents nothing", func(t *testing.T) {
		b := newTestBusiness(&scriptedRandom{fallback: 0})
		receipt, err := b.RentScooters(0, TemperatureFreezing, WeatherStormy)
		if err != nil {
			t.Fatalf("rent scooters: %v", err)
		}
		if receipt.Rented != 0 {
			t.Fatalf("expected no rentals, got %d", receipt.Rented)
		}
	})
}

func TestRentScootersSnowPanics(t *testing.T) {
	b := newTestBusiness(nil)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic for snowy conditions")
		}
		unmapped, ok := r.(*UnmappedConditionsError)
		if !ok {
			t.Fatalf("expected *UnmappedConditionsError, got %T", r)
		}
		if unmapped.Weather != WeatherSnowy || unmapped.Temperature != TemperatureCold {
			t.Fatalf("unexpected panic detail: %+v", unmapped)
		}
	}()

	_, _ = b.RentScooters(15, TemperatureCold, WeatherSnowy)
}

func TestRentScootersInvariants(t *testing.T) {
	prices := []float64{0.5, 1, 5, 10, 14.99, 15, 20, 25, 40, 100}
	for seed := int64(1); seed <= 20; seed++ {
		rng := NewRandom(seed)
		for _, temp := range Temperatures() {
			for _, weather := range []WeatherType{WeatherSunny, WeatherCloudy, WeatherRainy, WeatherStormy} {
				for _, price := range prices {
					b := RestoreBusiness(BusinessConfig{
						Name:            "Props",
						Cash:            100,
						WorkingScooters: 25,
						BrokenScooters:  3,
						Advertisements:  int(seed % 5),
					}, DefaultRules(), rng)
					working := b.WorkingScooters()
					fleet := b.FleetSize()
					cash := b.Cash()

					receipt, err := b.RentScooters(price, temp, weather)
					if err != nil {
						t.Fatalf("rent scooters: %v", err)
					}
					if receipt.Rented < 0 || receipt.Rented > working {
						t.Fatalf("rented %d out of range [0,%d]", receipt.Rented, working)
					}
					if receipt.Broken > receipt.Rented {
						t.Fatalf("broken %d exceeds rented %d", receipt.Broken, receipt.Rented)
					}
					if receipt.Profit != float64(receipt.Rented)*price {
						t.Fatalf("profit %v does not match %d rentals at %v", receipt.Profit, receipt.Rented, price)
					}
					if b.Cash() != cash+receipt.Profit {
						t.Fatalf("cash %v does not include profit %v on %v", b.Cash(), receipt.Profit, cash)
					}
					if b.FleetSize() != fleet {
						t.Fatalf("fleet size changed from %d to %d", fleet, b.FleetSize())
					}
				}
			}
		}
	}
}

func TestCombinedModifierStaysInUnitRange(t *testing.T) {
	draws := []float64{0, 0.25, 0.5, 0.75, 0.999999}
	prices := []float64{0, 0.01, 5, 15, 25, 1000}
	for _, temp := range Temperatures() {
		for _, weather := range []WeatherType{WeatherSunny, WeatherCloudy, WeatherRainy, WeatherStormy} {
			for _, ads := range []int{0, 3, 100} {
				for _, price := range prices {
					for _, u := range draws {
						b := RestoreBusiness(BusinessConfig{WorkingScooters: 10, Advertisements: ads}, DefaultRules(), &scriptedRandom{floats: []float64{u}})
						got := b.CombinedModifier(temp, weather, price)
						if got < 0 || got > 1 {
							t.Fatalf("modifier %v out of [0,1] for %s/%s ads=%d price=%v u=%v", got, temp, weather, ads, price, u)
						}
					}
				}
			}
		}
	}
}

func TestCombinedModifierAdvertisingSaturatesAtFleetSize(t *testing.T) {
	modifier := func(ads int) float64 {
		b := RestoreBusiness(BusinessConfig{WorkingScooters: 10, Advertisements: ads}, DefaultRules(), &scriptedRandom{floats: []float64{0.5}})
		return b.CombinedModifier(TemperatureHot, WeatherSunny, 15)
	}

	if got := modifier(0); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected 0.5 without adverts, got %v", got)
	}
	if got := modifier(5); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("expected 0.75 with 5 adverts, got %v", got)
	}
	if full, over := modifier(10), modifier(50); full != over {
		t.Fatalf("expected advert effect to saturate at fleet size, got %v vs %v", full, over)
	}
}

func TestCombinedModifierPriceEffectIsCapped(t *testing.T) {
	modifier := func(price float64) float64 {
		b := RestoreBusiness(BusinessConfig{WorkingScooters: 10}, DefaultRules(), &scriptedRandom{floats: []float64{0.5}})
		return b.CombinedModifier(TemperatureFreezing, WeatherSunny, price)
	}

	if got := modifier(25); math.Abs(got) > 1e-9 {
		t.Fatalf("expected demand wiped out ten above optimal, got %v", got)
	}
	if cheap, free := modifier(5), modifier(0); cheap != free {
		t.Fatalf("expected discount effect capped at +1, got %v vs %v", cheap, free)
	}
	if got := modifier(10); math.Abs(got-0.375) > 1e-9 {
		t.Fatalf("expected 0.375 five below optimal, got %v", got)
	}
}

func TestAffordableUnits(t *testing.T) {
	tests := []struct {
		cash  float64
		price float64
		want  int
	}{
		{cash: 100, price: 25, want: 4},
		{cash: 99.99, price: 25, want: 3},
		{cash: 4, price: 5, want: 0},
		{cash: -10, price: 5, want: 0},
		{cash: 10, price: 0, want: 0},
	}
	for _, tc := range tests {
		if got := AffordableUnits(tc.cash, tc.price); got != tc.want {
			t.Fatalf("AffordableUnits(%v, %v)=%d want=%d", tc.cash, tc.price, got, tc.want)
		}
	}
}
