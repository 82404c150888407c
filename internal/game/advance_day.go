package game

// AdvanceDay starts the next turn: yesterday's adverts expire and the
// weather moves on.
func (s *RunState) AdvanceDay() {
	s.Day++
	s.Business.AdvanceDay()
	s.Weather.AdvanceDay()
}

type RunOutcomeStatus string

const (
	RunOutcomeProfit    RunOutcomeStatus = "profit"
	RunOutcomeLoss      RunOutcomeStatus = "loss"
	RunOutcomeBrokeEven RunOutcomeStatus = "broke_even"
)

type RunOutcome struct {
	Status  RunOutcomeStatus
	Profit  float64
	Message string
}

// EvaluateRun compares current cash with the starting cash.
func (s *RunState) EvaluateRun() RunOutcome {
	profit := s.Business.Cash() - s.Config.Rules.StartingCash

	switch {
	case profit > 0:
		return RunOutcome{
			Status:  RunOutcomeProfit,
			Profit:  profit,
			Message: "You made a profit.",
		}
	case profit < 0:
		return RunOutcome{
			Status:  RunOutcomeLoss,
			Profit:  profit,
			Message: "You had a loss.",
		}
	default:
		return RunOutcome{
			Status:  RunOutcomeBrokeEven,
			Message: "You broke even on your business. Could be worse.",
		}
	}
}
