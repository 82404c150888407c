package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"

	"github.com/appengine-ltd/scooter-rentals/internal/game"
	"github.com/appengine-ltd/scooter-rentals/internal/history"
	"github.com/appengine-ltd/scooter-rentals/internal/parser"
	"github.com/appengine-ltd/scooter-rentals/internal/savegame"
	"github.com/appengine-ltd/scooter-rentals/internal/ui/theme"
	"github.com/appengine-ltd/scooter-rentals/pkg/logger"
	"github.com/appengine-ltd/scooter-rentals/pkg/metrics"
)

const (
	defaultBusinessName = "Rusty Scooters"
	dividerWidth        = 40
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string

	In  io.Reader
	Out io.Writer

	SavePath    string
	MetricsFile string
	NewGame     bool
	Rules       game.Rules
	Seed        int64

	Logger   *logger.Logger
	Recorder history.Recorder
	Metrics  *metrics.Metrics
	Clock    clockwork.Clock
}

type App struct {
	cfg    AppConfig
	in     *bufio.Scanner
	out    io.Writer
	styles theme.Styles
	parser *parser.Parser
	log    *logger.Logger

	state *game.RunState
}

type gameStatus int

const (
	statusRunning gameStatus = iota
	statusQuit
)

func NewApp(cfg AppConfig) *App {
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.Recorder == nil {
		cfg.Recorder = history.NewNoopRecorder()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Rules == (game.Rules{}) {
		cfg.Rules = game.DefaultRules()
	}

	return &App{
		cfg:    cfg,
		in:     bufio.NewScanner(cfg.In),
		out:    cfg.Out,
		styles: theme.New(lipgloss.NewRenderer(cfg.Out)),
		parser: parser.New(),
		log:    cfg.Logger,
	}
}

// Run plays until the player quits or input ends, then saves. If the
// simulation panics the game is saved first and the panic carries on,
// except for unmapped rental conditions, which leave the previous save alone.
func (a *App) Run(ctx context.Context) error {
	a.say(a.styles.Title.Render("Scooter Rentals ™"))
	if a.cfg.Version != "" {
		a.say(a.styles.Muted.Render(fmt.Sprintf("v%s  (%s)  %s", a.cfg.Version, a.cfg.Commit, a.cfg.BuildDate)))
	}

	state, err := a.openGame(ctx)
	if err != nil {
		return err
	}
	a.state = state
	ctx = a.log.WithGameID(ctx, state.GameID)
	a.syncFleet()

	defer func() {
		if r := recover(); r != nil {
			// A save holding the unmapped conditions would fault again on
			// every launch, so the last good save is kept instead.
			var unmapped *game.UnmappedConditionsError
			if err, ok := r.(error); ok && errors.As(err, &unmapped) {
				a.log.Error(ctx, "unmapped rental conditions, keeping previous save", err)
				panic(r)
			}
			a.log.Error(ctx, "simulation fault, saving before exit", fmt.Errorf("%v", r))
			if err := a.save(ctx); err != nil {
				a.log.Error(ctx, "save after fault failed", err)
			}
			panic(r)
		}
	}()

	a.say("\n\n")
	if state.Day == 1 {
		a.say("It's your first day.")
	}

	for ctx.Err() == nil {
		status, err := a.playDay(ctx)
		if err != nil {
			return err
		}
		if status == statusQuit {
			break
		}
		a.state.AdvanceDay()
		a.cfg.Metrics.DayAdvanced()
		a.writeMetrics(ctx)
	}

	if err := a.save(ctx); err != nil {
		a.warn("Couldn't save your game.")
		return err
	}
	a.summary()
	return nil
}

func (a *App) openGame(ctx context.Context) (*game.RunState, error) {
	runCfg := game.RunConfig{Rules: a.cfg.Rules, Seed: a.cfg.Seed}

	if !a.cfg.NewGame && a.cfg.SavePath != "" {
		save, err := savegame.Load(a.cfg.SavePath)
		switch {
		case err == nil:
			state, err := save.Restore(runCfg)
			if err == nil {
				a.say(fmt.Sprintf("Restoring saved game: %s on day %d.", state.Business.Name(), state.Day))
				a.log.Info(a.log.WithGameID(ctx, state.GameID), "game restored")
				return state, nil
			}
			a.log.Error(ctx, "restore save", err)
			a.warn("Your saved game is damaged. Starting a new business.")
		case errors.Is(err, savegame.ErrNoSave):
		default:
			a.log.Error(ctx, "load save", err)
			a.warn("Couldn't read your saved game. Starting a new business.")
		}
	}

	a.say("What do you want your business to be called?")
	name, ok := a.readLine()
	if !ok || name == "" {
		a.say(fmt.Sprintf("That doesn't work. Let's use %q.", defaultBusinessName))
		name = defaultBusinessName
	}
	runCfg.BusinessName = name

	state, err := game.NewRunState(runCfg)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	a.say(fmt.Sprintf("Opened a new Scooter business called %s!!", name))
	a.log.Info(a.log.WithGameID(ctx, state.GameID), "new game started")
	return state, nil
}

func (a *App) playDay(ctx context.Context) (gameStatus, error) {
	ctx = a.log.WithDay(ctx, a.state.Day)

	a.say(a.styles.Rule(dividerWidth))
	a.say(a.styles.Heading.Render(fmt.Sprintf("Day %d.", a.state.Day)))
	a.say(a.state.Weather.Describe(game.Today))

	price, ok := a.askPrice()
	if !ok {
		return statusQuit, nil
	}

	receipt, err := a.state.RentScooters(price)
	if err != nil {
		return statusQuit, fmt.Errorf("rent scooters: %w", err)
	}
	a.recordDay(ctx, price, receipt)

	a.say(fmt.Sprintf("You rented out %d scooters.", receipt.Rented))
	a.say("You made " + a.styles.Money(receipt.Profit).Render(money(receipt.Profit)) + " today!")
	a.say(fmt.Sprintf("%d scooters were broken today!", receipt.Broken))
	a.pause()

	return a.mainMenu(ctx), nil
}

func (a *App) askPrice() (float64, bool) {
	for {
		a.say("How much do you want to charge for each rental today?")
		line, ok := a.readLine()
		if !ok {
			return 0, false
		}
		price, err := parser.ParsePrice(line)
		switch {
		case err == nil:
			return price, true
		case errors.Is(err, parser.ErrNegativeValue):
			a.warn("Nope. That is not a positive number. Give it another shot.")
		default:
			a.warn("Nope. That is not a real number. Give it another shot.")
		}
	}
}

func (a *App) recordDay(ctx context.Context, price float64, receipt game.Receipt) {
	w := a.state.Weather
	rec := &history.DayRecord{
		GameID:      a.state.GameID,
		Day:         a.state.Day,
		Season:      w.Season().String(),
		Weather:     w.Current().String(),
		Temperature: w.Temperature().String(),
		Price:       price,
		Rented:      receipt.Rented,
		Broken:      receipt.Broken,
		Revenue:     receipt.Profit,
		CashAfter:   a.state.Business.Cash(),
	}
	if err := a.cfg.Recorder.RecordDay(ctx, rec); err != nil {
		a.log.Error(ctx, "record day", err)
	}

	a.cfg.Metrics.Observe(metrics.Rental{
		Weather: rec.Weather,
		Price:   price,
		Rented:  receipt.Rented,
		Broken:  receipt.Broken,
		Revenue: receipt.Profit,
	})
	a.syncFleet()

	a.log.Info(a.log.WithFields(ctx, map[string]any{
		"price":  price,
		"rented": receipt.Rented,
		"broken": receipt.Broken,
		"profit": receipt.Profit,
	}), "day settled")
}

func (a *App) syncFleet() {
	b := a.state.Business
	a.cfg.Metrics.SetFleet(metrics.Fleet{
		Cash:    b.Cash(),
		Working: b.WorkingScooters(),
		Broken:  b.BrokenScooters(),
	})
}

func (a *App) writeMetrics(ctx context.Context) {
	if err := a.cfg.Metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
		a.log.Error(ctx, "write metrics textfile", err)
	}
}

func (a *App) save(ctx context.Context) error {
	if a.state == nil || a.cfg.SavePath == "" {
		return nil
	}
	if err := savegame.Write(a.cfg.SavePath, savegame.FromState(a.state, a.cfg.Clock)); err != nil {
		a.log.Error(ctx, "save game", err)
		return fmt.Errorf("save game: %w", err)
	}
	a.writeMetrics(ctx)
	a.log.Info(ctx, "game saved")
	return nil
}

func (a *App) summary() {
	outcome := a.state.EvaluateRun()
	switch outcome.Status {
	case game.RunOutcomeProfit:
		a.say("You made a profit of " + a.styles.Gain.Render(money(outcome.Profit)) + ".")
	case game.RunOutcomeLoss:
		a.say("You had a loss of " + a.styles.Loss.Render(money(-outcome.Profit)) + ".")
	default:
		a.say(outcome.Message)
	}
}

func (a *App) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) pause() {
	a.say(a.styles.Muted.Render("Press return to continue."))
	_, _ = a.readLine()
}

func (a *App) say(text string) {
	_, _ = fmt.Fprintln(a.out, text)
}

func (a *App) warn(text string) {
	a.say(a.styles.Warning.Render(text))
}
