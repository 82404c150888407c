package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/appengine-ltd/scooter-rentals/internal/game"
	"github.com/appengine-ltd/scooter-rentals/internal/parser"
)

const recentDays = 3

var menuItems = []string{
	"1) Buy scooters or parts for repair",
	"2) Sell working scooters",
	"3) Repair broken scooters",
	"4) Buy advertisements for tomorrow",
	"5) Get info on your business and the weather",
	"6) Ready to move on to the next day",
	"7) Quit the game",
}

func (a *App) mainMenu(ctx context.Context) gameStatus {
	for ctx.Err() == nil {
		a.say(a.styles.Heading.Render("What would you like to do?"))
		for _, item := range menuItems {
			a.say(item)
		}

		line, ok := a.readLine()
		if !ok {
			return statusQuit
		}
		intent := a.parser.Parse(line)
		if intent.Verb == "" {
			a.clarify(intent.Clarify)
			continue
		}
		a.log.Debug(a.log.WithField(ctx, "command", parser.IntentToCommandString(intent)), "menu command")

		switch intent.Verb {
		case "buy":
			a.buyMenu(ctx, intent)
		case "sell":
			a.sellMenu(ctx, intent)
		case "repair":
			a.repairMenu(ctx, intent)
		case "advertise":
			a.advertMenu(ctx, intent)
		case "info":
			a.businessInfo(ctx)
		case "next":
			return statusRunning
		case "quit":
			return statusQuit
		case "help":
			a.help()
		}
		a.say("\n\n")
	}
	return statusQuit
}

func (a *App) clarify(q *parser.ClarifyQuestion) {
	if q == nil {
		a.say("That's not a thing you can do.")
		return
	}
	a.say(q.Prompt)
	for _, opt := range q.Options {
		a.say("  " + parser.IntentToCommandString(opt) + "?")
	}
}

func (a *App) help() {
	a.say("You can type a menu number or one of these commands:")
	for _, cmd := range a.parser.Commands() {
		line := "  " + a.styles.Text.Render(cmd.Canonical)
		if aliases := wordAliases(cmd.Aliases); len(aliases) > 0 {
			line += " " + a.styles.Muted.Render("("+strings.Join(aliases, ", ")+")")
		}
		a.say(line)
	}
	a.say(a.styles.Muted.Render("Add a number or \"all\", as in \"buy scooters 2\"."))
}

// wordAliases drops the menu numbers, which the menu already shows.
func wordAliases(aliases []string) []string {
	out := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		if _, err := strconv.Atoi(alias); err == nil {
			continue
		}
		out = append(out, alias)
	}
	return out
}

func (a *App) buyMenu(ctx context.Context, intent parser.Intent) {
	b := a.state.Business
	rules := b.Rules()
	a.say(fmt.Sprintf("You have %s cash on hand.", money(b.Cash())))

	target := ""
	if len(intent.Args) > 0 {
		target = intent.Args[0]
	} else {
		a.say("Ok, what do you want to buy?")
		a.say("1) New Scooters?")
		a.say("2) Scooter parts?")
		a.say("3) Go back to the main menu.")
		line, ok := a.readLine()
		if !ok {
			return
		}
		switch target = a.buyTarget(line); target {
		case "back":
			return
		case "":
			a.say("That's not a thing you can do.")
			a.pause()
			return
		}
	}

	unitPrice, label := rules.ScooterPrice, "scooters"
	if target == "parts" {
		unitPrice, label = rules.PartPrice, "parts"
	}

	count, ok := a.askQuantity(intent.Quantity, fmt.Sprintf("Ok, %s cost %s. How many?", label, money(unitPrice)), game.AffordableUnits(b.Cash(), unitPrice))
	if !ok {
		a.pause()
		return
	}
	count = a.clampToCash(count, unitPrice)

	var err error
	if target == "parts" {
		err = b.BuyScooterParts(count, unitPrice)
	} else {
		err = b.BuyScooters(count, unitPrice)
	}
	if err != nil {
		a.reportLedgerError(ctx, err)
	} else {
		a.say(fmt.Sprintf("Bought %d %s.", count, label))
		a.syncFleet()
	}
	a.pause()
}

// buyTarget maps the buy submenu answer onto a target, "back" or "".
func (a *App) buyTarget(line string) string {
	switch strings.TrimSpace(line) {
	case "1":
		return "scooters"
	case "2":
		return "parts"
	case "3", "back", "":
		return "back"
	}
	intent := a.parser.Parse("buy " + line)
	if intent.Verb == "buy" && len(intent.Args) > 0 {
		return intent.Args[0]
	}
	return ""
}

func (a *App) sellMenu(ctx context.Context, intent parser.Intent) {
	b := a.state.Business
	price := b.Rules().SellPrice()
	a.say(fmt.Sprintf("You have %d working scooters you could sell.", b.WorkingScooters()))
	a.say(fmt.Sprintf("You can get %s for each one.", money(price)))

	count, ok := a.askQuantity(intent.Quantity, "How many would you like to sell?", b.WorkingScooters())
	if !ok {
		a.pause()
		return
	}
	if count > b.WorkingScooters() {
		count = b.WorkingScooters()
		a.warn(fmt.Sprintf("You only have %d to sell.", count))
	}

	if err := b.SellWorkingScooters(count, price); err != nil {
		a.reportLedgerError(ctx, err)
	} else {
		a.say(fmt.Sprintf("Sold %d scooters for %s.", count, money(price*float64(count))))
		a.syncFleet()
	}
	a.pause()
}

func (a *App) repairMenu(ctx context.Context, intent parser.Intent) {
	b := a.state.Business
	repairable := b.RepairableScooters()
	a.say(fmt.Sprintf("You have enough parts to repair %d of your broken scooters.", repairable))

	count, ok := a.askQuantity(intent.Quantity, "How many do you want to repair?", repairable)
	if !ok {
		a.pause()
		return
	}
	count = min(count, repairable)

	if err := b.RepairScooters(count); err != nil {
		a.reportLedgerError(ctx, err)
	} else {
		a.say(fmt.Sprintf("You repaired %d scooters.", count))
		a.syncFleet()
	}
	a.pause()
}

func (a *App) advertMenu(ctx context.Context, intent parser.Intent) {
	b := a.state.Business
	price := b.Rules().AdvertPrice
	a.say(fmt.Sprintf("You have %s cash.", money(b.Cash())))
	a.say(fmt.Sprintf("Each advertisement costs %s.", money(price)))

	if b.Cash() <= price {
		a.warn("You don't currently have enough cash to buy an advertisement.")
		a.pause()
		return
	}

	count, ok := a.askQuantity(intent.Quantity, "How many advertisements do you want to buy for tomorrow?", game.AffordableUnits(b.Cash(), price))
	if !ok {
		a.pause()
		return
	}
	count = a.clampToCash(count, price)

	if err := b.BuyAdvertisements(count, price); err != nil {
		a.reportLedgerError(ctx, err)
	} else {
		a.say(fmt.Sprintf("Bought %d advertisements for %s each.", count, money(price)))
		a.syncFleet()
	}
	a.pause()
}

func (a *App) businessInfo(ctx context.Context) {
	b := a.state.Business
	a.say(a.styles.Heading.Render(fmt.Sprintf("%s Scooter shop has:", b.Name())))
	text := a.styles.Text.Render
	a.say(text(fmt.Sprintf("  %s cash.", money(b.Cash()))))
	a.say(text(fmt.Sprintf("  %d working scooters, ready to rent.", b.WorkingScooters())))
	a.say(text(fmt.Sprintf("  %d broken scooters, unrentable until repaired.", b.BrokenScooters())))
	a.say(text(fmt.Sprintf("  %d parts for repairing scooters.", b.ScooterParts())))
	a.say(text(fmt.Sprintf("  %d advertisements ready for tomorrow.", b.Advertisements())))
	a.say(text(a.state.Weather.Describe(game.Today)))
	a.say(text(a.state.Weather.Describe(game.Tomorrow)))

	days, err := a.cfg.Recorder.Days(ctx, a.state.GameID)
	if err != nil {
		a.log.Error(ctx, "read history", err)
	}
	if len(days) > 0 {
		a.say(a.styles.Heading.Render("Recent days:"))
		for _, d := range days[max(0, len(days)-recentDays):] {
			a.say(text(fmt.Sprintf("  Day %d, %s %s: rented %d at %s, %d broken, took %s.",
				d.Day, d.Temperature, d.Weather, d.Rented, money(d.Price), d.Broken, money(d.Revenue))))
		}
	}
	a.pause()
}

// askQuantity uses the quantity typed with the command, or asks for one.
// "all" resolves to limit.
func (a *App) askQuantity(q *parser.Quantity, prompt string, limit int) (int, bool) {
	if q == nil {
		a.say(prompt)
		line, ok := a.readLine()
		if !ok {
			return 0, false
		}
		parsed, err := parser.ParseQuantity(line)
		if err != nil {
			a.warn("That's not a real number.")
			return 0, false
		}
		q = parsed
	}
	if q.All() {
		return max(limit, 0), true
	}
	return q.N, true
}

// clampToCash trims count to what cash covers and tells the player.
func (a *App) clampToCash(count int, unitPrice float64) int {
	if unitPrice <= 0 {
		return count
	}
	affordable := game.AffordableUnits(a.state.Business.Cash(), unitPrice)
	if count > affordable {
		a.warn(fmt.Sprintf("You can only afford %d.", affordable))
		return affordable
	}
	return count
}

func (a *App) reportLedgerError(ctx context.Context, err error) {
	a.log.Warn(a.log.WithField(ctx, "error", err.Error()), "ledger rejected operation")
	switch {
	case errors.Is(err, game.ErrNotEnoughMoney):
		a.warn("You don't have enough cash for that.")
	case errors.Is(err, game.ErrInsufficientWorkingScooters):
		a.warn("You don't have that many working scooters.")
	case errors.Is(err, game.ErrInsufficientBrokenScooters):
		a.warn("You don't have that many broken scooters.")
	case errors.Is(err, game.ErrInsufficientParts):
		a.warn("You don't have enough parts.")
	default:
		a.warn(fmt.Sprintf("That didn't work: %v", err))
	}
}
