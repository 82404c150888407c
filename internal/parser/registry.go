package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type commandPhrase struct {
	canonical string
	alias     string
	tokens    []string
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []commandPhrase
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandDef),
	}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	if c.HandlerKey == "" {
		c.HandlerKey = c.Canonical
	}
	r.commands[c.Canonical] = c

	for _, alias := range append([]string{c.Canonical}, c.Aliases...) {
		n := normaliseInput(alias)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, commandPhrase{
			canonical: c.Canonical,
			alias:     n,
			tokens:    tokenise(n),
		})
	}
}

// Commands returns the registered commands sorted by name.
func (r *Registry) Commands() []CommandDef {
	out := make([]CommandDef, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Canonical < out[j].Canonical })
	return out
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	cmd, ok := r.commands[normaliseInput(canonical)]
	return cmd, ok
}

type commandCandidate struct {
	Canonical string
	Alias     string
	Consumed  int
	Score     float64
	Source    string
}

func (r *Registry) matchCommand(tokens []string) (commandCandidate, []commandCandidate) {
	if len(tokens) == 0 {
		return commandCandidate{}, nil
	}
	in := strings.Join(tokens, " ")
	cands := make([]commandCandidate, 0, len(r.phrases))
	for _, phrase := range r.phrases {
		if cand, ok := scorePhrase(phrase, tokens, in); ok {
			cands = append(cands, cand)
		}
	}
	if len(cands) == 0 {
		return commandCandidate{}, nil
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			if cands[i].Consumed == cands[j].Consumed {
				return cands[i].Canonical < cands[j].Canonical
			}
			return cands[i].Consumed > cands[j].Consumed
		}
		return cands[i].Score > cands[j].Score
	})

	best := cands[0]
	alts := make([]commandCandidate, 0, 3)
	seen := map[string]bool{best.Canonical: true}
	for _, c := range cands[1:] {
		if seen[c.Canonical] {
			continue
		}
		seen[c.Canonical] = true
		alts = append(alts, c)
		if len(alts) >= 3 {
			break
		}
	}
	return best, alts
}

// scorePhrase rates how well the leading tokens name phrase: exact and alias
// hits first, then single-word prefixes, then levenshtein near misses.
func scorePhrase(phrase commandPhrase, tokens []string, in string) (commandCandidate, bool) {
	if len(phrase.tokens) == 0 {
		return commandCandidate{}, false
	}
	cand := commandCandidate{Canonical: phrase.canonical, Alias: phrase.alias}

	consumed := min(len(tokens), len(phrase.tokens))
	prefix := strings.Join(tokens[:consumed], " ")
	switch {
	case consumed == len(phrase.tokens) && prefix == phrase.alias:
		cand.Consumed = consumed
		cand.Score, cand.Source = 1.0, "exact"
		if phrase.alias != phrase.canonical {
			cand.Score, cand.Source = 0.97, "alias"
		}
		return cand, true
	case len(phrase.tokens) == 1 && len(tokens[0]) >= 2 && strings.HasPrefix(phrase.alias, tokens[0]):
		cand.Consumed = 1
		cand.Score, cand.Source = 0.9, "prefix"
		return cand, true
	}

	if len(prefix) < 3 {
		return commandCandidate{}, false
	}
	dist := levenshtein.ComputeDistance(prefix, phrase.alias)
	if dist > levenshteinLimit(len(phrase.alias)) {
		return commandCandidate{}, false
	}
	cand.Consumed = consumed
	cand.Score, cand.Source = 0.72-(0.08*float64(dist)), "lev"
	if strings.Contains(in, phrase.alias) {
		cand.Score += 0.04
	}
	if phrase.alias != phrase.canonical {
		cand.Score += 0.03
	}
	return cand, true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

var purchaseTargets = []TargetDef{
	{Canonical: "scooters", Aliases: []string{"scooter", "scoots", "fleet"}},
	{Canonical: "parts", Aliases: []string{"part", "spares", "spare parts", "repair parts"}},
}

// DefaultRegistry holds the shop's menu. The numbers match the menu the
// game prints, so "3" works as well as "repair".
func DefaultRegistry() *Registry {
	r := NewRegistry()
	commands := []CommandDef{
		{Canonical: "buy", Aliases: []string{"1", "purchase", "order"}, MinArgs: 1, MaxArgs: 1, HandlerKey: "buy", Targets: purchaseTargets},
		{Canonical: "sell", Aliases: []string{"2", "sell scooters", "offload"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "sell"},
		{Canonical: "repair", Aliases: []string{"3", "fix", "mend", "repair scooters"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "repair"},
		{Canonical: "advertise", Aliases: []string{"4", "ads", "advert", "adverts", "advertising", "advertisements"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "advertise"},
		{Canonical: "info", Aliases: []string{"5", "status", "report", "stats", "weather", "history"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "info"},
		{Canonical: "next", Aliases: []string{"6", "ready", "done", "end day", "next day", "sleep"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "next"},
		{Canonical: "quit", Aliases: []string{"7", "exit", "bye", "save and quit"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "quit"},
		{Canonical: "help", Aliases: []string{"h", "commands", "menu"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "help"},
	}
	for _, cmd := range commands {
		r.RegisterCommand(cmd)
	}
	return r
}
