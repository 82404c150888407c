package parser

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

// Commands lists the known commands sorted by name.
func (p *Parser) Commands() []CommandDef {
	return p.registry.Commands()
}

// Parse maps a line of player input onto a menu intent. When the input is
// ambiguous or incomplete the intent carries a clarifying question instead.
func (p *Parser) Parse(raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command or a menu number."}
		return intent
	}
	// Normalising turns "-5" into "5", so signs are checked on the raw input.
	if hasNegativeNumber(raw) {
		intent.Clarify = &ClarifyQuestion{Prompt: "Quantities can't be negative."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "That's not a thing you can do. Try buy, sell, repair, advertise, info, next or quit.",
		}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "Did you mean:",
			Options: []Intent{
				candidateIntent(raw, cmdMatch),
				candidateIntent(raw, alternates[0]),
			},
		}
		return intent
	}

	intent.Verb = cmdMatch.Canonical
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(cmdMatch.Score)

	argsTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argsTokens = tokens[cmdMatch.Consumed:]
	}
	argsTokens, q := splitQuantity(argsTokens)
	intent.Quantity = q

	def, _ := p.registry.command(intent.Verb)
	args, argScore := resolveTargets(def, argsTokens)
	intent.Args = args
	intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))

	if len(intent.Args) < def.MinArgs {
		intent.Clarify = &ClarifyQuestion{
			Prompt:  fmt.Sprintf("What do you want to %s?", def.Canonical),
			Options: targetOptions(raw, def, q),
		}
		intent.Confidence = 0.45
		return intent
	}

	if len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}
	return intent
}

func hasNegativeNumber(raw string) bool {
	for _, field := range strings.Fields(raw) {
		rest, ok := strings.CutPrefix(field, "-")
		if !ok {
			continue
		}
		rest = strings.TrimLeft(rest, "-")
		if rest != "" && unicode.IsDigit(rune(rest[0])) {
			return true
		}
	}
	return false
}

func candidateIntent(raw string, c commandCandidate) Intent {
	return Intent{
		Raw:        raw,
		Normalised: c.Canonical,
		Kind:       commandKind(c.Canonical),
		Verb:       c.Canonical,
		Confidence: c.Score,
	}
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "info":
		return Query
	default:
		return Command
	}
}

func splitQuantity(tokens []string) ([]string, *Quantity) {
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(tokens))
	var q *Quantity
	for _, token := range tokens {
		if q == nil {
			if candidate := parseQuantityToken(token); candidate != nil {
				q = candidate
				continue
			}
		}
		out = append(out, token)
	}
	return out, q
}

// resolveTargets maps free words onto the command's known targets, so
// "buy scoters" still buys scooters. Words that match nothing are dropped
// for commands with targets and kept otherwise.
func resolveTargets(def CommandDef, args []string) ([]string, float64) {
	if len(args) == 0 {
		return nil, 0.9
	}
	if len(def.Targets) == 0 {
		return args, 0.85
	}

	// Try two-word targets such as "spare parts" before single words.
	for width := min(2, len(args)); width >= 1; width-- {
		for i := 0; i+width <= len(args); i++ {
			phrase := strings.Join(args[i:i+width], " ")
			if target, score := bestTarget(phrase, def.Targets); target != "" {
				return []string{target}, score
			}
		}
	}
	return nil, 0.4
}

func bestTarget(token string, targets []TargetDef) (string, float64) {
	type scored struct {
		val   string
		score float64
	}
	results := make([]scored, 0, len(targets))
	for _, target := range targets {
		best := 0.0
		for _, alias := range append([]string{target.Canonical}, target.Aliases...) {
			alias = normaliseInput(alias)
			score := 0.0
			switch {
			case token == alias:
				score = 1.0
			case strings.HasPrefix(alias, token) && len(token) >= 2:
				score = 0.9
			default:
				dist := levenshtein.ComputeDistance(token, alias)
				if dist > levenshteinLimit(len(alias)) {
					continue
				}
				score = 0.72 - (0.08 * float64(dist))
			}
			best = max(best, score)
		}
		if best > 0 {
			results = append(results, scored{val: target.Canonical, score: best})
		}
	}
	if len(results) == 0 {
		return "", 0
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})
	return results[0].val, results[0].score
}

func targetOptions(raw string, def CommandDef, q *Quantity) []Intent {
	options := make([]Intent, 0, len(def.Targets))
	for _, target := range def.Targets {
		options = append(options, Intent{
			Raw:        raw,
			Normalised: def.Canonical + " " + target.Canonical,
			Kind:       commandKind(def.Canonical),
			Verb:       def.Canonical,
			Args:       []string{target.Canonical},
			Quantity:   q,
			Confidence: 0.88,
		})
	}
	return options
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IntentToCommandString renders an intent back into canonical input.
func IntentToCommandString(intent Intent) string {
	parts := []string{intent.Verb}
	parts = append(parts, intent.Args...)
	if intent.Quantity != nil {
		if intent.Quantity.All() {
			parts = append(parts, "all")
		} else {
			parts = append(parts, fmt.Sprintf("%d", intent.Quantity.N))
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
