package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

func parseQuantityToken(token string) *Quantity {
	token = strings.TrimSpace(strings.ToLower(token))
	if token == "" {
		return nil
	}
	switch token {
	case "all", "max", "everything":
		return &Quantity{Raw: token, N: -1, Unit: "all"}
	case "none":
		return &Quantity{Raw: token, N: 0, Unit: "count"}
	}
	if n, err := strconv.Atoi(token); err == nil && n >= 0 {
		return &Quantity{Raw: token, N: n, Unit: "count"}
	}
	return nil
}

// ParseQuantity reads an answer to a "how many" prompt.
func ParseQuantity(raw string) (*Quantity, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return nil, ErrEmptyInput
	}
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("%w: %q", ErrNegativeValue, raw)
	}
	q := parseQuantityToken(s)
	if q == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotANumber, raw)
	}
	return q, nil
}

// ParsePrice reads a rental price such as "15", "12.50" or "$9".
func ParsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, ErrEmptyInput
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNegativeValue, raw)
	}
	return v, nil
}
