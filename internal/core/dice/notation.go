package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidNotation indicates a dice expression could not be parsed.
var ErrInvalidNotation = errors.New("invalid dice notation")

// maxDiceCount bounds a single term so a typo cannot allocate millions of results.
const maxDiceCount = 1000

// Notation is a parsed dice expression such as "2d6+1d8-1".
type Notation struct {
	Dice     []Spec
	Modifier int
}

// ParseNotation parses NdS terms and integer modifiers joined by + or -.
// The count may be omitted ("d20"). Dice terms cannot be subtracted.
func ParseNotation(expr string) (Notation, error) {
	s := strings.ToLower(strings.Join(strings.Fields(expr), ""))
	if s == "" {
		return Notation{}, fmt.Errorf("%w: empty expression", ErrInvalidNotation)
	}

	var n Notation
	sign := 1
	for len(s) > 0 {
		switch s[0] {
		case '+':
			sign, s = 1, s[1:]
		case '-':
			sign, s = -1, s[1:]
		}
		end := strings.IndexAny(s, "+-")
		if end == -1 {
			end = len(s)
		}
		term := s[:end]
		s = s[end:]
		if term == "" {
			return Notation{}, fmt.Errorf("%w: dangling operator in %q", ErrInvalidNotation, expr)
		}

		if !strings.Contains(term, "d") {
			k, err := strconv.Atoi(term)
			if err != nil {
				return Notation{}, fmt.Errorf("%w: modifier %q", ErrInvalidNotation, term)
			}
			n.Modifier += sign * k
			sign = 1
			continue
		}
		if sign < 0 {
			return Notation{}, fmt.Errorf("%w: cannot subtract dice term %q", ErrInvalidNotation, term)
		}
		spec, err := parseTerm(term)
		if err != nil {
			return Notation{}, err
		}
		n.Dice = append(n.Dice, spec)
	}

	if len(n.Dice) == 0 {
		return Notation{}, fmt.Errorf("%w: %q has no dice", ErrInvalidNotation, expr)
	}
	return n, nil
}

func parseTerm(term string) (Spec, error) {
	countText, sidesText, _ := strings.Cut(term, "d")
	count := 1
	if countText != "" {
		c, err := strconv.Atoi(countText)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: count in %q", ErrInvalidNotation, term)
		}
		count = c
	}
	sides, err := strconv.Atoi(sidesText)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: sides in %q", ErrInvalidNotation, term)
	}
	if count <= 0 || count > maxDiceCount || sides <= 0 || int64(sides) > maxDiceSides {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidNotation, term)
	}
	return Spec{Sides: sides, Count: count}, nil
}

// String renders the notation in canonical form, e.g. "2d6+1d8-1".
func (n Notation) String() string {
	var b strings.Builder
	for i, spec := range n.Dice {
		if i > 0 {
			b.WriteByte('+')
		}
		fmt.Fprintf(&b, "%dd%d", spec.Count, spec.Sides)
	}
	switch {
	case n.Modifier > 0:
		fmt.Fprintf(&b, "+%d", n.Modifier)
	case n.Modifier < 0:
		fmt.Fprintf(&b, "%d", n.Modifier)
	}
	return b.String()
}

// Request builds a roll request for this notation.
func (n Notation) Request(seed string) Request {
	return Request{Dice: n.Dice, Modifier: n.Modifier, Seed: seed}
}
