// Package dice rolls tabletop dice from a string-seeded random stream.
package dice

import (
	"errors"

	"github.com/louisbranch/seedrand/internal/core/random"
)

// ErrMissingDice indicates a roll request had no dice specified.
var ErrMissingDice = errors.New("at least one die must be provided")

// ErrInvalidDiceSpec indicates a die specification has invalid fields.
var ErrInvalidDiceSpec = errors.New("dice must have positive sides and count")

// maxDiceSides is the widest die one 32-bit draw can roll uniformly.
const maxDiceSides = 1 << 32

// Source yields floats in [0, 1). *random.SFC32 and *random.Stream satisfy it.
type Source interface {
	Next() float64
}

// Spec describes a die to roll and how many times to roll it.
type Spec struct {
	Sides int
	Count int
}

// Roll captures the results for a single dice spec.
type Roll struct {
	Sides   int
	Results []int
	Total   int
}

// Request describes a request to roll one or more dice.
type Request struct {
	Dice     []Spec
	Modifier int
	Seed     string
}

// Result captures the results from rolling multiple dice.
type Result struct {
	Rolls    []Roll
	Modifier int
	Total    int
}

// RollDice rolls dice based on the provided request.
//
// # Determinism
//
// RollDice is deterministic with respect to the Seed field on Request.
// Given the same Seed and the same Dice slice (including order and values),
// RollDice will always produce the same Result.
//
// # Ordering
//
// Dice specs in Request.Dice are processed in slice order, and each die
// consumes exactly one draw from the stream. The resulting Roll entries in
// Result.Rolls appear in the same order as the corresponding Spec entries.
//
// # Totals
//
// Roll.Total is the sum of its Results. Result.Total is the sum of every
// Roll.Total plus Request.Modifier.
//
// # Errors
//
//   - At least one Spec must be provided in Request.Dice, otherwise
//     ErrMissingDice is returned.
//   - Each Spec must have 0 < Sides <= 2^32 and Count > 0, otherwise
//     ErrInvalidDiceSpec is returned.
//
// Example:
//
//	req := Request{
//	    Dice: []Spec{
//	        {Sides: 6, Count: 2}, // roll 2d6
//	        {Sides: 8, Count: 1}, // roll 1d8
//	    },
//	    Seed: "session-1",
//	}
//	result, err := RollDice(req)
func RollDice(request Request) (Result, error) {
	return RollWith(random.New(request.Seed), request.Dice, request.Modifier)
}

// RollWith rolls dice using a provided random source.
// This is useful when several rolls share one stream.
func RollWith(src Source, specs []Spec, modifier int) (Result, error) {
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}
	for _, spec := range specs {
		if spec.Sides <= 0 || int64(spec.Sides) > maxDiceSides || spec.Count <= 0 {
			return Result{}, ErrInvalidDiceSpec
		}
	}

	rolls := make([]Roll, 0, len(specs))
	total := modifier

	for _, spec := range specs {
		results := make([]int, spec.Count)
		rollTotal := 0
		for i := 0; i < spec.Count; i++ {
			value := rollDie(src, spec.Sides)
			results[i] = value
			rollTotal += value
		}

		rolls = append(rolls, Roll{
			Sides:   spec.Sides,
			Results: results,
			Total:   rollTotal,
		})
		total += rollTotal
	}

	return Result{
		Rolls:    rolls,
		Modifier: modifier,
		Total:    total,
	}, nil
}

// rollDie scales one draw onto the faces 1..sides.
func rollDie(src Source, sides int) int {
	return int(src.Next()*float64(sides)) + 1
}
