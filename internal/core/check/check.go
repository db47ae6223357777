// Package check resolves difficulty checks against dice results.
package check

import "github.com/louisbranch/seedrand/internal/core/dice"

// Outcome classifies a resolved check.
type Outcome int

const (
	OutcomeUnspecified Outcome = iota
	OutcomeSuccess
	OutcomeFailure
	OutcomeCriticalSuccess
	OutcomeCriticalFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnspecified:
		return "Unspecified"
	case OutcomeSuccess:
		return "Success"
	case OutcomeFailure:
		return "Failure"
	case OutcomeCriticalSuccess:
		return "Critical success"
	case OutcomeCriticalFailure:
		return "Critical failure"
	default:
		return "Unknown"
	}
}

// MeetsDifficulty returns true if total >= difficulty.
func MeetsDifficulty(total, difficulty int) bool {
	return total >= difficulty
}

// Margin calculates the margin of success or failure.
// Positive values indicate success, negative indicate failure.
func Margin(total, difficulty int) int {
	return total - difficulty
}

// Result represents the outcome of a difficulty check.
type Result struct {
	Outcome    Outcome
	Success    bool
	Margin     int
	Difficulty int
}

// Check performs a difficulty check on a bare total.
func Check(total, difficulty int) Result {
	success := MeetsDifficulty(total, difficulty)
	outcome := OutcomeFailure
	if success {
		outcome = OutcomeSuccess
	}
	return Result{
		Outcome:    outcome,
		Success:    success,
		Margin:     Margin(total, difficulty),
		Difficulty: difficulty,
	}
}

// Resolve checks a dice roll against difficulty. A roll where every die shows
// its highest face always succeeds critically; one where every die shows 1
// always fails critically.
func Resolve(roll dice.Result, difficulty int) Result {
	res := Check(roll.Total, difficulty)
	switch {
	case allFaces(roll, func(face, sides int) bool { return face == sides }):
		res.Outcome = OutcomeCriticalSuccess
		res.Success = true
	case allFaces(roll, func(face, _ int) bool { return face == 1 }):
		res.Outcome = OutcomeCriticalFailure
		res.Success = false
	}
	return res
}

func allFaces(roll dice.Result, match func(face, sides int) bool) bool {
	seen := false
	for _, r := range roll.Rolls {
		// A d1 is both its highest and lowest face; it cannot decide a critical.
		if r.Sides < 2 {
			return false
		}
		for _, face := range r.Results {
			if !match(face, r.Sides) {
				return false
			}
			seen = true
		}
	}
	return seen
}
