package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Goal is a savings goal the player selects during profile creation. Goals
// steer the allocation advisor (a "home" goal shifts weight toward the FHSA).
type Goal string

const (
	GoalHome       Goal = "home"
	GoalEmergency  Goal = "emergency"
	GoalRetirement Goal = "retirement"
	GoalTravel     Goal = "travel"
)

var validGoals = map[Goal]bool{
	GoalHome:       true,
	GoalEmergency:  true,
	GoalRetirement: true,
	GoalTravel:     true,
}

// ParseGoals splits a comma-separated goals string into domain goals,
// ignoring empty entries. Unknown goal names are kept and caught later by
// PlayerProfile.Validate.
func ParseGoals(raw string) []Goal {
	var goals []Goal
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		goals = append(goals, Goal(part))
	}
	return goals
}

// PlayerProfile captures the player's setup inputs. Immutable once the game
// has started.
type PlayerProfile struct {
	Name          string          `json:"name" yaml:"name"`
	Age           int             `json:"age" yaml:"age"`
	Income        decimal.Decimal `json:"income" yaml:"income"`
	Goals         []Goal          `json:"goals" yaml:"goals"`
	StartingMoney decimal.Decimal `json:"starting_money" yaml:"starting_money"`
}

// Validate checks the profile fields against the game's entry requirements.
func (p *PlayerProfile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 18 {
		return fmt.Errorf("age must be at least 18, got %d", p.Age)
	}
	if p.Income.LessThan(decimal.Zero) {
		return fmt.Errorf("income cannot be negative")
	}
	if p.StartingMoney.LessThan(decimal.Zero) {
		return fmt.Errorf("starting money cannot be negative")
	}
	for _, g := range p.Goals {
		if !validGoals[g] {
			return fmt.Errorf("unknown goal %q", g)
		}
	}
	return nil
}

// HasGoal reports whether the profile includes the given goal.
func (p *PlayerProfile) HasGoal(goal Goal) bool {
	for _, g := range p.Goals {
		if g == goal {
			return true
		}
	}
	return false
}
