package blackjack

import "strings"

// Action is a command a participant can issue
type Action int

// action constants
const (
	ActionHit Action = iota + 1
	ActionStand
	ActionBet
	ActionSkip
	ActionDouble
	ActionSurrender
)

func (a Action) String() string {
	switch a {
	case ActionHit:
		return "HIT"
	case ActionStand:
		return "STAND"
	case ActionBet:
		return "BET"
	case ActionSkip:
		return "SKIP"
	case ActionDouble:
		return "DOUBLE"
	case ActionSurrender:
		return "SURRENDER"
	}

	return "UNKNOWN"
}

// ActionFromString parses free-form participant input into an Action.
// Input is case-insensitive with surrounding whitespace ignored. The second
// return value is false if the input isn't a known command.
func ActionFromString(input string) (Action, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "h", "hit":
		return ActionHit, true
	case "s", "stand":
		return ActionStand, true
	case "b", "bet":
		return ActionBet, true
	case "skip":
		return ActionSkip, true
	case "d":
		return ActionDouble, true
	case "surrender":
		return ActionSurrender, true
	}

	return 0, false
}

func actionAllowed(action Action, allowed []Action) bool {
	for _, a := range allowed {
		if a == action {
			return true
		}
	}

	return false
}

func removeAction(allowed []Action, action Action) []Action {
	kept := make([]Action, 0, len(allowed))
	for _, a := range allowed {
		if a != action {
			kept = append(kept, a)
		}
	}

	return kept
}
