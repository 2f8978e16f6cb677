package lobby

import "github.com/orps-game/orps-server/internal/models"

// settingSpec describes one mutable lobby setting: how to parse its raw wire
// value, the range check applied to it, and how to write it.
type settingSpec struct {
	expectedType string
	parse        func(raw string) (any, bool)
	// validate returns a rejection message for out-of-range values, empty
	// when the value is allowed.
	validate func(v any) string
	apply    func(s *models.LobbySettings, v any)
}

var settingRegistry = map[string]settingSpec{
	"inviteOnly": {
		expectedType: `boolean string ("true" or "false")`,
		parse:        parseBoolValue,
		validate:     func(any) string { return "" },
		apply:        func(s *models.LobbySettings, v any) { s.InviteOnly = v.(bool) },
	},
	"timeForMove": {
		expectedType: "unsigned int",
		parse:        parseUintValue,
		validate:     rangeCheck(3, 10, "Time for move value must be in range 3 <= n <= 10"),
		apply:        func(s *models.LobbySettings, v any) { s.TimeForMove = v.(int) },
	},
	"scoreGoal": {
		expectedType: "unsigned int",
		parse:        parseUintValue,
		validate:     rangeCheck(1, 50, "Score goal value must be in range 1 <= n <= 50"),
		apply:        func(s *models.LobbySettings, v any) { s.ScoreGoal = v.(int) },
	},
}

func parseBoolValue(raw string) (any, bool) {
	switch raw {
	case "true", "TRUE", "True":
		return true, true
	case "false", "FALSE", "False":
		return false, true
	}
	return nil, false
}

func parseUintValue(raw string) (any, bool) {
	if raw == "" {
		return nil, false
	}
	n := 0
	for _, c := range raw {
		if c < '0' || c > '9' {
			return nil, false
		}
		n = n*10 + int(c-'0')
		if n > 1<<30 {
			return nil, false
		}
	}
	return n, true
}

func rangeCheck(min, max int, message string) func(v any) string {
	return func(v any) string {
		if n := v.(int); n < min || n > max {
			return message
		}
		return ""
	}
}
