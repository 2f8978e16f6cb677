package models

// GameSettings are the per-session rules a game is created with. Bounds are
// enforced by the lobby settings registry on every mutation.
type GameSettings struct {
	TimeForMove int `json:"timeForMove"`
	ScoreGoal   int `json:"scoreGoal"`
}

// LobbySettings extend GameSettings with lobby-only knobs.
type LobbySettings struct {
	GameSettings
	InviteOnly bool `json:"inviteOnly"`
}

// DefaultLobbySettings are applied to every freshly created lobby.
func DefaultLobbySettings() LobbySettings {
	return LobbySettings{
		GameSettings: GameSettings{TimeForMove: 3, ScoreGoal: 5},
		InviteOnly:   true,
	}
}
