package game

import "github.com/orps-game/orps-server/internal/models"

// Player is a user's per-game state. The identity is copied at game creation,
// so a later rename does not retroactively change round payloads.
type Player struct {
	User models.User

	Score int
	Move  models.Move

	// MissedMoves counts consecutive rounds without a submitted move; at the
	// threshold the player is flagged inactive and kicked on the next round
	// result.
	MissedMoves int
	Inactive    bool
}

// NewPlayer wraps a user identity with zeroed game state.
func NewPlayer(u *models.User) *Player {
	return &Player{User: *u, Move: models.NoMove}
}

// UUID returns the wrapped identity's uuid.
func (p *Player) UUID() string {
	return p.User.UUID
}

// DTO projects the player for event payloads.
func (p *Player) DTO() models.PlayerDTO {
	return models.PlayerDTO{
		UserDTO: models.UserDTO{Username: p.User.Name, UUID: p.User.UUID},
		Score:   p.Score,
		Move:    p.Move,
	}
}
