package game

import "github.com/orps-game/orps-server/internal/models"

const (
	// startingCountdown is the value the pre-game countdown begins at.
	startingCountdown = 5

	// missedMoveThreshold is how many consecutive missed moves flag a player
	// as inactive.
	missedMoveThreshold = 3
)

// Game is a running rock-paper-scissors session. All state is mutated by the
// engine's consumer goroutine only; the struct itself carries no lock.
type Game struct {
	URI string

	// ParentLobbyURI is empty for games created without a lobby.
	ParentLobbyURI string
	Settings       models.GameSettings

	// CountdownValue ticks 5..0 before the first round starts.
	CountdownValue int

	players       []*Player
	roundWinner   *Player
	finished      bool
	roundFinished bool
	roundNumber   int
}

// New builds a game over the given players. The first round has not started
// yet: roundFinished is true and the countdown is primed.
func New(players []*Player, settings models.GameSettings, parentLobbyURI string) *Game {
	return &Game{
		URI:            models.GenerateURI(),
		ParentLobbyURI: parentLobbyURI,
		Settings:       settings,
		CountdownValue: startingCountdown,
		players:        players,
		roundFinished:  true,
	}
}

// FromMembers builds the player list from lobby members, giving each a fresh
// score and an empty move.
func FromMembers(members []*models.User, settings models.GameSettings, parentLobbyURI string) *Game {
	players := make([]*Player, 0, len(members))
	for _, member := range members {
		players = append(players, NewPlayer(member))
	}
	return New(players, settings, parentLobbyURI)
}

func (g *Game) Players() []*Player { return g.players }

func (g *Game) RoundNumber() int { return g.roundNumber }

func (g *Game) RoundFinished() bool { return g.roundFinished }

func (g *Game) Finished() bool { return g.finished }

// RoundWinner returns the winner of the last finished round, nil on a tie.
func (g *Game) RoundWinner() *Player { return g.roundWinner }

// Player returns the player with the given uuid, nil if absent.
func (g *Game) Player(uuid string) *Player {
	for _, p := range g.players {
		if p.UUID() == uuid {
			return p
		}
	}
	return nil
}

func (g *Game) HasPlayer(uuid string) bool {
	return g.Player(uuid) != nil
}

func (g *Game) AddPlayer(p *Player) {
	g.players = append(g.players, p)
}

func (g *Game) RemovePlayer(uuid string) {
	for i, p := range g.players {
		if p.UUID() == uuid {
			g.players = append(g.players[:i], g.players[i+1:]...)
			return
		}
	}
}

// PlayerUUIDs returns all player uuids in join order.
func (g *Game) PlayerUUIDs() []string {
	uuids := make([]string, 0, len(g.players))
	for _, p := range g.players {
		uuids = append(uuids, p.UUID())
	}
	return uuids
}

// PlayerUUIDsExcept returns all player uuids except the given one.
func (g *Game) PlayerUUIDsExcept(uuid string) []string {
	uuids := make([]string, 0, len(g.players))
	for _, p := range g.players {
		if p.UUID() != uuid {
			uuids = append(uuids, p.UUID())
		}
	}
	return uuids
}

// InactivePlayers returns the players currently flagged inactive.
func (g *Game) InactivePlayers() []*Player {
	var inactive []*Player
	for _, p := range g.players {
		if p.Inactive {
			inactive = append(inactive, p)
		}
	}
	return inactive
}

// PlayerDTOs projects every player for round-result payloads.
func (g *Game) PlayerDTOs() []models.PlayerDTO {
	dtos := make([]models.PlayerDTO, 0, len(g.players))
	for _, p := range g.players {
		dtos = append(dtos, p.DTO())
	}
	return dtos
}

// DTO projects the game for event payloads.
func (g *Game) DTO() models.GameDTO {
	return models.GameDTO{
		Players:        g.PlayerDTOs(),
		ParentLobbyURI: g.ParentLobbyURI,
		URI:            g.URI,
		Settings:       g.Settings,
	}
}

// StartNextRound resets per-round state: clears the winner, bumps the round
// number and wipes moves. Bots pick a random move immediately.
func (g *Game) StartNextRound() {
	g.roundWinner = nil
	g.roundFinished = false
	g.roundNumber++

	for _, p := range g.players {
		if p.User.IsBot {
			p.Move = models.RandomMove()
		} else {
			p.Move = models.NoMove
		}
	}
}

// FinishRound closes the round: awards the winner a point, flips finished
// when the score goal is met, and updates the missed-move bookkeeping.
func (g *Game) FinishRound() {
	g.roundFinished = true

	if winner := DetermineWinner(g.players); winner != nil {
		g.roundWinner = winner
		winner.Score++
		if winner.Score == g.Settings.ScoreGoal {
			g.finished = true
		}
	}

	for _, p := range g.players {
		if p.Move == models.NoMove {
			p.MissedMoves++
			if p.MissedMoves == missedMoveThreshold {
				p.Inactive = true
			}
		} else {
			p.MissedMoves = 0
			p.Inactive = false
		}
	}
}

// DetermineWinner returns the player whose move beats every other player's
// move, nil when no such player exists. At most one player can satisfy the
// predicate, so scanning order does not matter.
func DetermineWinner(players []*Player) *Player {
	var winner *Player
	for _, candidate := range players {
		beatsAll := true
		for _, other := range players {
			if other.UUID() == candidate.UUID() {
				continue
			}
			if !candidate.Move.Beats(other.Move) {
				beatsAll = false
				break
			}
		}
		if beatsAll {
			winner = candidate
		}
	}
	return winner
}
