package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orps-game/orps-server/internal/models"
)

func testPlayers(n int) []*Player {
	players := make([]*Player, 0, n)
	for i := 0; i < n; i++ {
		players = append(players, NewPlayer(&models.User{
			UUID: fmt.Sprintf("uuid-%d", i),
			Name: fmt.Sprintf("player%d", i),
		}))
	}
	return players
}

func testSettings() models.GameSettings {
	return models.GameSettings{TimeForMove: 3, ScoreGoal: 5}
}

func TestNewGamePrimed(t *testing.T) {
	g := New(testPlayers(2), testSettings(), "lobby-uri")

	assert.Len(t, g.URI, 16)
	assert.Equal(t, "lobby-uri", g.ParentLobbyURI)
	assert.Equal(t, 5, g.CountdownValue)
	assert.Equal(t, 0, g.RoundNumber())
	assert.True(t, g.RoundFinished())
	assert.False(t, g.Finished())
	assert.Nil(t, g.RoundWinner())
}

func TestStartNextRoundResetsState(t *testing.T) {
	g := New(testPlayers(3), testSettings(), "")
	g.StartNextRound()
	g.Players()[0].Move = models.MoveRock
	g.FinishRound()
	require.NotNil(t, g.RoundWinner())

	g.StartNextRound()

	assert.Equal(t, 2, g.RoundNumber())
	assert.False(t, g.RoundFinished())
	assert.Nil(t, g.RoundWinner())
	for _, p := range g.Players() {
		assert.Equal(t, models.NoMove, p.Move)
	}
}

func TestStartNextRoundBotsMoveImmediately(t *testing.T) {
	players := testPlayers(1)
	bot := NewPlayer(models.NewBotUser())
	g := New(append(players, bot), testSettings(), "")

	g.StartNextRound()

	assert.Equal(t, models.NoMove, g.Players()[0].Move)
	assert.NotEqual(t, models.NoMove, bot.Move)
}

func TestFinishRoundAwardsWinner(t *testing.T) {
	g := New(testPlayers(2), testSettings(), "")
	g.StartNextRound()
	g.Players()[0].Move = models.MoveRock
	g.Players()[1].Move = models.MoveScissors

	g.FinishRound()

	assert.True(t, g.RoundFinished())
	require.NotNil(t, g.RoundWinner())
	assert.Equal(t, "uuid-0", g.RoundWinner().UUID())
	assert.Equal(t, 1, g.Players()[0].Score)
	assert.Equal(t, 0, g.Players()[1].Score)
	assert.False(t, g.Finished())
}

func TestFinishRoundTieAwardsNothing(t *testing.T) {
	g := New(testPlayers(2), testSettings(), "")
	g.StartNextRound()
	g.Players()[0].Move = models.MoveRock
	g.Players()[1].Move = models.MoveRock

	g.FinishRound()

	assert.Nil(t, g.RoundWinner())
	assert.Equal(t, 0, g.Players()[0].Score)
	assert.Equal(t, 0, g.Players()[1].Score)
}

func TestFinishRoundScoreGoalEndsGame(t *testing.T) {
	settings := models.GameSettings{TimeForMove: 3, ScoreGoal: 2}
	g := New(testPlayers(2), settings, "")

	for i := 0; i < 2; i++ {
		g.StartNextRound()
		g.Players()[0].Move = models.MovePaper
		g.Players()[1].Move = models.MoveRock
		g.FinishRound()
	}

	assert.True(t, g.Finished())
	assert.Equal(t, 2, g.Players()[0].Score)
}

func TestMissedMoveBookkeeping(t *testing.T) {
	g := New(testPlayers(2), testSettings(), "")

	for round := 1; round <= 3; round++ {
		g.StartNextRound()
		g.Players()[0].Move = models.MoveRock
		g.FinishRound()

		assert.Equal(t, round, g.Players()[1].MissedMoves)
		assert.Equal(t, 0, g.Players()[0].MissedMoves)
	}

	assert.True(t, g.Players()[1].Inactive)
	assert.False(t, g.Players()[0].Inactive)

	// a submitted move clears the flag
	g.StartNextRound()
	g.Players()[1].Move = models.MovePaper
	g.FinishRound()

	assert.False(t, g.Players()[1].Inactive)
	assert.Equal(t, 0, g.Players()[1].MissedMoves)
}

// TestDetermineWinnerUniqueness enumerates every move assignment for 2 to 6
// players and checks that at most one player ever beats all others, so the
// scan's last-candidate-wins shape cannot mask a second winner.
func TestDetermineWinnerUniqueness(t *testing.T) {
	moves := []models.Move{models.MoveRock, models.MovePaper, models.MoveScissors, models.NoMove}

	for n := 2; n <= 6; n++ {
		assignment := make([]int, n)
		for {
			players := testPlayers(n)
			for i, p := range players {
				p.Move = moves[assignment[i]]
			}

			beatsAll := 0
			var expected *Player
			for _, candidate := range players {
				wins := true
				for _, other := range players {
					if other == candidate {
						continue
					}
					if !candidate.Move.Beats(other.Move) {
						wins = false
						break
					}
				}
				if wins {
					beatsAll++
					expected = candidate
				}
			}

			require.LessOrEqual(t, beatsAll, 1, "two beats-all players for assignment %v", assignment)
			assert.Equal(t, expected, DetermineWinner(players))

			i := 0
			for ; i < n; i++ {
				assignment[i]++
				if assignment[i] < len(moves) {
					break
				}
				assignment[i] = 0
			}
			if i == n {
				break
			}
		}
	}
}

func TestStoreGamesWithUser(t *testing.T) {
	s := NewStore()
	g1 := New(testPlayers(2), testSettings(), "")
	g2 := New(testPlayers(3), testSettings(), "")
	s.Add(g1)
	s.Add(g2)

	games := s.GamesWithUser("uuid-2")
	require.Len(t, games, 1)
	assert.Equal(t, g2.URI, games[0].URI)

	assert.Len(t, s.GamesWithUser("uuid-0"), 2)

	s.Delete(g1.URI)
	_, ok := s.Get(g1.URI)
	assert.False(t, ok)
}
