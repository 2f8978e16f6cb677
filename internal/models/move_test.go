package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeatsRelation(t *testing.T) {
	assert.True(t, MoveRock.Beats(MoveScissors))
	assert.True(t, MovePaper.Beats(MoveRock))
	assert.True(t, MoveScissors.Beats(MovePaper))

	assert.False(t, MoveScissors.Beats(MoveRock))
	assert.False(t, MoveRock.Beats(MovePaper))
	assert.False(t, MovePaper.Beats(MoveScissors))

	// a move never beats itself
	for _, m := range realMoves {
		assert.False(t, m.Beats(m))
	}

	// real moves beat an absent move, never the reverse
	for _, m := range realMoves {
		assert.True(t, m.Beats(NoMove))
		assert.False(t, NoMove.Beats(m))
	}
	assert.False(t, NoMove.Beats(NoMove))
}

func TestParseMove(t *testing.T) {
	for _, raw := range []string{"ROCK", "rock", "Rock"} {
		m, ok := ParseMove(raw)
		assert.True(t, ok)
		assert.Equal(t, MoveRock, m)
	}

	_, ok := ParseMove("LIZARD")
	assert.False(t, ok)

	// the reset state is not a submittable move
	_, ok = ParseMove("NO_MOVE")
	assert.False(t, ok)
}

func TestGenerateURI(t *testing.T) {
	uri := GenerateURI()
	assert.Len(t, uri, 16)
	for _, c := range uri {
		assert.Contains(t, uriCharset, string(c))
	}
	assert.NotEqual(t, uri, GenerateURI())
}
