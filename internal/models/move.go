package models

import (
	"math/rand"
	"strings"
)

// Move is a player's choice for a single round. NoMove is the reset state at
// round start; it loses to everything and beats nothing.
type Move string

const (
	MoveRock     Move = "ROCK"
	MovePaper    Move = "PAPER"
	MoveScissors Move = "SCISSORS"
	NoMove       Move = "NO_MOVE"
)

// Beats reports whether m wins against other under the cyclic relation,
// with the extra rule that any real move beats NoMove.
func (m Move) Beats(other Move) bool {
	switch m {
	case MoveRock:
		return other == MoveScissors || other == NoMove
	case MovePaper:
		return other == MoveRock || other == NoMove
	case MoveScissors:
		return other == MovePaper || other == NoMove
	default:
		return false
	}
}

// ParseMove resolves a client-supplied move string, case-insensitively.
// NoMove is not accepted from the wire.
func ParseMove(value string) (Move, bool) {
	switch strings.ToUpper(value) {
	case "ROCK":
		return MoveRock, true
	case "PAPER":
		return MovePaper, true
	case "SCISSORS":
		return MoveScissors, true
	default:
		return NoMove, false
	}
}

var realMoves = []Move{MoveRock, MovePaper, MoveScissors}

// RandomMove picks a uniformly random real move, used for bot players at
// round start.
func RandomMove() Move {
	return realMoves[rand.Intn(len(realMoves))]
}
