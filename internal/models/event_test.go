package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventWireShapeOmitsRecipients(t *testing.T) {
	ev := LobbyNotFound("u1", "some-uri")

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "ERROR", decoded["category"])
	assert.Equal(t, "LOBBY_NOT_FOUND", decoded["id"])
	assert.NotContains(t, decoded, "Recipients")
	assert.NotContains(t, decoded, "recipients")

	payload, ok := decoded["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "some-uri", payload["lobbyUri"])
}

func TestEventConstructorsAddressAuthorOnly(t *testing.T) {
	assert.Equal(t, []string{"u1"}, SomethingWentWrong("u1").Recipients)
	assert.Equal(t, []string{"u1"}, DataFieldMissing("u1", "move").Recipients)
	assert.Equal(t, []string{"u1"}, DisplayAuthorMove("u1", "g", "u1", MoveRock).Recipients)
}

func TestScopedEventsCarryTheirURI(t *testing.T) {
	lobbyEv := MemberLeave([]string{"a", "b"}, "lobby-uri", "a")
	assert.Equal(t, "lobby-uri", lobbyEv.Data["lobbyUri"])
	assert.Equal(t, CategoryLobby, lobbyEv.Category)

	gameEv := PlayerMadeMove([]string{"a"}, "game-uri", "b")
	assert.Equal(t, "game-uri", gameEv.Data["gameUri"])
	assert.Equal(t, CategoryGame, gameEv.Category)
}

func TestServerGameAction(t *testing.T) {
	a := ServerGameAction(GameActionFinishRound, "game-uri")

	assert.Equal(t, "FINISH_ROUND", a.ID)
	assert.Equal(t, CategoryGame, a.Category)
	assert.Equal(t, "game-uri", a.Data["gameUri"])
	assert.True(t, a.IsServerAction())

	client := Action{ID: "SUBMIT_MOVE", Category: CategoryGame, Author: &User{UUID: "u1"}}
	assert.False(t, client.IsServerAction())
}
