package engine

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orps-game/orps-server/internal/game"
	"github.com/orps-game/orps-server/internal/lobby"
	"github.com/orps-game/orps-server/internal/models"
)

type fixture struct {
	dispatcher *Dispatcher
	lobbies    *lobby.Store
	games      *game.Store

	lobbyHandler *lobby.Handler
	gameHandler  *game.Handler
}

func newFixture() *fixture {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	lobbies := lobby.NewStore()
	games := game.NewStore()
	gameHandler := game.NewHandler(games, logger)
	lobbyHandler := lobby.NewHandler(lobbies, gameHandler, logger)
	generalHandler := NewGeneralHandler(lobbies, games, lobbyHandler, gameHandler, logger)

	return &fixture{
		dispatcher:   NewDispatcher(lobbies, games, lobbyHandler, gameHandler, generalHandler),
		lobbies:      lobbies,
		games:        games,
		lobbyHandler: lobbyHandler,
		gameHandler:  gameHandler,
	}
}

func clientAction(id string, category models.Category, author *models.User, data map[string]string) models.Action {
	if data == nil {
		data = map[string]string{}
	}
	return models.Action{ID: id, Category: category, Data: data, Author: author}
}

func singleError(t *testing.T, resp models.HandlerResponse, want models.EventID) models.Event {
	t.Helper()
	require.Len(t, resp.Events, 1)
	ev := resp.Events[0]
	assert.Equal(t, models.CategoryError, ev.Category)
	assert.Equal(t, want, ev.ID)
	return ev
}

func TestDispatchLobbyValidationOrder(t *testing.T) {
	f := newFixture()
	author := &models.User{UUID: "u1", Name: "alice"}

	// lobbyUri is checked before the id string
	resp := f.dispatcher.Dispatch(clientAction("NOT_AN_ACTION", models.CategoryLobby, author, nil))
	ev := singleError(t, resp, models.ErrDataFieldMissing)
	assert.Equal(t, "lobbyUri", ev.Data["fieldName"])

	resp = f.dispatcher.Dispatch(clientAction("NOT_AN_ACTION", models.CategoryLobby, author,
		map[string]string{"lobbyUri": "nope"}))
	ev = singleError(t, resp, models.ErrInvalidAction)
	assert.Equal(t, "LOBBY", ev.Data["category"])
	assert.Equal(t, "NOT_AN_ACTION", ev.Data["action"])

	resp = f.dispatcher.Dispatch(clientAction("USER_JOIN", models.CategoryLobby, author,
		map[string]string{"lobbyUri": "nope"}))
	ev = singleError(t, resp, models.ErrLobbyNotFound)
	assert.Equal(t, "nope", ev.Data["lobbyUri"])
}

func TestDispatchLobbyRoutesToHandler(t *testing.T) {
	f := newFixture()
	owner := &models.User{UUID: "u1", Name: "alice"}
	l := f.lobbyHandler.CreateLobby(owner)

	joiner := &models.User{UUID: "u2", Name: "bob"}
	resp := f.dispatcher.Dispatch(clientAction("USER_JOIN", models.CategoryLobby, joiner,
		map[string]string{"lobbyUri": l.URI}))

	require.Len(t, resp.Events, 2)
	assert.Equal(t, models.EventMemberJoin, resp.Events[0].ID)
	assert.True(t, l.HasMember("u2"))
}

func TestDispatchGameValidationOrder(t *testing.T) {
	f := newFixture()
	author := &models.User{UUID: "u1", Name: "alice"}

	resp := f.dispatcher.Dispatch(clientAction("SUBMIT_MOVE", models.CategoryGame, author, nil))
	ev := singleError(t, resp, models.ErrDataFieldMissing)
	assert.Equal(t, "gameUri", ev.Data["fieldName"])

	resp = f.dispatcher.Dispatch(clientAction("NOT_AN_ACTION", models.CategoryGame, author,
		map[string]string{"gameUri": "nope"}))
	singleError(t, resp, models.ErrInvalidAction)

	resp = f.dispatcher.Dispatch(clientAction("SUBMIT_MOVE", models.CategoryGame, author,
		map[string]string{"gameUri": "nope"}))
	ev = singleError(t, resp, models.ErrGameNotFound)
	assert.Equal(t, "nope", ev.Data["gameUri"])

	// a resolved game still rejects outsiders
	players := []*game.Player{
		game.NewPlayer(&models.User{UUID: "p1", Name: "p1"}),
		game.NewPlayer(&models.User{UUID: "p2", Name: "p2"}),
	}
	g := f.gameHandler.CreateGame(players, models.GameSettings{TimeForMove: 3, ScoreGoal: 5})

	resp = f.dispatcher.Dispatch(clientAction("SUBMIT_MOVE", models.CategoryGame, author,
		map[string]string{"gameUri": g.URI}))
	ev = singleError(t, resp, models.ErrPlayerNotInGame)
	assert.Equal(t, "u1", ev.Data["playerUuid"])
}

func TestDispatchServerGameActionSkipsPlayerCheck(t *testing.T) {
	f := newFixture()
	players := []*game.Player{
		game.NewPlayer(&models.User{UUID: "p1", Name: "p1"}),
		game.NewPlayer(&models.User{UUID: "p2", Name: "p2"}),
	}
	g := f.gameHandler.CreateGame(players, models.GameSettings{TimeForMove: 3, ScoreGoal: 5})

	resp := f.dispatcher.Dispatch(models.ServerGameAction(models.GameActionUpdateCountdown, g.URI))

	require.Len(t, resp.Events, 1)
	assert.Equal(t, models.EventUpdateCountdown, resp.Events[0].ID)
	require.Len(t, resp.Scheduled, 1)
}

func TestDispatchGeneralInvalidID(t *testing.T) {
	f := newFixture()
	author := &models.User{UUID: "u1", Name: "alice"}

	resp := f.dispatcher.Dispatch(clientAction("NOT_AN_ACTION", models.CategoryGeneral, author, nil))
	singleError(t, resp, models.ErrInvalidAction)
}

func TestDispatchUnknownCategory(t *testing.T) {
	f := newFixture()
	author := &models.User{UUID: "u1", Name: "alice"}

	resp := f.dispatcher.Dispatch(clientAction("CREATE_LOBBY", models.Category("BOGUS"), author, nil))
	assert.Empty(t, resp.Events)
	assert.Empty(t, resp.Scheduled)
}
