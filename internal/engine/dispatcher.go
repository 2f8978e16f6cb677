package engine

import (
	"github.com/orps-game/orps-server/internal/game"
	"github.com/orps-game/orps-server/internal/lobby"
	"github.com/orps-game/orps-server/internal/models"
)

// Dispatcher routes raw actions to the category handlers. Validation runs in
// a fixed order per category: required payload fields, then the id string,
// then target resolution. The first failure short-circuits into a single
// error event addressed to the author.
type Dispatcher struct {
	lobbies *lobby.Store
	games   *game.Store

	lobbyHandler   *lobby.Handler
	gameHandler    *game.Handler
	generalHandler *GeneralHandler
}

func NewDispatcher(
	lobbies *lobby.Store,
	games *game.Store,
	lobbyHandler *lobby.Handler,
	gameHandler *game.Handler,
	generalHandler *GeneralHandler,
) *Dispatcher {
	return &Dispatcher{
		lobbies:        lobbies,
		games:          games,
		lobbyHandler:   lobbyHandler,
		gameHandler:    gameHandler,
		generalHandler: generalHandler,
	}
}

// Dispatch validates and runs a single action, returning the handler's
// response. Unknown categories produce nothing.
func (d *Dispatcher) Dispatch(action models.Action) models.HandlerResponse {
	switch action.Category {
	case models.CategoryLobby:
		return d.dispatchLobby(action)
	case models.CategoryGame:
		return d.dispatchGame(action)
	case models.CategoryGeneral:
		return d.dispatchGeneral(action)
	}
	return models.EmptyResponse()
}

func (d *Dispatcher) dispatchLobby(action models.Action) models.HandlerResponse {
	authorUUID := action.Author.UUID

	lobbyURI, ok := action.Get("lobbyUri")
	if !ok {
		return models.Respond(models.DataFieldMissing(authorUUID, "lobbyUri"))
	}

	id, ok := models.ParseLobbyActionID(action.ID)
	if !ok {
		return models.Respond(models.InvalidAction(authorUUID, models.CategoryLobby, action.ID))
	}

	l, ok := d.lobbies.Get(lobbyURI)
	if !ok {
		return models.Respond(models.LobbyNotFound(authorUUID, lobbyURI))
	}

	return d.lobbyHandler.HandleAction(lobby.Action{
		ID:     id,
		Author: action.Author,
		Lobby:  l,
		Data:   action.Data,
	})
}

func (d *Dispatcher) dispatchGame(action models.Action) models.HandlerResponse {
	authorUUID := action.Author.UUID

	gameURI, ok := action.Get("gameUri")
	if !ok {
		return models.Respond(models.DataFieldMissing(authorUUID, "gameUri"))
	}

	id, ok := models.ParseGameActionID(action.ID)
	if !ok {
		return models.Respond(models.InvalidAction(authorUUID, models.CategoryGame, action.ID))
	}

	g, ok := d.games.Get(gameURI)
	if !ok {
		return models.Respond(models.GameNotFound(authorUUID, gameURI))
	}

	if action.IsServerAction() {
		return d.gameHandler.HandleServerAction(g, id)
	}

	player := g.Player(authorUUID)
	if player == nil {
		return models.Respond(models.PlayerNotInGame(authorUUID, authorUUID, gameURI))
	}

	return d.gameHandler.HandleAction(game.Action{
		ID:     id,
		Author: action.Author,
		Game:   g,
		Player: player,
		Data:   action.Data,
	})
}

func (d *Dispatcher) dispatchGeneral(action models.Action) models.HandlerResponse {
	id, ok := models.ParseGeneralActionID(action.ID)
	if !ok {
		return models.Respond(models.InvalidAction(action.Author.UUID, models.CategoryGeneral, action.ID))
	}

	return d.generalHandler.Handle(id, action)
}
