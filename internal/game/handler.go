package game

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/orps-game/orps-server/internal/models"
)

const (
	countdownTickMillis = 1000
	betweenRoundsMillis = 2000
)

// Action is a game-category action after dispatch validation: the id is
// known, the target game resolved and, for client actions, the author bound
// to their player.
type Action struct {
	ID     models.GameActionID
	Author *models.User
	Game   *Game
	Player *Player
	Data   map[string]string
}

// Handler owns game creation and the game-scoped action surface. It is only
// invoked from the engine's consumer goroutine.
type Handler struct {
	store *Store
	log   *logrus.Logger

	// now returns unix milliseconds, swappable in tests.
	now func() int64
}

func NewHandler(store *Store, log *logrus.Logger) *Handler {
	return &Handler{
		store: store,
		log:   log,
		now:   func() int64 { return time.Now().UnixMilli() },
	}
}

// CreateGame registers a standalone game over the given players.
func (h *Handler) CreateGame(players []*Player, settings models.GameSettings) *Game {
	g := New(players, settings, "")
	h.store.Add(g)
	h.log.Infof("Created new game with URI: %s", g.URI)
	return g
}

// CreateLobbyGame registers a game spawned from a lobby, carrying the lobby's
// members and settings.
func (h *Handler) CreateLobbyGame(members []*models.User, settings models.GameSettings, lobbyURI string) *Game {
	g := FromMembers(members, settings, lobbyURI)
	h.store.Add(g)
	h.log.Infof("Created new game with URI: %s for lobby with URI: %s", g.URI, lobbyURI)
	return g
}

// HandleServerAction runs the server-scheduled game actions that drive the
// countdown and round lifecycle.
func (h *Handler) HandleServerAction(g *Game, id models.GameActionID) models.HandlerResponse {
	switch id {
	case models.GameActionFinishRound:
		return h.handleFinishRound(g)
	case models.GameActionUpdateCountdown:
		return h.handleUpdateCountdown(g)
	case models.GameActionStartNextRound:
		return h.handleStartNextRound(g)
	}
	return models.EmptyResponse()
}

// HandleAction runs a client-originated game action.
func (h *Handler) HandleAction(action Action) models.HandlerResponse {
	authorUUID := action.Author.UUID
	g := action.Game

	switch action.ID {
	case models.GameActionSubmitMove:
		moveString, ok := action.Data["move"]
		if !ok {
			return models.Respond(models.DataFieldMissing(authorUUID, "move"))
		}

		move, ok := models.ParseMove(moveString)
		if !ok {
			return models.Respond(models.InvalidMove(authorUUID, g.URI, moveString))
		}

		return models.Respond(h.handleSubmitMove(g, action.Player, move)...)
	case models.GameActionPlayerLeave:
		return models.Respond(h.HandlePlayerLeave(g, authorUUID)...)
	}
	return models.EmptyResponse()
}

func (h *Handler) handleSubmitMove(g *Game, author *Player, move models.Move) []models.Event {
	authorUUID := author.UUID()

	if g.RoundFinished() {
		return []models.Event{models.RoundAlreadyFinished(authorUUID, g.URI)}
	}

	author.Move = move

	return []models.Event{
		models.PlayerMadeMove(g.PlayerUUIDsExcept(authorUUID), g.URI, authorUUID),
		models.DisplayAuthorMove(authorUUID, g.URI, authorUUID, move),
	}
}

// HandlePlayerLeave removes the player and deletes the game once empty. It is
// exported for the disconnect cascade.
func (h *Handler) HandlePlayerLeave(g *Game, authorUUID string) []models.Event {
	g.RemovePlayer(authorUUID)

	if len(g.Players()) == 0 {
		h.store.Delete(g.URI)
		h.log.Infof("Deleted game %s because all players left.", g.URI)
		return nil
	}

	events := []models.Event{models.PlayerLeaveEvent(g.PlayerUUIDs(), g.URI, authorUUID)}

	if len(g.Players()) == 1 {
		h.log.Infof("Game %s finished because only 1 player was left.", g.URI)
		events = append(events, models.PlayerWonGame(g.PlayerUUIDs(), g.URI, g.Players()[0].DTO()))
	}

	return events
}

func (h *Handler) handleFinishRound(g *Game) models.HandlerResponse {
	g.FinishRound()

	if g.Finished() {
		h.store.Delete(g.URI)
	}

	events := h.roundResult(g)

	// No follow-up once the game has ended or been torn down mid-result; a
	// stale follow-up would only resolve to a swallowed not-found anyway.
	if g.Finished() {
		return models.Respond(events...)
	}
	if _, ok := h.store.Get(g.URI); !ok {
		return models.Respond(events...)
	}

	next := models.ServerGameAction(models.GameActionStartNextRound, g.URI)
	return models.RespondScheduled(events, models.NewScheduledAction(next, h.now()+betweenRoundsMillis))
}

func (h *Handler) handleUpdateCountdown(g *Game) models.HandlerResponse {
	event := models.CountdownUpdate(g.PlayerUUIDs(), g.URI, g.CountdownValue)
	g.CountdownValue--

	nextID := models.GameActionUpdateCountdown
	if g.CountdownValue < 0 {
		nextID = models.GameActionStartNextRound
	}

	next := models.ServerGameAction(nextID, g.URI)
	return models.RespondScheduled(
		[]models.Event{event},
		models.NewScheduledAction(next, h.now()+countdownTickMillis),
	)
}

func (h *Handler) handleStartNextRound(g *Game) models.HandlerResponse {
	g.StartNextRound()

	event := models.StartNextRound(g.PlayerUUIDs(), g.URI, g.RoundNumber(), g.Settings.TimeForMove)

	finish := models.ServerGameAction(models.GameActionFinishRound, g.URI)
	deadline := h.now() + int64(g.Settings.TimeForMove)*1000
	return models.RespondScheduled([]models.Event{event}, models.NewScheduledAction(finish, deadline))
}

// roundResult assembles the post-round events: inactivity kicks, the result
// payload and, when the score goal is met, the game-won notification.
func (h *Handler) roundResult(g *Game) []models.Event {
	inactive := g.InactivePlayers()

	if len(inactive) == len(g.Players()) {
		h.log.Infof("Ended game %s prematurely because all players were inactive.", g.URI)
		return []models.Event{h.endGamePrematurely(g, "Game ended because all players were inactive.")}
	}

	var events []models.Event
	for _, p := range inactive {
		h.log.Infof("Kicked player %s due to inactivity.", p.UUID())
		events = append(events, h.kickPlayer(g, p.UUID())...)
	}

	playerData := g.PlayerDTOs()

	if winner := g.RoundWinner(); winner != nil {
		winnerDTO := winner.DTO()
		events = append(events, models.ReceiveRoundResult(g.PlayerUUIDs(), g.URI, playerData, &winnerDTO))

		if g.Finished() {
			h.log.Infof("Game %s finished", g.URI)
			events = append(events, models.PlayerWonGame(g.PlayerUUIDs(), g.URI, winnerDTO))
		}
	} else {
		events = append(events, models.ReceiveRoundResult(g.PlayerUUIDs(), g.URI, playerData, nil))
	}

	return events
}

func (h *Handler) kickPlayer(g *Game, kickedUUID string) []models.Event {
	events := h.HandlePlayerLeave(g, kickedUUID)
	return append(events, models.GameGotKicked(kickedUUID, g.URI, g.ParentLobbyURI))
}

func (h *Handler) endGamePrematurely(g *Game, reason string) models.Event {
	h.store.Delete(g.URI)
	return models.EndedPrematurely(g.PlayerUUIDs(), g.URI, reason)
}
