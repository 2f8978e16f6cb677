package engine

import (
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/orps-game/orps-server/internal/game"
	"github.com/orps-game/orps-server/internal/lobby"
	"github.com/orps-game/orps-server/internal/models"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9]*$`)

// GeneralHandler runs the actions that are not scoped to a single lobby or
// game: lobby creation, renames, and the disconnect cascade.
type GeneralHandler struct {
	lobbies *lobby.Store
	games   *game.Store

	lobbyHandler *lobby.Handler
	gameHandler  *game.Handler

	log *logrus.Logger
}

func NewGeneralHandler(
	lobbies *lobby.Store,
	games *game.Store,
	lobbyHandler *lobby.Handler,
	gameHandler *game.Handler,
	log *logrus.Logger,
) *GeneralHandler {
	return &GeneralHandler{
		lobbies:      lobbies,
		games:        games,
		lobbyHandler: lobbyHandler,
		gameHandler:  gameHandler,
		log:          log,
	}
}

func (h *GeneralHandler) Handle(id models.GeneralActionID, action models.Action) models.HandlerResponse {
	author := action.Author

	switch id {
	case models.GeneralActionCreateLobby:
		return models.Respond(h.handleCreateLobby(author))
	case models.GeneralActionChangeName:
		newName, ok := action.Get("newName")
		if !ok {
			return models.Respond(models.DataFieldMissing(author.UUID, "newName"))
		}
		return models.Respond(h.handleChangeName(author, newName))
	case models.GeneralActionUserDisconnect:
		return models.Respond(h.handleDisconnect(author.UUID)...)
	}
	return models.EmptyResponse()
}

func (h *GeneralHandler) handleCreateLobby(author *models.User) models.Event {
	l := h.lobbyHandler.CreateLobby(author)
	return models.CreatedLobby(author.UUID, l.DTO())
}

// handleChangeName validates and applies a rename. The length check runs
// last, so its reason wins when a name fails both checks.
func (h *GeneralHandler) handleChangeName(author *models.User, newName string) models.Event {
	invalidReason := ""

	if !namePattern.MatchString(newName) {
		invalidReason = "Name must be alphanumeric."
	}

	if len(newName) < 3 || len(newName) > 16 {
		invalidReason = "Name length must be >= 3 and <= 16"
	}

	if invalidReason != "" {
		h.log.Infof("User with UUID %s tried to change name to %s", author.UUID, newName)
		return models.NameNotAccepted(author.UUID, newName, invalidReason)
	}

	author.Name = newName

	h.log.Infof("User with UUID %s changed name to %s", author.UUID, newName)

	// The author hears about the rename even when sitting in no session;
	// everyone sharing a session with them hears exactly once.
	recipients := []string{author.UUID}
	for _, l := range h.lobbies.LobbiesWithUser(author.UUID) {
		recipients = append(recipients, l.MemberUUIDs()...)
	}
	for _, g := range h.games.GamesWithUser(author.UUID) {
		recipients = append(recipients, g.PlayerUUIDs()...)
	}

	return models.UserChangedName(dedupe(recipients), author.UUID, newName)
}

// handleDisconnect walks every session the user belongs to and applies the
// corresponding leave, collecting all resulting events.
func (h *GeneralHandler) handleDisconnect(uuid string) []models.Event {
	var events []models.Event

	for _, l := range h.lobbies.LobbiesWithUser(uuid) {
		events = append(events, h.lobbyHandler.HandleUserLeave(l, uuid)...)
	}
	for _, g := range h.games.GamesWithUser(uuid) {
		events = append(events, h.gameHandler.HandlePlayerLeave(g, uuid)...)
	}

	return events
}

func dedupe(uuids []string) []string {
	seen := make(map[string]struct{}, len(uuids))
	unique := make([]string, 0, len(uuids))
	for _, uuid := range uuids {
		if _, ok := seen[uuid]; ok {
			continue
		}
		seen[uuid] = struct{}{}
		unique = append(unique, uuid)
	}
	return unique
}
