package lobby

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/orps-game/orps-server/internal/game"
	"github.com/orps-game/orps-server/internal/models"
)

const (
	countdownStartMillis = 1000

	// deletionGraceMillis is how long an empty lobby survives before the
	// sweeper removes it, giving its members time to rejoin.
	deletionGraceMillis = 60 * 1000
)

// Action is a lobby-category action after dispatch validation: the id is
// known and the target lobby resolved.
type Action struct {
	ID     models.LobbyActionID
	Author *models.User
	Lobby  *Lobby
	Data   map[string]string
}

// Handler owns lobby creation and the lobby-scoped action surface. It is
// only invoked from the engine's consumer goroutine.
type Handler struct {
	store *Store
	games *game.Handler
	log   *logrus.Logger

	// now returns unix milliseconds, swappable in tests.
	now func() int64
}

func NewHandler(store *Store, games *game.Handler, log *logrus.Logger) *Handler {
	return &Handler{
		store: store,
		games: games,
		log:   log,
		now:   func() int64 { return time.Now().UnixMilli() },
	}
}

// CreateLobby registers a lobby with default settings, owned by its creator.
func (h *Handler) CreateLobby(creator *models.User) *Lobby {
	l := New(creator, models.DefaultLobbySettings())
	h.store.Add(l)
	h.log.Infof("Created new lobby with URI: %s", l.URI)
	return l
}

// HandleAction runs a client-originated lobby action.
func (h *Handler) HandleAction(action Action) models.HandlerResponse {
	author := action.Author
	l := action.Lobby

	switch action.ID {
	case models.LobbyActionAddBot:
		return models.Respond(h.handleAddBot(l, author.UUID))
	case models.LobbyActionNewTextMessage:
		content, ok := action.Data["messageContent"]
		if !ok {
			return models.Respond(models.DataFieldMissing(author.UUID, "messageContent"))
		}
		return models.Respond(h.handleNewTextMessage(l, author, content))
	case models.LobbyActionUserJoin:
		return models.Respond(h.handleUserJoin(l, author)...)
	case models.LobbyActionUserLeave:
		return models.Respond(h.HandleUserLeave(l, author.UUID)...)
	case models.LobbyActionMemberKick:
		kickUUID, ok := action.Data["memberToKickUuid"]
		if !ok {
			return models.Respond(models.DataFieldMissing(author.UUID, "memberToKickUuid"))
		}
		return models.Respond(h.handleMemberKick(l, author.UUID, kickUUID)...)
	case models.LobbyActionStartGame:
		return h.handleStartGame(l, author.UUID)
	case models.LobbyActionUpdateSettings:
		name, ok := action.Data["settingName"]
		if !ok {
			return models.Respond(models.DataFieldMissing(author.UUID, "settingName"))
		}
		value, ok := action.Data["settingValue"]
		if !ok {
			return models.Respond(models.DataFieldMissing(author.UUID, "settingValue"))
		}
		return models.Respond(h.handleUpdateSettings(l, author.UUID, name, value))
	}
	return models.EmptyResponse()
}

func (h *Handler) handleAddBot(l *Lobby, authorUUID string) models.Event {
	if !l.IsOwner(authorUUID) {
		return models.InsufficientPermissions(authorUUID, l.URI)
	}

	bot := models.NewBotUser()
	l.AddMember(bot)

	h.log.Infof("Added bot with UUID %s to lobby %s", bot.UUID, l.URI)

	return models.MemberJoin(l.MemberUUIDs(), l.URI, bot.DTO())
}

func (h *Handler) handleNewTextMessage(l *Lobby, author *models.User, content string) models.Event {
	if !l.HasMember(author.UUID) {
		return models.UserNotInLobby(author.UUID, author.UUID, l.URI)
	}

	if len(content) < 1 {
		return models.BadTextMessage(author.UUID, l.URI, "Message can't be empty.")
	}

	return models.NewTextMessage(l.MemberUUIDs(), l.URI, author.DTO(), content)
}

func (h *Handler) handleUserJoin(l *Lobby, author *models.User) []models.Event {
	var events []models.Event

	if !l.HasMember(author.UUID) {
		l.AddMember(author)
		events = append(events, models.MemberJoin(l.MemberUUIDsExcept(author.UUID), l.URI, author.DTO()))
	}

	// A returning human cancels any pending deletion.
	l.DeletionTime = NoDeletion

	return append(events, models.ReceiveLobbyData(author.UUID, l.URI, l.DTO()))
}

// HandleUserLeave removes the member, reassigns ownership to the earliest
// joined human, and schedules deletion once no humans remain. Leaving a
// lobby one is not in is a silent no-op. Exported for the disconnect
// cascade.
func (h *Handler) HandleUserLeave(l *Lobby, leftUUID string) []models.Event {
	if !l.HasMember(leftUUID) {
		return nil
	}

	wasOwner := l.IsOwner(leftUUID)
	l.RemoveMember(leftUUID)

	humans := l.NonBotMembers()
	if len(humans) == 0 {
		l.DeletionTime = h.now() + deletionGraceMillis
		return nil
	}

	var events []models.Event

	if wasOwner {
		newOwner := humans[0]
		l.SetOwner(newOwner)
		events = append(events, models.OwnerUpdated(l.MemberUUIDs(), l.URI, newOwner.UUID))
		h.log.Infof("Set %s as lobby owner in %s", newOwner.UUID, l.URI)
	}

	return append(events, models.MemberLeave(l.MemberUUIDs(), l.URI, leftUUID))
}

func (h *Handler) handleMemberKick(l *Lobby, authorUUID, kickUUID string) []models.Event {
	if !l.IsOwner(authorUUID) {
		return []models.Event{models.InsufficientPermissions(authorUUID, l.URI)}
	}

	if !l.HasMember(kickUUID) {
		return []models.Event{models.UserNotInLobby(authorUUID, kickUUID, l.URI)}
	}

	l.RemoveMember(kickUUID)

	return []models.Event{
		models.MemberKick(l.MemberUUIDsExcept(kickUUID), l.URI, kickUUID),
		models.LobbyGotKicked(kickUUID, l.URI),
	}
}

func (h *Handler) handleStartGame(l *Lobby, authorUUID string) models.HandlerResponse {
	if len(l.Members()) < 2 {
		return models.Respond(models.InsufficientPlayers(authorUUID, l.URI))
	}

	if l.GameOngoing {
		return models.Respond(models.GameAlreadyStarted(authorUUID, l.URI))
	}

	if !l.IsOwner(authorUUID) {
		return models.Respond(models.InsufficientPermissions(authorUUID, l.URI))
	}

	l.GameOngoing = true

	g := h.games.CreateLobbyGame(l.Members(), l.Settings.GameSettings, l.URI)

	countdown := models.ServerGameAction(models.GameActionUpdateCountdown, g.URI)
	return models.RespondScheduled(
		[]models.Event{models.CreatedGame(l.MemberUUIDs(), l.URI, g.DTO())},
		models.NewScheduledAction(countdown, h.now()+countdownStartMillis),
	)
}

func (h *Handler) handleUpdateSettings(l *Lobby, authorUUID, name, value string) models.Event {
	if !l.IsOwner(authorUUID) {
		return models.InsufficientPermissions(authorUUID, l.URI)
	}

	spec, ok := settingRegistry[name]
	if !ok {
		return models.InvalidSettingName(authorUUID, l.URI, name)
	}

	parsed, ok := spec.parse(value)
	if !ok {
		return models.InvalidFieldDataType(authorUUID, name, spec.expectedType)
	}

	if message := spec.validate(parsed); message != "" {
		return models.LobbyParameterValueNotAllowed(authorUUID, l.URI, message)
	}

	spec.apply(&l.Settings, parsed)

	return models.SettingsUpdated(l.MemberUUIDs(), l.URI, name, value)
}
