package models

// EventID names a notification type. The id set is partitioned by category;
// every instance is built through the constructor matching its id.
type EventID string

// Error events. Always addressed to the single user whose action failed.
const (
	ErrLobbyGameAlreadyStarted       EventID = "LOBBY_GAME_ALREADY_STARTED"
	ErrRoundAlreadyFinished          EventID = "ROUND_ALREADY_FINISHED"
	ErrInsufficientPlayers           EventID = "INSUFFICIENT_PLAYERS"
	ErrInvalidFieldDataType          EventID = "INVALID_FIELD_DATA_TYPE"
	ErrDataFieldMissing              EventID = "DATA_FIELD_MISSING"
	ErrPlayerNotInGame               EventID = "PLAYER_NOT_IN_GAME"
	ErrUserNotInLobby                EventID = "USER_NOT_IN_LOBBY"
	ErrNameNotAccepted               EventID = "NAME_NOT_ACCEPTED"
	ErrInvalidAction                 EventID = "INVALID_ACTION"
	ErrLobbyNotFound                 EventID = "LOBBY_NOT_FOUND"
	ErrGameNotFound                  EventID = "GAME_NOT_FOUND"
	ErrBadTextMessage                EventID = "BAD_TEXT_MESSAGE"
	ErrInsufficientPermissions       EventID = "INSUFFICIENT_PERMISSIONS"
	ErrSomethingWentWrong            EventID = "SOMETHING_WENT_WRONG"
	ErrLobbyParameterValueNotAllowed EventID = "LOBBY_PARAMETER_VALUE_NOT_ALLOWED"
	ErrInvalidMove                   EventID = "INVALID_MOVE"
	ErrInvalidSettingName            EventID = "INVALID_SETTING_NAME"
)

// Lobby events.
const (
	EventMemberJoin       EventID = "MEMBER_JOIN"
	EventMemberLeave      EventID = "MEMBER_LEAVE"
	EventMemberKick       EventID = "MEMBER_KICK"
	EventLobbyGotKicked   EventID = "GOT_KICKED"
	EventNewTextMessage   EventID = "NEW_TEXT_MESSAGE"
	EventCreatedGame      EventID = "CREATED_GAME"
	EventOwnerUpdated     EventID = "OWNER_UPDATED"
	EventSettingsUpdated  EventID = "SETTINGS_UPDATED"
	EventReceiveLobbyData EventID = "RECEIVE_LOBBY_DATA"
)

// Game events. GOT_KICKED shares its id string with the lobby variant but
// carries game-category routing.
const (
	EventStartNextRound     EventID = "START_NEXT_ROUND"
	EventReceiveRoundResult EventID = "RECEIVE_ROUND_RESULT"
	EventPlayerWonGame      EventID = "PLAYER_WON_GAME"
	EventUpdateCountdown    EventID = "UPDATE_COUNTDOWN"
	EventDisplayAuthorMove  EventID = "DISPLAY_AUTHOR_MOVE"
	EventPlayerMadeMove     EventID = "PLAYER_MADE_MOVE"
	EventPlayerLeave        EventID = "PLAYER_LEAVE"
	EventGameGotKicked      EventID = "GOT_KICKED"
	EventEndedPrematurely   EventID = "ENDED_PREMATURELY"
)

// General events.
const (
	EventCreatedLobby    EventID = "CREATED_LOBBY"
	EventUserChangedName EventID = "USER_CHANGED_NAME"
)

// Event is an addressed notification produced by a handler. Recipients are
// routing metadata consumed by the delivery hub; only category, id and data
// go over the wire.
type Event struct {
	Category   Category       `json:"category"`
	ID         EventID        `json:"id"`
	Data       map[string]any `json:"data"`
	Recipients []string       `json:"-"`
}

func newEvent(category Category, id EventID, recipients []string) Event {
	return Event{Category: category, ID: id, Data: map[string]any{}, Recipients: recipients}
}

func errorEvent(id EventID, recipient string) Event {
	return newEvent(CategoryError, id, []string{recipient})
}

func lobbyEvent(id EventID, lobbyURI string, recipients []string) Event {
	ev := newEvent(CategoryLobby, id, recipients)
	ev.Data["lobbyUri"] = lobbyURI
	return ev
}

func gameEvent(id EventID, gameURI string, recipients []string) Event {
	ev := newEvent(CategoryGame, id, recipients)
	ev.Data["gameUri"] = gameURI
	return ev
}

// --- error constructors ---

func DataFieldMissing(recipient, fieldName string) Event {
	ev := errorEvent(ErrDataFieldMissing, recipient)
	ev.Data["fieldName"] = fieldName
	return ev
}

func InvalidFieldDataType(recipient, fieldName, expectedType string) Event {
	ev := errorEvent(ErrInvalidFieldDataType, recipient)
	ev.Data["fieldName"] = fieldName
	ev.Data["expectedType"] = expectedType
	return ev
}

func PlayerNotInGame(recipient, playerUUID, gameURI string) Event {
	ev := errorEvent(ErrPlayerNotInGame, recipient)
	ev.Data["playerUuid"] = playerUUID
	ev.Data["gameUri"] = gameURI
	return ev
}

func UserNotInLobby(recipient, userUUID, lobbyURI string) Event {
	ev := errorEvent(ErrUserNotInLobby, recipient)
	ev.Data["userUuid"] = userUUID
	ev.Data["lobbyUri"] = lobbyURI
	return ev
}

func InvalidAction(recipient string, category Category, action string) Event {
	ev := errorEvent(ErrInvalidAction, recipient)
	ev.Data["category"] = string(category)
	ev.Data["action"] = action
	return ev
}

func LobbyNotFound(recipient, lobbyURI string) Event {
	ev := errorEvent(ErrLobbyNotFound, recipient)
	ev.Data["lobbyUri"] = lobbyURI
	return ev
}

func GameNotFound(recipient, gameURI string) Event {
	ev := errorEvent(ErrGameNotFound, recipient)
	ev.Data["gameUri"] = gameURI
	return ev
}

func NameNotAccepted(recipient, triedName, reason string) Event {
	ev := errorEvent(ErrNameNotAccepted, recipient)
	ev.Data["triedName"] = triedName
	ev.Data["reason"] = reason
	return ev
}

func InsufficientPlayers(recipient, lobbyURI string) Event {
	ev := errorEvent(ErrInsufficientPlayers, recipient)
	ev.Data["lobbyUri"] = lobbyURI
	return ev
}

func GameAlreadyStarted(recipient, lobbyURI string) Event {
	ev := errorEvent(ErrLobbyGameAlreadyStarted, recipient)
	ev.Data["lobbyUri"] = lobbyURI
	return ev
}

func BadTextMessage(recipient, lobbyURI, reason string) Event {
	ev := errorEvent(ErrBadTextMessage, recipient)
	ev.Data["lobbyUri"] = lobbyURI
	ev.Data["reason"] = reason
	return ev
}

func RoundAlreadyFinished(recipient, gameURI string) Event {
	ev := errorEvent(ErrRoundAlreadyFinished, recipient)
	ev.Data["gameUri"] = gameURI
	return ev
}

func InsufficientPermissions(recipient, lobbyURI string) Event {
	ev := errorEvent(ErrInsufficientPermissions, recipient)
	ev.Data["lobbyUri"] = lobbyURI
	return ev
}

func SomethingWentWrong(recipient string) Event {
	return errorEvent(ErrSomethingWentWrong, recipient)
}

func LobbyParameterValueNotAllowed(recipient, lobbyURI, message string) Event {
	ev := errorEvent(ErrLobbyParameterValueNotAllowed, recipient)
	ev.Data["lobbyUri"] = lobbyURI
	ev.Data["message"] = message
	return ev
}

func InvalidMove(recipient, gameURI, moveName string) Event {
	ev := errorEvent(ErrInvalidMove, recipient)
	ev.Data["gameUri"] = gameURI
	ev.Data["move"] = moveName
	return ev
}

func InvalidSettingName(recipient, lobbyURI, settingName string) Event {
	ev := errorEvent(ErrInvalidSettingName, recipient)
	ev.Data["lobbyUri"] = lobbyURI
	ev.Data["settingName"] = settingName
	return ev
}

// --- lobby constructors ---

func MemberJoin(recipients []string, lobbyURI string, member UserDTO) Event {
	ev := lobbyEvent(EventMemberJoin, lobbyURI, recipients)
	ev.Data["memberData"] = member
	return ev
}

func NewTextMessage(recipients []string, lobbyURI string, author UserDTO, content string) Event {
	ev := lobbyEvent(EventNewTextMessage, lobbyURI, recipients)
	ev.Data["messageAuthor"] = author
	ev.Data["messageContent"] = content
	return ev
}

func ReceiveLobbyData(recipient, lobbyURI string, lobbyData LobbyDTO) Event {
	ev := lobbyEvent(EventReceiveLobbyData, lobbyURI, []string{recipient})
	ev.Data["lobbyData"] = lobbyData
	return ev
}

func OwnerUpdated(recipients []string, lobbyURI, newOwnerUUID string) Event {
	ev := lobbyEvent(EventOwnerUpdated, lobbyURI, recipients)
	ev.Data["newOwnerUuid"] = newOwnerUUID
	return ev
}

func MemberLeave(recipients []string, lobbyURI, memberUUID string) Event {
	ev := lobbyEvent(EventMemberLeave, lobbyURI, recipients)
	ev.Data["memberUuid"] = memberUUID
	return ev
}

func MemberKick(recipients []string, lobbyURI, memberUUID string) Event {
	ev := lobbyEvent(EventMemberKick, lobbyURI, recipients)
	ev.Data["memberUuid"] = memberUUID
	return ev
}

func LobbyGotKicked(recipient, lobbyURI string) Event {
	return lobbyEvent(EventLobbyGotKicked, lobbyURI, []string{recipient})
}

func CreatedGame(recipients []string, lobbyURI string, gameData GameDTO) Event {
	ev := lobbyEvent(EventCreatedGame, lobbyURI, recipients)
	ev.Data["gameData"] = gameData
	return ev
}

func SettingsUpdated(recipients []string, lobbyURI, settingName, settingValue string) Event {
	ev := lobbyEvent(EventSettingsUpdated, lobbyURI, recipients)
	ev.Data["settingName"] = settingName
	ev.Data["settingValue"] = settingValue
	return ev
}

// --- game constructors ---

func StartNextRound(recipients []string, gameURI string, roundNumber, timeForMove int) Event {
	ev := gameEvent(EventStartNextRound, gameURI, recipients)
	ev.Data["roundNumber"] = roundNumber
	ev.Data["timeToPick"] = timeForMove
	return ev
}

// ReceiveRoundResult reports the round outcome. winner is nil on a tie; the
// wire payload still carries the key.
func ReceiveRoundResult(recipients []string, gameURI string, playerData []PlayerDTO, winner *PlayerDTO) Event {
	ev := gameEvent(EventReceiveRoundResult, gameURI, recipients)
	ev.Data["playerData"] = playerData
	if winner != nil {
		ev.Data["winner"] = *winner
	} else {
		ev.Data["winner"] = nil
	}
	return ev
}

func PlayerWonGame(recipients []string, gameURI string, winner PlayerDTO) Event {
	ev := gameEvent(EventPlayerWonGame, gameURI, recipients)
	ev.Data["gameWinner"] = winner
	return ev
}

func CountdownUpdate(recipients []string, gameURI string, timerValue int) Event {
	ev := gameEvent(EventUpdateCountdown, gameURI, recipients)
	ev.Data["currentTimerValue"] = timerValue
	return ev
}

func DisplayAuthorMove(recipient, gameURI, authorUUID string, move Move) Event {
	ev := gameEvent(EventDisplayAuthorMove, gameURI, []string{recipient})
	ev.Data["authorUuid"] = authorUUID
	ev.Data["move"] = move
	return ev
}

func PlayerMadeMove(recipients []string, gameURI, playerUUID string) Event {
	ev := gameEvent(EventPlayerMadeMove, gameURI, recipients)
	ev.Data["playerUuid"] = playerUUID
	return ev
}

func PlayerLeaveEvent(recipients []string, gameURI, playerUUID string) Event {
	ev := gameEvent(EventPlayerLeave, gameURI, recipients)
	ev.Data["playerUuid"] = playerUUID
	return ev
}

// GameGotKicked notifies a kicked player. parentLobbyURI may be empty for
// games without a parent lobby.
func GameGotKicked(recipient, gameURI, parentLobbyURI string) Event {
	ev := gameEvent(EventGameGotKicked, gameURI, []string{recipient})
	if parentLobbyURI != "" {
		ev.Data["parentLobbyUri"] = parentLobbyURI
	}
	return ev
}

func EndedPrematurely(recipients []string, gameURI, reason string) Event {
	ev := gameEvent(EventEndedPrematurely, gameURI, recipients)
	ev.Data["reason"] = reason
	return ev
}

// --- general constructors ---

func CreatedLobby(recipient string, lobbyData LobbyDTO) Event {
	ev := newEvent(CategoryGeneral, EventCreatedLobby, []string{recipient})
	ev.Data["lobbyData"] = lobbyData
	return ev
}

func UserChangedName(recipients []string, userUUID, newName string) Event {
	ev := newEvent(CategoryGeneral, EventUserChangedName, recipients)
	ev.Data["userUuid"] = userUUID
	ev.Data["newName"] = newName
	return ev
}
