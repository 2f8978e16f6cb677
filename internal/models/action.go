package models

// Category partitions actions and events into the four routing classes.
type Category string

const (
	CategoryLobby   Category = "LOBBY"
	CategoryGame    Category = "GAME"
	CategoryGeneral Category = "GENERAL"
	CategoryError   Category = "ERROR"
)

// Action is the wire form of every command entering the engine, client and
// server originated alike. ID is the raw id string; it is validated against
// the per-category id sets during dispatch. Author is stamped by the intake
// boundary and is never read from the wire.
type Action struct {
	ID       string            `json:"id"`
	Category Category          `json:"category"`
	Data     map[string]string `json:"data"`
	Author   *User             `json:"-"`
}

// Get returns the payload value under key, with ok reporting presence.
func (a Action) Get(key string) (string, bool) {
	v, ok := a.Data[key]
	return v, ok
}

// IsServerAction reports whether the action was scheduled by the engine
// itself rather than received from a client.
func (a Action) IsServerAction() bool {
	return a.Author != nil && a.Author.UUID == ServerUUID
}

// ServerGameAction builds a game-category action authored by the server
// sentinel, targeting the game at gameURI.
func ServerGameAction(id GameActionID, gameURI string) Action {
	return Action{
		ID:       string(id),
		Category: CategoryGame,
		Data:     map[string]string{"gameUri": gameURI},
		Author:   ServerUser(),
	}
}

// ScheduledAction pairs an action with the absolute unix-millisecond time it
// becomes due.
type ScheduledAction struct {
	Action    Action
	ExecuteAt int64
}

// NewScheduledAction schedules action for the given unix-millisecond time.
func NewScheduledAction(action Action, executeAt int64) ScheduledAction {
	return ScheduledAction{Action: action, ExecuteAt: executeAt}
}

// LobbyActionID enumerates the lobby-scoped operations.
type LobbyActionID string

const (
	LobbyActionAddBot         LobbyActionID = "ADD_BOT"
	LobbyActionNewTextMessage LobbyActionID = "NEW_TEXT_MESSAGE"
	LobbyActionUserJoin       LobbyActionID = "USER_JOIN"
	LobbyActionUserLeave      LobbyActionID = "USER_LEAVE"
	LobbyActionMemberKick     LobbyActionID = "MEMBER_KICK"
	LobbyActionUpdateSettings LobbyActionID = "UPDATE_SETTINGS"
	LobbyActionStartGame      LobbyActionID = "START_GAME"
)

// ParseLobbyActionID validates a raw id string against the lobby id set.
func ParseLobbyActionID(raw string) (LobbyActionID, bool) {
	switch id := LobbyActionID(raw); id {
	case LobbyActionAddBot, LobbyActionNewTextMessage, LobbyActionUserJoin,
		LobbyActionUserLeave, LobbyActionMemberKick, LobbyActionUpdateSettings,
		LobbyActionStartGame:
		return id, true
	}
	return "", false
}

// GameActionID enumerates the game-scoped operations. SUBMIT_MOVE and
// PLAYER_LEAVE arrive from clients; the rest are server-scheduled only.
type GameActionID string

const (
	GameActionSubmitMove      GameActionID = "SUBMIT_MOVE"
	GameActionUpdateCountdown GameActionID = "UPDATE_COUNTDOWN"
	GameActionFinishRound     GameActionID = "FINISH_ROUND"
	GameActionStartNextRound  GameActionID = "START_NEXT_ROUND"
	GameActionPlayerLeave     GameActionID = "PLAYER_LEAVE"
)

// ParseGameActionID validates a raw id string against the game id set.
func ParseGameActionID(raw string) (GameActionID, bool) {
	switch id := GameActionID(raw); id {
	case GameActionSubmitMove, GameActionUpdateCountdown, GameActionFinishRound,
		GameActionStartNextRound, GameActionPlayerLeave:
		return id, true
	}
	return "", false
}

// GeneralActionID enumerates the lobby-and-game-independent operations.
type GeneralActionID string

const (
	GeneralActionCreateLobby    GeneralActionID = "CREATE_LOBBY"
	GeneralActionUserDisconnect GeneralActionID = "USER_DISCONNECT"
	GeneralActionChangeName     GeneralActionID = "CHANGE_NAME"
)

// ParseGeneralActionID validates a raw id string against the general id set.
func ParseGeneralActionID(raw string) (GeneralActionID, bool) {
	switch id := GeneralActionID(raw); id {
	case GeneralActionCreateLobby, GeneralActionUserDisconnect, GeneralActionChangeName:
		return id, true
	}
	return "", false
}

// HandlerResponse is what every action handler returns: events to deliver and
// follow-up actions to schedule. Either side may be empty.
type HandlerResponse struct {
	Events    []Event
	Scheduled []ScheduledAction
}

// Respond builds a response carrying only events.
func Respond(events ...Event) HandlerResponse {
	return HandlerResponse{Events: events}
}

// RespondScheduled builds a response carrying events plus follow-ups.
func RespondScheduled(events []Event, scheduled ...ScheduledAction) HandlerResponse {
	return HandlerResponse{Events: events, Scheduled: scheduled}
}

// EmptyResponse is a response with nothing to deliver or schedule.
func EmptyResponse() HandlerResponse {
	return HandlerResponse{}
}
