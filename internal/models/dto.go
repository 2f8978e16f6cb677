package models

// UserDTO is the wire projection of a user identity.
type UserDTO struct {
	Username string `json:"username"`
	UUID     string `json:"uuid"`
}

// DTO projects a user for event payloads.
func (u *User) DTO() UserDTO {
	return UserDTO{Username: u.Name, UUID: u.UUID}
}

// PlayerDTO extends the user projection with per-game state. Move is only
// revealed in round results and author echoes, never in join snapshots.
type PlayerDTO struct {
	UserDTO
	Score int  `json:"score"`
	Move  Move `json:"move"`
}

// LobbyDTO is the wire projection of a lobby snapshot.
type LobbyDTO struct {
	Users    []UserDTO     `json:"users"`
	URI      string        `json:"uri"`
	Settings LobbySettings `json:"settings"`
}

// GameDTO is the wire projection of a game snapshot. ParentLobbyURI is
// omitted for games without a parent lobby.
type GameDTO struct {
	Players        []PlayerDTO  `json:"players"`
	ParentLobbyURI string       `json:"parentLobbyUri,omitempty"`
	URI            string       `json:"uri"`
	Settings       GameSettings `json:"settings"`
}
