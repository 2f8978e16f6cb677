package lobby

import "github.com/orps-game/orps-server/internal/models"

// NoDeletion marks a lobby with no pending deletion.
const NoDeletion int64 = -1

// Lobby is a pre-game gathering room. Members share *models.User with every
// other session the user sits in, so renames propagate. Mutation happens on
// the engine's consumer goroutine only.
type Lobby struct {
	URI      string
	Settings models.LobbySettings

	// GameOngoing blocks a second START_GAME for the same lobby.
	GameOngoing bool

	// DeletionTime is the unix-millisecond instant after which the sweeper
	// may delete the lobby, NoDeletion while humans remain.
	DeletionTime int64

	members []*models.User
	owner   *models.User
}

// New creates a lobby owned by its creator, who is also the first member.
func New(creator *models.User, settings models.LobbySettings) *Lobby {
	return &Lobby{
		URI:          models.GenerateURI(),
		Settings:     settings,
		DeletionTime: NoDeletion,
		members:      []*models.User{creator},
		owner:        creator,
	}
}

func (l *Lobby) Members() []*models.User { return l.members }

func (l *Lobby) Owner() *models.User { return l.owner }

func (l *Lobby) SetOwner(owner *models.User) { l.owner = owner }

func (l *Lobby) IsOwner(uuid string) bool { return l.owner.UUID == uuid }

func (l *Lobby) AddMember(u *models.User) {
	l.members = append(l.members, u)
}

// Member returns the member with the given uuid, nil if absent.
func (l *Lobby) Member(uuid string) *models.User {
	for _, m := range l.members {
		if m.UUID == uuid {
			return m
		}
	}
	return nil
}

func (l *Lobby) HasMember(uuid string) bool {
	return l.Member(uuid) != nil
}

func (l *Lobby) RemoveMember(uuid string) {
	for i, m := range l.members {
		if m.UUID == uuid {
			l.members = append(l.members[:i], l.members[i+1:]...)
			return
		}
	}
}

// MemberUUIDs returns all member uuids in join order.
func (l *Lobby) MemberUUIDs() []string {
	uuids := make([]string, 0, len(l.members))
	for _, m := range l.members {
		uuids = append(uuids, m.UUID)
	}
	return uuids
}

// MemberUUIDsExcept returns all member uuids except the given one.
func (l *Lobby) MemberUUIDsExcept(uuid string) []string {
	uuids := make([]string, 0, len(l.members))
	for _, m := range l.members {
		if m.UUID != uuid {
			uuids = append(uuids, m.UUID)
		}
	}
	return uuids
}

// NonBotMembers returns the human members in join order.
func (l *Lobby) NonBotMembers() []*models.User {
	var humans []*models.User
	for _, m := range l.members {
		if !m.IsBot {
			humans = append(humans, m)
		}
	}
	return humans
}

// DTO projects the lobby for event payloads.
func (l *Lobby) DTO() models.LobbyDTO {
	users := make([]models.UserDTO, 0, len(l.members))
	for _, m := range l.members {
		users = append(users, m.DTO())
	}
	return models.LobbyDTO{Users: users, URI: l.URI, Settings: l.Settings}
}
