package lobby

import "sync"

// Store manages ephemeral lobbies in memory only.
type Store struct {
	mu      sync.Mutex
	lobbies map[string]*Lobby
}

// NewStore returns an in-memory store for Lobbies keyed by uri.
func NewStore() *Store {
	return &Store{
		lobbies: make(map[string]*Lobby),
	}
}

func (s *Store) Add(l *Lobby) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lobbies[l.URI] = l
}

func (s *Store) Get(uri string) (*Lobby, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lobbies[uri]
	return l, ok
}

func (s *Store) Delete(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lobbies, uri)
}

// LobbiesWithUser returns every lobby the given uuid is a member of.
func (s *Store) LobbiesWithUser(uuid string) []*Lobby {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lobbies []*Lobby
	for _, l := range s.lobbies {
		if l.HasMember(uuid) {
			lobbies = append(lobbies, l)
		}
	}
	return lobbies
}

// SweepExpired deletes every lobby whose pending-deletion time has elapsed
// and returns the deleted uris.
func (s *Store) SweepExpired(nowMillis int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted []string
	for uri, l := range s.lobbies {
		if l.DeletionTime != NoDeletion && nowMillis >= l.DeletionTime {
			delete(s.lobbies, uri)
			deleted = append(deleted, uri)
		}
	}
	return deleted
}
