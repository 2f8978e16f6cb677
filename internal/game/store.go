package game

import "sync"

// Store manages ephemeral game sessions in memory only.
type Store struct {
	mu    sync.Mutex
	games map[string]*Game
}

// NewStore returns an in-memory store for Games keyed by uri.
func NewStore() *Store {
	return &Store{
		games: make(map[string]*Game),
	}
}

func (s *Store) Add(g *Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.URI] = g
}

func (s *Store) Get(uri string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[uri]
	return g, ok
}

func (s *Store) Delete(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, uri)
}

// GamesWithUser returns every game the given uuid is playing in.
func (s *Store) GamesWithUser(uuid string) []*Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	var games []*Game
	for _, g := range s.games {
		if g.HasPlayer(uuid) {
			games = append(games, g)
		}
	}
	return games
}
