// internal/auth/identity.go
package auth

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/orps-game/orps-server/internal/models"
)

// SessionCookieName is the cookie carrying the anonymous session token.
const SessionCookieName = "orps_session"

const anonymousName = "anonuser"

// Registry resolves session tokens to live user identities. Every connection
// for the same uuid shares one *models.User, so a rename reaches all of
// them.
type Registry struct {
	mu    sync.Mutex
	users map[string]*models.User
	log   *logrus.Logger
}

func NewRegistry(log *logrus.Logger) *Registry {
	return &Registry{
		users: make(map[string]*models.User),
		log:   log,
	}
}

// Get returns the registered user for a uuid.
func (r *Registry) Get(userUUID string) (*models.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userUUID]
	return u, ok
}

// resolve returns the live user for a verified token, registering it on
// first sight. The token's name claim seeds the identity; later renames live
// only in the registry.
func (r *Registry) resolve(userUUID, name string) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userUUID]; ok {
		return u
	}
	u := &models.User{UUID: userUUID, Name: name}
	r.users[userUUID] = u
	return u
}

// mint provisions a brand-new anonymous identity.
func (r *Registry) mint() *models.User {
	u := &models.User{UUID: uuid.NewString(), Name: anonymousName}
	r.mu.Lock()
	r.users[u.UUID] = u
	r.mu.Unlock()
	r.log.Infof("Authenticated new anonymous user with UUID: %s", u.UUID)
	return u
}

// EnsureUser resolves the request's session cookie to a user, minting a new
// anonymous identity and setting the cookie when the request carries none
// (or an invalid one).
func (r *Registry) EnsureUser(w http.ResponseWriter, req *http.Request) (*models.User, error) {
	if cookie, err := req.Cookie(SessionCookieName); err == nil {
		if userUUID, name, err := AuthenticateJWT(cookie.Value); err == nil {
			return r.resolve(userUUID, name), nil
		}
	}

	u := r.mint()

	token, err := CreateJWT(u.UUID, u.Name)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return u, nil
}
