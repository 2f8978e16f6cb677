package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *Registry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRegistry(logger)
}

func TestCreateAndAuthenticateJWT(t *testing.T) {
	Init()

	token, err := CreateJWT("some-uuid", "anonuser")
	require.NoError(t, err)

	userUUID, name, err := AuthenticateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "some-uuid", userUUID)
	assert.Equal(t, "anonuser", name)

	_, _, err = AuthenticateJWT("not-a-token")
	assert.Error(t, err)
}

func TestEnsureUserMintsAnonymousIdentity(t *testing.T) {
	Init()
	r := testRegistry()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)

	user, err := r.EnsureUser(w, req)
	require.NoError(t, err)
	assert.Equal(t, "anonuser", user.Name)
	assert.NotEmpty(t, user.UUID)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)

	// replaying the cookie resolves the same live identity
	req2 := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req2.AddCookie(cookies[0])

	user2, err := r.EnsureUser(httptest.NewRecorder(), req2)
	require.NoError(t, err)
	assert.Same(t, user, user2)
}

func TestEnsureUserRejectsForgedCookie(t *testing.T) {
	Init()
	r := testRegistry()

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})

	user, err := r.EnsureUser(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, "anonuser", user.Name)
}

func TestRegistrySharesIdentityAcrossConnections(t *testing.T) {
	Init()
	r := testRegistry()

	u := r.mint()
	u.Name = "renamed"

	got, ok := r.Get(u.UUID)
	require.True(t, ok)
	assert.Equal(t, "renamed", got.Name)
}
