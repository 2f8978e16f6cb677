package models

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ServerUUID is the sentinel identity attached to actions the server
// schedules for itself (countdown ticks, round deadlines).
const ServerUUID = "SERVER"

// User is a session identity. Real users come from the auth layer with a
// random uuid; bots are synthesized inside a lobby. The same *User is shared
// by every lobby the user sits in, so a rename is visible everywhere at once.
type User struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`

	IsBot bool `json:"-"`
}

// ServerUser returns the sentinel author for server-originated actions.
func ServerUser() *User {
	return &User{UUID: ServerUUID, Name: ServerUUID}
}

// NewBotUser synthesizes a bot identity from a random token. The prefixes
// mark the identity as non-human on the wire.
func NewBotUser() *User {
	token := uuid.NewString()
	return &User{
		UUID:  fmt.Sprintf("Bot-%s", token),
		Name:  fmt.Sprintf("BotUser-%s", token),
		IsBot: true,
	}
}

const uriCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var uriRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateURI returns a random 16-character session key for lobbies and games.
func GenerateURI() string {
	b := make([]byte, 16)
	for i := range b {
		b[i] = uriCharset[uriRand.Intn(len(uriCharset))]
	}
	return string(b)
}
