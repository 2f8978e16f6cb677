// internal/handlers/ws.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/orps-game/orps-server/internal/auth"
	"github.com/orps-game/orps-server/internal/messaging"
	"github.com/orps-game/orps-server/internal/middleware"
	"github.com/orps-game/orps-server/internal/models"
)

// wireAction is the inbound frame shape. The author is never read from the
// wire; it is stamped from the connection's resolved identity.
type wireAction struct {
	ID       string            `json:"id"`
	Category models.Category   `json:"category"`
	Data     map[string]string `json:"data"`
}

// Submitter is the engine's intake surface.
type Submitter interface {
	Submit(action models.Action)
}

// ActionWSHandler upgrades /ws connections, registers them with the hub for
// outbound events, and pumps inbound frames into the engine. A closed socket
// submits the disconnect cascade for its user.
func ActionWSHandler(logger *logrus.Logger, registry *auth.Registry, hub *messaging.Hub, engine Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := registry.EnsureUser(w, r)
		if err != nil {
			logger.Errorf("failed to establish identity: %v", err)
			http.Error(w, "failed to establish identity", http.StatusInternalServerError)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Warnf("websocket accept failed: %v", err)
			return
		}

		middleware.LogWebSocketConnect(logger, r.RemoteAddr, user.UUID)
		logger.Infof("User %s connected.", user.UUID)

		conn := hub.Register(user.UUID, c)
		defer func() {
			hub.Unregister(conn)
			logger.Infof("User %s disconnected.", user.UUID)

			engine.Submit(models.Action{
				ID:       string(models.GeneralActionUserDisconnect),
				Category: models.CategoryGeneral,
				Data:     map[string]string{},
				Author:   user,
			})
		}()

		ctx := r.Context()
		for {
			_, data, err := c.Read(ctx)
			if err != nil {
				middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, user.UUID, err)
				return
			}

			var frame wireAction
			if err := json.Unmarshal(data, &frame); err != nil {
				logger.Debugf("discarding malformed frame from %s: %v", user.UUID, err)
				continue
			}
			if frame.Data == nil {
				frame.Data = map[string]string{}
			}

			engine.Submit(models.Action{
				ID:       frame.ID,
				Category: frame.Category,
				Data:     frame.Data,
				Author:   user,
			})
		}
	}
}
