// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/orps-game/orps-server/internal/auth"
	"github.com/orps-game/orps-server/internal/cache"
	"github.com/orps-game/orps-server/internal/engine"
	"github.com/orps-game/orps-server/internal/game"
	"github.com/orps-game/orps-server/internal/handlers"
	"github.com/orps-game/orps-server/internal/lobby"
	"github.com/orps-game/orps-server/internal/messaging"
	"github.com/orps-game/orps-server/internal/middleware"
)

func main() {
	auth.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	// Action history is best effort; the server runs fine without Redis.
	var recorder engine.Recorder
	if rec, err := cache.Connect(logger); err != nil {
		logger.Warnf("action history disabled: %v", err)
	} else {
		recorder = rec
	}

	games := game.NewStore()
	lobbies := lobby.NewStore()

	gameHandler := game.NewHandler(games, logger)
	lobbyHandler := lobby.NewHandler(lobbies, gameHandler, logger)
	generalHandler := engine.NewGeneralHandler(lobbies, games, lobbyHandler, gameHandler, logger)
	dispatcher := engine.NewDispatcher(lobbies, games, lobbyHandler, gameHandler, generalHandler)

	hub := messaging.NewHub(logger)

	eng := engine.New(dispatcher, hub, recorder, lobbies, logger)
	if interval := os.Getenv("LOBBY_SWEEP_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			log.Fatalf("invalid LOBBY_SWEEP_INTERVAL: %v", err)
		}
		eng.SetSweepInterval(d)
	}
	go eng.Run(context.Background())

	registry := auth.NewRegistry(logger)

	mux := http.NewServeMux()
	mux.Handle("/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.ActionWSHandler(logger, registry, hub, eng),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
