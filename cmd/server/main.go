package main

import (
	"fmt"
	"net/http"

	"github.com/lekhandas/chatd/internal/api"
	"github.com/lekhandas/chatd/internal/assistant"
	"github.com/lekhandas/chatd/internal/config"
	"github.com/lekhandas/chatd/internal/prefs"
	"github.com/lekhandas/chatd/internal/relay"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	store, err := prefs.New(cfg.PrefsDB)
	if err != nil {
		logger.Fatal("failed to open preferences store",
			zap.Error(err),
			zap.String("dbPath", cfg.PrefsDB))
	}
	defer store.Close()

	responder := assistant.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)

	router := relay.NewRouter(relay.RouterConfig{
		Logger:    logger,
		Registry:  relay.NewRegistry(),
		Responder: responder,
	})

	handler := api.NewHandler(store, logger)

	mux := http.NewServeMux()
	mux.Handle("/ws", relay.NewWebSocketHandler(router, logger))
	mux.HandleFunc("/api/preferences/", handler.HandlePreferences)
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("starting server", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
