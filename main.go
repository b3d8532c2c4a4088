package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"time"

	"laneglide-server/api"
	"laneglide-server/config"
	game "laneglide-server/src"

	"github.com/go-chi/chi/v5"
)

func main() {
	rand.Seed(time.Now().UnixNano())

	cfg := api.LoadConfig()

	db, err := api.ConnectMongo(context.Background(), cfg)
	if err != nil {
		log.Fatalf("mongo connect error: %v", err)
	}
	// Seed default data
	if err := api.SeedDefaultAdmin(context.Background(), cfg, db); err != nil {
		log.Printf("admin seed error: %v", err)
	}
	if err := api.EnsureScoreIndexes(context.Background(), db); err != nil {
		log.Printf("score index error: %v", err)
	}

	// Core game server, persisting high scores through Mongo
	s := game.NewGameServer(api.NewMongoScoreStore(db))
	s.SetTextures(game.ResolveTextures(cfg.StaticDir, config.TextureManifest))
	s.Run()

	r := chi.NewRouter()

	// Serve the static browser client; fatal if the directory is missing.
	r.Handle("/*", game.StaticFileServer(cfg.StaticDir, "/index.html"))

	// Mount REST API under /api
	r.Mount("/api", api.NewAPIRouter(cfg, db, s))
	// Websocket endpoint, one session per connection
	r.HandleFunc("/ws", s.HandleConnections)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Printf("Server started on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("ListenAndServe:", err)
	}
}
