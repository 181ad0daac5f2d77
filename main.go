package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/openjams/jamboard/app"
	"github.com/openjams/jamboard/config"
	"github.com/openjams/jamboard/database"
	"github.com/openjams/jamboard/httpx"
	"github.com/openjams/jamboard/log"
	"github.com/openjams/jamboard/routes"
	"github.com/openjams/jamboard/store/github"
	"github.com/openjams/jamboard/workflow"
)

func main() {
	// Env vars feed the flag defaults, so the .env file loads before
	// config parsing; the outcome is logged once the level is known.
	envErr := godotenv.Load()

	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if envErr != nil {
		log.Debug("main.env: no .env file, relying on the environment")
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	remote := github.NewClient(cfg.RepoOwner, cfg.RepoName, cfg.GitHubToken)
	reviewer := &workflow.Reviewer{
		Tickets:     remote,
		Content:     remote,
		DatasetPath: cfg.DatasetPath,
	}

	bearerServer := httpx.NewBearerServer(db, cfg)

	app := app.App{
		DB:           db,
		BearerServer: bearerServer,
		Config:       cfg,
		Reviewer:     reviewer,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
