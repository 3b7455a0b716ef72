package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"

	"github.com/gridironhq/draftroom/go/internal/draft"
	"github.com/gridironhq/draftroom/go/internal/draft/autopick"
	"github.com/gridironhq/draftroom/go/internal/draft/session"
	"github.com/gridironhq/draftroom/go/internal/player"
	"github.com/gridironhq/draftroom/go/internal/teams"
)

type Services struct {
	Registry *session.Registry
	Draft    *draft.Service
}

func setupServices(database *sql.DB, cfg *Config) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	teamsRepo := teams.NewRepository(database)
	playerRepo := player.NewRepository(database)

	registry := session.NewRegistry()
	selector := autopick.NewSelector(cfg.Autopick.Weights, cfg.Autopick.NeutralGrade)

	draftApp := draft.NewApp(registry, teamsRepo, playerRepo, selector, clockwork.NewRealClock())
	draftService := draft.NewService(draftApp)

	return &Services{
		Registry: registry,
		Draft:    draftService,
	}
}
