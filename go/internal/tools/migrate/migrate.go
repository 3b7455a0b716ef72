package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridironhq/draftroom/go/internal/dbconfig"
	"github.com/gridironhq/draftroom/go/internal/draft/eventstore"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id         UUID        PRIMARY KEY,
		abbr       TEXT        NOT NULL UNIQUE,
		name       TEXT        NOT NULL,
		city       TEXT        NOT NULL,
		conference TEXT        NOT NULL,
		division   TEXT        NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS team_needs (
		team_id  UUID NOT NULL REFERENCES teams(id),
		position TEXT NOT NULL,
		priority INT  NOT NULL,
		notes    TEXT,
		PRIMARY KEY (team_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id         UUID        PRIMARY KEY,
		full_name  TEXT        NOT NULL,
		position   TEXT        NOT NULL,
		college    TEXT,
		height_cm  INT,
		weight_kg  INT,
		draft_year INT         NOT NULL,
		grade      DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS players_draft_year_idx ON players (draft_year)`,
	`CREATE TABLE IF NOT EXISTS ranking_badges (
		player_id UUID NOT NULL REFERENCES players(id),
		source    TEXT NOT NULL,
		abbr      TEXT NOT NULL,
		rank      INT  NOT NULL,
		PRIMARY KEY (player_id, abbr)
	)`,
}

func main() {
	ctx := context.Background()

	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			fmt.Fprintf(os.Stderr, "migrate failed: %v\n", err)
			os.Exit(1)
		}
	}

	if err := eventstore.NewStore(pool).Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "migrate failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migration complete")
}
