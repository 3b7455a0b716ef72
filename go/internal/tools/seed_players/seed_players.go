package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridironhq/draftroom/go/internal/dbconfig"
)

// Prospect mirrors the JSON snapshot layout.
type Prospect struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Position  string    `json:"position"`
	College   *string   `json:"college"`
	HeightCm  *int      `json:"height_cm"`
	WeightKg  *int      `json:"weight_kg"`
	DraftYear int       `json:"draft_year"`
	Grade     *float64  `json:"grade"`
	Badges    []Badge   `json:"badges"`
}

type Badge struct {
	Source string `json:"source"`
	Abbr   string `json:"abbr"`
	Rank   int    `json:"rank"`
}

func main() {
	ctx := context.Background()

	path := "go/internal/assets/prospects.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// 1) Load the prospect snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}
	var prospects []Prospect
	if err := json.Unmarshal(data, &prospects); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal prospects: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Upsert prospects and badges
	total, inserted, skipped, errs := len(prospects), 0, 0, 0
	for _, p := range prospects {
		tag, err := pool.Exec(ctx, `
            INSERT INTO players (
              id, full_name, position, college, height_cm, weight_kg, draft_year, grade, created_at
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now())
            ON CONFLICT (id) DO NOTHING
        `, p.ID, p.FullName, p.Position, p.College, p.HeightCm, p.WeightKg, p.DraftYear, p.Grade)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting player %s: %v\n", p.FullName, err)
			errs++
			continue
		}
		if tag.RowsAffected() != 1 {
			skipped++
			continue
		}
		inserted++

		for _, b := range p.Badges {
			if _, err := pool.Exec(ctx, `
                INSERT INTO ranking_badges (player_id, source, abbr, rank)
                VALUES ($1,$2,$3,$4)
                ON CONFLICT DO NOTHING
            `, p.ID, b.Source, b.Abbr, b.Rank); err != nil {
				fmt.Fprintf(os.Stderr, "error inserting badge %s for %s: %v\n", b.Abbr, p.FullName, err)
				errs++
			}
		}
	}

	// 4) Print summary
	fmt.Printf(
		"Prospects seed: total=%d inserted=%d skipped=%d errors=%d\n",
		total, inserted, skipped, errs,
	)
}
