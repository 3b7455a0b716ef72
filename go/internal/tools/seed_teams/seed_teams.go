package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridironhq/draftroom/go/internal/dbconfig"
)

type franchise struct {
	Abbr       string
	Name       string
	City       string
	Conference string
	Division   string
}

// The 32 franchises. Team IDs are derived from the abbreviation so
// reseeding an existing database is a no-op.
var franchises = []franchise{
	{"BUF", "Bills", "Buffalo", "AFC", "EAST"},
	{"MIA", "Dolphins", "Miami", "AFC", "EAST"},
	{"NE", "Patriots", "New England", "AFC", "EAST"},
	{"NYJ", "Jets", "New York", "AFC", "EAST"},
	{"BAL", "Ravens", "Baltimore", "AFC", "NORTH"},
	{"CIN", "Bengals", "Cincinnati", "AFC", "NORTH"},
	{"CLE", "Browns", "Cleveland", "AFC", "NORTH"},
	{"PIT", "Steelers", "Pittsburgh", "AFC", "NORTH"},
	{"HOU", "Texans", "Houston", "AFC", "SOUTH"},
	{"IND", "Colts", "Indianapolis", "AFC", "SOUTH"},
	{"JAX", "Jaguars", "Jacksonville", "AFC", "SOUTH"},
	{"TEN", "Titans", "Tennessee", "AFC", "SOUTH"},
	{"DEN", "Broncos", "Denver", "AFC", "WEST"},
	{"KC", "Chiefs", "Kansas City", "AFC", "WEST"},
	{"LV", "Raiders", "Las Vegas", "AFC", "WEST"},
	{"LAC", "Chargers", "Los Angeles", "AFC", "WEST"},
	{"DAL", "Cowboys", "Dallas", "NFC", "EAST"},
	{"NYG", "Giants", "New York", "NFC", "EAST"},
	{"PHI", "Eagles", "Philadelphia", "NFC", "EAST"},
	{"WAS", "Commanders", "Washington", "NFC", "EAST"},
	{"CHI", "Bears", "Chicago", "NFC", "NORTH"},
	{"DET", "Lions", "Detroit", "NFC", "NORTH"},
	{"GB", "Packers", "Green Bay", "NFC", "NORTH"},
	{"MIN", "Vikings", "Minnesota", "NFC", "NORTH"},
	{"ATL", "Falcons", "Atlanta", "NFC", "SOUTH"},
	{"CAR", "Panthers", "Carolina", "NFC", "SOUTH"},
	{"NO", "Saints", "New Orleans", "NFC", "SOUTH"},
	{"TB", "Buccaneers", "Tampa Bay", "NFC", "SOUTH"},
	{"ARI", "Cardinals", "Arizona", "NFC", "WEST"},
	{"LAR", "Rams", "Los Angeles", "NFC", "WEST"},
	{"SF", "49ers", "San Francisco", "NFC", "WEST"},
	{"SEA", "Seahawks", "Seattle", "NFC", "WEST"},
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

	var (
		total    = len(franchises)
		inserted int
		skipped  int
		errs     int
	)

	for _, f := range franchises {
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("draftroom:team:"+f.Abbr))
		cmdTag, err := pool.Exec(ctx, `
            INSERT INTO teams (
              id, abbr, name, city, conference, division, created_at
            ) VALUES ($1,$2,$3,$4,$5,$6,now())
            ON CONFLICT (abbr) DO NOTHING
        `, id, f.Abbr, f.Name, f.City, f.Conference, f.Division)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting team %s: %v\n", f.Abbr, err)
			errs++
			continue
		}
		if cmdTag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}

	fmt.Printf(
		"Teams seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		total, inserted, skipped, errs,
	)
}
