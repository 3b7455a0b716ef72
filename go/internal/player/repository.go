// Package player provides access to draft-eligible prospects, their
// ranking badges, and scouting grades.
package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gridironhq/draftroom/go/internal/models"
	"github.com/gridironhq/draftroom/go/internal/sqlutil"
)

// Repository implements player data access against Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new player repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreatePlayerRequest carries a prospect plus ranking badges to insert.
type CreatePlayerRequest struct {
	ID        uuid.UUID             `json:"id"`
	FullName  string                `json:"full_name"`
	Position  string                `json:"position"`
	College   *string               `json:"college,omitempty"`
	HeightCm  *int                  `json:"height_cm,omitempty"`
	WeightKg  *int                  `json:"weight_kg,omitempty"`
	DraftYear int                   `json:"draft_year"`
	Grade     *float64              `json:"grade,omitempty"`
	Badges    []models.RankingBadge `json:"badges,omitempty"`
}

// CreatePlayer inserts a prospect and its badges in one transaction.
func (r *Repository) CreatePlayer(ctx context.Context, req CreatePlayerRequest) error {
	err := sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO players (id, full_name, position, college, height_cm, weight_kg, draft_year, grade)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			req.ID, req.FullName, req.Position,
			sqlutil.ToSqlString(req.College),
			sqlutil.ToSqlInt32(req.HeightCm),
			sqlutil.ToSqlInt32(req.WeightKg),
			req.DraftYear,
			sqlutil.ToSqlFloat64(req.Grade),
		)
		if err != nil {
			return err
		}
		for _, badge := range req.Badges {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO ranking_badges (player_id, source, abbr, rank)
				 VALUES ($1, $2, $3, $4)`,
				req.ID, badge.Source, badge.Abbr, badge.Rank,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// GetPlayer retrieves a player with badges by ID.
func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, full_name, position, college, height_cm, weight_kg, draft_year, grade, created_at
		 FROM players WHERE id = $1`, id)

	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	badges, err := r.listBadges(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	p.Badges = badges[id]
	return p, nil
}

// ListAvailablePlayers retrieves every prospect for a draft year, with
// badges attached, ordered by grade descending for a sensible default
// board.
func (r *Repository) ListAvailablePlayers(ctx context.Context, draftYear int) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, full_name, position, college, height_cm, weight_kg, draft_year, grade, created_at
		 FROM players WHERE draft_year = $1
		 ORDER BY grade DESC NULLS LAST, full_name`, draftYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	var ids []uuid.UUID
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read players: %w", err)
	}

	badges, err := r.listBadges(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range players {
		players[i].Badges = badges[players[i].ID]
	}
	return players, nil
}

func (r *Repository) listBadges(ctx context.Context, playerIDs []uuid.UUID) (map[uuid.UUID][]models.RankingBadge, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT player_id, source, abbr, rank
		 FROM ranking_badges WHERE player_id = ANY($1)
		 ORDER BY player_id, rank`, uuidArray(playerIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list ranking badges: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]models.RankingBadge)
	for rows.Next() {
		var playerID uuid.UUID
		var badge models.RankingBadge
		if err := rows.Scan(&playerID, &badge.Source, &badge.Abbr, &badge.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan ranking badge: %w", err)
		}
		out[playerID] = append(out[playerID], badge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranking badges: %w", err)
	}
	return out, nil
}

// uuidArray adapts a uuid slice for a Postgres ANY($1) clause.
func uuidArray(ids []uuid.UUID) interface{} {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return pq.Array(strs)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*models.Player, error) {
	var p models.Player
	var college sql.NullString
	var heightCm, weightKg sql.NullInt32
	var grade sql.NullFloat64
	if err := row.Scan(&p.ID, &p.FullName, &p.Position, &college, &heightCm, &weightKg, &p.DraftYear, &grade, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.College = sqlutil.FromSqlStringPtr(college)
	p.HeightCm = sqlutil.FromSqlInt32(heightCm)
	p.WeightKg = sqlutil.FromSqlInt32(weightKg)
	p.Grade = sqlutil.FromSqlFloat64(grade)
	return &p, nil
}
