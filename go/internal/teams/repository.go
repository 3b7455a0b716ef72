// Package teams provides access to the 32 NFL franchises and their
// scouted positional needs.
package teams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gridironhq/draftroom/go/internal/models"
)

// ErrTeamNotFound is returned when a team id is not in the store.
var ErrTeamNotFound = errors.New("team not found")

// Repository implements team data access against Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new teams repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetTeam retrieves a team by ID.
func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, abbr, name, city, conference, division, created_at
		 FROM teams WHERE id = $1`, id)

	team, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// ListTeams retrieves all franchises ordered by abbreviation.
func (r *Repository) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, abbr, name, city, conference, division, created_at
		 FROM teams ORDER BY abbr`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, *team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read teams: %w", err)
	}
	return teams, nil
}

// ListTeamNeeds retrieves a team's needs ordered by priority, highest first.
func (r *Repository) ListTeamNeeds(ctx context.Context, teamID uuid.UUID) ([]models.TeamNeed, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT team_id, position, priority, COALESCE(notes, '')
		 FROM team_needs WHERE team_id = $1
		 ORDER BY priority DESC, position`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team needs: %w", err)
	}
	defer rows.Close()

	var needs []models.TeamNeed
	for rows.Next() {
		var need models.TeamNeed
		if err := rows.Scan(&need.TeamID, &need.Position, &need.Priority, &need.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan team need: %w", err)
		}
		needs = append(needs, need)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team needs: %w", err)
	}
	return needs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (*models.Team, error) {
	var t models.Team
	var conference, division string
	if err := row.Scan(&t.ID, &t.Abbr, &t.Name, &t.City, &conference, &division, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Conference = models.Conference(conference)
	t.Division = models.Division(division)
	return &t, nil
}
