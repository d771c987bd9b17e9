package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/spikeline/tournament-system/models"
)

var (
	ErrPoolMatchNotFound        = errors.New("pool match not found")
	ErrPoolMatchDivisionInvalid = errors.New("pool match division conflict or invalid")
)

type PoolMatchRepository interface {
	Create(ctx context.Context, match *models.PoolMatch) error
	GetByID(ctx context.Context, id int) (*models.PoolMatch, error)
	ListByDivision(ctx context.Context, tournamentID, divisionID int) ([]*models.PoolMatch, error)
	UpdateAdminScore(ctx context.Context, id int, scoreA, scoreB int) error
	UpdatePlayerScore(ctx context.Context, id int, playerScoreA, playerScoreB int) error
	Resequence(ctx context.Context, tournamentID, divisionID int, orderedIDs []int) error
	Delete(ctx context.Context, id int) error
	DeleteByDivision(ctx context.Context, tournamentID, divisionID int) error
}

type postgresPoolMatchRepository struct {
	db *sql.DB
}

func NewPostgresPoolMatchRepository(db *sql.DB) PoolMatchRepository {
	return &postgresPoolMatchRepository{db: db}
}

const poolMatchColumns = `
	id, tournament_id, division_id, pool, team_a, team_b, team_a_players, team_b_players,
	score_a, score_b, player_score_a, player_score_b, status, admin_locked, sequence, created_at`

func (r *postgresPoolMatchRepository) Create(ctx context.Context, match *models.PoolMatch) error {
	query := `
		INSERT INTO pool_matches
			(tournament_id, division_id, pool, team_a, team_b, team_a_players, team_b_players,
			 score_a, score_b, player_score_a, player_score_b, status, admin_locked, sequence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.TournamentID,
		match.DivisionID,
		match.Pool,
		match.TeamA,
		match.TeamB,
		pq.Array(match.TeamAPlayers),
		pq.Array(match.TeamBPlayers),
		match.ScoreA,
		match.ScoreB,
		match.PlayerScoreA,
		match.PlayerScoreB,
		match.Status,
		match.AdminLocked,
		match.Sequence,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleError(err)
}

func (r *postgresPoolMatchRepository) GetByID(ctx context.Context, id int) (*models.PoolMatch, error) {
	query := `SELECT ` + poolMatchColumns + ` FROM pool_matches WHERE id = $1`

	match, err := scanPoolMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPoolMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresPoolMatchRepository) ListByDivision(ctx context.Context, tournamentID, divisionID int) ([]*models.PoolMatch, error) {
	query := `SELECT ` + poolMatchColumns + `
		FROM pool_matches
		WHERE tournament_id = $1 AND division_id = $2
		ORDER BY sequence ASC NULLS LAST, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.PoolMatch, 0)
	for rows.Next() {
		match, scanErr := scanPoolMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *postgresPoolMatchRepository) UpdateAdminScore(ctx context.Context, id int, scoreA, scoreB int) error {
	query := `
		UPDATE pool_matches
		SET score_a = $1, score_b = $2, status = $3, admin_locked = TRUE
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, scoreA, scoreB, models.MatchStatusFinal, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPoolMatchNotFound)
}

func (r *postgresPoolMatchRepository) UpdatePlayerScore(ctx context.Context, id int, playerScoreA, playerScoreB int) error {
	query := `
		UPDATE pool_matches
		SET player_score_a = $1, player_score_b = $2, status = $3
		WHERE id = $4 AND admin_locked = FALSE`

	result, err := r.db.ExecContext(ctx, query, playerScoreA, playerScoreB, models.MatchStatusFinal, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPoolMatchNotFound)
}

// Resequence rewrites the display order of a division's pool matches in one
// transaction, numbering the given ids 1..n.
func (r *postgresPoolMatchRepository) Resequence(ctx context.Context, tournamentID, divisionID int, orderedIDs []int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin resequence transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE pool_matches SET sequence = $1 WHERE id = $2 AND tournament_id = $3 AND division_id = $4`
	for i, id := range orderedIDs {
		result, execErr := tx.ExecContext(ctx, query, i+1, id, tournamentID, divisionID)
		if execErr != nil {
			return execErr
		}
		if checkErr := checkAffectedRows(result, ErrPoolMatchNotFound); checkErr != nil {
			return checkErr
		}
	}

	return tx.Commit()
}

func (r *postgresPoolMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pool_matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPoolMatchNotFound)
}

// DeleteByDivision clears a division's pool schedule. Zero rows is fine.
func (r *postgresPoolMatchRepository) DeleteByDivision(ctx context.Context, tournamentID, divisionID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM pool_matches WHERE tournament_id = $1 AND division_id = $2`,
		tournamentID, divisionID,
	)
	return err
}

func scanPoolMatch(row rowScanner) (*models.PoolMatch, error) {
	match := &models.PoolMatch{}
	err := row.Scan(
		&match.ID,
		&match.TournamentID,
		&match.DivisionID,
		&match.Pool,
		&match.TeamA,
		&match.TeamB,
		pq.Array(&match.TeamAPlayers),
		pq.Array(&match.TeamBPlayers),
		&match.ScoreA,
		&match.ScoreB,
		&match.PlayerScoreA,
		&match.PlayerScoreB,
		&match.Status,
		&match.AdminLocked,
		&match.Sequence,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (r *postgresPoolMatchRepository) handleError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return ErrPoolMatchDivisionInvalid
	}
	return err
}
