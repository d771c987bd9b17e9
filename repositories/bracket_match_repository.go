package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/spikeline/tournament-system/brackets"
	"github.com/spikeline/tournament-system/models"
)

var (
	ErrBracketMatchNotFound        = errors.New("bracket match not found")
	ErrBracketMatchDivisionInvalid = errors.New("bracket match division conflict or invalid")
)

type BracketMatchRepository interface {
	// Create runs on the given executor so bracket generation can wipe and
	// rebuild a division's bracket inside one transaction.
	Create(ctx context.Context, exec SQLExecutor, match *models.BracketMatch) error
	GetByID(ctx context.Context, id int) (*models.BracketMatch, error)
	ListByDivision(ctx context.Context, tournamentID, divisionID int) ([]*models.BracketMatch, error)
	UpdateAdminScore(ctx context.Context, id int, scoreA, scoreB int) error
	UpdatePlayerScore(ctx context.Context, id int, playerScoreA, playerScoreB int) error
	FillSlot(ctx context.Context, assignment brackets.SlotAssignment) error
	DeleteByDivision(ctx context.Context, exec SQLExecutor, tournamentID, divisionID int) error
}

type postgresBracketMatchRepository struct {
	db *sql.DB
}

func NewPostgresBracketMatchRepository(db *sql.DB) BracketMatchRepository {
	return &postgresBracketMatchRepository{db: db}
}

const bracketMatchColumns = `
	id, tournament_id, division_id, round, slot, label, team_a, team_b,
	team_a_players, team_b_players, score_a, score_b, player_score_a, player_score_b,
	status, admin_locked, created_at`

func (r *postgresBracketMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.BracketMatch) error {
	query := `
		INSERT INTO bracket_matches
			(tournament_id, division_id, round, slot, label, team_a, team_b,
			 team_a_players, team_b_players, score_a, score_b, player_score_a, player_score_b,
			 status, admin_locked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		match.TournamentID,
		match.DivisionID,
		match.Round,
		match.Slot,
		match.Label,
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
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleError(err)
}

func (r *postgresBracketMatchRepository) GetByID(ctx context.Context, id int) (*models.BracketMatch, error) {
	query := `SELECT ` + bracketMatchColumns + ` FROM bracket_matches WHERE id = $1`

	match, err := scanBracketMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresBracketMatchRepository) ListByDivision(ctx context.Context, tournamentID, divisionID int) ([]*models.BracketMatch, error) {
	query := `SELECT ` + bracketMatchColumns + `
		FROM bracket_matches
		WHERE tournament_id = $1 AND division_id = $2
		ORDER BY round ASC, slot ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.BracketMatch, 0)
	for rows.Next() {
		match, scanErr := scanBracketMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *postgresBracketMatchRepository) UpdateAdminScore(ctx context.Context, id int, scoreA, scoreB int) error {
	query := `
		UPDATE bracket_matches
		SET score_a = $1, score_b = $2, status = $3, admin_locked = TRUE
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, scoreA, scoreB, models.MatchStatusFinal, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBracketMatchNotFound)
}

// UpdatePlayerScore leaves status and the admin lock untouched; the guard on
// admin_locked makes a racing participant write lose to an admin lock.
func (r *postgresBracketMatchRepository) UpdatePlayerScore(ctx context.Context, id int, playerScoreA, playerScoreB int) error {
	query := `
		UPDATE bracket_matches
		SET player_score_a = $1, player_score_b = $2
		WHERE id = $3 AND admin_locked = FALSE`

	result, err := r.db.ExecContext(ctx, query, playerScoreA, playerScoreB, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBracketMatchNotFound)
}

// FillSlot applies one advancement-engine mutation to a match side.
func (r *postgresBracketMatchRepository) FillSlot(ctx context.Context, assignment brackets.SlotAssignment) error {
	query := `UPDATE bracket_matches SET team_a = $1, team_a_players = $2 WHERE id = $3`
	if assignment.Side == brackets.SideB {
		query = `UPDATE bracket_matches SET team_b = $1, team_b_players = $2 WHERE id = $3`
	}

	result, err := r.db.ExecContext(ctx, query, assignment.TeamKey, pq.Array(assignment.Players), assignment.MatchID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBracketMatchNotFound)
}

// DeleteByDivision wipes the division's bracket. Zero rows is not an error:
// generating a first bracket has nothing to clear.
func (r *postgresBracketMatchRepository) DeleteByDivision(ctx context.Context, exec SQLExecutor, tournamentID, divisionID int) error {
	_, err := exec.ExecContext(ctx,
		`DELETE FROM bracket_matches WHERE tournament_id = $1 AND division_id = $2`,
		tournamentID, divisionID,
	)
	return err
}

func scanBracketMatch(row rowScanner) (*models.BracketMatch, error) {
	match := &models.BracketMatch{}
	err := row.Scan(
		&match.ID,
		&match.TournamentID,
		&match.DivisionID,
		&match.Round,
		&match.Slot,
		&match.Label,
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
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (r *postgresBracketMatchRepository) handleError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return ErrBracketMatchDivisionInvalid
	}
	return err
}
