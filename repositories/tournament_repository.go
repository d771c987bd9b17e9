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
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name conflict")
	ErrDivisionNotFound       = errors.New("division not found")
	ErrDivisionNameConflict   = errors.New("division name conflict for this tournament")
	ErrDivisionInUse          = errors.New("division is in use (registrations or matches exist)")
)

type ListTournamentsFilter struct {
	Status *models.TournamentStatus
	Limit  int
	Offset int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error
	Delete(ctx context.Context, id int) error

	CreateDivision(ctx context.Context, division *models.Division) error
	GetDivisionByID(ctx context.Context, id int) (*models.Division, error)
	ListDivisions(ctx context.Context, tournamentID int) ([]models.Division, error)
	DeleteDivision(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, location, event_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.Location, t.EventDate, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, location, event_date, status, created_at, updated_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Location, &t.EventDate, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `
		SELECT id, name, location, event_date, status, created_at, updated_at
		FROM tournaments
		WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}

	query += " ORDER BY event_date DESC, created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := rows.Scan(
			&t.ID, &t.Name, &t.Location, &t.EventDate, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = $1,
			location = $2,
			event_date = $3,
			status = $4,
			updated_at = NOW()
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.Location, t.EventDate, t.Status, t.ID,
	)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	query := `UPDATE tournaments SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) CreateDivision(ctx context.Context, d *models.Division) error {
	query := `
		INSERT INTO divisions (tournament_id, name, team_size)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		d.TournamentID, d.Name, d.TeamSize,
	).Scan(&d.ID, &d.CreatedAt)

	return r.handleDivisionError(err)
}

func (r *postgresTournamentRepository) GetDivisionByID(ctx context.Context, id int) (*models.Division, error) {
	query := `
		SELECT id, tournament_id, name, team_size, created_at
		FROM divisions
		WHERE id = $1`

	d := &models.Division{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.TournamentID, &d.Name, &d.TeamSize, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDivisionNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *postgresTournamentRepository) ListDivisions(ctx context.Context, tournamentID int) ([]models.Division, error) {
	query := `
		SELECT id, tournament_id, name, team_size, created_at
		FROM divisions
		WHERE tournament_id = $1
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	divisions := make([]models.Division, 0)
	for rows.Next() {
		var d models.Division
		if scanErr := rows.Scan(&d.ID, &d.TournamentID, &d.Name, &d.TeamSize, &d.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		divisions = append(divisions, d)
	}
	return divisions, rows.Err()
}

func (r *postgresTournamentRepository) DeleteDivision(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM divisions WHERE id = $1`, id)
	if err != nil {
		return r.handleDivisionError(err)
	}
	return checkAffectedRows(result, ErrDivisionNotFound)
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrTournamentNameConflict
	}
	return err
}

func (r *postgresTournamentRepository) handleDivisionError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrDivisionNameConflict
		case "23503":
			return ErrDivisionInUse
		}
	}
	return err
}
