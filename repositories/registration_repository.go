package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/spikeline/tournament-system/models"
)

var (
	ErrRegistrationNotFound        = errors.New("registration not found")
	ErrRegistrationDivisionInvalid = errors.New("registration division conflict or invalid")
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	GetByID(ctx context.Context, id int) (*models.Registration, error)
	ListByDivision(ctx context.Context, tournamentID, divisionID int) ([]*models.Registration, error)
	Update(ctx context.Context, registration *models.Registration) error
	UpdateSeed(ctx context.Context, id int, seed *int) error
	UpdateFinish(ctx context.Context, id int, finish *int) error
	UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	query := `
		INSERT INTO registrations
			(tournament_id, division_id, team_name, players, captain_phone, waiver_accepted, seed, finish, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		registration.TournamentID,
		registration.DivisionID,
		registration.TeamName,
		pq.Array(registration.Players),
		registration.CaptainPhone,
		registration.WaiverAccepted,
		registration.Seed,
		registration.Finish,
		registration.CreatedBy,
	).Scan(&registration.ID, &registration.CreatedAt)

	return r.handleError(err)
}

func (r *postgresRegistrationRepository) GetByID(ctx context.Context, id int) (*models.Registration, error) {
	query := `
		SELECT id, tournament_id, division_id, team_name, players, captain_phone,
		       waiver_accepted, seed, finish, created_by, photo_key, created_at
		FROM registrations
		WHERE id = $1`

	registration, err := scanRegistration(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return registration, nil
}

func (r *postgresRegistrationRepository) ListByDivision(ctx context.Context, tournamentID, divisionID int) ([]*models.Registration, error) {
	query := `
		SELECT id, tournament_id, division_id, team_name, players, captain_phone,
		       waiver_accepted, seed, finish, created_by, photo_key, created_at
		FROM registrations
		WHERE tournament_id = $1 AND division_id = $2
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := make([]*models.Registration, 0)
	for rows.Next() {
		registration, scanErr := scanRegistration(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		registrations = append(registrations, registration)
	}
	return registrations, rows.Err()
}

func (r *postgresRegistrationRepository) Update(ctx context.Context, registration *models.Registration) error {
	query := `
		UPDATE registrations
		SET team_name = $1, players = $2, captain_phone = $3, waiver_accepted = $4, seed = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		registration.TeamName,
		pq.Array(registration.Players),
		registration.CaptainPhone,
		registration.WaiverAccepted,
		registration.Seed,
		registration.ID,
	)
	if err != nil {
		return r.handleError(err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) UpdateSeed(ctx context.Context, id int, seed *int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE registrations SET seed = $1 WHERE id = $2`, seed, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) UpdateFinish(ctx context.Context, id int, finish *int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE registrations SET finish = $1 WHERE id = $2`, finish, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE registrations SET photo_key = $1 WHERE id = $2`, photoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRegistration(row rowScanner) (*models.Registration, error) {
	registration := &models.Registration{}
	err := row.Scan(
		&registration.ID,
		&registration.TournamentID,
		&registration.DivisionID,
		&registration.TeamName,
		pq.Array(&registration.Players),
		&registration.CaptainPhone,
		&registration.WaiverAccepted,
		&registration.Seed,
		&registration.Finish,
		&registration.CreatedBy,
		&registration.PhotoKey,
		&registration.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return registration, nil
}

func (r *postgresRegistrationRepository) handleError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
		return ErrRegistrationDivisionInvalid
	}
	return err
}
