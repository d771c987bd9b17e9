package services

import "errors"

// Shared sentinel errors used across services and the HTTP error mapping.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Auth
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Tournaments and divisions
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrDivisionNotFound       = errors.New("division not found")
	ErrDivisionNameConflict   = errors.New("division name already exists for this tournament")
	ErrDivisionMismatch       = errors.New("division does not belong to this tournament")

	// Registrations
	ErrRegistrationNotFound = errors.New("team registration not found")
	ErrTeamNameRequired     = errors.New("team name is required")
	ErrPlayersRequired      = errors.New("at least one player is required")
	ErrWaiverRequired       = errors.New("waiver must be accepted to register")

	// Matches and scores
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchLocked      = errors.New("match score has been locked by an admin")
	ErrScoreEntryClosed = errors.New("score entry is only open on the event date")
	ErrInvalidScore     = errors.New("scores must be non-negative")

	// Brackets
	ErrNotEnoughTeams      = errors.New("at least two teams are required to generate a bracket")
	ErrTooManyTeams        = errors.New("brackets support at most ten teams")
	ErrBracketNotGenerated = errors.New("bracket has not been generated for this division")
)
