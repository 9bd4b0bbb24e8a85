package predict

import "errors"

// Error taxonomy for a prediction request. The first two are fatal to the
// request; commentary failure is recovered locally with a fallback string.
var (
	// ErrTeamNotFound is returned when a team id has no record in the store.
	ErrTeamNotFound = errors.New("team not found")

	// ErrInvalidModelInput is returned when a non-finite or negative
	// expected-goals value reaches the distribution step. It indicates an
	// upstream contract violation, never a user error.
	ErrInvalidModelInput = errors.New("invalid model input")

	// ErrCommentaryUnavailable is returned by commentary providers when the
	// external analysis call fails or times out.
	ErrCommentaryUnavailable = errors.New("commentary unavailable")
)
