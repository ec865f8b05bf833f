package tracker

import "errors"

// Validation and integrity errors surfaced by the tracker. Callers match
// them with errors.Is and turn them into user-facing usage messages.
var (
	// ErrInvalidInput means a malformed numeric or text argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutOfRange means a percentile outside [0, 100].
	ErrOutOfRange = errors.New("percentile must be between 0 and 100")

	// ErrInvalidDifficulty means a keyword that is not easy, medium or hard.
	ErrInvalidDifficulty = errors.New("unrecognized difficulty")

	// ErrNotTodaysProblem means the selector does not resolve to an entry
	// in the current daily problem set.
	ErrNotTodaysProblem = errors.New("not one of today's problems")

	// ErrCatalogLookup means a problem referenced by the daily set is
	// missing from the problems table. That can only happen through a bug
	// or manual tampering, so it is logged as a data-integrity warning.
	ErrCatalogLookup = errors.New("problem missing from catalog")

	// ErrCatalogUnavailable means the external catalog could not supply
	// any candidates at all for a selection run.
	ErrCatalogUnavailable = errors.New("problem catalog unavailable")
)
