package engine

import (
	"errors"
	"fmt"

	"github.com/arcanaland/patience/internal/validator"
)

var (
	// ErrInvalidMove is returned when the rules reject an action. The board
	// is left untouched.
	ErrInvalidMove = errors.New("invalid move")

	// ErrGameOver is returned for any action other than a new deal once the
	// game has been won or lost.
	ErrGameOver = errors.New("game is over")

	// ErrClosed is returned after Close
	ErrClosed = errors.New("game is closed")
)

// InvariantError reports a board that breaks the table invariants. The
// engine panics with it in strict mode since it can only come from a bug.
type InvariantError struct {
	Results validator.ValidationResults
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("board invariant violated: %s", e.Results)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidMove, fmt.Sprintf(format, args...))
}
