package apperror

import (
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
)

// ConstraintKey - identifies one rule a move can violate.
type ConstraintKey string

const (
	GameHasEnded      ConstraintKey = "gameHasEnded"
	NotYourTurn       ConstraintKey = "notYourTurn"
	SpaceDoesNotExist ConstraintKey = "spaceDoesNotExist"
	SpaceIsTaken      ConstraintKey = "spaceIsTaken"
)

// ConstraintKeys in the order they are evaluated.
var ConstraintKeys = []ConstraintKey{GameHasEnded, NotYourTurn, SpaceDoesNotExist, SpaceIsTaken}

var sentinels = map[ConstraintKey]error{
	GameHasEnded:      ErrGameHasEnded,
	NotYourTurn:       ErrNotYourTurn,
	SpaceDoesNotExist: ErrSpaceDoesNotExist,
	SpaceIsTaken:      ErrSpaceIsTaken,
}

type Constraint struct {
	Message string      `json:"message"`
	Space   board.Space `json:"space"`
}

// InvalidMoveError - every constraint a rejected move violated.
type InvalidMoveError struct {
	Constraints map[ConstraintKey]Constraint
}

func NewInvalidMoveError() *InvalidMoveError {
	return &InvalidMoveError{Constraints: make(map[ConstraintKey]Constraint)}
}

func (that *InvalidMoveError) Add(key ConstraintKey, message string, space board.Space) {
	that.Constraints[key] = Constraint{Message: message, Space: space}
}

func (that *InvalidMoveError) Has(key ConstraintKey) bool {
	_, ok := that.Constraints[key]
	return ok
}

func (that *InvalidMoveError) Empty() bool {
	return len(that.Constraints) == 0
}

// Keys - violated constraint keys in evaluation order.
func (that *InvalidMoveError) Keys() []ConstraintKey {
	keys := make([]ConstraintKey, 0, len(that.Constraints))
	for _, key := range ConstraintKeys {
		if that.Has(key) {
			keys = append(keys, key)
		}
	}

	return keys
}

// First - the first violated constraint in evaluation order.
func (that *InvalidMoveError) First() (Constraint, bool) {
	keys := that.Keys()
	if len(keys) == 0 {
		return Constraint{}, false
	}

	return that.Constraints[keys[0]], true
}

func (that *InvalidMoveError) Error() string {
	keys := that.Keys()
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, string(key))
	}

	return "This is an invalid move: " + strings.Join(names, ", ")
}

// Unwrap - lets errors.Is match each violated constraint's sentinel.
func (that *InvalidMoveError) Unwrap() []error {
	errs := make([]error, 0, len(that.Constraints))
	for _, key := range that.Keys() {
		errs = append(errs, sentinels[key])
	}

	return errs
}
