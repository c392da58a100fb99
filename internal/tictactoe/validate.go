package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
)

// Validate - checks a proposed move against the game. All constraints are evaluated,
// so the returned *apperror.InvalidMoveError lists every violation.
func Validate(game *Game, playerID string, space board.Space) error {
	invalid := apperror.NewInvalidMoveError()

	if game.outcome.IsFinished() {
		invalid.Add(apperror.GameHasEnded, "This game has already ended", space)
	}

	if game.PlayerOnTurn().ID() != playerID {
		invalid.Add(apperror.NotYourTurn, "It is not your turn.", space)
	}

	if !board.Valid(space) {
		invalid.Add(apperror.SpaceDoesNotExist, "This is not a valid space.", space)
	}

	if game.IsSpaceTaken(space) {
		invalid.Add(apperror.SpaceIsTaken, "This space is not available.", space)
	}

	if invalid.Empty() {
		return nil
	}

	return invalid
}
