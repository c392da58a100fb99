package apperror

import "errors"

var (
	ErrGameHasEnded      = errors.New("game has already ended")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrSpaceDoesNotExist = errors.New("space does not exist")
	ErrSpaceIsTaken      = errors.New("space is already taken")

	ErrGameAlreadyStarted = errors.New("game is already started")
	ErrGameFinished       = errors.New("game is already finished")
	ErrMissingMoveHandler = errors.New("move requested handler is required")
	ErrNoAvailableMoves   = errors.New("no available moves")
)
