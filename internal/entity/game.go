package entity

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
)

// Result - which variant of Outcome is in effect.
type Result string

const (
	ResultUndetermined Result = "undetermined"
	ResultWon          Result = "won"
	ResultTied         Result = "tied"
)

const (
	MarkerX = "X"
	MarkerO = "O"
)

const MaxMoves = 9

// Move - a recorded (participant, space) pair.
type Move struct {
	PlayerID string      `json:"player_id"`
	Space    board.Space `json:"space"`
}

// Outcome - resolution of a game. Winner and Vector are set only when Result is ResultWon.
type Outcome struct {
	Result Result        `json:"result"`
	Winner string        `json:"winner,omitempty"`
	Vector *board.Vector `json:"vector,omitempty"`
}

func Undetermined() Outcome {
	return Outcome{Result: ResultUndetermined}
}

func WonBy(playerID string, vector board.Vector) Outcome {
	return Outcome{Result: ResultWon, Winner: playerID, Vector: &vector}
}

func Tie() Outcome {
	return Outcome{Result: ResultTied}
}

func (that Outcome) IsUndetermined() bool {
	return that.Result == ResultUndetermined || that.Result == ""
}

func (that Outcome) IsWon() bool {
	return that.Result == ResultWon
}

func (that Outcome) IsTied() bool {
	return that.Result == ResultTied
}

func (that Outcome) IsFinished() bool {
	return that.IsWon() || that.IsTied()
}

// Record - persistable snapshot of a game, enough to resume or replay it.
type Record struct {
	ID        string  `json:"id"`
	Player1ID string  `json:"player1_id"`
	Player2ID string  `json:"player2_id"`
	Moves     []Move  `json:"moves"`
	Outcome   Outcome `json:"outcome"`
}

func (that *Record) IsFinished() bool {
	return that.Outcome.IsFinished()
}
