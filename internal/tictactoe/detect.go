package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// a win is impossible before the fifth move.
const minMovesToWin = 5

// Detect - resolves the game from its move history. Once the game is won or tied
// the stored outcome is returned unchanged.
func Detect(game *Game) entity.Outcome {
	if game.outcome.IsFinished() {
		return game.outcome
	}

	return detect(game.moves)
}

// detect - only lines through the last move can have been completed by it.
func detect(moves []entity.Move) entity.Outcome {
	if len(moves) < minMovesToWin {
		return entity.Undetermined()
	}

	last := moves[len(moves)-1]
	marked := make(map[board.Space]bool, len(moves))
	for _, move := range moves {
		if move.PlayerID == last.PlayerID {
			marked[move.Space] = true
		}
	}

	candidates := []board.Vector{
		board.Rows[board.Row(last.Space)],
		board.Columns[board.Column(last.Space)],
	}

	// edge spaces lie on no diagonal
	if !board.IsEdge(last.Space) {
		candidates = append(candidates, board.Diagonals...)
	}

	for _, vector := range candidates {
		if marked[vector[0]] && marked[vector[1]] && marked[vector[2]] {
			return entity.WonBy(last.PlayerID, vector)
		}
	}

	if len(moves) == entity.MaxMoves {
		return entity.Tie()
	}

	return entity.Undetermined()
}
