package strategy

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var (
	oppositeCorner = map[board.Space]board.Space{
		board.A1: board.C3,
		board.A3: board.C1,
		board.C1: board.A3,
		board.C3: board.A1,
	}

	// answer to an opening edge move, a corner away from it.
	edgeCounter = map[board.Space]board.Space{
		board.B1: board.C3,
		board.A2: board.C1,
		board.B3: board.A1,
		board.C2: board.A3,
	}
)

type marks map[board.Space]string

// Computer - a heuristic that never loses: an opening book for the first moves,
// then win, block, fork, block a fork, center, opposite corner, corner, edge.
func Computer(player *tictactoe.Player, game *tictactoe.Game) (board.Space, error) {
	if len(game.AvailableSpaces()) == 0 {
		return "", apperror.ErrNoAvailableMoves
	}

	me := player.ID()
	opponent := game.OpponentOf(me).ID()

	var theirLast board.Space
	if theirs := game.SpacesMarkedBy(opponent); len(theirs) > 0 {
		theirLast = theirs[len(theirs)-1]
	}

	if game.MoveCount() < 3 {
		if space, ok := opening(game, theirLast); ok {
			return space, nil
		}
	}

	current := make(marks, game.MoveCount())
	for _, move := range game.Moves() {
		current[move.Space] = move.PlayerID
	}

	if space, ok := completing(current, me); ok {
		return space, nil
	}

	if space, ok := completing(current, opponent); ok {
		return space, nil
	}

	if forks := forkSpaces(current, me); len(forks) > 0 {
		return forks[0], nil
	}

	if space, ok := blockFork(current, me, opponent); ok {
		return space, nil
	}

	if !game.IsSpaceTaken(board.CenterSpace) {
		return board.CenterSpace, nil
	}

	if opposite, ok := oppositeCorner[theirLast]; ok && !game.IsSpaceTaken(opposite) {
		return opposite, nil
	}

	if corners := game.AvailableCornerSpaces(); len(corners) > 0 {
		return corners[0], nil
	}

	return game.AvailableEdgeSpaces()[0], nil
}

func opening(game *tictactoe.Game, theirLast board.Space) (board.Space, bool) {
	if !game.IsSpaceTaken(board.CenterSpace) {
		return board.CenterSpace, true
	}

	if theirLast == board.CenterSpace {
		if corners := game.AvailableCornerSpaces(); len(corners) > 0 {
			return corners[0], true
		}
	}

	counter, ok := oppositeCorner[theirLast]
	if !ok {
		counter, ok = edgeCounter[theirLast]
	}

	if ok && !game.IsSpaceTaken(counter) {
		return counter, true
	}

	return "", false
}

// completing - a free space that finishes a line for the player.
func completing(current marks, playerID string) (board.Space, bool) {
	for _, vector := range board.Vectors() {
		if space, ok := threat(current, playerID, vector); ok {
			return space, true
		}
	}

	return "", false
}

// threat - the free space of a line holding two of the player's marks.
func threat(current marks, playerID string, vector board.Vector) (board.Space, bool) {
	var free board.Space
	owned := 0

	for _, space := range vector {
		switch current[space] {
		case playerID:
			owned++
		case "":
			free = space
		default:
			return "", false
		}
	}

	return free, owned == 2 && free != ""
}

func threats(current marks, playerID string) []board.Space {
	var spaces []board.Space
	for _, vector := range board.Vectors() {
		if space, ok := threat(current, playerID, vector); ok {
			spaces = append(spaces, space)
		}
	}

	return spaces
}

// forkSpaces - free spaces that would give the player two threats at once.
func forkSpaces(current marks, playerID string) []board.Space {
	var forks []board.Space
	for _, space := range board.Spaces {
		if current[space] != "" {
			continue
		}

		current[space] = playerID
		if distinct(threats(current, playerID)) >= 2 {
			forks = append(forks, space)
		}
		delete(current, space)
	}

	return forks
}

// blockFork - either the opponent's only fork space, or a move that forces the
// opponent to answer somewhere that does not give them a fork.
func blockFork(current marks, me, opponent string) (board.Space, bool) {
	forks := forkSpaces(current, opponent)
	if len(forks) == 0 {
		return "", false
	}

	if len(forks) == 1 {
		return forks[0], true
	}

	for _, space := range board.Spaces {
		if current[space] != "" {
			continue
		}

		current[space] = me
		forced := threats(current, me)
		if len(forced) == 1 {
			current[forced[0]] = opponent
			safe := distinct(threats(current, opponent)) < 2
			delete(current, forced[0])

			if safe {
				delete(current, space)
				return space, true
			}
		}
		delete(current, space)
	}

	return forks[0], true
}

func distinct(spaces []board.Space) int {
	seen := make(map[board.Space]bool, len(spaces))
	for _, space := range spaces {
		seen[space] = true
	}

	return len(seen)
}
