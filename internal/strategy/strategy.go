package strategy

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// Chooser - picks the next space for the player in the game.
type Chooser func(player *tictactoe.Player, game *tictactoe.Game) (board.Space, error)

// Handler - turns a chooser into a move requested hook.
func Handler(choose Chooser) tictactoe.Handler {
	return func(player *tictactoe.Player, game *tictactoe.Game) error {
		space, err := choose(player, game)
		if err != nil {
			return fmt.Errorf("failed to choose a space: %w", err)
		}

		return player.MakeMove(game, space)
	}
}

// NewPlayer - a player whose only behaviour is the chooser.
func NewPlayer(choose Chooser, opts ...tictactoe.PlayerOption) (*tictactoe.Player, error) {
	player, err := tictactoe.NewPlayer(tictactoe.Hooks{OnMoveRequested: Handler(choose)}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

// FirstAvailable - the first free space in board order.
func FirstAvailable(_ *tictactoe.Player, game *tictactoe.Game) (board.Space, error) {
	available := game.AvailableSpaces()
	if len(available) == 0 {
		return "", apperror.ErrNoAvailableMoves
	}

	return available[0], nil
}

// Random - a uniformly random free space.
func Random(rng *rand.Rand) Chooser {
	return func(_ *tictactoe.Player, game *tictactoe.Game) (board.Space, error) {
		available := game.AvailableSpaces()
		if len(available) == 0 {
			return "", apperror.ErrNoAvailableMoves
		}

		return available[rng.Intn(len(available))], nil
	}
}

// WithFallback - submits the primary choice and, when that move is rejected, logs
// every violated constraint and submits the fallback choice instead.
func WithFallback(logger *slog.Logger, primary, fallback Chooser) tictactoe.Handler {
	return func(player *tictactoe.Player, game *tictactoe.Game) error {
		log := logger.With("method", "WithFallback", "playerID", player.ID(), "gameID", game.ID())

		space, err := primary(player, game)
		if err != nil {
			return fmt.Errorf("failed to choose a space: %w", err)
		}

		err = player.MakeMove(game, space)

		invalid, rejected := tictactoe.Rejection(err)
		if !rejected {
			return err
		}

		for _, key := range invalid.Keys() {
			log.Warn(invalid.Constraints[key].Message, "constraint", key, "space", space)
		}

		return Handler(fallback)(player, game)
	}
}
