package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// ErrAbandoned - the input closed while a move was requested. The game stays in progress.
var ErrAbandoned = errors.New("player left the game")

const invalidInput = "You provided an invalid space."

// Human - hooks for a player typing spaces on in. A rejected move is reported and asked again.
func Human(in io.Reader, renderer *Renderer) tictactoe.Hooks {
	scanner := bufio.NewScanner(in)

	return tictactoe.Hooks{
		OnMoveRequested: func(player *tictactoe.Player, game *tictactoe.Game) error {
			for {
				renderer.Board(game)
				renderer.Prompt()

				if !scanner.Scan() {
					if err := scanner.Err(); err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}

					renderer.Info("")
					return ErrAbandoned
				}

				space, err := board.Parse(scanner.Text())
				if err != nil {
					renderer.Error(invalidInput)
					continue
				}

				err = player.MakeMove(game, space)
				if rejection, ok := tictactoe.Rejection(err); ok {
					if constraint, found := rejection.First(); found {
						renderer.Error(constraint.Message)
					}
					continue
				}

				return err
			}
		},
		OnGameEnded: func(player *tictactoe.Player, game *tictactoe.Game) error {
			renderer.Board(game)
			renderer.Result(game, player)

			return nil
		},
	}
}
