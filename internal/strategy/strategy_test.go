package strategy

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func always(space board.Space) Chooser {
	return func(*tictactoe.Player, *tictactoe.Game) (board.Space, error) {
		return space, nil
	}
}

func newGame(t *testing.T, p1, p2 *tictactoe.Player) *tictactoe.Game {
	t.Helper()

	game, err := tictactoe.New(p1, p2)
	require.NoError(t, err)

	return game
}

func TestFirstAvailable(t *testing.T) {
	// Given: two players taking the first free space
	p1, err := NewPlayer(FirstAvailable, tictactoe.WithPlayerID("p1"))
	require.NoError(t, err)
	p2, err := NewPlayer(FirstAvailable, tictactoe.WithPlayerID("p2"))
	require.NoError(t, err)
	game := newGame(t, p1, p2)

	// When: the game runs
	require.NoError(t, game.Start())

	// Then: p1 completes the anti-diagonal on the seventh move
	assert.Equal(t, tictactoe.Won, game.State())
	assert.Equal(t, "p1", game.Winner().ID())
	assert.Equal(t, 7, game.MoveCount())
	vector, _ := game.WinningVector()
	assert.Equal(t, board.Vector{board.A3, board.B2, board.C1}, vector)
}

func TestRandom(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		// Given: two random players
		p1, err := NewPlayer(Random(rand.New(rand.NewSource(seed))), tictactoe.WithPlayerID("p1"))
		require.NoError(t, err)
		p2, err := NewPlayer(Random(rand.New(rand.NewSource(seed+1000))), tictactoe.WithPlayerID("p2"))
		require.NoError(t, err)
		game := newGame(t, p1, p2)

		// When: the game runs
		require.NoError(t, game.Start(), "seed %d", seed)

		// Then: the history respects every game invariant
		moves := game.Moves()
		require.True(t, game.IsFinished())
		assert.LessOrEqual(t, len(moves), entity.MaxMoves)

		seen := map[board.Space]bool{}
		for i, move := range moves {
			assert.False(t, seen[move.Space], "space %s repeated", move.Space)
			seen[move.Space] = true

			expected := "p1"
			if i%2 == 1 {
				expected = "p2"
			}
			assert.Equal(t, expected, move.PlayerID)
		}

		if game.IsTied() {
			assert.Len(t, moves, entity.MaxMoves)
		} else {
			assert.GreaterOrEqual(t, len(moves), 5)
			last, _ := game.LastMove()
			assert.Equal(t, last.PlayerID, game.Winner().ID())
		}
	}
}

func TestWithFallback(t *testing.T) {
	t.Run("Rejected move falls back", func(t *testing.T) {
		// Given: p2 always tries A1 first
		p1, err := NewPlayer(FirstAvailable, tictactoe.WithPlayerID("p1"))
		require.NoError(t, err)
		p2, err := tictactoe.NewPlayer(tictactoe.Hooks{
			OnMoveRequested: WithFallback(nopLogger(), always(board.A1), FirstAvailable),
		}, tictactoe.WithPlayerID("p2"))
		require.NoError(t, err)
		game := newGame(t, p1, p2)

		// When: the game runs
		err = game.Start()

		// Then: p2 recovered every time and the game finished
		require.NoError(t, err)
		assert.Equal(t, tictactoe.Won, game.State())
		assert.Equal(t, []board.Space{board.A2, board.B1, board.B3}, game.SpacesMarkedBy("p2"))
	})

	t.Run("Rejections of other players are not retried", func(t *testing.T) {
		// Given: p1 retries, p2 insists on the taken A1 without a fallback
		p1, err := tictactoe.NewPlayer(tictactoe.Hooks{
			OnMoveRequested: WithFallback(nopLogger(), FirstAvailable, FirstAvailable),
		}, tictactoe.WithPlayerID("p1"))
		require.NoError(t, err)
		p2, err := NewPlayer(always(board.A1), tictactoe.WithPlayerID("p2"))
		require.NoError(t, err)
		game := newGame(t, p1, p2)

		// When: the game runs
		err = game.Start()

		// Then: p2's rejection surfaces and p1 made exactly one move
		require.ErrorIs(t, err, apperror.ErrSpaceIsTaken)
		assert.Len(t, game.Moves(), 1)
	})
}

func TestComputer_Opening(t *testing.T) {
	computer, err := NewPlayer(Computer, tictactoe.WithPlayerID("cpu"))
	require.NoError(t, err)

	t.Run("Takes the center first", func(t *testing.T) {
		game := newGame(t, computer, idle(t, "opp"))

		require.NoError(t, game.Start())

		assert.Equal(t, []board.Space{board.B2}, game.SpacesMarkedBy("cpu"))
	})

	cases := map[board.Space]board.Space{
		board.A1: board.C3,
		board.A3: board.C1,
		board.C1: board.A3,
		board.C3: board.A1,
		board.B1: board.C3,
		board.A2: board.C1,
		board.B3: board.A1,
		board.C2: board.A3,
	}

	for theirs, expected := range cases {
		t.Run("Answers "+string(theirs), func(t *testing.T) {
			// Given: the computer opened in the center
			game := newGame(t, computer, idle(t, "opp"))
			require.NoError(t, game.Start())

			// When: the opponent answers
			require.NoError(t, game.RegisterMove("opp", theirs))

			// Then: the computer plays the counter
			last, _ := game.LastMove()
			assert.Equal(t, entity.Move{PlayerID: "cpu", Space: expected}, last)
		})
	}

	t.Run("Takes a corner when the center is gone", func(t *testing.T) {
		game := newGame(t, idle(t, "opp"), computer)
		require.NoError(t, game.RegisterMove("opp", board.B2))

		last, _ := game.LastMove()
		assert.True(t, board.IsCorner(last.Space))
		assert.Equal(t, "cpu", last.PlayerID)
	})
}

func TestComputer_NeverLoses(t *testing.T) {
	computer, err := NewPlayer(Computer, tictactoe.WithPlayerID("cpu"))
	require.NoError(t, err)
	opponent := idle(t, "opp")

	for _, computerFirst := range []bool{true, false} {
		p1, p2 := computer, opponent
		if !computerFirst {
			p1, p2 = opponent, computer
		}

		// every opponent reply is explored; the computer's reply is deterministic
		var explore func(moves []entity.Move) int
		explore = func(moves []entity.Move) int {
			// every explored history is validated move by move on the way in
			game, err := tictactoe.Restore(&entity.Record{ID: "explore", Moves: moves}, p1, p2)
			require.NoError(t, err, "%v", moves)

			if game.IsFinished() {
				if winner := game.Winner(); winner != nil {
					require.Equal(t, "cpu", winner.ID(), "computer lost: %v", moves)
				}
				return 1
			}

			next := append([]entity.Move(nil), moves...)
			if game.PlayerOnTurn().ID() == "cpu" {
				space, err := Computer(computer, game)
				require.NoError(t, err)
				require.NoError(t, tictactoe.Validate(game, "cpu", space))
				return explore(append(next, entity.Move{PlayerID: "cpu", Space: space}))
			}

			total := 0
			for _, space := range game.AvailableSpaces() {
				total += explore(append(next, entity.Move{PlayerID: "opp", Space: space}))
			}
			return total
		}

		assert.Positive(t, explore(nil))
	}
}

func idle(t *testing.T, id string) *tictactoe.Player {
	t.Helper()

	player, err := tictactoe.NewPlayer(tictactoe.Hooks{
		OnMoveRequested: func(*tictactoe.Player, *tictactoe.Game) error { return nil },
	}, tictactoe.WithPlayerID(id))
	require.NoError(t, err)

	return player
}
