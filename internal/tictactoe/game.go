package tictactoe

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	ErrMissingPlayer = errors.New("game requires two players")
	ErrSamePlayer    = errors.New("players must have distinct ids")
	ErrMissingRecord = errors.New("game record is required")
)

// State - lifecycle of a game.
type State int

const (
	NotStarted State = iota
	InProgress
	Won
	Tied
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Tied:
		return "tied"
	default:
		return "unknown"
	}
}

// Game - owns the move history and drives both players through their hooks.
// Hooks are called synchronously: a hook that submits a move runs the next turn
// inside the current call. A game must not be driven from several goroutines.
type Game struct {
	id      string
	player1 *Player
	player2 *Player

	moves   []entity.Move
	outcome entity.Outcome
	started bool

	logger *slog.Logger
}

type Option func(*Game)

func WithID(id string) Option {
	return func(g *Game) {
		g.id = id
	}
}

// WithMoves - a move history to resume from. New replays it through validation.
func WithMoves(moves []entity.Move) Option {
	return func(g *Game) {
		g.moves = append([]entity.Move(nil), moves...)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

func New(player1, player2 *Player, opts ...Option) (*Game, error) {
	if player1 == nil || player2 == nil {
		return nil, ErrMissingPlayer
	}

	if player1.ID() == player2.ID() {
		return nil, fmt.Errorf("%w: %s", ErrSamePlayer, player1.ID())
	}

	game := &Game{
		player1: player1,
		player2: player2,
		outcome: entity.Undetermined(),
	}

	for _, opt := range opts {
		opt(game)
	}

	if game.id == "" {
		game.id = uuid.NewString()
	}

	if game.logger == nil {
		game.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	game.logger = game.logger.With("component", "game", "gameID", game.id)

	history := game.moves
	game.moves = nil

	// every stored move passes the same checks as a live one
	for i, move := range history {
		if err := Validate(game, move.PlayerID, move.Space); err != nil {
			return nil, fmt.Errorf("move %d of game %s: %w", i+1, game.id, err)
		}

		game.moves = append(game.moves, move)
		game.outcome = Detect(game)
	}
	game.started = len(game.moves) > 0

	return game, nil
}

// Restore - rebuilds a game from a record, validating every stored move as if played live.
func Restore(record *entity.Record, player1, player2 *Player, opts ...Option) (*Game, error) {
	if record == nil {
		return nil, ErrMissingRecord
	}

	return New(player1, player2, append(opts, WithID(record.ID), WithMoves(record.Moves))...)
}

// Start - prompts the first player for a move.
func (that *Game) Start() error {
	if that.outcome.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.started {
		return apperror.ErrGameAlreadyStarted
	}

	that.started = true
	that.logger.Debug("game started", "player1", that.player1.ID(), "player2", that.player2.ID())

	return that.promptNextPlayer()
}

// Resume - prompts whoever is on turn in a game restored from history.
func (that *Game) Resume() error {
	if that.outcome.IsFinished() {
		return apperror.ErrGameFinished
	}

	that.started = true

	return that.promptNextPlayer()
}

// RegisterMove - validates and records a move, then notifies the players.
// A rejected move returns *apperror.InvalidMoveError and leaves the game unchanged.
// Errors from hooks run as a consequence of the move come back as *HookError.
func (that *Game) RegisterMove(playerID string, space board.Space) error {
	log := that.logger.With("method", "RegisterMove", "playerID", playerID, "space", space)

	if err := Validate(that, playerID, space); err != nil {
		log.Debug("move rejected", "error", err)
		return err
	}

	that.started = true
	that.moves = append(that.moves, entity.Move{PlayerID: playerID, Space: space})
	log.Debug("move accepted", "moveCount", len(that.moves))

	var errs []error
	for _, player := range that.players() {
		errs = append(errs, player.notify(hookGameStateChanged, player.hooks.OnGameStateChanged, that))
	}

	if that.outcome = Detect(that); that.outcome.IsFinished() {
		log.Debug("game ended", "result", that.outcome.Result, "winner", that.outcome.Winner)

		for _, player := range that.players() {
			errs = append(errs, player.notify(hookGameEnded, player.hooks.OnGameEnded, that))
		}

		return errors.Join(errs...)
	}

	errs = append(errs, that.promptNextPlayer())

	return errors.Join(errs...)
}

func (that *Game) promptNextPlayer() error {
	player := that.PlayerOnTurn()

	return player.notify(hookMoveRequested, player.hooks.OnMoveRequested, that)
}

func (that *Game) players() [2]*Player {
	return [2]*Player{that.player1, that.player2}
}

func (that *Game) ID() string {
	return that.id
}

func (that *Game) Player1() *Player {
	return that.player1
}

func (that *Game) Player2() *Player {
	return that.player2
}

func (that *Game) State() State {
	switch {
	case that.outcome.IsWon():
		return Won
	case that.outcome.IsTied():
		return Tied
	case that.started:
		return InProgress
	default:
		return NotStarted
	}
}

// Moves - a copy of the move history.
func (that *Game) Moves() []entity.Move {
	return append([]entity.Move(nil), that.moves...)
}

func (that *Game) MoveCount() int {
	return len(that.moves)
}

func (that *Game) LastMove() (entity.Move, bool) {
	if len(that.moves) == 0 {
		return entity.Move{}, false
	}

	return that.moves[len(that.moves)-1], true
}

func (that *Game) Outcome() entity.Outcome {
	return that.outcome
}

func (that *Game) IsFinished() bool {
	return that.outcome.IsFinished()
}

func (that *Game) IsTied() bool {
	return that.outcome.IsTied()
}

// Winner - the winning player, nil while undetermined or tied.
func (that *Game) Winner() *Player {
	if !that.outcome.IsWon() {
		return nil
	}

	return that.PlayerByID(that.outcome.Winner)
}

func (that *Game) WinningVector() (board.Vector, bool) {
	if !that.outcome.IsWon() || that.outcome.Vector == nil {
		return board.Vector{}, false
	}

	return *that.outcome.Vector, true
}

// PlayerOnTurn - the first player on even move counts, the second on odd.
func (that *Game) PlayerOnTurn() *Player {
	if len(that.moves)%2 == 1 {
		return that.player2
	}

	return that.player1
}

func (that *Game) PlayerByID(id string) *Player {
	switch id {
	case that.player1.ID():
		return that.player1
	case that.player2.ID():
		return that.player2
	default:
		return nil
	}
}

func (that *Game) OpponentOf(id string) *Player {
	if id == that.player1.ID() {
		return that.player2
	}

	return that.player1
}

func (that *Game) IsSpaceTaken(space board.Space) bool {
	for _, move := range that.moves {
		if move.Space == space {
			return true
		}
	}

	return false
}

func (that *Game) TakenSpaces() []board.Space {
	spaces := make([]board.Space, 0, len(that.moves))
	for _, move := range that.moves {
		spaces = append(spaces, move.Space)
	}

	return spaces
}

func (that *Game) AvailableSpaces() []board.Space {
	return that.available(board.Spaces)
}

func (that *Game) AvailableCornerSpaces() []board.Space {
	return that.available(board.Corners)
}

func (that *Game) AvailableEdgeSpaces() []board.Space {
	return that.available(board.Edges)
}

func (that *Game) available(spaces []board.Space) []board.Space {
	free := make([]board.Space, 0, len(spaces))
	for _, space := range spaces {
		if !that.IsSpaceTaken(space) {
			free = append(free, space)
		}
	}

	return free
}

// SpacesMarkedBy - spaces taken by the player, in move order.
func (that *Game) SpacesMarkedBy(playerID string) []board.Space {
	var spaces []board.Space
	for _, move := range that.moves {
		if move.PlayerID == playerID {
			spaces = append(spaces, move.Space)
		}
	}

	return spaces
}

// MarkerFor - X for the first player, O for the second, empty for a free space.
func (that *Game) MarkerFor(space board.Space) string {
	for _, move := range that.moves {
		if move.Space != space {
			continue
		}

		if move.PlayerID == that.player1.ID() {
			return entity.MarkerX
		}
		return entity.MarkerO
	}

	return ""
}

func (that *Game) Record() *entity.Record {
	return &entity.Record{
		ID:        that.id,
		Player1ID: that.player1.ID(),
		Player2ID: that.player2.ID(),
		Moves:     that.Moves(),
		Outcome:   that.outcome,
	}
}
