package tictactoe

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
)

const (
	hookMoveRequested    = "move requested"
	hookGameStateChanged = "game state changed"
	hookGameEnded        = "game ended"
)

// Handler - reacts to a game event on behalf of a player.
type Handler func(player *Player, game *Game) error

// Hooks - the capability set of a player. OnMoveRequested is required.
type Hooks struct {
	OnMoveRequested    Handler
	OnGameStateChanged Handler
	OnGameEnded        Handler
}

// Player - a participant identified by id and driven through its hooks.
// It keeps no per-game state, so one player can sit in many games.
type Player struct {
	id    string
	name  string
	hooks Hooks
}

type PlayerOption func(*Player)

func WithPlayerID(id string) PlayerOption {
	return func(p *Player) {
		p.id = id
	}
}

func WithName(name string) PlayerOption {
	return func(p *Player) {
		p.name = name
	}
}

func NewPlayer(hooks Hooks, opts ...PlayerOption) (*Player, error) {
	if hooks.OnMoveRequested == nil {
		return nil, apperror.ErrMissingMoveHandler
	}

	player := &Player{hooks: hooks}
	for _, opt := range opts {
		opt(player)
	}

	if player.id == "" {
		player.id = uuid.NewString()
	}

	return player, nil
}

func (that *Player) ID() string {
	return that.id
}

func (that *Player) Name() string {
	return that.name
}

func (that *Player) Hooks() Hooks {
	return that.hooks
}

// MakeMove - submits a move into the game under this player's id.
func (that *Player) MakeMove(game *Game, space board.Space) error {
	return game.RegisterMove(that.id, space)
}

func (that *Player) notify(hook string, handler Handler, game *Game) error {
	if handler == nil {
		return nil
	}

	if err := handler(that, game); err != nil {
		return &HookError{PlayerID: that.id, Hook: hook, Err: err}
	}

	return nil
}

// HookError - an error returned by a player's hook while the game was driving it.
type HookError struct {
	PlayerID string
	Hook     string
	Err      error
}

func (that *HookError) Error() string {
	return fmt.Sprintf("player %s %s: %v", that.PlayerID, that.Hook, that.Err)
}

func (that *HookError) Unwrap() error {
	return that.Err
}

// Rejection - the *apperror.InvalidMoveError for the caller's own move, if that is
// what err is. Rejections raised by other players further down the call chain arrive
// wrapped in *HookError and are not reported.
func Rejection(err error) (*apperror.InvalidMoveError, bool) {
	var hookErr *HookError
	if errors.As(err, &hookErr) {
		return nil, false
	}

	var invalid *apperror.InvalidMoveError
	if errors.As(err, &invalid) {
		return invalid, true
	}

	return nil, false
}
