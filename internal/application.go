package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/cli"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/strategy"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const (
	KindHuman    = "human"
	KindComputer = "computer"
	KindRandom   = "random"
	KindFirst    = "first"
)

var (
	ErrAddrNotFound       = errors.New("redis address string is empty")
	ErrArchiveDisabled    = errors.New("game archive is disabled, set redis.enabled")
	ErrUnknownPlayerKind  = errors.New("unknown player kind")
	ErrInvalidRoundNumber = errors.New("rounds must be positive")
)

// Match - who sits on each side and how many games they play.
type Match struct {
	PlayerX string
	PlayerO string
	Rounds  int
}

// App - wires the engine, the strategies, the terminal and, when enabled, the redis archive.
type App struct {
	logger   *slog.Logger
	renderer *cli.Renderer
	human    tictactoe.Hooks
	rng      *rand.Rand

	redisStorage *storage.RedisStorage
	manager      *usecase.GameManager
}

func New(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, renderer *cli.Renderer) (*App, error) {
	app := &App{
		logger:   logger.With("component", "app"),
		renderer: renderer,
		human:    cli.Human(in, renderer),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if !conf.Redis.Enabled {
		return app, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	app.redisStorage = redisStorage
	app.manager = usecase.NewGameManager(
		logger,
		repository.NewPlayerRepository(redisStorage.Connection),
		repository.NewGameRepository(redisStorage.Connection),
	)

	return app, nil
}

func (that *App) Close() {
	if that.redisStorage == nil {
		return
	}

	if err := that.redisStorage.Close(); err != nil {
		that.logger.Error("could not close redis storage", "error", err)
	}
}

// Play - runs the rounds of a match. A player leaving suspends the current game and ends the match.
func (that *App) Play(ctx context.Context, match Match) error {
	log := that.logger.With("method", "Play", "playerX", match.PlayerX, "playerO", match.PlayerO)

	if match.Rounds < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidRoundNumber, match.Rounds)
	}

	playerX, err := that.newPlayer(match.PlayerX, entity.MarkerX)
	if err != nil {
		return err
	}

	playerO, err := that.newPlayer(match.PlayerO, entity.MarkerO)
	if err != nil {
		return err
	}

	spectated := match.PlayerX != KindHuman && match.PlayerO != KindHuman
	score := entity.Profile{ID: playerX.ID()}

	for round := 1; round <= match.Rounds; round++ {
		game, err := that.newGame(ctx, playerX, playerO)
		if err != nil {
			return err
		}

		log.Debug("round started", "round", round, "gameID", game.ID())

		err = game.Start()
		if errors.Is(err, cli.ErrAbandoned) {
			that.renderer.Result(game, nil)
			return nil
		}

		if err != nil {
			return fmt.Errorf("game %s failed: %w", game.ID(), err)
		}

		if spectated {
			that.renderer.Board(game)
			that.renderer.Result(game, nil)
		}

		score.Tally(game.Outcome())
	}

	if match.Rounds > 1 {
		that.renderer.Info(fmt.Sprintf("X wins: %d, O wins: %d, ties: %d", score.Wins, score.Losses, score.Ties))
	}

	return nil
}

// Resume - continues an archived game with the given kinds of players in its original seats.
func (that *App) Resume(ctx context.Context, id string, match Match) error {
	if that.manager == nil {
		return ErrArchiveDisabled
	}

	stored, err := that.replay(ctx, id)
	if err != nil {
		return err
	}

	playerX, err := that.newPlayer(match.PlayerX, entity.MarkerX, tictactoe.WithPlayerID(stored.Player1().ID()))
	if err != nil {
		return err
	}

	playerO, err := that.newPlayer(match.PlayerO, entity.MarkerO, tictactoe.WithPlayerID(stored.Player2().ID()))
	if err != nil {
		return err
	}

	game, err := that.manager.Resume(ctx, id, playerX, playerO)
	if err != nil {
		return fmt.Errorf("failed to resume game: %w", err)
	}

	err = game.Resume()
	if errors.Is(err, cli.ErrAbandoned) {
		that.renderer.Result(game, nil)
		return nil
	}

	if err != nil {
		return fmt.Errorf("game %s failed: %w", game.ID(), err)
	}

	if match.PlayerX != KindHuman && match.PlayerO != KindHuman {
		that.renderer.Board(game)
		that.renderer.Result(game, nil)
	}

	return nil
}

// Replay - prints an archived game move by move.
func (that *App) Replay(ctx context.Context, id string) error {
	if that.manager == nil {
		return ErrArchiveDisabled
	}

	game, err := that.replay(ctx, id)
	if err != nil {
		return err
	}

	for i, move := range game.Moves() {
		that.renderer.Info(fmt.Sprintf("%d. %s %s", i+1, game.MarkerFor(move.Space), move.Space))
	}

	that.renderer.Board(game)
	that.renderer.Result(game, nil)

	return nil
}

// Games - lists archived games with their state.
func (that *App) Games(ctx context.Context) error {
	if that.manager == nil {
		return ErrArchiveDisabled
	}

	ids, err := that.manager.ListGames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	log := that.logger.With("method", "Games")

	for _, id := range ids {
		game, err := that.replay(ctx, id)
		if err != nil {
			log.Error("failed to replay game", "gameID", id, "error", err)
			that.renderer.Info(fmt.Sprintf("%s\tunreadable", id))
			continue
		}

		that.renderer.Info(fmt.Sprintf("%s\t%s\t%d moves", id, game.State(), game.MoveCount()))
	}

	return nil
}

// Delete - removes an archived game.
func (that *App) Delete(ctx context.Context, id string) error {
	if that.manager == nil {
		return ErrArchiveDisabled
	}

	if err := that.manager.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.renderer.Info("deleted " + id)

	return nil
}

// Stats - prints the archived tally of a player.
func (that *App) Stats(ctx context.Context, playerID string) error {
	if that.manager == nil {
		return ErrArchiveDisabled
	}

	profile, err := that.manager.Profile(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	that.renderer.Info(fmt.Sprintf("%s: played %d, wins %d, losses %d, ties %d",
		profile.ID, profile.Played(), profile.Wins, profile.Losses, profile.Ties))

	return nil
}

func (that *App) replay(ctx context.Context, id string) (*tictactoe.Game, error) {
	game, err := that.manager.Replay(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to replay game: %w", err)
	}

	return game, nil
}

func (that *App) newGame(ctx context.Context, playerX, playerO *tictactoe.Player) (*tictactoe.Game, error) {
	if that.manager != nil {
		game, err := that.manager.NewGame(ctx, playerX, playerO)
		if err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}

		return game, nil
	}

	game, err := tictactoe.New(playerX, playerO, tictactoe.WithLogger(that.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

// newPlayer - ids default to kind and marker so archived tallies accumulate per seat.
func (that *App) newPlayer(kind, marker string, opts ...tictactoe.PlayerOption) (*tictactoe.Player, error) {
	var hooks tictactoe.Hooks

	switch kind {
	case KindHuman:
		hooks = that.human
	case KindComputer:
		hooks.OnMoveRequested = strategy.WithFallback(that.logger, strategy.Computer, strategy.FirstAvailable)
	case KindRandom:
		hooks.OnMoveRequested = strategy.Handler(strategy.Random(that.rng))
	case KindFirst:
		hooks.OnMoveRequested = strategy.Handler(strategy.FirstAvailable)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayerKind, kind)
	}

	opts = append([]tictactoe.PlayerOption{
		tictactoe.WithPlayerID(kind + "-" + marker),
		tictactoe.WithName(kind),
	}, opts...)

	player, err := tictactoe.NewPlayer(hooks, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s player: %w", kind, err)
	}

	return player, nil
}
