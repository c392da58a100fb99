package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrParticipantMismatch = errors.New("participants do not match the stored game")

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, record *entity.Record) error
	GetByID(ctx context.Context, id string) (*entity.Record, error)
	DeleteByID(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
}

// GameManager - creates games whose progress is archived, and rebuilds archived games.
// Archiving happens inside the players' hooks; a storage failure is logged and never
// changes the game itself.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "gameManager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
	}
}

// NewGame - a fresh game between the two players, not yet started.
func (that *GameManager) NewGame(ctx context.Context, player1, player2 *tictactoe.Player) (*tictactoe.Game, error) {
	first, second, err := that.archived(ctx, player1, player2)
	if err != nil {
		return nil, err
	}

	game, err := tictactoe.New(first, second, tictactoe.WithLogger(that.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.join(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// Resume - the stored game, continued by the same two participants.
func (that *GameManager) Resume(ctx context.Context, id string, player1, player2 *tictactoe.Player) (*tictactoe.Game, error) {
	if player1 == nil || player2 == nil {
		return nil, tictactoe.ErrMissingPlayer
	}

	record, err := that.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if record.Player1ID != player1.ID() || record.Player2ID != player2.ID() {
		return nil, fmt.Errorf("%w: game %s", ErrParticipantMismatch, id)
	}

	first, second, err := that.archived(ctx, player1, player2)
	if err != nil {
		return nil, err
	}

	game, err := tictactoe.Restore(record, first, second, tictactoe.WithLogger(that.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	if !game.IsFinished() {
		if err = that.join(ctx, game); err != nil {
			return nil, err
		}
	}

	return game, nil
}

// Replay - the stored game rebuilt for inspection. Its players never move.
func (that *GameManager) Replay(ctx context.Context, id string) (*tictactoe.Game, error) {
	record, err := that.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	observers := make([]*tictactoe.Player, 0, 2)
	for _, playerID := range []string{record.Player1ID, record.Player2ID} {
		observer, err := tictactoe.NewPlayer(tictactoe.Hooks{
			OnMoveRequested: func(*tictactoe.Player, *tictactoe.Game) error { return nil },
		}, tictactoe.WithPlayerID(playerID))
		if err != nil {
			return nil, fmt.Errorf("failed to create observer: %w", err)
		}

		observers = append(observers, observer)
	}

	game, err := tictactoe.Restore(record, observers[0], observers[1], tictactoe.WithLogger(that.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return game, nil
}

// Delete - removes the stored game. Profiles still pointing at it are released.
func (that *GameManager) Delete(ctx context.Context, id string) error {
	record, err := that.getRecord(ctx, id)
	if err != nil {
		return err
	}

	if err = that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	for _, playerID := range []string{record.Player1ID, record.Player2ID} {
		profile, err := that.playerRepo.GetByID(ctx, playerID)
		if errors.Is(err, repository.ErrPlayerNotFound) {
			continue
		}

		if err != nil {
			return fmt.Errorf("failed to get player: %w", err)
		}

		if profile.GameID != id {
			continue
		}

		profile.GameID = ""
		if err = that.playerRepo.CreateOrUpdate(ctx, profile); err != nil {
			return fmt.Errorf("failed to update player: %w", err)
		}
	}

	return nil
}

func (that *GameManager) ListGames(ctx context.Context) ([]string, error) {
	ids, err := that.gameRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return ids, nil
}

// Profile - the stored tally of a participant.
func (that *GameManager) Profile(ctx context.Context, id string) (*entity.Profile, error) {
	profile, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return profile, nil
}

// archived - copies of the players, same ids, whose hooks also archive the game.
// Only the first player's copy saves the record so each event is stored once.
func (that *GameManager) archived(ctx context.Context, player1, player2 *tictactoe.Player) (*tictactoe.Player, *tictactoe.Player, error) {
	if player1 == nil || player2 == nil {
		return nil, nil, tictactoe.ErrMissingPlayer
	}

	first, err := that.wrap(ctx, player1, true)
	if err != nil {
		return nil, nil, err
	}

	second, err := that.wrap(ctx, player2, false)
	if err != nil {
		return nil, nil, err
	}

	return first, second, nil
}

func (that *GameManager) wrap(ctx context.Context, player *tictactoe.Player, recorder bool) (*tictactoe.Player, error) {
	inner := player.Hooks()

	hooks := tictactoe.Hooks{
		OnMoveRequested: inner.OnMoveRequested,
		OnGameStateChanged: func(p *tictactoe.Player, g *tictactoe.Game) error {
			if recorder {
				that.saveRecord(ctx, g)
			}

			if inner.OnGameStateChanged == nil {
				return nil
			}
			return inner.OnGameStateChanged(p, g)
		},
		OnGameEnded: func(p *tictactoe.Player, g *tictactoe.Game) error {
			if recorder {
				that.saveRecord(ctx, g)
			}
			that.tally(ctx, p, g)

			if inner.OnGameEnded == nil {
				return nil
			}
			return inner.OnGameEnded(p, g)
		},
	}

	wrapped, err := tictactoe.NewPlayer(hooks, tictactoe.WithPlayerID(player.ID()), tictactoe.WithName(player.Name()))
	if err != nil {
		return nil, fmt.Errorf("failed to wrap player: %w", err)
	}

	return wrapped, nil
}

// join - stores the record and points both profiles at the game.
func (that *GameManager) join(ctx context.Context, game *tictactoe.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game.Record()); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	for _, player := range []*tictactoe.Player{game.Player1(), game.Player2()} {
		profile, err := that.getOrCreateProfile(ctx, player)
		if err != nil {
			return err
		}

		profile.GameID = game.ID()
		if err = that.playerRepo.CreateOrUpdate(ctx, profile); err != nil {
			return fmt.Errorf("failed to update player: %w", err)
		}
	}

	return nil
}

func (that *GameManager) getOrCreateProfile(ctx context.Context, player *tictactoe.Player) (*entity.Profile, error) {
	profile, err := that.playerRepo.GetByID(ctx, player.ID())
	if errors.Is(err, repository.ErrPlayerNotFound) {
		return &entity.Profile{ID: player.ID(), Name: player.Name()}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if player.Name() != "" {
		profile.Name = player.Name()
	}

	return profile, nil
}

func (that *GameManager) getRecord(ctx context.Context, id string) (*entity.Record, error) {
	record, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return record, nil
}

func (that *GameManager) saveRecord(ctx context.Context, game *tictactoe.Game) {
	log := that.logger.With("method", "saveRecord", "gameID", game.ID())

	if err := that.gameRepo.CreateOrUpdate(ctx, game.Record()); err != nil {
		log.Error("failed to save game", "error", err)
	}
}

func (that *GameManager) tally(ctx context.Context, player *tictactoe.Player, game *tictactoe.Game) {
	log := that.logger.With("method", "tally", "gameID", game.ID(), "playerID", player.ID())

	profile, err := that.getOrCreateProfile(ctx, player)
	if err != nil {
		log.Error("failed to get player", "error", err)
		return
	}

	profile.Tally(game.Outcome())
	profile.GameID = ""

	if err = that.playerRepo.CreateOrUpdate(ctx, profile); err != nil {
		log.Error("failed to update player", "error", err)
		return
	}

	log.Info("game finished", "result", game.Outcome().Result, "wins", profile.Wins, "losses", profile.Losses, "ties", profile.Ties)
}
