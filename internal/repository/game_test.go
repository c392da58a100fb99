package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finishedRecord(id string) *entity.Record {
	return &entity.Record{
		ID:        id,
		Player1ID: "p1",
		Player2ID: "p2",
		Moves: []entity.Move{
			{PlayerID: "p1", Space: board.A1},
			{PlayerID: "p2", Space: board.A2},
			{PlayerID: "p1", Space: board.B1},
			{PlayerID: "p2", Space: board.B2},
			{PlayerID: "p1", Space: board.C1},
		},
		Outcome: entity.WonBy("p1", board.Vector{board.A1, board.B1, board.C1}),
	}
}

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a game record
	record := finishedRecord("123")

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, record)

	// Then: no error should be returned, and record is stored
	require.NoError(t, err)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored record
		record := finishedRecord("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, record))

		// When: GetByID is called with existing ID
		retrieved, err := gameRepo.GetByID(ctx, record.ID)

		// Then: the retrieved record should match the saved one
		require.NoError(t, err)
		assert.Equal(t, record, retrieved)
	})

	t.Run("GetByID_Overwritten", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a record saved twice while the game progressed
		record := &entity.Record{ID: "123", Player1ID: "p1", Player2ID: "p2", Outcome: entity.Undetermined()}
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, record))
		record.Moves = append(record.Moves, entity.Move{PlayerID: "p1", Space: board.B2})
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, record))

		// When: GetByID is called
		retrieved, err := gameRepo.GetByID(ctx, "123")

		// Then: the latest snapshot is returned
		require.NoError(t, err)
		assert.Len(t, retrieved.Moves, 1)
		assert.False(t, retrieved.IsFinished())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		retrieved, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored record
		record := finishedRecord("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, record))

		// When: DeleteByID is called with existing ID
		err := gameRepo.DeleteByID(ctx, record.ID)

		// Then: no error should be returned and the record is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, record.ID)
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: DeleteByID is called with non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestGameRepository_ListIDs(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)
	playerRepo := NewPlayerRepository(st.Storage)

	// Given: two games and an unrelated player key
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, finishedRecord("b")))
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, finishedRecord("a")))
	require.NoError(t, playerRepo.CreateOrUpdate(ctx, &entity.Profile{ID: "p1"}))

	// When: listing games
	ids, err := gameRepo.ListIDs(ctx)

	// Then: only game ids are returned, sorted
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestGameRepository_Docker(t *testing.T) {
	ctx, st := suite.NewDocker(t)

	roundTrip(ctx, t, NewGameRepository(st.Storage))
}

func roundTrip(ctx context.Context, t *testing.T, gameRepo GameRepository) {
	t.Helper()

	record := finishedRecord("docker")
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, record))

	retrieved, err := gameRepo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, retrieved)

	require.NoError(t, gameRepo.DeleteByID(ctx, record.ID))
}
