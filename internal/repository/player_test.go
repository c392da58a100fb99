package repository

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage)

	// Given: a player profile
	profile := &entity.Profile{
		ID:   "123",
		Name: "alice",
	}

	// When: CreateOrUpdate is called
	err := playerRepo.CreateOrUpdate(ctx, profile)

	// Then: no error should be returned, and the profile is stored
	require.NoError(t, err)
}

func TestPlayerRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// Given: a stored profile with a tally
		profile := &entity.Profile{
			ID:     "123",
			Name:   "alice",
			Wins:   2,
			Losses: 1,
			Ties:   3,
		}

		err := playerRepo.CreateOrUpdate(ctx, profile)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrieved, err := playerRepo.GetByID(ctx, profile.ID)

		// Then: the retrieved profile should match the saved profile
		require.NoError(t, err)
		assert.Equal(t, profile, retrieved)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		retrieved, err := playerRepo.GetByID(ctx, "9999999")

		// Then: an ErrPlayerNotFound error should be returned
		require.ErrorIs(t, err, ErrPlayerNotFound)
		assert.Nil(t, retrieved)
	})
}
