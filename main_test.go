package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	rootCmd := newRootCmd()
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "config.yml")))
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	err := rootCmd.Execute()

	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	output, err := execute(t, "", "version")

	require.NoError(t, err)
	assert.Equal(t, "tictactoe version dev\n", output)
}

func TestPlayCmd(t *testing.T) {
	t.Run("Two strategies", func(t *testing.T) {
		// When: play is run with two first-available players
		output, err := execute(t, "", "play", "--x", "first", "--o", "first", "--rounds", "2")

		// Then: both rounds are printed with the score
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(output, "X Wins!!!"))
		assert.Contains(t, output, "X wins: 2, O wins: 0, ties: 0")
	})

	t.Run("Human against the computer", func(t *testing.T) {
		// Given: a human who quits right away
		output, err := execute(t, "", "play", "--x", "human", "--o", "computer")

		// Then: the game is suspended without an error
		require.NoError(t, err)
		assert.Contains(t, output, "Select a space: ")
		assert.Contains(t, output, "Game suspended: ")
	})

	t.Run("Unknown player kind", func(t *testing.T) {
		_, err := execute(t, "", "play", "--x", "robot")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown player kind")
	})
}

func TestReplayCmd_ArchiveDisabled(t *testing.T) {
	_, err := execute(t, "", "replay", "some-id")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "game archive is disabled")
}

func TestDeleteCmd_ArchiveDisabled(t *testing.T) {
	_, err := execute(t, "", "delete", "some-id")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "game archive is disabled")
}
