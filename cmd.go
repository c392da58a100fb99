package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-engine/internal"
	"github.com/rocketscienceinc/tictactoe-engine/internal/cli"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "tictactoe",
		Short:        "Tic-tac-toe in the terminal",
		Long:         `Play tic-tac-toe against the computer, a friend or watch two strategies play each other.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yml (default ./config.yml)")

	rootCmd.AddCommand(
		newPlayCmd(&configPath),
		newResumeCmd(&configPath),
		newReplayCmd(&configPath),
		newGamesCmd(&configPath),
		newDeleteCmd(&configPath),
		newStatsCmd(&configPath),
		newVersionCmd(),
	)

	return rootCmd
}

func newPlayCmd(configPath *string) *cobra.Command {
	var match app.Match

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *configPath, func(ctx context.Context, conf *config.Config, application *app.App) error {
				applyMatchDefaults(cmd, conf, &match)

				return application.Play(ctx, match)
			})
		},
	}

	addSeatFlags(cmd, &match)
	cmd.Flags().IntVar(&match.Rounds, "rounds", 1, "number of games to play")

	return cmd
}

func newResumeCmd(configPath *string) *cobra.Command {
	var match app.Match

	cmd := &cobra.Command{
		Use:   "resume <game-id>",
		Short: "Continue an archived game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *configPath, func(ctx context.Context, conf *config.Config, application *app.App) error {
				applyMatchDefaults(cmd, conf, &match)

				return application.Resume(ctx, args[0], match)
			})
		},
	}

	addSeatFlags(cmd, &match)

	return cmd
}

func newReplayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <game-id>",
		Short: "Print an archived game move by move",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *configPath, func(ctx context.Context, _ *config.Config, application *app.App) error {
				return application.Replay(ctx, args[0])
			})
		},
	}
}

func newGamesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List archived games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *configPath, func(ctx context.Context, _ *config.Config, application *app.App) error {
				return application.Games(ctx)
			})
		},
	}
}

func newDeleteCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <game-id>",
		Short: "Remove an archived game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *configPath, func(ctx context.Context, _ *config.Config, application *app.App) error {
				return application.Delete(ctx, args[0])
			})
		},
	}
}

func newStatsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <player-id>",
		Short: "Print wins, losses and ties of a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *configPath, func(ctx context.Context, _ *config.Config, application *app.App) error {
				return application.Stats(ctx, args[0])
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tictactoe",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tictactoe version %s\n", version)
		},
	}
}

func addSeatFlags(cmd *cobra.Command, match *app.Match) {
	cmd.Flags().StringVar(&match.PlayerX, "x", app.KindHuman, "player X: human, computer, random or first")
	cmd.Flags().StringVar(&match.PlayerO, "o", app.KindComputer, "player O: human, computer, random or first")
}

// applyMatchDefaults - flags left unset take the configured match.
func applyMatchDefaults(cmd *cobra.Command, conf *config.Config, match *app.Match) {
	if !cmd.Flags().Changed("x") && conf.Match.PlayerX != "" {
		match.PlayerX = conf.Match.PlayerX
	}

	if !cmd.Flags().Changed("o") && conf.Match.PlayerO != "" {
		match.PlayerO = conf.Match.PlayerO
	}

	if cmd.Flags().Lookup("rounds") != nil && !cmd.Flags().Changed("rounds") && conf.Match.Rounds > 0 {
		match.Rounds = conf.Match.Rounds
	}
}

func withApp(cmd *cobra.Command, configPath string, run func(context.Context, *config.Config, *app.App) error) error {
	conf := initConfig(configPath)
	logger := initLogger(conf)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	renderer := cli.NewRenderer(out, termenv.NewOutput(out).EnvColorProfile())

	application, err := app.New(ctx, logger, conf, cmd.InOrStdin(), renderer)
	if err != nil {
		return fmt.Errorf("app init failed: %w", err)
	}
	defer application.Close()

	return run(ctx, conf, application)
}
