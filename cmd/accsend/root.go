package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/accsend/cmd/accsend/commands"
	"github.com/walteh/accsend/cmd/accsend/opts"
	"github.com/walteh/accsend/pkg/config"
	"github.com/walteh/accsend/pkg/log"
	"github.com/walteh/accsend/pkg/mover"
	"github.com/walteh/accsend/pkg/operation"
	"github.com/walteh/accsend/pkg/status"
	"github.com/walteh/accsend/pkg/tracker"
	"gitlab.com/tozd/go/errors"

	_ "github.com/walteh/accsend/pkg/mover/accsyn"
	_ "github.com/walteh/accsend/pkg/tracker/ftrack"
)

// skipInit marks commands that run without config or clients
const skipInit = "skip-init"

// newRootCmd builds the command tree around shared options
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "accsend",
		Short: "Send published components between tracker locations using accsyn",
		Long: `accsend harvests every component beneath the selected ftrack entities,
resolves their paths relative to the project, and submits accsyn jobs that
relocate them to the destination location.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging(o.Debug)
			ctx := logger.WithContext(cmd.Context())

			if o.Console == nil {
				o.Console = log.New(cmd.ErrOrStderr(), logger.GetLevel())
			}
			ctx = log.NewContext(ctx, o.Console)
			cmd.SetContext(ctx)

			if cmd.Annotations[skipInit] == "true" || o.Operator != nil {
				return nil
			}
			return initRootOpts(ctx, o)
		},
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewSendCmd(o),
		commands.NewLocationsCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// initRootOpts loads config and wires tracker, mover and operator
func initRootOpts(ctx context.Context, o *opts.RootOpts) error {
	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	trackerClient, err := tracker.New(ctx, cfg.Tracker)
	if err != nil {
		return errors.Errorf("creating tracker client: %w", err)
	}

	moverClient, err := mover.New(ctx, cfg.Mover)
	if err != nil {
		return errors.Errorf("creating mover client: %w", err)
	}

	op, err := operation.New(operation.Options{
		Config:   cfg,
		Tracker:  trackerClient,
		Mover:    moverClient,
		Progress: status.NewTracker(zerolog.Ctx(ctx)),
		Console:  o.Console,
	})
	if err != nil {
		return errors.Errorf("creating operator: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("initialized")

	o.Config = cfg
	o.Operator = op
	return nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", ".accsend.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}
