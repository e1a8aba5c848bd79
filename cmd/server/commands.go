package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"studio-ops.backend/internal/infrastructure/models"
	"studio-ops.backend/internal/interfaces/discord"
	"studio-ops.backend/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "studio-ops",
		Short:         "Studio operations backend: HTTP API, Discord bot and reminder worker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), true)
		},
	}

	var noWorker bool
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the Discord bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), !noWorker)
		},
	}
	serve.Flags().BoolVar(&noWorker, "no-worker", false, "do not run the reminder worker in this process")

	root.AddCommand(
		serve,
		&cobra.Command{
			Use:   "worker",
			Short: "Run only the reminder worker",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWorker(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "register-commands",
			Short: "Overwrite the bot's slash commands",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runRegisterCommands(cmd.Context(), cmd)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate()
			},
		},
	)
	return root
}

// runServe serves HTTP, connects the bot when a token is configured and optionally runs the worker.
func runServe(parent context.Context, withWorker bool) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.Close()

	c := wire(a)
	defer c.Close()

	if a.cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(c.routes, a.cfg.Server.CORSOrigins, a.cfg.Storage.LocalDir)

	ctx, cancel := signalContext(parent)
	defer cancel()

	if a.cfg.Discord.Token != "" {
		bot := discord.NewBot(a.session, c.router)
		if err := openBot(bot); err != nil {
			return fmt.Errorf("failed to connect discord bot: %w", err)
		}
		defer bot.Close()
	} else {
		logger.Warn(ctx, "DISCORD_TOKEN is empty, bot is disabled")
	}

	g, gctx := errgroup.WithContext(ctx)
	if withWorker {
		g.Go(func() error { return c.reminderWorker.Start(gctx) })
	}
	g.Go(func() error {
		logger.Info(gctx, "Studio ops backend starting",
			zap.String("port", a.cfg.Server.Port),
			zap.Int("routes", len(r.Routes())),
		)
		err := runServer(gctx, r, a.cfg.Server.Port)
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		// A clean HTTP exit stops the worker too.
		cancel()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info(context.Background(), "Shut down")
	return nil
}

func runWorker(parent context.Context) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.Close()

	c := wire(a)
	defer c.Close()

	ctx, cancel := signalContext(parent)
	defer cancel()
	return c.reminderWorker.Start(ctx)
}

func runRegisterCommands(parent context.Context, cmd *cobra.Command) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.Close()

	c := wire(a)
	defer c.Close()

	ctx, cancel := signalContext(parent)
	defer cancel()

	n, err := c.registrar.RegisterCommands(ctx)
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	cmd.Printf("Registered %d commands\n", n)
	return nil
}

func runMigrate() error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := migrateModels(a.db, models.All()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	logger.Info(context.Background(), "Schema migrated")
	return nil
}
