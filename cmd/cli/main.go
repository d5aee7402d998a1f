package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adrianoapc/carvalho-rostering/cmd/cli/commands"
	"github.com/adrianoapc/carvalho-rostering/internal/config"
	"github.com/adrianoapc/carvalho-rostering/pkg/postgres"
	"github.com/adrianoapc/carvalho-rostering/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Carvalho Rostering CLI - Manage volunteer shift schedules",
		Long:  `A CLI tool for assigning volunteers to event shifts, expanding recurring assignments, and inspecting day timelines.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.ScheduleVolunteerCmd(appRef()))
	rootCmd.AddCommand(commands.SlotGridCmd(appRef()))
	rootCmd.AddCommand(commands.DuplicateShiftCmd(appRef()))
	rootCmd.AddCommand(commands.EditShiftCmd(appRef()))
	rootCmd.AddCommand(commands.DeleteShiftCmd(appRef()))
	rootCmd.AddCommand(commands.ListVolunteersCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// appRef returns the shared AppContext pointer; its fields are populated by
// initApp before any RunE executes
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

func initApp() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load oauth client config: %w", err)
	}

	logger, err := logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	database, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	a := appRef()
	a.Cfg = cfg
	a.OAuthCfg = oauthCfg
	a.Database = database
	a.Logger = logger
	a.Ctx = ctx
	a.Env = env

	return nil
}
