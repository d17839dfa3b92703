// Package cli defines the Cobra command definitions for the crema CLI.
// This file contains the root command, which launches the TUI.
package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crema-dev/crema/internal/api"
	"github.com/crema-dev/crema/internal/auth"
	"github.com/crema-dev/crema/internal/config"
	"github.com/crema-dev/crema/internal/dashboard"
	"github.com/crema-dev/crema/internal/log"
	"github.com/crema-dev/crema/internal/tui"
	"github.com/crema-dev/crema/internal/tui/app"
)

var (
	apiURL  string
	version = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "crema",
	Short: "Espresso calibration tracker",
	Long: `Crema tracks your espresso dial-in work against a calibration
service: beans, grinders, calibration sessions and the shots pulled in
them, plus extraction analytics across all of it.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !tui.IsTTY() {
			return cmd.Help()
		}

		env, err := buildEnv()
		if err != nil {
			return err
		}

		return app.Run(app.New(env.client, env.store, env.dashboard, env.logger))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env bundles the wired-up dependencies the commands share.
type env struct {
	cfg       *config.Config
	client    *api.Client
	store     *auth.Store
	dashboard *dashboard.Service
	logger    *log.Logger
}

// buildEnv loads configuration and wires the API client, credential
// store and services. The --api-url flag wins over both config file and
// environment.
func buildEnv() (*env, error) {
	dir, err := config.Home()
	if err != nil {
		return nil, err
	}

	cfg, err := config.ReadConfig(dir)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(cfg)
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}

	keys, err := auth.NewKeychain(dir)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	logger, err := log.NewLogger(dir)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}

	client := api.NewClient(cfg.APIBaseURL, keys)
	client.SetHTTPClient(&http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second})

	store := auth.NewStore(client, keys, logger)

	return &env{
		cfg:       cfg,
		client:    client,
		store:     store,
		dashboard: dashboard.NewService(client, cfg.Optimal),
		logger:    logger,
	}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Base URL of the calibration service")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
