package main

import (
	"context"
	"fmt"
	"os"

	"go-hospital-management/cmd/bootstrap"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCommand()

	root := &cobra.Command{
		Use:          "hospital",
		Short:        "Hospital appointment and medical records management.",
		Long:         "Web application for booking hospital appointments and keeping medical records.",
		SilenceUsage: true,
		// Running the binary without a subcommand starts the server.
		RunE: serve.RunE,
	}

	root.AddCommand(serve)
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newSeedCommand())

	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Initialize application with all dependencies
			app, err := bootstrap.New()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			// Run the application
			app.Run()
			return nil
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.Load()
			if err != nil {
				return err
			}
			defer app.Close()

			return app.Migrate()
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate, then insert the demo admin, doctors, patients and visits",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.Load()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Migrate(); err != nil {
				return err
			}
			return app.Seed(context.Background())
		},
	}
}
