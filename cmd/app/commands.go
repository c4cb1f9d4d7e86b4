package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seraphina/cmd/fx/cron_fx"
	"seraphina/internal/infra"
	"seraphina/internal/services"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled expiry sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				appModules(),
				fx.Provide(ProvideRouter),
				fx.Invoke(StartServer),
				cron_fx.Schedule,
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Expire ended plans and mature ended investments once, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			var sweeper *services.ExpirySweeper
			return runOnce(cmd.Context(), fx.Populate(&sweeper), func(ctx context.Context) error {
				res, err := sweeper.Run(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("plans expired: %d, purchases matured: %d\n", res.PlansExpired, res.PurchasesMatured)
				return nil
			})
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				db  *gorm.DB
				log *zap.Logger
			)
			return runOnce(cmd.Context(), fx.Populate(&db, &log), func(ctx context.Context) error {
				if err := infra.Migrate(db.WithContext(ctx)); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				log.Info("schema migrated")
				return nil
			})
		},
	}
}

func createAdminCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			var auth services.AuthServiceInterface
			return runOnce(cmd.Context(), fx.Populate(&auth), func(ctx context.Context) error {
				admin, err := auth.CreateAdmin(ctx, name, email, password)
				if err != nil {
					return err
				}
				fmt.Printf("admin %s created (%s)\n", admin.Email, admin.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "Admin", "Display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Login email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Login password")

	return cmd
}

// runOnce starts the graph, runs fn and stops the graph again so lifecycle
// hooks such as closing the database pool still fire.
func runOnce(parent context.Context, populate fx.Option, fn func(ctx context.Context) error) error {
	if parent == nil {
		parent = context.Background()
	}
	app := fx.New(appModules(), populate)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(parent, 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	runErr := fn(parent)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}
