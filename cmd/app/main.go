package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"seraphina/cmd/fx/account_fx"
	"seraphina/cmd/fx/bank_fx"
	"seraphina/cmd/fx/config_fx"
	"seraphina/cmd/fx/controllers_fx"
	"seraphina/cmd/fx/cron_fx"
	"seraphina/cmd/fx/dashboard_fx"
	"seraphina/cmd/fx/db_fx"
	"seraphina/cmd/fx/investment_fx"
	"seraphina/cmd/fx/mail_fx"
	"seraphina/cmd/fx/memcache_fx"
	"seraphina/cmd/fx/notification_fx"
	"seraphina/cmd/fx/plan_fx"
	"seraphina/cmd/fx/wallet_fx"
)

var Version = "dev"

func main() {
	// amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	rootCmd := &cobra.Command{
		Use:          "seraphina",
		Short:        "Seraphina investment and subscription backend",
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(sweepCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// appModules is the full provider graph. fx builds only what a command's
// invokes and populates actually depend on.
func appModules() fx.Option {
	return fx.Options(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		notification_fx.Module,
		account_fx.Module,
		wallet_fx.Module,
		plan_fx.Module,
		investment_fx.Module,
		bank_fx.Module,
		dashboard_fx.Module,
		cron_fx.Module,
		controllers_fx.Module,
	)
}
