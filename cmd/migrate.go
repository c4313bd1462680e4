package cmd

import (
	"context"

	internalApp "github.com/haierkeys/fast-ledger-sync-service/internal/app"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the local database tables",
	Long: `Create or update the local database tables.

It is safe to run this command multiple times. Use it when database.auto-migrate is disabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(context.Background(), func(a *internalApp.App) error {
			return a.Dao.Migrate()
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
