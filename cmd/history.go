package cmd

import (
	"context"

	internalApp "github.com/haierkeys/fast-ledger-sync-service/internal/app"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [-n limit]",
	Short: "List backup and restore attempts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(context.Background(), func(a *internalApp.App) error {
			list, err := a.BackupService.History(cmd.Context())
			if err != nil {
				return err
			}
			if historyLimit > 0 && len(list) > historyLimit {
				list = list[:historyLimit]
			}
			return printJSON(list)
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to print, 0 prints all")
}
