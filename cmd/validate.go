package cmd

import (
	"context"

	internalApp "github.com/haierkeys/fast-ledger-sync-service/internal/app"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [-c config_file] [-d working_dir]",
	Short: "Check local data for duplicate ids and missing required fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(context.Background(), func(a *internalApp.App) error {
			report, err := a.BackupService.Validate(cmd.Context())
			if err != nil {
				return err
			}
			if err := printJSON(report); err != nil {
				return err
			}
			if !report.OK {
				return errors.Errorf("%d validation issue(s)", len(report.Issues))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
