package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	internalApp "github.com/haierkeys/fast-ledger-sync-service/internal/app"
	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/internal/service"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type syncFlags struct {
	skipValidation bool
	policy         string
	quiet          bool
}

func newSyncCommand(direction domain.Direction) *cobra.Command {
	sf := new(syncFlags)

	use, short := "backup", "Push every local domain to the remote ledger"
	if direction == domain.DirectionPull {
		use, short = "restore", "Pull every domain from the remote ledger into the local store"
	}

	c := &cobra.Command{
		Use:   use + " [-c config_file] [-d working_dir]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var opts []service.SyncOption
			switch sf.policy {
			case "", service.ValidationAdvisory, service.ValidationBlock:
			default:
				return errors.Errorf("invalid --validation-policy %q, want advisory or block", sf.policy)
			}
			if sf.policy != "" {
				opts = append(opts, service.WithValidationPolicy(sf.policy))
			}
			if sf.skipValidation {
				opts = append(opts, service.WithSkipValidation())
			}

			return withApp(ctx, func(a *internalApp.App) error {
				var onProgress domain.ProgressFunc
				var printer *progressPrinter
				if !sf.quiet {
					printer = newProgressPrinter(cmd.ErrOrStderr(), use)
					onProgress = printer.Update
				}

				run := a.BackupService.Backup
				if direction == domain.DirectionPull {
					run = a.BackupService.Restore
				}
				entry, err := run(ctx, onProgress, opts...)
				if printer != nil {
					printer.Done()
				}
				if entry.Status != "" {
					if perr := printJSON(entry); perr != nil && err == nil {
						err = perr
					}
				}
				return err
			})
		},
	}

	fs := c.Flags()
	fs.BoolVar(&sf.skipValidation, "skip-validation", false, "sync even when local data has validation issues")
	fs.StringVar(&sf.policy, "validation-policy", "", "override sync.validation-policy (advisory or block)")
	fs.BoolVarP(&sf.quiet, "quiet", "q", false, "do not print progress")
	return c
}

func init() {
	rootCmd.AddCommand(newSyncCommand(domain.DirectionPush))
	rootCmd.AddCommand(newSyncCommand(domain.DirectionPull))
}
