package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/quihex/internal/services/sync"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync whenever the notebook changes",
	Long: `Watch syncs once, then re-syncs new and updated posts every time a
file in the sync notebook changes. Stop it with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var watchDebounce time.Duration

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond,
		"Quiet period before a change triggers a sync")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service := newService(newLibrary())

	onReport := func(report *sync.Report) {
		if jsonOutput {
			printJSON(report)
			return
		}
		if len(report.Written) > 0 {
			printSuccess("Synced %d post(s) (%s)", len(report.Written), statusCounts(report))
		}
	}

	report, err := service.SyncNotebook(ctx, cfg, sync.SyncOptions{})
	if err != nil {
		return err
	}
	onReport(report)

	if !jsonOutput {
		printInfo("Watching %s for changes...", cfg.SyncNotebook.Name)
	}

	err = service.Watch(ctx, cfg, sync.WatchOptions{
		Debounce: watchDebounce,
		OnReport: onReport,
	})

	if !jsonOutput {
		printWarning("Stopped watching")
	}
	return err
}
