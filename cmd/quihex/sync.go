package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/quihex/internal/models"
	"github.com/TheMichaelB/quihex/internal/services/sync"
)

var syncCmd = &cobra.Command{
	Use:   "sync [note-uuid...]",
	Short: "Write notes to the blog as posts",
	Long: `Sync writes the posts of the sync notebook into the blog.

By default only new and updated posts are written. Pass note UUIDs to
write exactly those notes, or --status to choose the statuses to write.
Notes tagged with one of tagsForNotSync are never written.`,
	Example: `  quihex sync
  quihex sync --dry-run
  quihex sync --status new
  quihex sync 6A5E2D0C-3C5B-4C8E-9F1A-7B2D3E4F5A6B`,
	RunE: runSync,
}

var (
	syncStatuses []string
	syncDryRun   bool
)

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringSliceVar(&syncStatuses, "status", nil,
		"Statuses to write: new, update, stable (default new,update)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false,
		"Show what would be written without writing")
}

func parseStatuses(values []string) ([]models.Status, error) {
	var statuses []models.Status
	for _, v := range values {
		st, ok := models.ParseStatus(v)
		if !ok || st == models.StatusSkip {
			return nil, fmt.Errorf("invalid status %q", v)
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

func runSync(cmd *cobra.Command, args []string) error {
	statuses, err := parseStatuses(syncStatuses)
	if err != nil {
		return err
	}

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			printWarning("\nSync interrupted, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	opts := sync.SyncOptions{
		Statuses: statuses,
		UUIDs:    args,
		DryRun:   syncDryRun,
	}

	service := newService(newLibrary())

	if jsonOutput {
		report, err := service.SyncNotebook(ctx, cfg, opts)
		result := map[string]interface{}{
			"success": err == nil,
			"report":  report,
		}
		if err != nil {
			result["error"] = err.Error()
		}
		printJSON(result)
		return err
	}

	opts.OnEvent = printEvent
	report, err := service.SyncNotebook(ctx, cfg, opts)
	if err != nil {
		return err
	}

	printSummary(report)
	return nil
}

func printEvent(event sync.Event) {
	switch event.Type {
	case sync.EventPostWritten:
		verb := "wrote"
		if syncDryRun {
			verb = "would write"
		}
		line := fmt.Sprintf("%s  %s %s", statusLabel(event.Status), verb, event.Post.FilePath)
		if event.Result != nil && event.Result.Assets > 0 {
			line += fmt.Sprintf(" (+%d assets)", event.Result.Assets)
		}
		fmt.Println(line)

	case sync.EventPostError:
		printError("%s  %s: %v", statusLabel(event.Status), event.Post.Title, event.Error)

	case sync.EventFailed:
		printError("Sync failed: %v", event.Error)
	}
}

func printSummary(report *sync.Report) {
	fmt.Printf("\nSync Summary:\n")
	fmt.Printf("   Notes: %d (%s)\n", len(report.Statuses), statusCounts(report))
	fmt.Printf("   Written: %d\n", len(report.Written))
	fmt.Printf("   Duration: %s\n", report.Duration.Round(time.Millisecond))

	switch {
	case report.DryRun:
		printInfo("Dry run, nothing written")
	case len(report.Written) == 0:
		printSuccess("Everything is up to date")
	default:
		printSuccess("Sync completed successfully!")
	}
}

func statusCounts(report *sync.Report) string {
	parts := make([]string, 0, 4)
	for _, st := range []models.Status{models.StatusNew, models.StatusUpdate, models.StatusStable, models.StatusSkip} {
		parts = append(parts, fmt.Sprintf("%d %s", report.Count(st), st))
	}
	return strings.Join(parts, ", ")
}
