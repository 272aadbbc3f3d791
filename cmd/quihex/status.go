package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/quihex/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sync status of every note",
	Long: `Status renders each note of the sync notebook and compares it with the
post on disk. Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	library := newLibrary()
	service := newService(library)

	paths, err := library.NotePaths(cfg.SyncNotebook.UUID)
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}

	statuses, err := service.GetAllStatuses(ctx, cfg, paths)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(statuses)
		return nil
	}

	if len(statuses) == 0 {
		printInfo("No notes in %s", cfg.SyncNotebook.Name)
		return nil
	}

	counts := make(map[models.Status]int)
	for _, st := range statuses {
		counts[st.Status]++
		fmt.Printf("%s  %s  %s\n", statusLabel(st.Status), st.Post.Title, filepath.Base(st.Post.FilePath))
	}

	fmt.Printf("\n%d new, %d update, %d stable, %d skip\n",
		counts[models.StatusNew], counts[models.StatusUpdate],
		counts[models.StatusStable], counts[models.StatusSkip])

	return nil
}
