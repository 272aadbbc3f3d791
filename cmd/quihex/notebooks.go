package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/quihex/internal/config"
	"github.com/TheMichaelB/quihex/internal/models"
)

var lsNotebookCmd = &cobra.Command{
	Use:   "ls-notebook",
	Short: "List the notebooks of the Quiver library",
	Example: `  quihex ls-notebook
  quihex ls-notebook --library ~/Dropbox/Quiver.qvlibrary --json`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{configOptional: "true"},
	RunE:        runLsNotebook,
}

var lsLibrary string

func init() {
	rootCmd.AddCommand(lsNotebookCmd)

	lsNotebookCmd.Flags().StringVar(&lsLibrary, "library", "",
		"Quiver library path (defaults to the configured one)")
}

func runLsNotebook(cmd *cobra.Command, args []string) error {
	if lsLibrary != "" {
		cfg.Quiver = config.ExpandHome(lsLibrary)
	}
	if cfg.Quiver == "" {
		return errors.New("no Quiver library configured; run 'quihex init' or pass --library")
	}

	library := newLibrary()
	if err := library.Validate(); err != nil {
		return err
	}

	notebooks, err := library.Notebooks()
	if err != nil {
		return fmt.Errorf("list notebooks: %w", err)
	}
	if len(notebooks) == 0 {
		return models.ErrNoNotebooks
	}

	if jsonOutput {
		printJSON(notebooks)
		return nil
	}

	for _, nb := range notebooks {
		marker := " "
		if nb.UUID == cfg.SyncNotebook.UUID {
			marker = "*"
		}
		fmt.Printf("%s %s (%s)\n", marker, nb.Name, nb.UUID)
	}

	return nil
}
