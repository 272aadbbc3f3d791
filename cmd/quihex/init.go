package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/TheMichaelB/quihex/internal/config"
	"github.com/TheMichaelB/quihex/internal/hexo"
	"github.com/TheMichaelB/quihex/internal/models"
	"github.com/TheMichaelB/quihex/internal/quiver"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the config file interactively",
	Long: `Init asks for the Hexo blog root, the Quiver library and the notebook
to publish, validates each answer and saves them to the config file.
Current values are offered as defaults.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{configOptional: "true"},
	RunE:        runInit,
}

var errAborted = errors.New("init aborted")

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	updated := *cfg
	if len(updated.TagsForNotSync) == 0 {
		updated.TagsForNotSync = append([]string(nil), config.DefaultTagsForNotSync...)
	}

	blogRoot, err := ask(line, "Hexo blog root: ", cfg.Hexo, func(v string) error {
		return hexo.ValidateRoot(config.ExpandHome(v))
	})
	if err != nil {
		return err
	}
	updated.Hexo = config.ExpandHome(blogRoot)

	libraryRoot, err := ask(line, "Quiver library: ", cfg.Quiver, func(v string) error {
		return quiver.NewLibrary(config.ExpandHome(v), logger).Validate()
	})
	if err != nil {
		return err
	}
	updated.Quiver = config.ExpandHome(libraryRoot)

	notebooks, err := quiver.NewLibrary(updated.Quiver, logger).Notebooks()
	if err != nil {
		return fmt.Errorf("list notebooks: %w", err)
	}
	if len(notebooks) == 0 {
		return models.ErrNoNotebooks
	}

	current := 1
	for i, nb := range notebooks {
		if nb.UUID == cfg.SyncNotebook.UUID {
			current = i + 1
		}
		fmt.Printf("  %d) %s\n", i+1, nb.Name)
	}

	var picked int
	_, err = ask(line, "Notebook to sync: ", strconv.Itoa(current), choiceValidator(len(notebooks), &picked))
	if err != nil {
		return err
	}
	updated.SyncNotebook = notebooks[picked]

	if err := updated.Validate(); err != nil {
		return err
	}

	path := config.NewLoader(configPath).Path()
	if err := config.Save(path, &updated); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"success": true,
			"path":    path,
			"config":  updated,
		})
		return nil
	}

	printSuccess("Saved %s (syncing %q)", path, updated.SyncNotebook.Name)
	return nil
}

// choiceValidator accepts a 1-based menu number up to count and stores the
// matching 0-based index in picked.
func choiceValidator(count int, picked *int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > count {
			return fmt.Errorf("enter a number from 1 to %d", count)
		}
		*picked = n - 1
		return nil
	}
}

// ask prompts until validate accepts the answer. def is pre-filled.
func ask(line *liner.State, prompt, def string, validate func(string) error) (string, error) {
	for {
		answer, err := line.PromptWithSuggestion(prompt, def, -1)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return "", errAborted
			}
			return "", err
		}

		answer = strings.TrimSpace(answer)
		if answer == "" {
			printWarning("A value is required")
			continue
		}
		if err := validate(answer); err != nil {
			printError("%v", err)
			def = answer
			continue
		}

		line.AppendHistory(answer)
		return answer, nil
	}
}
