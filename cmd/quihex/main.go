package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TheMichaelB/quihex/internal/config"
	"github.com/TheMichaelB/quihex/internal/events"
	"github.com/TheMichaelB/quihex/internal/quiver"
	"github.com/TheMichaelB/quihex/internal/services/sync"
	"github.com/TheMichaelB/quihex/internal/storage"
)

// configOptional marks commands that run without a complete config file.
const configOptional = "config-optional"

var (
	cfg    *config.Config
	logger *events.Logger

	configPath string
	jsonOutput bool
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "quihex",
	Short: "Publish Quiver notes as Hexo blog posts",
	Long: `quihex renders the notes of one Quiver notebook into Hexo posts.

Each note is classified as new, update, stable or skip by comparing its
rendered post with the file in the blog's _posts directory. Notes tagged
with one of tagsForNotSync are never published.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "",
		"Config file (default ~/.quihexrc, or $QUIHEX_CONFIG)")
	flags.BoolVar(&jsonOutput, "json", false,
		"Output JSON")
	flags.StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "",
		"Log format: text, json")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader(configPath)

	var err error
	if cmd.Annotations[configOptional] != "" {
		cfg, _, err = loader.Fetch()
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	if jsonOutput || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err = events.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	events.SetDefault(logger)

	if cmd.Annotations[configOptional] == "" {
		return newLibrary().CheckNotebook(cfg.SyncNotebook.UUID)
	}

	return nil
}

func newLibrary() *quiver.Library {
	return quiver.NewLibrary(cfg.Quiver, logger)
}

func newService(library *quiver.Library) *sync.Service {
	return sync.NewService(library, storage.NewLocalStore(logger), &cfg.Sync, logger)
}
