package main

import (
	"fmt"
	"os"

	"github.com/adtyap26/enchant-planner/internal/catalog"
	"github.com/adtyap26/enchant-planner/internal/config"
	"github.com/adtyap26/enchant-planner/internal/logging"
	"github.com/adtyap26/enchant-planner/internal/planner"
	"github.com/adtyap26/enchant-planner/internal/submit"
	"github.com/adtyap26/enchant-planner/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command line on top of the environment
// configuration; flags win over env. launch receives the validated config.
func newRootCmd(cfg config.Config, launch func(config.Config) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enchant-planner",
		Short: "Plan anvil enchantments in the terminal",
		Long: `Pick an item, mark the enchantments it already has and the ones it
should end up with, then send the plan to the calculation server.

Every flag can also be set through the environment:
  ENCHANT_PLANNER_URL, ENCHANT_PLANNER_CATALOG, ENCHANT_PLANNER_LOG,
  ENCHANT_PLANNER_LOG_LEVEL, ENCHANT_PLANNER_EXPORT_DIR`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return launch(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.ServerURL, "url", cfg.ServerURL, "calculation endpoint the plan is posted to")
	flags.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "enchantment catalog YAML (default: built in)")
	flags.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file, empty to disable logging")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "directory for exported plans")
	return cmd
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func run(cfg config.Config) error {
	log, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.CatalogPath).Msg("catalog rejected")
		return fmt.Errorf("load catalog: %w", err)
	}

	client, err := submit.New(cfg.ServerURL, submit.WithLogger(logging.Component(log, "submit")))
	if err != nil {
		return err
	}

	log.Info().
		Str("endpoint", client.Endpoint()).
		Int("enchantments", len(cat.All())).
		Int("items", len(cat.Items())).
		Msg("planner starting")

	model := tui.NewModel(planner.New(cat), client, logging.Component(log, "tui"), cfg.ExportDir)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "enchant-planner: %v\n", err)
		os.Exit(1)
	}
	if err := newRootCmd(cfg, run).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "enchant-planner: %v\n", err)
		os.Exit(1)
	}
}
