package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/justyntemme/foldergrid/internal/app"
	"github.com/justyntemme/foldergrid/internal/config"
)

var (
	debugFlag      bool
	configPath     string
	generateConfig bool
)

var rootCmd = &cobra.Command{
	Use:   "foldergrid [folders...]",
	Short: "Show the files of several folders as one reorderable icon grid",
	Long: `foldergrid aggregates the regular files directly inside the given folders
into a single icon grid. Items can be reordered by dragging, and the
selection can be copied as a text/uri-list.

Without folder arguments the folders of the previous session are restored.`,
	SilenceUsage: true,
	RunE:         run,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable verbose logging and keep the console")
	rootCmd.Flags().StringVar(&configPath, "config", config.ConfigPath(), "Path to config.json")
	rootCmd.Flags().BoolVar(&generateConfig, "generate-config", false, "Write a default config (backing up the old one) and exit")
}

func run(cmd *cobra.Command, args []string) error {
	if generateConfig {
		backup, err := config.GenerateConfig(configPath)
		if err != nil {
			return err
		}
		if backup != "" {
			fmt.Printf("Existing config backed up to %s\n", backup)
		}
		fmt.Printf("Default config written to %s\n", configPath)
		return nil
	}

	manageConsole(debugFlag)

	cfg := config.NewManager()
	if err := cfg.LoadFrom(configPath); err != nil {
		log.Printf("Config: %v", err)
	}
	app.Main(cfg, debugFlag, args)
	return nil
}
