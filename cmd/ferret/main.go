package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ferret/internal/app"
	"ferret/internal/config"
	"ferret/internal/log"
	"ferret/internal/ui"
)

func main() {
	var (
		cfgFile string
		debug   bool
	)

	rootCmd := &cobra.Command{
		Use:     "ferret [path]",
		Short:   "A keyboard and pipe driven terminal file explorer",
		Long:    "ferret lets you navigate, select and filter files with configurable modal key bindings,\nand scripts can drive the running session through its file-based message pipe.",
		Args:    cobra.MaximumNArgs(1),
		Version: config.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetDebug(debug)

			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}

			a, err := app.New(cfg, startDir(args))
			if err != nil {
				return err
			}
			log.Debugf("session directory %s", a.SessionPath())

			model := ui.New(a)
			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return err
			}

			outcome := model.Outcome()
			if outcome.Output != "" {
				fmt.Println(outcome.Output)
			}
			if outcome.ExitCode != 0 {
				os.Exit(outcome.ExitCode)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default ~/.config/ferret/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// startDir resolves the optional positional argument into the starting
// working directory; a file argument starts in its parent.
func startDir(args []string) string {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		path = filepath.Dir(path)
	}
	return path
}
