package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/greenmetrics/mvstat/internal/config"
)

var (
	// Global flags (wired later to config/viper)
	cfgFile string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "mvstat",
	Short: "mvstat: regression, sampling, and planning math for M&V work",
	Long:  `mvstat is a CLI toolkit for the statistics behind energy measurement and verification: least-squares baseline fits, descriptive worksheets for fixture samples, metering sample sizing, first-look dataset summaries, and M&V plan documents.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.mvstat/config.yaml)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// writeOrPrint sends a rendered report to stdout, or to a file when the
// command's -o flag named one.
func writeOrPrint(content, path, what string) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", what, err)
	}
	fmt.Printf("✓ Wrote %s to %s\n", what, path)
	return nil
}
