package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/greenmetrics/mvstat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set mvstat configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("default_confidence: %g\n", cfg.DefaultConfidence)
		fmt.Printf("default_precision: %g\n", cfg.DefaultPrecision)
		fmt.Printf("default_population: %d\n", cfg.DefaultPopulation)
		fmt.Printf("histogram_bins: %d\n", cfg.HistogramBins)
		fmt.Printf("sample_rows: %d\n", cfg.SampleRows)
		fmt.Printf("max_rows: %d\n", cfg.MaxRows)
		fmt.Printf("plans_dir: %s\n", cfg.PlansDir)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "default_confidence":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 || f >= 100 {
				return fmt.Errorf("invalid default_confidence: %v (percent, between 0 and 100)", val)
			}
			cfg.DefaultConfidence = f
		case "default_precision":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 || f >= 1 {
				return fmt.Errorf("invalid default_precision: %v (fraction, e.g. 0.10)", val)
			}
			cfg.DefaultPrecision = f
		case "default_population":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for default_population: %v", val)
			}
			cfg.DefaultPopulation = i
		case "histogram_bins":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for histogram_bins: %v", val)
			}
			cfg.HistogramBins = i
		case "sample_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for sample_rows: %v", val)
			}
			cfg.SampleRows = i
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		case "plans_dir":
			cfg.PlansDir = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
