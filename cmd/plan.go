package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/greenmetrics/mvstat/internal/mvplan"
	"github.com/greenmetrics/mvstat/internal/utils"
)

var (
	planGreenfield  bool
	planDescription string
	planOutput      string
	planJSONPath    string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create and render M&V plan documents",
}

var planInitCmd = &cobra.Command{
	Use:   "init <plan-name>",
	Short: "Initialize a new M&V plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		root, err := defaultPlansDir()
		if err != nil {
			return err
		}
		planDir := filepath.Join(root, name)
		// Refuse to overwrite an existing plan.
		if info, err := os.Stat(planDir); err == nil && info.IsDir() {
			planFile := filepath.Join(planDir, "plan.yaml")
			if _, err := os.Stat(planFile); err == nil {
				return fmt.Errorf("plan already exists at %s", planDir)
			}
			entries, err := os.ReadDir(planDir)
			if err != nil {
				return fmt.Errorf("inspect plan directory: %w", err)
			}
			if len(entries) > 0 {
				return fmt.Errorf("directory %s already exists and is not empty; refusing to initialize plan", planDir)
			}
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("stat plan directory: %w", err)
		}
		if err := utils.EnsureDir(planDir); err != nil {
			return err
		}
		p := mvplan.NewPlan(name, planDir)
		if planGreenfield {
			p = mvplan.GreenfieldPlan(name, planDir)
		}
		if planDescription != "" {
			p.Background.ECMDescription = planDescription
		}
		if err := p.Save(); err != nil {
			return err
		}
		fmt.Printf("✓ Plan initialized: %s\n", planDir)
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := defaultPlansDir()
		if err != nil {
			return err
		}
		plans, err := mvplan.List(root)
		if err != nil {
			return err
		}
		if len(plans) == 0 {
			fmt.Println("(no plans)")
			return nil
		}
		for _, p := range plans {
			if p.Background.SiteName != "" {
				fmt.Printf("- %s (%s)\n", p.Name, p.Background.SiteName)
			} else {
				fmt.Printf("- %s\n", p.Name)
			}
		}
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show [plan-name]",
	Short: "Render a plan to the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPlanArg(args)
		if err != nil {
			return err
		}
		out, err := p.RenderText(time.Now())
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var planExportCmd = &cobra.Command{
	Use:   "export [plan-name]",
	Short: "Write a plan report and/or JSON snapshot to files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if planOutput == "" && planJSONPath == "" {
			return fmt.Errorf("specify at least one of --output or --json")
		}
		p, err := loadPlanArg(args)
		if err != nil {
			return err
		}
		if planOutput != "" {
			out, err := p.RenderText(time.Now())
			if err != nil {
				return err
			}
			if err := os.WriteFile(planOutput, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Printf("✓ Wrote plan report to %s\n", planOutput)
		}
		if planJSONPath != "" {
			data, err := p.ExportJSON()
			if err != nil {
				return err
			}
			if err := os.WriteFile(planJSONPath, data, 0o644); err != nil {
				return fmt.Errorf("write JSON: %w", err)
			}
			fmt.Printf("✓ Wrote plan JSON to %s\n", planJSONPath)
		}
		return nil
	},
}

func defaultPlansDir() (string, error) {
	if cfg != nil && cfg.PlansDir != "" {
		dir := cfg.PlansDir
		if strings.HasPrefix(dir, "~") {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home dir: %w", err)
			}
			dir = strings.TrimPrefix(dir, "~")
			dir = strings.TrimPrefix(dir, string(os.PathSeparator))
			dir = strings.TrimPrefix(dir, "/")
			dir = filepath.Join(home, dir)
		}
		dir = filepath.Clean(dir)
		if err := utils.EnsureDir(dir); err != nil {
			return "", err
		}
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".mvstat", "plans")
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// loadPlanArg resolves the plan named on the command line, or falls back
// to the plan whose directory contains the working directory.
func loadPlanArg(args []string) (*mvplan.Plan, error) {
	if len(args) > 0 && args[0] != "" {
		root, err := defaultPlansDir()
		if err != nil {
			return nil, err
		}
		return mvplan.Load(filepath.Join(root, args[0]))
	}
	dir, err := utils.FindPlanRoot("")
	if err != nil {
		return nil, errors.New("no plan name given and no plan.yaml found above the current directory")
	}
	return mvplan.Load(dir)
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planInitCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planExportCmd)

	planInitCmd.Flags().BoolVar(&planGreenfield, "greenfield", false, "seed the plan with the Greenfield Municipal Center capstone data")
	planInitCmd.Flags().StringVarP(&planDescription, "desc", "d", "", "ECM project description")
	planExportCmd.Flags().StringVarP(&planOutput, "output", "o", "", "path to write the rendered plan report")
	planExportCmd.Flags().StringVar(&planJSONPath, "json", "", "path to write the plan as JSON")
}
