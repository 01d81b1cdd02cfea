package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// resetFlag clears a flag's value and Changed state so runs don't leak
// into each other.
func resetFlag(c *cobra.Command, name, def string) {
	if fl := c.Flags().Lookup(name); fl != nil {
		_ = fl.Value.Set(def)
		fl.Changed = false
	}
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	// Reset sticky flags that may persist Changed state across invocations
	resetFlag(regressCmd, "file", "")
	resetFlag(regressCmd, "output", "")
	resetFlag(describeCmd, "file", "")
	resetFlag(describeCmd, "col", "")
	resetFlag(describeCmd, "output", "")
	resetFlag(planInitCmd, "greenfield", "false")
	resetFlag(planInitCmd, "desc", "")
	resetFlag(planExportCmd, "output", "")
	resetFlag(planExportCmd, "json", "")
	// Reset bound variables
	regFile = ""
	regOutput = ""
	descFile = ""
	descCol = ""
	descOutput = ""
	planGreenfield = false
	planDescription = ""
	planOutput = ""
	planJSONPath = ""
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func tempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
	os.Setenv("HOME", home)
	return home
}

func TestCLI_RegressWorksheetDefaults(t *testing.T) {
	home := tempHome(t)

	out := filepath.Join(home, "regress.txt")
	runCmd(t, "regress", "-o", out)

	report := readOutput(t, out)
	for _, want := range []string{
		"OLS REGRESSION VIA MATRIX ALGEBRA",
		"b0 (intercept)",
		"gonum check",
		"MATCH",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(report, "MISMATCH") {
		t.Errorf("reference check disagreed:\n%s", report)
	}
}

func TestCLI_RegressFromCSV(t *testing.T) {
	home := tempHome(t)

	csvPath := filepath.Join(home, "pairs.csv")
	csv := "Temp,Usage\n1,2\n2,4\n3,5\n4,8\n5,9\n"
	if err := os.WriteFile(csvPath, []byte(csv), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	out := filepath.Join(home, "fit.txt")
	runCmd(t, "regress", "--file", csvPath, "--x-col", "Temp", "--y-col", "Usage", "-o", out)

	report := readOutput(t, out)
	if !strings.Contains(report, "SOLUTION: beta = (X'X)^-1 * X'Y") {
		t.Errorf("report missing solution section:\n%s", report)
	}
}

func TestCLI_DescribeWorksheet(t *testing.T) {
	home := tempHome(t)

	out := filepath.Join(home, "worksheet.txt")
	runCmd(t, "describe", "-o", out)

	report := readOutput(t, out)
	for _, want := range []string{
		"DESCRIPTIVE STATISTICS — FIXTURE WATTAGE SAMPLE",
		"BUILDING-LEVEL ENERGY ESTIMATE",
		"Total fixtures:       1,000",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("worksheet missing %q", want)
		}
	}
}

func TestCLI_SampleSizeCalc(t *testing.T) {
	home := tempHome(t)

	out := filepath.Join(home, "samplesize.txt")
	runCmd(t, "samplesize", "--cv", "0.25", "--population", "1000", "-o", out)

	report := readOutput(t, out)
	for _, want := range []string{
		"Required sample size: 17",
		"SCENARIO COMPARISON",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("calculation missing %q", want)
		}
	}
}

func TestCLI_SampleWalkthrough(t *testing.T) {
	home := tempHome(t)

	out := filepath.Join(home, "walkthrough.txt")
	runCmd(t, "sample", "--pop-size", "200", "--sample-size", "20", "-o", out)

	report := readOutput(t, out)
	for _, want := range []string{
		"STEP 1: GENERATE POPULATION",
		"STEP 2: DRAW RANDOM SAMPLE (n=20)",
		"STEP 3: DESCRIPTIVE STATISTICS (STEP BY STEP)",
		"STEP 4: SAMPLE SIZE CALCULATOR",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("walkthrough missing %q", want)
		}
	}
}

func TestCLI_PlanLifecycle(t *testing.T) {
	home := tempHome(t)

	runCmd(t, "plan", "init", "capstone", "--greenfield")
	runCmd(t, "plan", "init", "annex", "-d", "RTU replacement with economizers")
	runCmd(t, "plan", "list")
	runCmd(t, "plan", "show", "capstone")

	reportPath := filepath.Join(home, "plan.txt")
	jsonPath := filepath.Join(home, "plan.json")
	runCmd(t, "plan", "export", "capstone", "-o", reportPath, "--json", jsonPath)

	report := readOutput(t, reportPath)
	if !strings.Contains(report, "M&V PLAN — Greenfield Municipal Center") {
		t.Errorf("exported report missing title:\n%s", report)
	}
	if !strings.Contains(readOutput(t, jsonPath), "Greenfield Municipal Center") {
		t.Errorf("exported JSON missing site name")
	}

	annexJSON := filepath.Join(home, "annex.json")
	runCmd(t, "plan", "export", "annex", "--json", annexJSON)
	if !strings.Contains(readOutput(t, annexJSON), "RTU replacement with economizers") {
		t.Errorf("annex JSON missing the description passed to init")
	}

	// Re-initializing the same plan must be refused.
	rootCmd.SetArgs([]string{"plan", "init", "capstone"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected error re-initializing existing plan, got nil")
	}
}

func TestCLI_AnalyzeCSV(t *testing.T) {
	home := tempHome(t)

	csvPath := filepath.Join(home, "billing.csv")
	csv := "Month,OAT (°F),Usage (kWh)\n" +
		"Jan-2024,32,1200\nFeb-2024,35,1150\nMar-2024,45,1000\n" +
		"Apr-2024,55,900\nMay-2024,65,850\nJun-2024,75,950\n"
	if err := os.WriteFile(csvPath, []byte(csv), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	out := filepath.Join(home, "summary.txt")
	runCmd(t, "analyze", csvPath, "-o", out)

	report := readOutput(t, out)
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"[SCHEMA]",
		"OAT",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := tempHome(t)
	defer func() { cfg = nil }()

	runCmd(t, "config", "set", "default_confidence", "95")
	if _, err := os.Stat(filepath.Join(home, ".mvstat", "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	runCmd(t, "config", "show")

	// Unknown keys are rejected.
	rootCmd.SetArgs([]string{"config", "set", "bogus_key", "1"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown config key, got nil")
	}
}
