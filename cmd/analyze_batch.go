package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greenmetrics/mvstat/internal/dataset"
)

var (
	abOutDir     string
	abDelimiter  string
	abSampleRows int
	abMaxRows    int
	abCorr       bool
	abDecimal    string
	abThousands  string
	abOutliers   bool
	abOutlierThr float64
	abSheetName  string
	abSheetIndex int
	abRawUnits   bool
	abQuiet      bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple CSV/TSV/XLSX files with progress",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path if exists
				if _, err := os.Stat(arg); err == nil {
					matches = []string{arg}
				}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		ropt := dataset.DefaultReadOptions()
		ropt.MaxRows = abMaxRows
		if cfg != nil && !cmd.Flags().Changed("max-rows") && cfg.MaxRows > 0 {
			ropt.MaxRows = cfg.MaxRows
		}
		d, err := parseDelimiter(abDelimiter)
		if err != nil {
			return err
		}
		if d != 0 {
			ropt.Delimiter = d
		}
		if ropt.DecimalSeparator, err = parseDecimal(abDecimal); err != nil {
			return err
		}
		if ropt.ThousandsSeparator, err = parseThousands(abThousands); err != nil {
			return err
		}
		ropt.SheetName = abSheetName
		ropt.SheetIndex = abSheetIndex
		ropt.NormalizeUnits = !abRawUnits

		sopt := dataset.DefaultSummarizeOptions()
		sopt.SampleRows = abSampleRows
		if cfg != nil && !cmd.Flags().Changed("sample-rows") && cfg.SampleRows > 0 {
			sopt.SampleRows = cfg.SampleRows
		}
		sopt.Correlations = abCorr
		if cmd.Flags().Changed("outliers") {
			sopt.Outliers = abOutliers
		}
		if abOutlierThr > 0 {
			sopt.OutlierThreshold = abOutlierThr
		}

		if abOutDir != "" {
			if err := os.MkdirAll(abOutDir, 0o755); err != nil {
				return err
			}
		}

		total := len(files)
		for i, path := range files {
			if !abQuiet {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			t, err := dataset.Read(path, ropt)
			if err != nil {
				return err
			}
			text := t.Summarize(sopt).Text()

			if abOutDir == "" {
				if !abQuiet {
					fmt.Println(text)
				}
				continue
			}
			base := filepath.Base(path)
			safe := strings.TrimSuffix(base, filepath.Ext(base))
			outFile := filepath.Join(abOutDir, safe+".summary.txt")
			if _, statErr := os.Stat(outFile); statErr == nil {
				idx := 2
				for {
					cand := filepath.Join(abOutDir, fmt.Sprintf("%s__%d.summary.txt", safe, idx))
					if _, err := os.Stat(cand); os.IsNotExist(err) {
						if !abQuiet {
							fmt.Printf("⚠ Detected existing summary, writing to %s to avoid overwrite.\n", filepath.Base(cand))
						}
						outFile = cand
						break
					}
					idx++
				}
			}
			if err := os.WriteFile(outFile, []byte(text), 0o644); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			if !abQuiet {
				fmt.Printf("✓ Wrote summary to %s\n", outFile)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "directory to collect per-file summaries (prints to stdout if omitted)")
	analyzeBatchCmd.Flags().StringVar(&abDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	analyzeBatchCmd.Flags().StringVar(&abDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	analyzeBatchCmd.Flags().StringVar(&abThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	analyzeBatchCmd.Flags().IntVar(&abSampleRows, "sample-rows", 5, "number of sample rows to include (0 disables samples)")
	analyzeBatchCmd.Flags().IntVar(&abMaxRows, "max-rows", 100000, "maximum rows to process (0 = unlimited)")
	analyzeBatchCmd.Flags().BoolVar(&abCorr, "correlations", true, "compute Pearson correlations among numeric columns")
	analyzeBatchCmd.Flags().BoolVar(&abOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	analyzeBatchCmd.Flags().Float64Var(&abOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
	analyzeBatchCmd.Flags().BoolVar(&abRawUnits, "raw-units", false, "keep declared units as-is (skip F-to-C and Wh/MWh-to-kWh conversion)")
	analyzeBatchCmd.Flags().StringVar(&abSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeBatchCmd.Flags().IntVar(&abSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}
