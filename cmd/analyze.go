package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greenmetrics/mvstat/internal/dataset"
)

var (
	anaOutputPath string
	anaDelimiter  string
	anaSampleRows int
	anaMaxRows    int
	anaCorr       bool
	anaSheetName  string
	anaSheetIndex int
	anaDecimal    string
	anaThousands  string
	anaOutliers   bool
	anaOutlierThr float64
	anaRawUnits   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a CSV/TSV/XLSX and produce a first-look summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ropt := dataset.DefaultReadOptions()
		ropt.MaxRows = anaMaxRows
		if cfg != nil && !cmd.Flags().Changed("max-rows") && cfg.MaxRows > 0 {
			ropt.MaxRows = cfg.MaxRows
		}
		d, err := parseDelimiter(anaDelimiter)
		if err != nil {
			return err
		}
		if d != 0 {
			ropt.Delimiter = d
		}
		// Locale separators
		if ropt.DecimalSeparator, err = parseDecimal(anaDecimal); err != nil {
			return err
		}
		if ropt.ThousandsSeparator, err = parseThousands(anaThousands); err != nil {
			return err
		}
		ropt.SheetName = anaSheetName
		ropt.SheetIndex = anaSheetIndex
		ropt.NormalizeUnits = !anaRawUnits

		sopt := dataset.DefaultSummarizeOptions()
		sopt.SampleRows = anaSampleRows
		if cfg != nil && !cmd.Flags().Changed("sample-rows") && cfg.SampleRows > 0 {
			sopt.SampleRows = cfg.SampleRows
		}
		sopt.Correlations = anaCorr
		if cmd.Flags().Changed("outliers") {
			sopt.Outliers = anaOutliers
		}
		if anaOutlierThr > 0 {
			sopt.OutlierThreshold = anaOutlierThr
		}

		t, err := dataset.Read(path, ropt)
		if err != nil {
			return err
		}
		rep := t.Summarize(sopt)
		return writeOrPrint(rep.Text(), anaOutputPath, "analysis")
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the summary")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	analyzeCmd.Flags().StringVar(&anaDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	analyzeCmd.Flags().StringVar(&anaThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of sample rows to include")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 100000, "maximum rows to process (0 = unlimited)")
	analyzeCmd.Flags().BoolVar(&anaCorr, "correlations", true, "compute Pearson correlations among numeric columns")
	analyzeCmd.Flags().BoolVar(&anaOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	analyzeCmd.Flags().Float64Var(&anaOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
	analyzeCmd.Flags().BoolVar(&anaRawUnits, "raw-units", false, "keep declared units as-is (skip F-to-C and Wh/MWh-to-kWh conversion)")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func parseDecimal(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ",", "comma":
		return ',', nil
	case ".", "dot":
		return '.', nil
	case "":
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", s)
	}
}

func parseThousands(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ",":
		return ',', nil
	case ".":
		return '.', nil
	case "space", " ":
		return ' ', nil
	case "":
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", s)
	}
}
