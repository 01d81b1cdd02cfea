package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenmetrics/mvstat/internal/dataset"
	"github.com/greenmetrics/mvstat/internal/regress"
)

var (
	regX          []float64
	regY          []float64
	regFile       string
	regXCol       string
	regYCol       string
	regDelimiter  string
	regSheetName  string
	regSheetIndex int
	regCheck      bool
	regOutput     string
)

var regressCmd = &cobra.Command{
	Use:   "regress",
	Short: "Fit a least-squares line y = b0 + b1*x via matrix algebra",
	Long:  `Fits an ordinary least squares regression by building the normal equations X'X and X'Y, inverting X'X in closed form, and showing every intermediate number. Pass paired --x/--y values directly, or read two columns from a CSV/TSV/XLSX file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		obs, err := regressObservations()
		if err != nil {
			return err
		}
		fit, err := regress.Fit(obs)
		if err != nil {
			return err
		}
		out := fit.Text()
		if regCheck {
			out += crossCheckText(fit)
		}
		return writeOrPrint(out, regOutput, "report")
	},
}

func init() {
	rootCmd.AddCommand(regressCmd)
	regressCmd.Flags().Float64SliceVar(&regX, "x", []float64{0.5, 4, 6, 8, 10}, "independent variable values")
	regressCmd.Flags().Float64SliceVar(&regY, "y", []float64{6, 7, 7, 8, 7}, "dependent variable values")
	regressCmd.Flags().StringVar(&regFile, "file", "", "CSV/TSV/XLSX file to read (x,y) pairs from")
	regressCmd.Flags().StringVar(&regXCol, "x-col", "", "column holding x values (required with --file)")
	regressCmd.Flags().StringVar(&regYCol, "y-col", "", "column holding y values (required with --file)")
	regressCmd.Flags().StringVar(&regDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	regressCmd.Flags().StringVar(&regSheetName, "sheet-name", "", "XLSX: sheet name to read")
	regressCmd.Flags().IntVar(&regSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	regressCmd.Flags().BoolVar(&regCheck, "check", true, "cross-check coefficients against gonum's closed-form fit")
	regressCmd.Flags().StringVarP(&regOutput, "output", "o", "", "optional path to write the report")
}

// regressObservations builds the (x,y) pairs from either the flag slices
// or two named columns of a data file.
func regressObservations() ([]regress.Observation, error) {
	if regFile == "" {
		if len(regX) != len(regY) {
			return nil, fmt.Errorf("--x and --y must have the same length (got %d and %d)", len(regX), len(regY))
		}
		obs := make([]regress.Observation, len(regX))
		for i := range regX {
			obs[i] = regress.Observation{X: regX[i], Y: regY[i]}
		}
		return obs, nil
	}
	if regXCol == "" || regYCol == "" {
		return nil, fmt.Errorf("--x-col and --y-col are required with --file")
	}
	ropt := dataset.DefaultReadOptions()
	if cfg != nil && cfg.MaxRows > 0 {
		ropt.MaxRows = cfg.MaxRows
	}
	d, err := parseDelimiter(regDelimiter)
	if err != nil {
		return nil, err
	}
	if d != 0 {
		ropt.Delimiter = d
	}
	ropt.SheetName = regSheetName
	ropt.SheetIndex = regSheetIndex
	t, err := dataset.Read(regFile, ropt)
	if err != nil {
		return nil, err
	}
	return t.XYColumns(regXCol, regYCol)
}

// crossCheckText mirrors the report's trailing reference check line.
func crossCheckText(fit *regress.FitResult) string {
	ref0, ref1, ok := regress.CrossCheck(fit)
	verdict := "MATCH"
	if !ok {
		verdict = "MISMATCH"
	}
	return fmt.Sprintf("\n  gonum check: b0=%.4f, b1=%.4f  %s\n", ref0, ref1, verdict)
}
