package cmd

import (
	"github.com/spf13/cobra"

	"github.com/greenmetrics/mvstat/internal/sampling"
)

var (
	szCV         float64
	szPrecision  float64
	szConfidence float64
	szPopulation int
	szOutput     string
)

var sampleSizeCmd = &cobra.Command{
	Use:   "samplesize",
	Short: "Size a metering sample for a precision target",
	Long:  `Works the ASHRAE-style sample size formula n0 = (Z * CV / P)^2 with the finite population correction, then compares the requirement across the standard confidence and precision scenarios.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		precision := szPrecision
		confidence := szConfidence
		population := szPopulation
		if cfg != nil {
			if !cmd.Flags().Changed("precision") && cfg.DefaultPrecision > 0 {
				precision = cfg.DefaultPrecision
			}
			if !cmd.Flags().Changed("confidence") && cfg.DefaultConfidence > 0 {
				confidence = cfg.DefaultConfidence
			}
			if !cmd.Flags().Changed("population") && cfg.DefaultPopulation > 0 {
				population = cfg.DefaultPopulation
			}
		}
		out := sampling.CalcText(szCV, precision, confidence, population)
		return writeOrPrint(out, szOutput, "calculation")
	},
}

func init() {
	rootCmd.AddCommand(sampleSizeCmd)
	sampleSizeCmd.Flags().Float64Var(&szCV, "cv", 0.25, "coefficient of variation of the quantity being metered")
	sampleSizeCmd.Flags().Float64Var(&szPrecision, "precision", 0.10, "desired relative precision (0.10 = 10%)")
	sampleSizeCmd.Flags().Float64Var(&szConfidence, "confidence", 90, "confidence level in percent (80, 90, or 95)")
	sampleSizeCmd.Flags().IntVar(&szPopulation, "population", 0, "population size for the finite correction (0 = infinite)")
	sampleSizeCmd.Flags().StringVarP(&szOutput, "output", "o", "", "optional path to write the calculation")
}
