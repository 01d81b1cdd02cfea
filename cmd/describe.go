package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenmetrics/mvstat/internal/dataset"
	"github.com/greenmetrics/mvstat/internal/stats"
)

var (
	descData     []float64
	descFile     string
	descCol      string
	descFixtures int
	descHours    float64
	descOutput   string
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Work the descriptive statistics of a fixture wattage sample",
	Long:  `Produces the full descriptive-statistics worksheet for a sample of fixture wattages: the deviation table, variance, standard deviation, and CV, then scales the sample mean up to a building-level annual energy estimate with its uncertainty band.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		values := descData
		if descFile != "" {
			if descCol == "" {
				return fmt.Errorf("--col is required with --file")
			}
			ropt := dataset.DefaultReadOptions()
			if cfg != nil && cfg.MaxRows > 0 {
				ropt.MaxRows = cfg.MaxRows
			}
			t, err := dataset.Read(descFile, ropt)
			if err != nil {
				return err
			}
			series, err := t.Column(descCol)
			if err != nil {
				return err
			}
			values = series.Values
		}
		s, err := stats.Describe(values)
		if err != nil {
			return err
		}
		energy := stats.EstimateBuildingEnergy(s.Mean, descFixtures, descHours, s.CV)
		return writeOrPrint(stats.WorksheetText(values, s, &energy), descOutput, "worksheet")
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Float64SliceVar(&descData, "data", []float64{120, 100, 130, 122, 120, 78, 100, 100, 130, 80, 100, 120}, "sampled fixture wattages")
	describeCmd.Flags().StringVar(&descFile, "file", "", "CSV/TSV/XLSX file to read the sample from")
	describeCmd.Flags().StringVar(&descCol, "col", "", "column to read with --file")
	describeCmd.Flags().IntVar(&descFixtures, "fixtures", 1000, "fixture count for the building-level estimate")
	describeCmd.Flags().Float64Var(&descHours, "hours", 4000, "operating hours per year")
	describeCmd.Flags().StringVarP(&descOutput, "output", "o", "", "optional path to write the worksheet")
}
