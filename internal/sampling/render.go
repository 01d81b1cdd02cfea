package sampling

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/greenmetrics/mvstat/internal/stats"
)

// ExerciseOptions parameterizes the sampling walkthrough.
type ExerciseOptions struct {
	PopMean    float64
	PopStd     float64
	PopSize    int
	SampleSize int
	Seed       int64
	Precision  float64
	Confidence float64
	Bins       int
}

// ExerciseText renders the four-step walkthrough: synthesize a population,
// draw a sample and compare it to the population, work the descriptive
// statistics step by step, then size the survey using the sample's CV.
func ExerciseText(opt ExerciseOptions) (string, error) {
	var b strings.Builder
	bar := strings.Repeat("=", 60)

	pop := GeneratePopulation(opt.PopMean, opt.PopStd, opt.PopSize, opt.Seed)
	popStats, err := stats.Describe(pop)
	if err != nil {
		return "", fmt.Errorf("population: %w", err)
	}

	b.WriteString(bar + "\n")
	b.WriteString("STEP 1: GENERATE POPULATION\n")
	b.WriteString(bar + "\n")
	b.WriteString(fmt.Sprintf("  Target:   mean=%g, std_dev=%g, N=%d\n", opt.PopMean, opt.PopStd, opt.PopSize))
	b.WriteString(fmt.Sprintf("  Observed: mean=%.2f, std_dev=%.2f\n", popStats.Mean, popStats.StdDev))
	b.WriteString(fmt.Sprintf("  Range:    %.1f – %.1f\n", popStats.Min, popStats.Max))
	b.WriteString(fmt.Sprintf("  CV:       %.4f (%.2f%%)\n", popStats.CV, popStats.CV*100))
	b.WriteString("\n  Distribution:\n")
	b.WriteString(stats.NewHistogram(pop, opt.Bins).Text())

	sample := DrawSample(pop, opt.SampleSize, opt.Seed+1)
	sampStats, err := stats.Describe(sample)
	if err != nil {
		return "", fmt.Errorf("sample: %w", err)
	}

	b.WriteString("\n" + bar + "\n")
	b.WriteString(fmt.Sprintf("STEP 2: DRAW RANDOM SAMPLE (n=%d)\n", len(sample)))
	b.WriteString(bar + "\n")
	preview := make([]string, 0, 10)
	for i, v := range sample {
		if i == 10 {
			break
		}
		preview = append(preview, fmt.Sprintf("%.1f", v))
	}
	line := "  Sample: " + strings.Join(preview, ", ")
	if len(sample) > 10 {
		line += "..."
	}
	b.WriteString(line + "\n\n")
	b.WriteString(fmt.Sprintf("  %-20s %-15s %-15s %-10s\n", "Statistic", "Population", "Sample", "% Diff"))
	b.WriteString("  " + strings.Repeat("-", 60) + "\n")
	for _, row := range []struct {
		label    string
		pop, smp float64
	}{
		{"Mean", popStats.Mean, sampStats.Mean},
		{"Std Dev", popStats.StdDev, sampStats.StdDev},
		{"CV", popStats.CV, sampStats.CV},
	} {
		var pctDiff float64
		if row.pop != 0 {
			pctDiff = (row.smp - row.pop) / row.pop * 100
		}
		b.WriteString(fmt.Sprintf("  %-20s %-15.2f %-15.2f %-+10.1f%%\n", row.label, row.pop, row.smp, pctDiff))
	}

	b.WriteString("\n" + bar + "\n")
	b.WriteString("STEP 3: DESCRIPTIVE STATISTICS (STEP BY STEP)\n")
	b.WriteString(bar + "\n")
	devs, sqDevs := sampStats.Deviations(sample)
	b.WriteString(fmt.Sprintf("  %-4s %-10s %-12s %-12s\n", "#", "Watts", "Deviation", "Dev^2"))
	b.WriteString("  " + strings.Repeat("-", 38) + "\n")
	for i, w := range sample {
		b.WriteString(fmt.Sprintf("  %-4d %-10.1f %-12.2f %-12.2f\n", i+1, w, devs[i], sqDevs[i]))
	}
	b.WriteString("  " + strings.Repeat("-", 38) + "\n")
	b.WriteString(fmt.Sprintf("  %-4s %-10.1f %-12s %-12.2f\n", "Sum", stats.Sum(sample), "", stats.Sum(sqDevs)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Sample Variance = %.2f / (%d - 1) = %.2f\n", stats.Sum(sqDevs), sampStats.N, sampStats.Variance))
	b.WriteString(fmt.Sprintf("  Sample Std Dev  = sqrt(%.2f) = %.2f\n", sampStats.Variance, sampStats.StdDev))
	b.WriteString(fmt.Sprintf("  CV              = %.2f / %.2f = %.4f\n", sampStats.StdDev, sampStats.Mean, sampStats.CV))

	b.WriteString("\n" + bar + "\n")
	b.WriteString("STEP 4: SAMPLE SIZE CALCULATOR\n")
	b.WriteString(bar + "\n")
	b.WriteString(CalcText(sampStats.CV, opt.Precision, opt.Confidence, opt.PopSize))

	return b.String(), nil
}

// CalcText renders the sample-size formula trace and the scenario grid.
func CalcText(cv, precision, confidence float64, population int) string {
	var b strings.Builder
	r := Required(cv, precision, confidence, population)

	b.WriteString("\n  Formula: n0 = (Z * CV / P)^2\n")
	b.WriteString(fmt.Sprintf("  Z(%.0f%%) = %.3f,  CV = %.4f,  P = %.2f\n", confidence, r.Z, cv, precision))
	b.WriteString(fmt.Sprintf("  n0 = (%.3f * %.4f / %.2f)^2 = %.1f\n", r.Z, cv, precision, r.N0))
	if population > 0 {
		b.WriteString(fmt.Sprintf("\n  Finite population correction (N=%d):\n", population))
		b.WriteString(fmt.Sprintf("  n = (n0 * N) / (n0 + N) = (%.1f * %d) / (%.1f + %d) = %.1f\n",
			r.N0, population, r.N0, population, r.N))
	}
	b.WriteString(fmt.Sprintf("  Required sample size: %d\n", r.Samples()))

	popLabel := "inf"
	if population > 0 {
		popLabel = strconv.Itoa(population)
	}
	b.WriteString("\n  SCENARIO COMPARISON\n")
	b.WriteString(fmt.Sprintf("  %-12s %-12s %-10s %-10s\n", "Confidence", "Precision", "n0", "n (N="+popLabel+")"))
	b.WriteString("  " + strings.Repeat("-", 44) + "\n")
	for _, s := range Scenarios(cv, population) {
		b.WriteString(fmt.Sprintf("  %-12s %-12s %-10d %-10d\n",
			fmt.Sprintf("%.0f%%", s.ConfidencePct),
			fmt.Sprintf("+/-%.0f%%", s.Precision*100),
			int(math.Ceil(s.N0)),
			s.Samples()))
	}
	return b.String()
}
