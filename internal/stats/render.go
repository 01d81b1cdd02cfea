package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// WorksheetText renders the fixture wattage worksheet: the per-fixture
// deviation table, the summary block, and (when an estimate is given) the
// building-level scale-up.
func WorksheetText(values []float64, s *Summary, e *BuildingEnergy) string {
	var b strings.Builder
	bar := strings.Repeat("=", 60)

	b.WriteString(bar + "\n")
	b.WriteString("DESCRIPTIVE STATISTICS — FIXTURE WATTAGE SAMPLE\n")
	b.WriteString(bar + "\n\n")

	b.WriteString(fmt.Sprintf("%-10s %-10s %-12s %-12s\n", "Fixture", "Watts", "Deviation", "Dev^2"))
	b.WriteString(strings.Repeat("-", 44) + "\n")
	devs, sqDevs := s.Deviations(values)
	for i, w := range values {
		b.WriteString(fmt.Sprintf("%-10d %-10.1f %-12.2f %-12.2f\n", i+1, w, devs[i], sqDevs[i]))
	}
	b.WriteString(strings.Repeat("-", 44) + "\n")
	b.WriteString(fmt.Sprintf("%-10s %-10.1f %-12s %-12.2f\n", "Sum", Sum(values), "", Sum(sqDevs)))

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Sample size (n):      %d\n", s.N))
	b.WriteString(fmt.Sprintf("  Mean:                 %.2f W\n", s.Mean))
	b.WriteString(fmt.Sprintf("  Sample Variance:      %.2f W^2\n", s.Variance))
	b.WriteString(fmt.Sprintf("  Sample Std Dev:       %.2f W\n", s.StdDev))
	b.WriteString(fmt.Sprintf("  CV:                   %.4f (%.2f%%)\n", s.CV, s.CV*100))

	if e == nil {
		return b.String()
	}

	b.WriteString("\n" + bar + "\n")
	b.WriteString("BUILDING-LEVEL ENERGY ESTIMATE\n")
	b.WriteString(bar + "\n\n")
	b.WriteString(fmt.Sprintf("  Total fixtures:       %s\n", groupThousands(strconv.Itoa(e.Fixtures))))
	b.WriteString(fmt.Sprintf("  Hours/year:           %s\n", commaf(e.HoursPerYear)))
	b.WriteString(fmt.Sprintf("  Mean wattage:         %.2f W\n", s.Mean))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Total connected load: %.1f kW\n", e.TotalKW))
	b.WriteString(fmt.Sprintf("  Annual energy:        %s kWh\n", commaf(e.AnnualKWh)))
	b.WriteString(fmt.Sprintf("  Uncertainty (1 CV):   +/- %s kWh (%.1f%%)\n", commaf(e.UncertaintyKWh), s.CV*100))
	b.WriteString(fmt.Sprintf("  Range:                %s – %s kWh\n", commaf(e.Low()), commaf(e.High())))
	return b.String()
}

// commaf formats a value with no decimals and thousands separators.
func commaf(v float64) string {
	return groupThousands(fmt.Sprintf("%.0f", v))
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(s[i])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
