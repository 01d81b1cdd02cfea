package stats

import (
	"strings"
	"testing"
)

func TestWorksheetTextSections(t *testing.T) {
	s, err := Describe(wattages)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	e := EstimateBuildingEnergy(s.Mean, 1000, 4000, s.CV)
	text := WorksheetText(wattages, s, &e)

	for _, want := range []string{
		"DESCRIPTIVE STATISTICS — FIXTURE WATTAGE SAMPLE",
		"1          120.0",
		"Sample size (n):      12",
		"Mean:                 108.33 W",
		"Sample Variance:      321.33 W^2",
		"Sample Std Dev:       17.93 W",
		"CV:                   0.1655 (16.55%)",
		"BUILDING-LEVEL ENERGY ESTIMATE",
		"Total fixtures:       1,000",
		"Hours/year:           4,000",
		"Total connected load: 108.3 kW",
		"Annual energy:        433,333 kWh",
		"Range:",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("worksheet missing %q:\n%s", want, text)
		}
	}
}

func TestWorksheetTextWithoutEnergy(t *testing.T) {
	s, err := Describe(wattages)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	text := WorksheetText(wattages, s, nil)
	if strings.Contains(text, "BUILDING-LEVEL") {
		t.Fatalf("energy section should be omitted:\n%s", text)
	}
	if !strings.Contains(text, "CV:") {
		t.Fatalf("stats block missing:\n%s", text)
	}
}
