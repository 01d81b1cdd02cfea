package stats

// BuildingEnergy scales a per-fixture wattage sample up to a building-level
// baseline: connected load, annual consumption, and the one-CV uncertainty
// band around it.
type BuildingEnergy struct {
	Fixtures     int
	HoursPerYear float64

	TotalKW        float64
	AnnualKWh      float64
	UncertaintyKWh float64
}

// EstimateBuildingEnergy projects the sample mean (in watts) across the
// building's fixture count and operating hours.
func EstimateBuildingEnergy(meanWatts float64, fixtures int, hoursPerYear, cv float64) BuildingEnergy {
	e := BuildingEnergy{Fixtures: fixtures, HoursPerYear: hoursPerYear}
	e.TotalKW = meanWatts * float64(fixtures) / 1000
	e.AnnualKWh = e.TotalKW * hoursPerYear
	e.UncertaintyKWh = e.AnnualKWh * cv
	return e
}

// Low is the bottom of the uncertainty range.
func (e BuildingEnergy) Low() float64 { return e.AnnualKWh - e.UncertaintyKWh }

// High is the top of the uncertainty range.
func (e BuildingEnergy) High() float64 { return e.AnnualKWh + e.UncertaintyKWh }
