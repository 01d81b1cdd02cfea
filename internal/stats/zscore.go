package stats

import (
	"math"

	morestats "github.com/aclements/go-moremath/stats"
)

// zTable carries the two-sided z-scores quoted in M&V guidance for the
// usual confidence levels.
var zTable = map[int]float64{
	80: 1.282,
	85: 1.440,
	90: 1.645,
	95: 1.960,
	99: 2.576,
}

// ZScore returns the two-sided z-score for a confidence level given in
// percent. Tabled levels use the conventional rounded values; anything else
// goes through the inverse normal CDF.
func ZScore(confidencePct float64) float64 {
	if confidencePct == math.Trunc(confidencePct) {
		if z, ok := zTable[int(confidencePct)]; ok {
			return z
		}
	}
	return morestats.StdNormal.InvCDF(0.5 + confidencePct/200)
}
