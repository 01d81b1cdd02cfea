package stats

import (
	"fmt"
	"strings"
)

// histogramBarWidth is the widest bar Text draws.
const histogramBarWidth = 40

// Histogram is an equal-width binning of a sample between its min and max.
type Histogram struct {
	Edges  []float64 // left edge of each bin
	Counts []int
	Width  float64
}

// NewHistogram bins values into the given number of equal-width bins. The
// top value lands in the last bin. A constant sample collapses into bin 0.
func NewHistogram(values []float64, bins int) *Histogram {
	if bins < 1 {
		bins = 1
	}
	h := &Histogram{
		Edges:  make([]float64, bins),
		Counts: make([]int, bins),
	}
	if len(values) == 0 {
		return h
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	h.Width = (hi - lo) / float64(bins)
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*h.Width
	}
	for _, v := range values {
		idx := 0
		if h.Width > 0 {
			idx = int((v - lo) / h.Width)
			if idx > bins-1 {
				idx = bins - 1
			}
		}
		h.Counts[idx]++
	}
	return h
}

// Text renders one line per bin: left edge, a # bar scaled to the fullest
// bin, and the count.
func (h *Histogram) Text() string {
	maxCount := 0
	for _, c := range h.Counts {
		if c > maxCount {
			maxCount = c
		}
	}
	var b strings.Builder
	for i, edge := range h.Edges {
		bar := ""
		if maxCount > 0 {
			bar = strings.Repeat("#", h.Counts[i]*histogramBarWidth/maxCount)
		}
		b.WriteString(fmt.Sprintf("  %7.1f | %-*s %d\n", edge, histogramBarWidth, bar, h.Counts[i]))
	}
	return b.String()
}
