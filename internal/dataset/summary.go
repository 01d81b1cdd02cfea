package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"

	morestats "github.com/aclements/go-moremath/stats"

	"github.com/greenmetrics/mvstat/internal/stats"
)

// SummarizeOptions controls what the dataset summary computes.
type SummarizeOptions struct {
	// SampleRows is how many leading rows the report echoes back.
	SampleRows int
	// Outliers enables robust z-score screening (MAD based) on numeric
	// columns with at least eight values.
	Outliers         bool
	OutlierThreshold float64
	// Correlations computes the pairwise Pearson matrix across numeric
	// columns, honoring per-row missingness.
	Correlations bool
}

// DefaultSummarizeOptions enables the full first-look report.
func DefaultSummarizeOptions() SummarizeOptions {
	return SummarizeOptions{
		SampleRows:   5,
		Outliers:     true,
		Correlations: true,
	}
}

// Report is the first-look summary of a dataset.
type Report struct {
	Name        string
	Fingerprint string
	Rows        int
	Processed   int
	Cols        []ColumnSummary
	Samples     [][]string
	Corr        *CorrMatrix
	Warnings    []string
}

// ColumnSummary captures the inferred kind and statistics of one column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|datetime|categorical|text|unknown
	Unit    string
	NonNull int
	Missing int
	Unique  int

	Min  float64
	Max  float64
	Mean float64
	Std  float64
	CV   float64

	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64

	TopValues    []CategoryCount
	ExampleTexts []string
}

type CategoryCount struct {
	Value string
	Count int
}

// CorrMatrix is the symmetric Pearson matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// Summarize computes the per-column statistics, outlier screen, and
// correlation matrix of a table in one pass over its rows.
func (t *Table) Summarize(opt SummarizeOptions) *Report {
	rep := &Report{
		Name:        t.Name,
		Fingerprint: t.FingerprintHex(),
		Rows:        t.TotalRows,
		Processed:   len(t.Rows),
	}
	ncol := len(t.Header)
	if ncol == 0 {
		return rep
	}

	sampleRows := opt.SampleRows
	if sampleRows < 0 {
		sampleRows = 0
	}
	for i := 0; i < len(t.Rows) && i < sampleRows; i++ {
		rep.Samples = append(rep.Samples, append([]string(nil), t.Rows[i]...))
	}

	type colAcc struct {
		unit   string
		wf     *stats.Welford
		nonNil int
		miss   int
		numCnt int
		dtCnt  int
		txtCnt int
		cats   map[string]int
		exText []string
	}
	cols := make([]*colAcc, ncol)
	for i := range cols {
		cols[i] = &colAcc{unit: t.Units[i], wf: stats.NewWelford(), cats: map[string]int{}}
	}

	// Parsed values aligned by row; NaN marks blank or non-numeric cells
	// so correlations can honor per-row missingness.
	parsed := make([][]float64, ncol)
	for j := range parsed {
		parsed[j] = make([]float64, len(t.Rows))
		for i := range parsed[j] {
			parsed[j][i] = math.NaN()
		}
	}

	for rowIdx, row := range t.Rows {
		for j := 0; j < ncol; j++ {
			v := row[j]
			c := cols[j]
			if v == "" {
				c.miss++
				continue
			}
			c.nonNil++
			if c.unit == "" && strings.Contains(v, "%") {
				c.unit = "%"
			}
			if x, ok := parseNumeric(v, t.opt); ok {
				if t.opt.NormalizeUnits && t.Units[j] != "" {
					if nx, nu, okc := normalizeUnit(x, t.Units[j]); okc {
						x = nx
						c.unit = nu
					}
				}
				c.numCnt++
				c.wf.Add(x)
				parsed[j][rowIdx] = x
				continue
			}
			if _, ok := parseTimeMaybe(v); ok {
				c.dtCnt++
				continue
			}
			c.txtCnt++
			if len(c.cats) <= 10000 && len(v) <= 64 {
				c.cats[v]++
			}
			if len(c.exText) < 3 {
				c.exText = append(c.exText, v)
			}
		}
	}

	var numCols []int
	for j, c := range cols {
		s := ColumnSummary{Name: t.Header[j], Unit: c.unit, NonNull: c.nonNil, Missing: c.miss}
		switch {
		case c.numCnt > 0 && c.numCnt >= c.dtCnt && c.numCnt >= c.txtCnt:
			s.Kind = "numeric"
			s.Min = c.wf.Min()
			s.Max = c.wf.Max()
			s.Mean = c.wf.Mean()
			s.Std = c.wf.StdDev()
			if s.Mean != 0 {
				s.CV = s.Std / s.Mean
			}
			numCols = append(numCols, j)
			if opt.Outliers {
				screenOutliers(&s, compact(parsed[j]), opt.OutlierThreshold)
			}
		case c.dtCnt > 0 && c.dtCnt >= c.txtCnt:
			s.Kind = "datetime"
		case len(c.cats) > 0:
			s.Kind = "categorical"
			s.TopValues = topCategories(c.cats, 8)
			s.Unique = len(c.cats)
		case c.txtCnt > 0:
			s.Kind = "text"
			s.ExampleTexts = c.exText
		default:
			s.Kind = "unknown"
		}
		rep.Cols = append(rep.Cols, s)
	}

	if rep.Processed < rep.Rows {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("processed only %d/%d rows due to MaxRows", rep.Processed, rep.Rows))
	}

	if opt.Correlations && len(numCols) >= 2 {
		rep.Corr = correlate(t.Header, parsed, numCols)
	}
	return rep
}

// compact drops the NaN slots that mark missing cells.
func compact(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// screenOutliers counts values whose robust z-score (0.6745 * dev / MAD)
// exceeds the threshold. Fewer than eight values is too little to screen.
func screenOutliers(s *ColumnSummary, vals []float64, threshold float64) {
	if len(vals) < 8 {
		return
	}
	if threshold <= 0 {
		threshold = 3.5
	}
	median, mad := medianMAD(vals)
	s.OutlierThreshold = threshold
	if mad == 0 {
		return
	}
	for _, v := range vals {
		z := math.Abs(0.6745 * (v - median) / mad)
		if z > threshold {
			s.OutliersCount++
		}
		if z > s.OutliersMaxAbsZ {
			s.OutliersMaxAbsZ = z
		}
	}
}

// medianMAD computes the median and the median absolute deviation.
func medianMAD(vals []float64) (median, mad float64) {
	samp := morestats.Sample{Xs: append([]float64(nil), vals...)}
	samp.Sort()
	median = samp.Quantile(0.5)
	devs := make([]float64, len(samp.Xs))
	for i, v := range samp.Xs {
		devs[i] = math.Abs(v - median)
	}
	dsamp := morestats.Sample{Xs: devs}
	dsamp.Sort()
	mad = dsamp.Quantile(0.5)
	return median, mad
}

func topCategories(cats map[string]int, limit int) []CategoryCount {
	tops := make([]CategoryCount, 0, len(cats))
	for k, v := range cats {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > limit {
		tops = tops[:limit]
	}
	return tops
}

// correlate builds the Pearson matrix over the aligned parsed columns,
// using only rows where both members of a pair are present.
func correlate(header []string, parsed [][]float64, numCols []int) *CorrMatrix {
	names := make([]string, len(numCols))
	for i, idx := range numCols {
		names[i] = header[idx]
	}
	n := len(numCols)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
		mat[i][i] = 1
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			r := pearson(parsed[numCols[a]], parsed[numCols[b]])
			mat[a][b] = r
			mat[b][a] = r
		}
	}
	return &CorrMatrix{Columns: names, Values: mat}
}

func pearson(xs, ys []float64) float64 {
	var n, sumX, sumY, sumXX, sumYY, sumXY float64
	for i := range xs {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		n++
		sumX += x
		sumY += y
		sumXX += x * x
		sumYY += y * y
		sumXY += x * y
	}
	if n < 2 {
		return 0
	}
	denom := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denom == 0 {
		return 0
	}
	r := (n*sumXY - sumX*sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Text renders the summary with the schema, correlation, and sample-row
// sections.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.Fingerprint != "" {
		b.WriteString(fmt.Sprintf("Fingerprint: %s\n", r.Fingerprint))
	}
	if r.Rows > 0 {
		if r.Processed > 0 && r.Processed < r.Rows {
			b.WriteString(fmt.Sprintf("Rows: ~%d (processed %d)\n", r.Rows, r.Processed))
		} else {
			b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
		}
	}
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		name := safeName(c.Name)
		if c.Unit != "" {
			name = fmt.Sprintf("%s [%s]", name, c.Unit)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", name, c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case "numeric":
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, std %.4g, cv %.3f", c.Min, c.Max, c.Mean, c.Std, c.CV))
			if c.OutlierThreshold > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
				if c.OutliersMaxAbsZ > 0 {
					b.WriteString(fmt.Sprintf(" (max |z|≈%.2f)", c.OutliersMaxAbsZ))
				}
			}
		case "categorical":
			if len(c.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		case "text":
			if len(c.ExampleTexts) > 0 {
				b.WriteString(" — e.g., ")
				for i, ex := range c.ExampleTexts {
					if i > 0 {
						b.WriteString(" | ")
					}
					b.WriteString(safeVal(ex))
				}
			}
		}
		b.WriteString("\n")
	}

	if r.Corr != nil && len(r.Corr.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		type pairCorr struct {
			a, b string
			r    float64
		}
		var pairs []pairCorr
		n := len(r.Corr.Columns)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				pairs = append(pairs, pairCorr{a: r.Corr.Columns[i], b: r.Corr.Columns[j], r: r.Corr.Values[i][j]})
			}
		}
		sort.Slice(pairs, func(i, j int) bool {
			ai, aj := math.Abs(pairs[i].r), math.Abs(pairs[j].r)
			if ai == aj {
				return pairs[i].a+pairs[i].b < pairs[j].a+pairs[j].b
			}
			return ai > aj
		})
		if len(pairs) > 10 {
			pairs = pairs[:10]
		}
		for _, p := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.a, p.b, p.r))
		}
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Name))
		}
		b.WriteString(" |\n| ")
		for i := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i := range r.Cols {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- " + w + "\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
