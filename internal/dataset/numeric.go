package dataset

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// parseNumeric interprets one cell as a float, tolerating percent signs,
// NBSP padding, and either decimal-comma or decimal-point locales. When the
// options pin no locale, the separators are detected per value.
func parseNumeric(s string, opt ReadOptions) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, " ", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0 && cpos > dpos:
			dec, thou = ',', '.'
		case cpos >= 0 && dpos >= 0:
			dec, thou = '.', ','
		case cpos >= 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseTimeMaybe recognizes the datetime shapes utility bills and logger
// exports carry, including bare billing months.
func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
		"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
		"2006-01", "Jan-2006", "Jan 2006", "January 2006",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var unitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(.*)\s*\(([^)]+)\)\s*$`),  // OAT (°F)
	regexp.MustCompile(`^(.*)\s*\[([^\]]+)\]\s*$`), // Demand [kW]
	regexp.MustCompile(`^(.*?)[_\s-]+(kWh|MWh|Wh|kW|W|°[CF]|%|kBtu|therms|CDD|HDD)$`),
}

// splitUnits pulls a declared unit out of a column header, leaving the
// clean name.
func splitUnits(name string) (clean, unit string) {
	s := strings.TrimSpace(name)
	for _, re := range unitPatterns {
		m := re.FindStringSubmatch(s)
		if len(m) != 3 {
			continue
		}
		base, u := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if base != "" && u != "" {
			return base, u
		}
	}
	return s, ""
}

// normalizeUnit converts a value into the unit the energy calculations
// expect. Unknown units pass through untouched.
func normalizeUnit(x float64, unit string) (float64, string, bool) {
	switch unit {
	case "°F":
		return (x - 32) * 5.0 / 9.0, "°C", true
	case "MWh":
		return x * 1000, "kWh", true
	case "Wh":
		return x / 1000, "kWh", true
	}
	return x, unit, false
}
