package mvplan

import (
	"fmt"
	"strings"
	"time"

	pongo2 "github.com/flosch/pongo2/v5"

	"github.com/greenmetrics/mvstat/internal/utils"
)

const planTemplateSrc = `======================================================================
  M&V PLAN — {{ title }}
  Generated: {{ generated }}
======================================================================

1. ECM PROJECT BACKGROUND
----------------------------------------
{% for row in background %}  {{ row.Label|stringformat:"%-30s" }} {{ row.Value }}
{% endfor %}
2. M&V TEAM
----------------------------------------
{% if members %}  {{ "Name"|stringformat:"%-25s" }} {{ "Role"|stringformat:"%-25s" }} Rate
  ------------------------------------------------------------
{% for m in members %}  {{ m.Name|stringformat:"%-25s" }} {{ m.Role|stringformat:"%-25s" }} {{ m.Rate }}/hr
{% endfor %}{% endif %}
  Preliminary Budget: {{ budget }}

3. M&V DESIGN
----------------------------------------
{% for row in design %}  {{ row.Label|stringformat:"%-30s" }} {{ row.Value }}
{% endfor %}
4. M&V BUDGET
----------------------------------------
  Total estimated hours: {{ totalHours }}
  Average blended rate:  {{ blendedRate }}/hr
  Estimated labor cost:  {{ laborCost }}

5. M&V TASK LIST
----------------------------------------
  {{ "#"|stringformat:"%-4s" }} {{ "Task"|stringformat:"%-45s" }} Hours
  ---------------------------------------------------------
{% for t in tasks %}  {{ t.Index|stringformat:"%-4d" }} {{ t.Name|stringformat:"%-45s" }} {{ t.Hours }}
{% endfor %}  {{ ""|stringformat:"%-4s" }} {{ "TOTAL"|stringformat:"%-45s" }} {{ totalHours }}

6. M&V RESULTS TEMPLATE
----------------------------------------
  {{ "Metric"|stringformat:"%-35s" }} {{ "Baseline"|stringformat:"%-12s" }} {{ "Post"|stringformat:"%-12s" }} {{ "Savings"|stringformat:"%-12s" }} %
  -------------------------------------------------------------------
{% for metric in metrics %}  {{ metric|stringformat:"%-35s" }} ___          ___          ___          ___
{% endfor %}
  Precision: ___% at ___% confidence
`

var planTemplate = pongo2.Must(pongo2.FromString(planTemplateSrc))

var resultMetrics = []string{
	"Total Energy (kWh)",
	"Total Energy (therms)",
	"Peak Demand (kW)",
	"Annual Cost ($)",
	"GHG (tCO2e)",
}

type labelRow struct {
	Label, Value string
}

type memberRow struct {
	Name, Role, Rate string
}

type taskRow struct {
	Index int
	Name  string
	Hours string
}

// RenderText formats the plan as the six-section M&V plan report.
func (p *Plan) RenderText(now time.Time) (string, error) {
	ctx := pongo2.Context{
		"title":       orTBD(p.Background.SiteName),
		"generated":   now.Format("2006-01-02 15:04"),
		"background":  backgroundRows(p.Background),
		"members":     memberRows(p.Team.Members),
		"budget":      formatMoney(p.Team.Budget),
		"design":      designRows(p.Design),
		"totalHours":  fmt.Sprintf("%.0f", p.TotalHours()),
		"blendedRate": formatMoney(p.BlendedRate()),
		"laborCost":   formatMoney(p.LaborCost()),
		"tasks":       taskRows(p.Tasks),
		"metrics":     resultMetrics,
	}
	out, err := planTemplate.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("render plan: %w", err)
	}
	return out, nil
}

// ExportJSON marshals the plan as indented JSON for downstream tooling.
func (p *Plan) ExportJSON() ([]byte, error) {
	return utils.PrettyJSON(p)
}

func backgroundRows(b Background) []labelRow {
	return []labelRow{
		{"Site Name", orTBD(b.SiteName)},
		{"Site Address", orTBD(b.SiteAddress)},
		{"Site Overview", orTBD(b.SiteOverview)},
		{"ECM Description", orTBD(b.ECMDescription)},
		{"Estimated Energy Savings", orTBD(b.EstimatedEnergySavings)},
		{"Estimated Cost Savings", orTBD(b.EstimatedCostSavings)},
		{"Implementation Cost", orTBD(b.ImplementationCost)},
		{"Implementation Date", orTBD(b.ImplementationDate)},
		{"Contract Type", orTBD(b.ContractType)},
	}
}

func designRows(d Design) []labelRow {
	return []labelRow{
		{"Approach", orTBD(d.Approach)},
		{"Desired Accuracy", orTBD(d.DesiredAccuracy)},
		{"Measurement Boundary", orTBD(d.MeasurementBoundary)},
		{"Baseline Period", orTBD(d.BaselinePeriod)},
		{"Reporting Period", orTBD(d.ReportingPeriod)},
		{"Independent Variables", orTBD(d.IndependentVariables)},
		{"Data Sources", orTBD(d.DataSources)},
		{"Model Type", orTBD(d.ModelType)},
		{"Validation Criteria", orTBD(d.ValidationCriteria)},
		{"NRA Protocol", orTBD(d.NRAProtocol)},
	}
}

func memberRows(members []Member) []memberRow {
	rows := make([]memberRow, len(members))
	for i, m := range members {
		rows[i] = memberRow{Name: m.Name, Role: m.Role, Rate: formatMoney(m.Rate)}
	}
	return rows
}

func taskRows(tasks []Task) []taskRow {
	rows := make([]taskRow, len(tasks))
	for i, t := range tasks {
		rows[i] = taskRow{Index: i + 1, Name: t.Name, Hours: fmt.Sprintf("%.0f", t.Hours)}
	}
	return rows
}

func orTBD(s string) string {
	if strings.TrimSpace(s) == "" {
		return "TBD"
	}
	return s
}

// formatMoney renders a dollar amount with thousands separators and no
// cents, matching the budget lines of the plan report.
func formatMoney(v float64) string {
	s := fmt.Sprintf("%.0f", v)
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
		return "-$" + b.String()
	}
	return "$" + b.String()
}
