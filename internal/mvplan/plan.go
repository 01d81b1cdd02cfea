// Package mvplan builds and persists measurement and verification plan
// documents: the ECM project background, the M&V team and budget, the
// M&V design, and the task breakdown that prices the effort.
package mvplan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/greenmetrics/mvstat/internal/utils"
)

const planFileName = "plan.yaml"

// Plan represents an M&V plan persisted on disk.
type Plan struct {
	ID         string     `yaml:"id" json:"id"`
	Name       string     `yaml:"name" json:"name"`
	Background Background `yaml:"background" json:"background"`
	Team       Team       `yaml:"team" json:"team"`
	Design     Design     `yaml:"design" json:"design"`
	Tasks      []Task     `yaml:"tasks" json:"tasks"`
	CreatedAt  time.Time  `yaml:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `yaml:"updated_at" json:"updated_at"`

	// Not serialized: on-disk location of the plan.yaml
	rootDir string
}

// Background captures the ECM project context the plan verifies.
type Background struct {
	SiteName               string `yaml:"site_name" json:"site_name"`
	SiteAddress            string `yaml:"site_address" json:"site_address"`
	SiteOverview           string `yaml:"site_overview" json:"site_overview"`
	ECMDescription         string `yaml:"ecm_description" json:"ecm_description"`
	EstimatedEnergySavings string `yaml:"estimated_energy_savings" json:"estimated_energy_savings"`
	EstimatedCostSavings   string `yaml:"estimated_cost_savings" json:"estimated_cost_savings"`
	ImplementationCost     string `yaml:"implementation_cost" json:"implementation_cost"`
	ImplementationDate     string `yaml:"implementation_date" json:"implementation_date"`
	ContractType           string `yaml:"contract_type" json:"contract_type"`
}

// Team lists the M&V staff and the preliminary budget.
type Team struct {
	Members []Member `yaml:"members" json:"members"`
	Budget  float64  `yaml:"budget" json:"budget"`
}

// Member is one M&V team member with an hourly rate.
type Member struct {
	Name string  `yaml:"name" json:"name"`
	Role string  `yaml:"role" json:"role"`
	Rate float64 `yaml:"rate" json:"rate"`
}

// Design holds the M&V approach: boundary, periods, variables, model,
// and validation criteria.
type Design struct {
	Approach             string `yaml:"approach" json:"approach"`
	DesiredAccuracy      string `yaml:"desired_accuracy" json:"desired_accuracy"`
	MeasurementBoundary  string `yaml:"measurement_boundary" json:"measurement_boundary"`
	BaselinePeriod       string `yaml:"baseline_period" json:"baseline_period"`
	ReportingPeriod      string `yaml:"reporting_period" json:"reporting_period"`
	IndependentVariables string `yaml:"independent_variables" json:"independent_variables"`
	DataSources          string `yaml:"data_sources" json:"data_sources"`
	ModelType            string `yaml:"model_type" json:"model_type"`
	ValidationCriteria   string `yaml:"validation_criteria" json:"validation_criteria"`
	NRAProtocol          string `yaml:"nra_protocol" json:"nra_protocol"`
}

// Task is one line of the M&V task breakdown.
type Task struct {
	Name  string  `yaml:"task" json:"task"`
	Hours float64 `yaml:"hours" json:"hours"`
}

// NewPlan constructs an in-memory plan template. Call Save() to persist.
func NewPlan(name, rootDir string) *Plan {
	return &Plan{
		ID:   uuid.NewString(),
		Name: name,
		Design: Design{
			ValidationCriteria: "ASHRAE G14: NMBE +/-5%, CV(RMSE) <=15%",
		},
		Tasks:     DefaultTasks(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		rootDir:   rootDir,
	}
}

// DefaultTasks is the stock M&V task breakdown a fresh plan starts from.
func DefaultTasks() []Task {
	return []Task{
		{Name: "Project management & coordination", Hours: 20},
		{Name: "Baseline data collection & review", Hours: 16},
		{Name: "Baseline model development", Hours: 24},
		{Name: "Baseline model validation", Hours: 8},
		{Name: "Post-retrofit data collection", Hours: 12},
		{Name: "Savings calculation & NRA review", Hours: 16},
		{Name: "Uncertainty analysis", Hours: 8},
		{Name: "Draft M&V report", Hours: 24},
		{Name: "Report review & finalization", Hours: 12},
		{Name: "Stakeholder presentation", Hours: 8},
	}
}

// GreenfieldPlan constructs a plan pre-filled with the Greenfield
// Municipal Center project data.
func GreenfieldPlan(name, rootDir string) *Plan {
	p := NewPlan(name, rootDir)
	p.Background = Background{
		SiteName:               "Greenfield Municipal Center",
		SiteAddress:            "Greenfield, Mid-Atlantic (CZ 4A)",
		SiteOverview:           "62,000 sq ft government facility, 4 wings (Office, Library, Data Center, Common)",
		ECMDescription:         "4 ECMs: LED lighting + controls, chiller/DX replacement, roof insulation R-15 to R-30, VFDs on AHU fans",
		EstimatedEnergySavings: "~10.5% electricity, gas increase 6.2% (interactive effects)",
		EstimatedCostSavings:   "TBD — depends on utility rate structure",
		ImplementationCost:     "ESPC financed",
		ImplementationDate:     "Reporting year starts Jan of post-retrofit year",
		ContractType:           "ESPC (15-year, savings shortfall risk on ESCO)",
	}
	p.Team = Team{
		Members: []Member{
			{Name: "M&V Lead", Role: "Lead analyst", Rate: 120},
			{Name: "Project Manager", Role: "ESCO coordination", Rate: 100},
			{Name: "Data Analyst", Role: "Data collection & QC", Rate: 80},
		},
		Budget: 25000,
	}
	p.Design = Design{
		Approach:             "Whole facility statistical regression (electric) + 3P heating (gas)",
		DesiredAccuracy:      "15% at 90% confidence",
		MeasurementBoundary:  "Whole building — single electric and gas meter",
		BaselinePeriod:       "12 months (Jan–Dec baseline year)",
		ReportingPeriod:      "12 months (Jan–Dec reporting year)",
		IndependentVariables: "Monthly average outdoor air temperature (OAT)",
		DataSources:          "Monthly utility bills, TMY weather data, EnergyPlus simulation output",
		ModelType:            "5P change-point (electric), 3PH (gas)",
		ValidationCriteria:   "ASHRAE G14: NMBE +/-5%, CV(RMSE) <=15%, R^2 >=0.75 (monthly)",
		NRAProtocol:          "Data center expansion in month 8 — requires NRA adjustment to isolate ECM savings",
	}
	p.Tasks = []Task{
		{Name: "Review building documentation & ESPC contract", Hours: 8},
		{Name: "Stakeholder interviews & risk mapping", Hours: 8},
		{Name: "Boundary selection & approach justification", Hours: 12},
		{Name: "Baseline data collection & QC", Hours: 16},
		{Name: "Baseline model fitting (5P electric, 3PH gas)", Hours: 24},
		{Name: "Model validation (ASHRAE G14)", Hours: 8},
		{Name: "Reporting period data collection & review", Hours: 12},
		{Name: "NRA identification & adjustment protocol", Hours: 16},
		{Name: "Savings calculation with uncertainty", Hours: 12},
		{Name: "Draft M&V report", Hours: 24},
		{Name: "Stakeholder presentation & plan defense", Hours: 12},
	}
	return p
}

// Load reads a plan.yaml from the provided directory.
func Load(dir string) (*Plan, error) {
	path := filepath.Join(dir, planFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("plan not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read plan: %w", err)
	}
	var p Plan
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	p.rootDir = dir
	return &p, nil
}

// List loads every plan stored under plansDir, sorted by name.
// Directories without a plan.yaml are skipped.
func List(plansDir string) ([]*Plan, error) {
	entries, err := os.ReadDir(plansDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read plans dir: %w", err)
	}
	var plans []*Plan
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p, err := Load(filepath.Join(plansDir, e.Name()))
		if err != nil {
			continue
		}
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Name < plans[j].Name })
	return plans, nil
}

// RootDir returns the on-disk plan directory path.
func (p *Plan) RootDir() string { return p.rootDir }

// Save writes plan.yaml using atomic write.
func (p *Plan) Save() error {
	if p.rootDir == "" {
		return errors.New("plan root directory not set")
	}
	if err := utils.EnsureDir(p.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	p.UpdatedAt = time.Now()
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	return utils.SafeWriteFile(filepath.Join(p.rootDir, planFileName), data)
}

// TotalHours sums the task breakdown.
func (p *Plan) TotalHours() float64 {
	var total float64
	for _, t := range p.Tasks {
		total += t.Hours
	}
	return total
}

// BlendedRate is the average hourly rate across the team.
func (p *Plan) BlendedRate() float64 {
	if len(p.Team.Members) == 0 {
		return 0
	}
	var sum float64
	for _, m := range p.Team.Members {
		sum += m.Rate
	}
	return sum / float64(len(p.Team.Members))
}

// LaborCost prices the task breakdown at the blended rate.
func (p *Plan) LaborCost() float64 {
	return p.TotalHours() * p.BlendedRate()
}
