package mvplan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/greenmetrics/mvstat/internal/mvplan"
)

func TestNewPlanDefaults(t *testing.T) {
	p := mvplan.NewPlan("office-retrofit", t.TempDir())
	if p.ID == "" {
		t.Fatal("plan should get an ID")
	}
	if p.Name != "office-retrofit" {
		t.Fatalf("name = %q", p.Name)
	}
	if len(p.Tasks) != 10 {
		t.Fatalf("default tasks = %d, want 10", len(p.Tasks))
	}
	if p.TotalHours() != 148 {
		t.Fatalf("default hours = %v, want 148", p.TotalHours())
	}
	if p.Design.ValidationCriteria == "" {
		t.Fatal("validation criteria should have a default")
	}
	if p.BlendedRate() != 0 || p.LaborCost() != 0 {
		t.Fatalf("empty team should price at zero, got %v/%v", p.BlendedRate(), p.LaborCost())
	}
}

func TestGreenfieldPlanBudget(t *testing.T) {
	p := mvplan.GreenfieldPlan("greenfield", t.TempDir())
	if p.Background.SiteName != "Greenfield Municipal Center" {
		t.Fatalf("site = %q", p.Background.SiteName)
	}
	if len(p.Team.Members) != 3 || p.Team.Budget != 25000 {
		t.Fatalf("team = %d members, budget %v", len(p.Team.Members), p.Team.Budget)
	}
	if len(p.Tasks) != 11 {
		t.Fatalf("tasks = %d, want 11", len(p.Tasks))
	}
	if p.TotalHours() != 152 {
		t.Fatalf("total hours = %v, want 152", p.TotalHours())
	}
	if p.BlendedRate() != 100 {
		t.Fatalf("blended rate = %v, want 100", p.BlendedRate())
	}
	if p.LaborCost() != 15200 {
		t.Fatalf("labor cost = %v, want 15200", p.LaborCost())
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "greenfield")
	p := mvplan.GreenfieldPlan("greenfield", dir)
	if err := p.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "plan.yaml")); err != nil {
		t.Fatalf("plan.yaml not written: %v", err)
	}

	got, err := mvplan.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != p.ID || got.Name != p.Name {
		t.Fatalf("identity changed: %s/%s vs %s/%s", got.ID, got.Name, p.ID, p.Name)
	}
	if got.Background.SiteName != p.Background.SiteName {
		t.Fatalf("site = %q", got.Background.SiteName)
	}
	if len(got.Tasks) != 11 || got.Tasks[0].Name != p.Tasks[0].Name {
		t.Fatalf("tasks did not survive: %v", got.Tasks)
	}
	if got.Team.Members[0].Rate != 120 {
		t.Fatalf("rate = %v", got.Team.Members[0].Rate)
	}
	if got.UpdatedAt.IsZero() || got.CreatedAt.IsZero() {
		t.Fatal("timestamps should round-trip")
	}
	if got.RootDir() != dir {
		t.Fatalf("root dir = %q", got.RootDir())
	}
}

func TestLoadMissingPlan(t *testing.T) {
	_, err := mvplan.Load(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected an error for a missing plan")
	}
}

func TestListPlans(t *testing.T) {
	plansDir := t.TempDir()
	for _, name := range []string{"beta-site", "alpha-site"} {
		p := mvplan.NewPlan(name, filepath.Join(plansDir, name))
		if err := p.Save(); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(plansDir, "stray"), 0o755); err != nil {
		t.Fatal(err)
	}

	plans, err := mvplan.List(plansDir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("plans = %d, want 2", len(plans))
	}
	if plans[0].Name != "alpha-site" || plans[1].Name != "beta-site" {
		t.Fatalf("order = %s, %s", plans[0].Name, plans[1].Name)
	}
}

func TestListMissingDir(t *testing.T) {
	plans, err := mvplan.List(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if plans != nil {
		t.Fatalf("plans = %v, want none", plans)
	}
}
