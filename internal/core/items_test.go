package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daybook-sh/daybook/pkg/models"
)

func TestBuiltinItems_Validate(t *testing.T) {
	if err := ValidateItems(BuiltinItems()); err != nil {
		t.Fatalf("built-in items should validate: %v", err)
	}
}

func TestValidateItems_ReportsEveryProblem(t *testing.T) {
	items := []models.Item{
		{ID: "a", Label: "A"},
		{ID: "a", Label: "Duplicate"},
		{ID: "", Label: "No id"},
		{ID: "b", Label: ""},
		{ID: "c", Label: "C", Schedule: &models.Schedule{
			DaysOfWeek:   []int{8},
			DatesOfMonth: []int{0, 32},
			StartDate:    "01/02/2026",
		}},
		{ID: "d", Label: "D", Schedule: &models.Schedule{
			ShowEvery: &models.Period{Count: 0, Unit: models.UnitDay},
			Target:    &models.Target{Count: 0},
			Limit:     &models.Limit{Max: 0},
		}},
	}

	err := ValidateItems(items)
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := err.Error()
	for _, want := range []string{
		"duplicate item id \"a\"",
		"item with empty id",
		"label must not be empty",
		"days_of_week value 8",
		"dates_of_month value 0",
		"dates_of_month value 32",
		"start_date",
		"show_every.count",
		"target.count",
		"limit.max",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q:\n%s", want, msg)
		}
	}
}

func TestLoadRegistry_NoOverlay(t *testing.T) {
	reg, err := LoadRegistry("")
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	if _, ok := reg.Get("exercise"); !ok {
		t.Error("built-in exercise item missing")
	}
	if len(reg.ByCategory(models.CategoryWellbeing)) == 0 {
		t.Error("expected wellbeing items")
	}
}

func TestLoadRegistry_MissingOverlayFileIsFine(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.Items()) != len(BuiltinItems()) {
		t.Errorf("expected built-ins only, got %d items", len(reg.Items()))
	}
}

func TestLoadRegistry_OverlayReplacesAndAppends(t *testing.T) {
	overlay := `items:
  - id: exercise
    label: Swim
    category: habit
    input:
      type: boolean
  - id: reading
    label: Read for 30 minutes
    category: habit
    input:
      type: boolean
    schedule:
      target:
        count: 4
        per:
          count: 1
          unit: week
`
	path := filepath.Join(t.TempDir(), "items.yaml")
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	exercise, ok := reg.Get("exercise")
	if !ok {
		t.Fatal("exercise item missing")
	}
	if exercise.Label != "Swim" {
		t.Errorf("overlay should replace exercise, label = %q", exercise.Label)
	}
	if exercise.Schedule != nil {
		t.Error("replaced item should carry the overlay's schedule, not the built-in one")
	}

	reading, ok := reg.Get("reading")
	if !ok {
		t.Fatal("appended reading item missing")
	}
	if reading.Schedule == nil || reading.Schedule.Target == nil || reading.Schedule.Target.Count != 4 {
		t.Errorf("reading schedule not parsed: %+v", reading.Schedule)
	}
	if reading.Schedule.Target.Per.Unit != models.UnitWeek {
		t.Errorf("reading target unit = %q, want week", reading.Schedule.Target.Per.Unit)
	}

	if len(reg.Items()) != len(BuiltinItems())+1 {
		t.Errorf("expected built-ins plus one, got %d", len(reg.Items()))
	}
}

func TestLoadRegistry_InvalidOverlayFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	bad := "items:\n  - id: dup\n    label: One\n  - id: dup\n    label: Two\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}

	_, err := LoadRegistry(path)
	if err == nil {
		t.Fatal("expected validation error for duplicate overlay ids")
	}
	if !strings.Contains(err.Error(), `duplicate item id "dup"`) {
		t.Errorf("error does not name the duplicate: %v", err)
	}
}

func TestRegistry_ByCategoryPreservesOrder(t *testing.T) {
	reg := NewRegistry([]models.Item{
		{ID: "a", Label: "a", Category: models.CategoryHabit},
		{ID: "b", Label: "b", Category: models.CategoryPrompt},
		{ID: "c", Label: "c", Category: models.CategoryHabit},
	})

	habits := reg.ByCategory(models.CategoryHabit)
	if len(habits) != 2 || habits[0].ID != "a" || habits[1].ID != "c" {
		t.Errorf("habits = %+v", habits)
	}
}
