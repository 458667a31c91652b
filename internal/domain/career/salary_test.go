package career

import "testing"

func TestCalculateSalary(t *testing.T) {
	if got := CalculateSalary(3000, 10); got != 3300 {
		t.Fatalf("expected 3300, got %v", got)
	}
	if got := CalculateSalary(4500, 0); got != 4500 {
		t.Fatalf("expected zero percentage to be identity, got %v", got)
	}
	if got := CalculateSalary(3333.33, 7.5); got != 3583.33 {
		t.Fatalf("expected 3583.33, got %v", got)
	}
	if got := CalculateSalary(0, 25); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestLevelPercentagePrefersOverride(t *testing.T) {
	position := TrackPosition{
		BaseSalary:     5000,
		LevelOverrides: map[string]float64{"level-b": 8},
	}
	levelA := SalaryLevel{ID: "level-a", Percentage: 5}
	levelB := SalaryLevel{ID: "level-b", Percentage: 5}

	if got := LevelPercentage(position, levelA); got != 5 {
		t.Fatalf("expected level default 5, got %v", got)
	}
	if got := LevelPercentage(position, levelB); got != 8 {
		t.Fatalf("expected override 8, got %v", got)
	}
}

func TestSalaryTable(t *testing.T) {
	position := TrackPosition{
		BaseSalary:     8000,
		LevelOverrides: map[string]float64{"level-c": 12},
	}
	levels := []SalaryLevel{
		{ID: "level-c", Name: "C", Percentage: 10, OrderIndex: 3},
		{ID: "level-a", Name: "A", Percentage: 0, OrderIndex: 1},
		{ID: "level-b", Name: "B", Percentage: 5, OrderIndex: 2},
	}

	rows := SalaryTable(position, levels)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].LevelName != "A" || rows[1].LevelName != "B" || rows[2].LevelName != "C" {
		t.Fatalf("expected rows ordered by level order index, got %+v", rows)
	}
	if rows[0].Salary != 8000 {
		t.Fatalf("expected level A salary 8000, got %v", rows[0].Salary)
	}
	if rows[2].Percentage != 12 || rows[2].Salary != 8960 {
		t.Fatalf("expected override percentage 12 and salary 8960, got %+v", rows[2])
	}
}
