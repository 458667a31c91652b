package career

import (
	"math"
	"sort"
)

// CalculateSalary applies a level percentage on top of a position base salary.
func CalculateSalary(baseSalary, levelPercentage float64) float64 {
	return round2(baseSalary * (1 + levelPercentage/100))
}

// LevelPercentage resolves the percentage for a level on a given position,
// preferring the position's per-level override over the level default.
func LevelPercentage(position TrackPosition, level SalaryLevel) float64 {
	if pct, ok := position.LevelOverrides[level.ID]; ok {
		return pct
	}
	return level.Percentage
}

type SalaryTableRow struct {
	LevelID    string  `json:"levelId"`
	LevelName  string  `json:"levelName"`
	Percentage float64 `json:"percentage"`
	Salary     float64 `json:"salary"`
}

// SalaryTable builds one row per salary level for a position, ordered by the
// level order index.
func SalaryTable(position TrackPosition, levels []SalaryLevel) []SalaryTableRow {
	sorted := make([]SalaryLevel, len(levels))
	copy(sorted, levels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].OrderIndex < sorted[j].OrderIndex })

	rows := make([]SalaryTableRow, 0, len(sorted))
	for _, level := range sorted {
		pct := LevelPercentage(position, level)
		rows = append(rows, SalaryTableRow{
			LevelID:    level.ID,
			LevelName:  level.Name,
			Percentage: pct,
			Salary:     CalculateSalary(position.BaseSalary, pct),
		})
	}
	return rows
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
