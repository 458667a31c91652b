package reports

// SalaryOverviewRow is one track position with its headcount and salary
// spread, used by the HR salary overview report.
type SalaryOverviewRow struct {
	TrackID       string  `json:"trackId"`
	TrackName     string  `json:"trackName"`
	PositionID    string  `json:"positionId"`
	PositionName  string  `json:"positionName"`
	OrderIndex    int     `json:"orderIndex"`
	BaseSalary    float64 `json:"baseSalary"`
	Headcount     int     `json:"headcount"`
	AverageSalary float64 `json:"averageSalary"`
	MinSalary     float64 `json:"minSalary"`
	MaxSalary     float64 `json:"maxSalary"`
}

// NineBoxCell is one cell of the nine-box distribution with the number of
// employees whose latest completed consensus landed there.
type NineBoxCell struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// ProgressionSummary counts executed progressions by type over a period.
type ProgressionSummary struct {
	Horizontal int `json:"horizontal"`
	Vertical   int `json:"vertical"`
	Merit      int `json:"merit"`
	Total      int `json:"total"`
}
