package career

import "time"

type User struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Department        string     `json:"department"`
	Active            bool       `json:"active"`
	Leader            bool       `json:"leader"`
	Director          bool       `json:"director"`
	TrackPositionID   string     `json:"trackPositionId"`
	SalaryLevelID     string     `json:"salaryLevelId"`
	CurrentSalary     float64    `json:"currentSalary"`
	PositionStartDate *time.Time `json:"positionStartDate"`
}

type CareerTrack struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Active     bool   `json:"active"`
}

// TrackPosition is one rung of a career track: a job position paired with a
// salary class and a base salary. LevelOverrides maps a salary level id to a
// percentage that replaces the level default for this position.
type TrackPosition struct {
	ID              string             `json:"id"`
	TrackID         string             `json:"trackId"`
	JobPosition     string             `json:"jobPosition"`
	SalaryClassID   string             `json:"salaryClassId"`
	SalaryClassName string             `json:"salaryClassName"`
	BaseSalary      float64            `json:"baseSalary"`
	OrderIndex      int                `json:"orderIndex"`
	Multifunctional bool               `json:"multifunctional"`
	Vacancies       int                `json:"vacancies"`
	LevelOverrides  map[string]float64 `json:"levelOverrides,omitempty"`
}

type SalaryLevel struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	OrderIndex int     `json:"orderIndex"`
}

type AdditionalRequirements struct {
	Certifications  []string `json:"certifications,omitempty"`
	MinimumProjects int      `json:"minimumProjects,omitempty"`
}

type ProgressionRule struct {
	ID                     string                 `json:"id"`
	FromPositionID         string                 `json:"fromPositionId"`
	ToPositionID           string                 `json:"toPositionId"`
	Type                   string                 `json:"type"`
	MinTimeMonths          *int                   `json:"minTimeMonths,omitempty"`
	PerformanceRequirement *float64               `json:"performanceRequirement,omitempty"`
	Additional             AdditionalRequirements `json:"additionalRequirements"`
}

// ProgressionHistory is the append-only audit record of one executed
// progression. Rows are never updated or deleted.
type ProgressionHistory struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	FromPositionID string    `json:"fromPositionId"`
	ToPositionID   string    `json:"toPositionId"`
	FromLevelID    string    `json:"fromLevelId"`
	ToLevelID      string    `json:"toLevelId"`
	FromSalary     float64   `json:"fromSalary"`
	ToSalary       float64   `json:"toSalary"`
	Type           string    `json:"type"`
	Reason         string    `json:"reason"`
	ApprovedBy     string    `json:"approvedBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ProgressionRecord carries the from/to snapshot the store persists when a
// progression is executed.
type ProgressionRecord struct {
	UserID         string
	FromPositionID string
	ToPositionID   string
	FromLevelID    string
	ToLevelID      string
	FromSalary     float64
	ToSalary       float64
	Type           string
	Reason         string
	ApprovedBy     string
}
