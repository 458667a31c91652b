package evaluation

import "time"

type Competency struct {
	ID              string  `json:"id,omitempty"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Score           float64 `json:"score"`
	WrittenResponse string  `json:"writtenResponse,omitempty"`
}

// Evaluation is the header row of a self or leader evaluation. The four
// derived scores are computed server-side from the competency rows.
type Evaluation struct {
	ID              string       `json:"id"`
	UserID          string       `json:"userId"`
	EvaluatorID     string       `json:"evaluatorId"`
	Kind            string       `json:"kind"`
	CycleID         string       `json:"cycleId,omitempty"`
	TechnicalScore  float64      `json:"technicalScore"`
	BehavioralScore float64      `json:"behavioralScore"`
	DeliveriesScore float64      `json:"deliveriesScore"`
	FinalScore      float64      `json:"finalScore"`
	Status          string       `json:"status"`
	EvaluatedAt     time.Time    `json:"evaluatedAt"`
	Competencies    []Competency `json:"competencies,omitempty"`
}

type ConsensusMeeting struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	CycleID          string     `json:"cycleId,omitempty"`
	Status           string     `json:"status"`
	PerformanceScore float64    `json:"performanceScore"`
	PotentialScore   float64    `json:"potentialScore"`
	NineBoxPosition  string     `json:"nineBoxPosition"`
	Notes            string     `json:"notes,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}
