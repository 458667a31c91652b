package pdi

import "time"

// Item is one development goal inside a plan. Field names follow the
// Portuguese vocabulary the HR team uses in the plan forms.
type Item struct {
	ID                 string `json:"id,omitempty"`
	Competencia        string `json:"competencia"`
	ResultadosEsperados string `json:"resultadosEsperados"`
	ComoDesenvolver    string `json:"comoDesenvolver"`
	Calendarizacao     string `json:"calendarizacao"`
	Status             string `json:"status"`
	Observacao         string `json:"observacao,omitempty"`
	Prazo              string `json:"prazo"`
}

type Plan struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	CycleID    string    `json:"cycleId,omitempty"`
	Periodo    string    `json:"periodo,omitempty"`
	Status     string    `json:"status"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	Items      []Item    `json:"items"`
}
