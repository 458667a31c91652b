package pdi

const (
	PlanActive    = "active"
	PlanCompleted = "completed"
)

const (
	PrazoCurto = "curto"
	PrazoMedio = "medio"
	PrazoLongo = "longo"
)
