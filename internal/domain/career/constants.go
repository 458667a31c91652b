package career

const (
	ProgressionHorizontal = "horizontal"
	ProgressionVertical   = "vertical"
	ProgressionMerit      = "merit"
)

var ProgressionTypes = []string{ProgressionHorizontal, ProgressionVertical, ProgressionMerit}

const (
	// Salary increases above this percentage pass validation with a warning
	// requiring special approval.
	salaryIncreaseWarningPct = 50.0
	// Salary reductions beyond this percentage block the assignment.
	salaryDecreaseLimitPct = 20.0
)
