package pdi

import "context"

type StoreAPI interface {
	// CreatePlan completes any active plan for the employee and inserts the
	// new one as active, atomically.
	CreatePlan(ctx context.Context, plan Plan) (Plan, error)
	GetPlan(ctx context.Context, planID string) (Plan, error)
	ListEmployeePlans(ctx context.Context, employeeID string) ([]Plan, error)
	ActivePlan(ctx context.Context, employeeID string) (Plan, error)
}
