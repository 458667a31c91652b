package pdi

import (
	"context"
	"time"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// CreatePlan validates the item list and replaces the employee's active plan.
// The previous active plan, if any, transitions to completed rather than
// being overwritten.
func (s *Service) CreatePlan(ctx context.Context, employeeID, cycleID, periodo, createdBy string, items []Item) (Plan, error) {
	if !ValidateItems(items) {
		return Plan{}, ErrInvalidItems
	}
	plan := Plan{
		EmployeeID: employeeID,
		CycleID:    cycleID,
		Periodo:    periodo,
		Status:     PlanActive,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now(),
		Items:      items,
	}
	return s.store.CreatePlan(ctx, plan)
}

func (s *Service) Plan(ctx context.Context, planID string) (Plan, error) {
	return s.store.GetPlan(ctx, planID)
}

func (s *Service) PlansForEmployee(ctx context.Context, employeeID string) ([]Plan, error) {
	return s.store.ListEmployeePlans(ctx, employeeID)
}

func (s *Service) ActivePlan(ctx context.Context, employeeID string) (Plan, error) {
	return s.store.ActivePlan(ctx, employeeID)
}
