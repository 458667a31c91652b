package pdi

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeStore struct {
	plans  []Plan
	nextID int
}

func (f *fakeStore) CreatePlan(_ context.Context, plan Plan) (Plan, error) {
	for i := range f.plans {
		if f.plans[i].EmployeeID == plan.EmployeeID && f.plans[i].Status == PlanActive {
			f.plans[i].Status = PlanCompleted
		}
	}
	f.nextID++
	plan.ID = fmt.Sprintf("plan-%d", f.nextID)
	f.plans = append(f.plans, plan)
	return plan, nil
}

func (f *fakeStore) GetPlan(_ context.Context, planID string) (Plan, error) {
	for _, plan := range f.plans {
		if plan.ID == planID {
			return plan, nil
		}
	}
	return Plan{}, ErrPlanNotFound
}

func (f *fakeStore) ListEmployeePlans(_ context.Context, employeeID string) ([]Plan, error) {
	var out []Plan
	for _, plan := range f.plans {
		if plan.EmployeeID == employeeID {
			out = append(out, plan)
		}
	}
	return out, nil
}

func (f *fakeStore) ActivePlan(_ context.Context, employeeID string) (Plan, error) {
	for _, plan := range f.plans {
		if plan.EmployeeID == employeeID && plan.Status == PlanActive {
			return plan, nil
		}
	}
	return Plan{}, ErrPlanNotFound
}

func TestCreatePlanRejectsInvalidItems(t *testing.T) {
	svc := NewService(&fakeStore{})

	_, err := svc.CreatePlan(context.Background(), "emp-1", "", "", "hr-1", nil)
	if !errors.Is(err, ErrInvalidItems) {
		t.Fatalf("err = %v, want ErrInvalidItems", err)
	}
}

func TestCreatePlanCompletesPreviousActive(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	ctx := context.Background()

	first, err := svc.CreatePlan(ctx, "emp-1", "", "2026/1", "hr-1", []Item{wellFormedItem()})
	if err != nil {
		t.Fatalf("first CreatePlan: %v", err)
	}
	second, err := svc.CreatePlan(ctx, "emp-1", "", "2026/2", "hr-1", []Item{wellFormedItem()})
	if err != nil {
		t.Fatalf("second CreatePlan: %v", err)
	}

	old, err := svc.Plan(ctx, first.ID)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if old.Status != PlanCompleted {
		t.Fatalf("previous plan status = %q, want %q", old.Status, PlanCompleted)
	}

	active, err := svc.ActivePlan(ctx, "emp-1")
	if err != nil {
		t.Fatalf("ActivePlan: %v", err)
	}
	if active.ID != second.ID {
		t.Fatalf("active plan = %q, want %q", active.ID, second.ID)
	}
}
