package pdi

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreatePlan(ctx context.Context, plan Plan) (Plan, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Plan{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
    UPDATE development_plans
    SET status = $1
    WHERE employee_id = $2 AND status = $3
  `, PlanCompleted, plan.EmployeeID, PlanActive)
	if err != nil {
		return Plan{}, err
	}

	err = tx.QueryRow(ctx, `
    INSERT INTO development_plans (employee_id, cycle_id, periodo, status, created_by, created_at)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, plan.EmployeeID, nullIfEmpty(plan.CycleID), nullIfEmpty(plan.Periodo),
		plan.Status, plan.CreatedBy, plan.CreatedAt).Scan(&plan.ID)
	if err != nil {
		return Plan{}, err
	}

	for i, item := range plan.Items {
		err = tx.QueryRow(ctx, `
      INSERT INTO pdi_items
        (plan_id, competencia, resultados_esperados, como_desenvolver,
         calendarizacao, status, observacao, prazo, order_index)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
      RETURNING id
    `, plan.ID, item.Competencia, item.ResultadosEsperados, item.ComoDesenvolver,
			item.Calendarizacao, item.Status, nullIfEmpty(item.Observacao), item.Prazo, i).Scan(&plan.Items[i].ID)
		if err != nil {
			return Plan{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

func (s *Store) GetPlan(ctx context.Context, planID string) (Plan, error) {
	var plan Plan
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, COALESCE(cycle_id::text, ''), COALESCE(periodo, ''),
           status, created_by, created_at
    FROM development_plans
    WHERE id = $1
  `, planID).Scan(&plan.ID, &plan.EmployeeID, &plan.CycleID, &plan.Periodo,
		&plan.Status, &plan.CreatedBy, &plan.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Plan{}, ErrPlanNotFound
	}
	if err != nil {
		return Plan{}, err
	}
	plan.Items, err = s.planItems(ctx, plan.ID)
	return plan, err
}

func (s *Store) ListEmployeePlans(ctx context.Context, employeeID string) ([]Plan, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, COALESCE(cycle_id::text, ''), COALESCE(periodo, ''),
           status, created_by, created_at
    FROM development_plans
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var plan Plan
		if err := rows.Scan(&plan.ID, &plan.EmployeeID, &plan.CycleID, &plan.Periodo,
			&plan.Status, &plan.CreatedBy, &plan.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plans {
		plans[i].Items, err = s.planItems(ctx, plans[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func (s *Store) ActivePlan(ctx context.Context, employeeID string) (Plan, error) {
	var plan Plan
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, COALESCE(cycle_id::text, ''), COALESCE(periodo, ''),
           status, created_by, created_at
    FROM development_plans
    WHERE employee_id = $1 AND status = $2
    ORDER BY created_at DESC
    LIMIT 1
  `, employeeID, PlanActive).Scan(&plan.ID, &plan.EmployeeID, &plan.CycleID, &plan.Periodo,
		&plan.Status, &plan.CreatedBy, &plan.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Plan{}, ErrPlanNotFound
	}
	if err != nil {
		return Plan{}, err
	}
	plan.Items, err = s.planItems(ctx, plan.ID)
	return plan, err
}

func (s *Store) planItems(ctx context.Context, planID string) ([]Item, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, competencia, resultados_esperados, como_desenvolver,
           calendarizacao, status, COALESCE(observacao, ''), prazo
    FROM pdi_items
    WHERE plan_id = $1
    ORDER BY order_index
  `, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Competencia, &item.ResultadosEsperados,
			&item.ComoDesenvolver, &item.Calendarizacao, &item.Status, &item.Observacao, &item.Prazo); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
