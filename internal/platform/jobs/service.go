package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"talentos/internal/domain/notifications"
	"talentos/internal/platform/config"
)

const (
	JobProgressionScan = "progression_scan"
	JobLetterRender    = "letter_render"
)

// notified employees are not re-notified within this window
const eligibilityCooldown = "30 days"

type Service struct {
	DB     *pgxpool.Pool
	Cfg    config.Config
	Notify *notifications.Service
	queue  chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config, notify *notifications.Service) *Service {
	return &Service{
		DB:     db,
		Cfg:    cfg,
		Notify: notify,
		queue:  make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.ProgressionScanInterval > 0 {
		go s.scheduleProgressionScans(ctx, s.Cfg.ProgressionScanInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleProgressionScans(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobProgressionScan, func(ctx context.Context) (any, error) {
				return s.scanProgressionEligibility(ctx)
			})
		}
	}
}

type eligibleUser struct {
	ID       string
	Name     string
	MinTime  int
	RuleType string
}

// scanProgressionEligibility notifies employees whose time in position
// satisfies at least one progression rule out of their current position.
// Only the time-in-level requirement is evaluated here; the remaining
// preconditions are checked when the progression is actually requested.
func (s *Service) scanProgressionEligibility(ctx context.Context) (any, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT DISTINCT ON (u.id) u.id, u.name, COALESCE(r.min_time_months, 0), r.type
    FROM users u
    JOIN progression_rules r ON r.from_position_id = u.track_position_id
    WHERE u.active
      AND u.position_start_date IS NOT NULL
      AND (r.min_time_months IS NULL
        OR u.position_start_date <= now() - (r.min_time_months || ' months')::interval)
      AND NOT EXISTS (
        SELECT 1 FROM notifications n
        WHERE n.user_id = u.id
          AND n.type = $1
          AND n.created_at > now() - $2::interval
      )
    ORDER BY u.id, COALESCE(r.min_time_months, 0)
  `, notifications.TypeProgressionEligible, eligibilityCooldown)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []eligibleUser
	for rows.Next() {
		var u eligibleUser
		if err := rows.Scan(&u.ID, &u.Name, &u.MinTime, &u.RuleType); err != nil {
			return nil, err
		}
		candidates = append(candidates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	notified := 0
	for _, u := range candidates {
		err := s.Notify.Create(ctx, u.ID,
			notifications.TypeProgressionEligible,
			"Progressão disponível",
			fmt.Sprintf("Você cumpre o tempo mínimo para uma progressão %s. Fale com sua liderança.", u.RuleType))
		if err != nil {
			slog.Warn("eligibility notification failed", "userId", u.ID, "err", err)
			continue
		}
		notified++
	}
	return map[string]any{"candidates": len(candidates), "notified": notified}, nil
}
