package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) SalaryOverview(ctx context.Context) ([]SalaryOverviewRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT t.id, t.name, p.id, p.job_position, p.order_index, p.base_salary,
           COUNT(u.id),
           COALESCE(AVG(u.current_salary), 0),
           COALESCE(MIN(u.current_salary), 0),
           COALESCE(MAX(u.current_salary), 0)
    FROM track_positions p
    JOIN career_tracks t ON p.track_id = t.id
    LEFT JOIN users u ON u.track_position_id = p.id AND u.active = true
    GROUP BY t.id, t.name, p.id, p.job_position, p.order_index, p.base_salary
    ORDER BY t.name, p.order_index
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SalaryOverviewRow
	for rows.Next() {
		var row SalaryOverviewRow
		if err := rows.Scan(&row.TrackID, &row.TrackName, &row.PositionID, &row.PositionName,
			&row.OrderIndex, &row.BaseSalary, &row.Headcount, &row.AverageSalary,
			&row.MinSalary, &row.MaxSalary); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// NineBoxDistribution counts employees per nine-box cell using each
// employee's most recent completed consensus meeting only.
func (s *Store) NineBoxDistribution(ctx context.Context) ([]NineBoxCell, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT nine_box_position, COUNT(1)
    FROM (
      SELECT DISTINCT ON (user_id) user_id, nine_box_position
      FROM consensus_meetings
      WHERE status = 'completed' AND nine_box_position IS NOT NULL
      ORDER BY user_id, completed_at DESC
    ) latest
    GROUP BY nine_box_position
    ORDER BY COUNT(1) DESC, nine_box_position
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NineBoxCell
	for rows.Next() {
		var cell NineBoxCell
		if err := rows.Scan(&cell.Position, &cell.Count); err != nil {
			return nil, err
		}
		out = append(out, cell)
	}
	return out, rows.Err()
}

func (s *Store) ProgressionSummary(ctx context.Context, since time.Time) (ProgressionSummary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT type, COUNT(1)
    FROM progression_history
    WHERE created_at >= $1
    GROUP BY type
  `, since)
	if err != nil {
		return ProgressionSummary{}, err
	}
	defer rows.Close()

	var summary ProgressionSummary
	for rows.Next() {
		var progressionType string
		var count int
		if err := rows.Scan(&progressionType, &count); err != nil {
			return ProgressionSummary{}, err
		}
		switch progressionType {
		case "horizontal":
			summary.Horizontal = count
		case "vertical":
			summary.Vertical = count
		case "merit":
			summary.Merit = count
		}
		summary.Total += count
	}
	return summary, rows.Err()
}
