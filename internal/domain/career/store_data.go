package career

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

const userColumns = `
    u.id, u.name, u.email, COALESCE(u.department, ''), u.active, u.leader, u.director,
    COALESCE(u.track_position_id::text, ''), COALESCE(u.salary_level_id::text, ''),
    COALESCE(u.current_salary, 0), u.position_start_date`

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Department, &user.Active, &user.Leader, &user.Director,
		&user.TrackPositionID, &user.SalaryLevelID, &user.CurrentSalary, &user.PositionStartDate)
	return user, err
}

func (s *Store) GetUser(ctx context.Context, userID string) (User, error) {
	user, err := scanUser(s.DB.QueryRow(ctx, "SELECT"+userColumns+" FROM users u WHERE u.id = $1", userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return user, err
}

func (s *Store) GetTrackPosition(ctx context.Context, positionID string) (TrackPosition, error) {
	var position TrackPosition
	err := s.DB.QueryRow(ctx, `
    SELECT p.id, p.track_id, p.job_position, p.salary_class_id, c.name, p.base_salary,
           p.order_index, p.multifunctional, p.vacancies
    FROM track_positions p
    JOIN salary_classes c ON p.salary_class_id = c.id
    WHERE p.id = $1
  `, positionID).Scan(&position.ID, &position.TrackID, &position.JobPosition, &position.SalaryClassID,
		&position.SalaryClassName, &position.BaseSalary, &position.OrderIndex, &position.Multifunctional, &position.Vacancies)
	if errors.Is(err, pgx.ErrNoRows) {
		return TrackPosition{}, ErrPositionNotFound
	}
	if err != nil {
		return TrackPosition{}, err
	}

	overrides, err := s.levelOverrides(ctx, positionID)
	if err != nil {
		return TrackPosition{}, err
	}
	position.LevelOverrides = overrides
	return position, nil
}

func (s *Store) levelOverrides(ctx context.Context, positionID string) (map[string]float64, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT salary_level_id, percentage
    FROM track_position_level_overrides
    WHERE track_position_id = $1
  `, positionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := map[string]float64{}
	for rows.Next() {
		var levelID string
		var pct float64
		if err := rows.Scan(&levelID, &pct); err != nil {
			return nil, err
		}
		overrides[levelID] = pct
	}
	if len(overrides) == 0 {
		return nil, nil
	}
	return overrides, nil
}

func (s *Store) GetCareerTrack(ctx context.Context, trackID string) (CareerTrack, error) {
	var track CareerTrack
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, COALESCE(department, ''), active
    FROM career_tracks
    WHERE id = $1
  `, trackID).Scan(&track.ID, &track.Name, &track.Department, &track.Active)
	return track, err
}

func (s *Store) GetSalaryLevel(ctx context.Context, levelID string) (SalaryLevel, error) {
	var level SalaryLevel
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, percentage, order_index
    FROM salary_levels
    WHERE id = $1
  `, levelID).Scan(&level.ID, &level.Name, &level.Percentage, &level.OrderIndex)
	if errors.Is(err, pgx.ErrNoRows) {
		return SalaryLevel{}, ErrLevelNotFound
	}
	return level, err
}

func (s *Store) ListSalaryLevels(ctx context.Context) ([]SalaryLevel, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, percentage, order_index FROM salary_levels ORDER BY order_index")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []SalaryLevel
	for rows.Next() {
		var level SalaryLevel
		if err := rows.Scan(&level.ID, &level.Name, &level.Percentage, &level.OrderIndex); err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, nil
}

func (s *Store) ListCareerTracks(ctx context.Context) ([]CareerTrack, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, COALESCE(department, ''), active FROM career_tracks ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []CareerTrack
	for rows.Next() {
		var track CareerTrack
		if err := rows.Scan(&track.ID, &track.Name, &track.Department, &track.Active); err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

func (s *Store) ListTrackPositions(ctx context.Context, trackID string) ([]TrackPosition, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, p.track_id, p.job_position, p.salary_class_id, c.name, p.base_salary,
           p.order_index, p.multifunctional, p.vacancies
    FROM track_positions p
    JOIN salary_classes c ON p.salary_class_id = c.id
    WHERE p.track_id = $1
    ORDER BY p.order_index
  `, trackID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []TrackPosition
	for rows.Next() {
		var position TrackPosition
		if err := rows.Scan(&position.ID, &position.TrackID, &position.JobPosition, &position.SalaryClassID,
			&position.SalaryClassName, &position.BaseSalary, &position.OrderIndex, &position.Multifunctional, &position.Vacancies); err != nil {
			return nil, err
		}
		positions = append(positions, position)
	}
	return positions, nil
}

func (s *Store) GetProgressionRule(ctx context.Context, fromPositionID, toPositionID, progressionType string) (ProgressionRule, error) {
	var rule ProgressionRule
	err := s.DB.QueryRow(ctx, `
    SELECT id, from_position_id, to_position_id, type, min_time_months, performance_requirement,
           COALESCE(certifications, '{}'), COALESCE(minimum_projects, 0)
    FROM progression_rules
    WHERE from_position_id = $1 AND to_position_id = $2 AND type = $3
  `, fromPositionID, toPositionID, progressionType).Scan(&rule.ID, &rule.FromPositionID, &rule.ToPositionID,
		&rule.Type, &rule.MinTimeMonths, &rule.PerformanceRequirement, &rule.Additional.Certifications, &rule.Additional.MinimumProjects)
	if errors.Is(err, pgx.ErrNoRows) {
		return ProgressionRule{}, ErrRuleNotFound
	}
	return rule, err
}

func (s *Store) ListProgressionRules(ctx context.Context) ([]ProgressionRule, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, from_position_id, to_position_id, type, min_time_months, performance_requirement,
           COALESCE(certifications, '{}'), COALESCE(minimum_projects, 0)
    FROM progression_rules
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []ProgressionRule
	for rows.Next() {
		var rule ProgressionRule
		if err := rows.Scan(&rule.ID, &rule.FromPositionID, &rule.ToPositionID, &rule.Type, &rule.MinTimeMonths,
			&rule.PerformanceRequirement, &rule.Additional.Certifications, &rule.Additional.MinimumProjects); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (s *Store) OpenVacancies(ctx context.Context, positionID string) (int, error) {
	var open int
	err := s.DB.QueryRow(ctx, `
    SELECT p.vacancies - COUNT(u.id)
    FROM track_positions p
    LEFT JOIN users u ON u.track_position_id = p.id AND u.active = true
    WHERE p.id = $1
    GROUP BY p.vacancies
  `, positionID).Scan(&open)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrPositionNotFound
	}
	return open, err
}

func (s *Store) UserCertifications(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT name FROM user_certifications WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *Store) UserProjectCount(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM user_projects WHERE user_id = $1 AND completed_at IS NOT NULL", userID).Scan(&count)
	return count, err
}

func (s *Store) AssignTrack(ctx context.Context, userID, positionID, levelID string, salary float64) (User, error) {
	user, err := scanUser(s.DB.QueryRow(ctx, `
    UPDATE users u
    SET track_position_id = $1, salary_level_id = $2, current_salary = $3, position_start_date = now()
    WHERE u.id = $4
    RETURNING`+userColumns, positionID, levelID, salary, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return user, err
}

// ExecuteProgression writes the history row and mutates the user's current
// position inside one transaction so a fault cannot leave a half-applied
// progression behind.
func (s *Store) ExecuteProgression(ctx context.Context, record ProgressionRecord) (ProgressionHistory, User, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return ProgressionHistory{}, User{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	history := ProgressionHistory{
		UserID:         record.UserID,
		FromPositionID: record.FromPositionID,
		ToPositionID:   record.ToPositionID,
		FromLevelID:    record.FromLevelID,
		ToLevelID:      record.ToLevelID,
		FromSalary:     record.FromSalary,
		ToSalary:       record.ToSalary,
		Type:           record.Type,
		Reason:         record.Reason,
		ApprovedBy:     record.ApprovedBy,
	}
	err = tx.QueryRow(ctx, `
    INSERT INTO progression_history
      (user_id, from_position_id, to_position_id, from_level_id, to_level_id,
       from_salary, to_salary, type, reason, approved_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id, created_at
  `, record.UserID, nullIfEmpty(record.FromPositionID), record.ToPositionID, nullIfEmpty(record.FromLevelID),
		record.ToLevelID, record.FromSalary, record.ToSalary, record.Type, record.Reason,
		nullIfEmpty(record.ApprovedBy)).Scan(&history.ID, &history.CreatedAt)
	if err != nil {
		return ProgressionHistory{}, User{}, err
	}

	user, err := scanUser(tx.QueryRow(ctx, `
    UPDATE users u
    SET track_position_id = $1, salary_level_id = $2, current_salary = $3, position_start_date = now()
    WHERE u.id = $4
    RETURNING`+userColumns, record.ToPositionID, record.ToLevelID, record.ToSalary, record.UserID))
	if err != nil {
		return ProgressionHistory{}, User{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return ProgressionHistory{}, User{}, err
	}
	return history, user, nil
}

func (s *Store) ListProgressionHistory(ctx context.Context, userID string) ([]ProgressionHistory, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, COALESCE(from_position_id::text, ''), to_position_id,
           COALESCE(from_level_id::text, ''), to_level_id, from_salary, to_salary,
           type, COALESCE(reason, ''), COALESCE(approved_by::text, ''), created_at
    FROM progression_history
    WHERE user_id = $1
    ORDER BY created_at DESC
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProgressionHistory
	for rows.Next() {
		var h ProgressionHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.FromPositionID, &h.ToPositionID, &h.FromLevelID, &h.ToLevelID,
			&h.FromSalary, &h.ToSalary, &h.Type, &h.Reason, &h.ApprovedBy, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
