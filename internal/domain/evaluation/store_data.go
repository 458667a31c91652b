package evaluation

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

// CreateEvaluation inserts the header and its competency rows in one
// transaction.
func (s *Store) CreateEvaluation(ctx context.Context, eval Evaluation) (Evaluation, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Evaluation{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
    INSERT INTO evaluations
      (user_id, evaluator_id, kind, cycle_id, technical_score, behavioral_score,
       deliveries_score, final_score, status, evaluated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, eval.UserID, eval.EvaluatorID, eval.Kind, nullIfEmpty(eval.CycleID), eval.TechnicalScore,
		eval.BehavioralScore, eval.DeliveriesScore, eval.FinalScore, eval.Status, eval.EvaluatedAt).Scan(&eval.ID)
	if err != nil {
		return Evaluation{}, err
	}

	for i, competency := range eval.Competencies {
		err = tx.QueryRow(ctx, `
      INSERT INTO evaluation_competencies (evaluation_id, name, category, score, written_response)
      VALUES ($1,$2,$3,$4,$5)
      RETURNING id
    `, eval.ID, competency.Name, competency.Category, competency.Score,
			nullIfEmpty(competency.WrittenResponse)).Scan(&eval.Competencies[i].ID)
		if err != nil {
			return Evaluation{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Evaluation{}, err
	}
	return eval, nil
}

func (s *Store) GetEvaluation(ctx context.Context, evaluationID string) (Evaluation, error) {
	var eval Evaluation
	err := s.DB.QueryRow(ctx, `
    SELECT id, user_id, evaluator_id, kind, COALESCE(cycle_id::text, ''), technical_score,
           behavioral_score, deliveries_score, final_score, status, evaluated_at
    FROM evaluations
    WHERE id = $1
  `, evaluationID).Scan(&eval.ID, &eval.UserID, &eval.EvaluatorID, &eval.Kind, &eval.CycleID,
		&eval.TechnicalScore, &eval.BehavioralScore, &eval.DeliveriesScore, &eval.FinalScore, &eval.Status, &eval.EvaluatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Evaluation{}, ErrEvaluationNotFound
	}
	if err != nil {
		return Evaluation{}, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id, name, category, score, COALESCE(written_response, '')
    FROM evaluation_competencies
    WHERE evaluation_id = $1
    ORDER BY created_at
  `, evaluationID)
	if err != nil {
		return Evaluation{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var competency Competency
		if err := rows.Scan(&competency.ID, &competency.Name, &competency.Category, &competency.Score, &competency.WrittenResponse); err != nil {
			return Evaluation{}, err
		}
		eval.Competencies = append(eval.Competencies, competency)
	}
	return eval, nil
}

func (s *Store) ListUserEvaluations(ctx context.Context, userID string) ([]Evaluation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, evaluator_id, kind, COALESCE(cycle_id::text, ''), technical_score,
           behavioral_score, deliveries_score, final_score, status, evaluated_at
    FROM evaluations
    WHERE user_id = $1
    ORDER BY evaluated_at DESC
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		var eval Evaluation
		if err := rows.Scan(&eval.ID, &eval.UserID, &eval.EvaluatorID, &eval.Kind, &eval.CycleID,
			&eval.TechnicalScore, &eval.BehavioralScore, &eval.DeliveriesScore, &eval.FinalScore, &eval.Status, &eval.EvaluatedAt); err != nil {
			return nil, err
		}
		out = append(out, eval)
	}
	return out, nil
}

func (s *Store) LatestCompletedFinalScore(ctx context.Context, userID string) (float64, bool, error) {
	var score float64
	err := s.DB.QueryRow(ctx, `
    SELECT final_score
    FROM evaluations
    WHERE user_id = $1 AND status = $2
    ORDER BY evaluated_at DESC
    LIMIT 1
  `, userID, StatusCompleted).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}

func (s *Store) CreateConsensusMeeting(ctx context.Context, userID, cycleID string) (ConsensusMeeting, error) {
	meeting := ConsensusMeeting{UserID: userID, CycleID: cycleID, Status: StatusPending}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO consensus_meetings (user_id, cycle_id, status)
    VALUES ($1,$2,$3)
    RETURNING id
  `, userID, nullIfEmpty(cycleID), StatusPending).Scan(&meeting.ID)
	if err != nil {
		return ConsensusMeeting{}, err
	}
	return meeting, nil
}

func (s *Store) GetConsensusMeeting(ctx context.Context, meetingID string) (ConsensusMeeting, error) {
	var meeting ConsensusMeeting
	err := s.DB.QueryRow(ctx, `
    SELECT id, user_id, COALESCE(cycle_id::text, ''), status,
           COALESCE(consensus_performance_score, 0), COALESCE(consensus_potential_score, 0),
           COALESCE(nine_box_position, ''), COALESCE(notes, ''), completed_at
    FROM consensus_meetings
    WHERE id = $1
  `, meetingID).Scan(&meeting.ID, &meeting.UserID, &meeting.CycleID, &meeting.Status,
		&meeting.PerformanceScore, &meeting.PotentialScore, &meeting.NineBoxPosition, &meeting.Notes, &meeting.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ConsensusMeeting{}, ErrMeetingNotFound
	}
	return meeting, err
}

func (s *Store) CompleteConsensus(ctx context.Context, meetingID string, performance, potential float64, nineBox, notes string) (ConsensusMeeting, error) {
	var meeting ConsensusMeeting
	err := s.DB.QueryRow(ctx, `
    UPDATE consensus_meetings
    SET consensus_performance_score = $1, consensus_potential_score = $2,
        nine_box_position = $3, notes = $4, status = $5, completed_at = now()
    WHERE id = $6
    RETURNING id, user_id, COALESCE(cycle_id::text, ''), status,
              consensus_performance_score, consensus_potential_score,
              nine_box_position, COALESCE(notes, ''), completed_at
  `, performance, potential, nineBox, nullIfEmpty(notes), StatusCompleted, meetingID).Scan(
		&meeting.ID, &meeting.UserID, &meeting.CycleID, &meeting.Status,
		&meeting.PerformanceScore, &meeting.PotentialScore, &meeting.NineBoxPosition, &meeting.Notes, &meeting.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ConsensusMeeting{}, ErrMeetingNotFound
	}
	return meeting, err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
