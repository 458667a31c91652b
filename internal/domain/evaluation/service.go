package evaluation

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

// Submit derives the category and final scores from the competency rows and
// persists the evaluation as completed. The same derivation applies to self
// and leader evaluations.
func (s *Service) Submit(ctx context.Context, kind, userID, evaluatorID, cycleID string, competencies []Competency) (Evaluation, error) {
	if len(competencies) == 0 {
		return Evaluation{}, ErrNoCompetencies
	}
	for _, competency := range competencies {
		if !knownCategory(competency.Category) {
			return Evaluation{}, ErrUnknownCategory
		}
		if competency.Score < 0 || competency.Score > 5 {
			return Evaluation{}, ErrScoreOutOfRange
		}
	}

	eval := Evaluation{
		UserID:          userID,
		EvaluatorID:     evaluatorID,
		Kind:            kind,
		CycleID:         cycleID,
		TechnicalScore:  CategoryScore(competencies, CategoryTechnical),
		BehavioralScore: CategoryScore(competencies, CategoryBehavioral),
		DeliveriesScore: CategoryScore(competencies, CategoryDeliveries),
		FinalScore:      FinalScore(competencies),
		Status:          StatusCompleted,
		EvaluatedAt:     time.Now(),
		Competencies:    competencies,
	}
	return s.store.CreateEvaluation(ctx, eval)
}

// LatestFinalScore reports the most recent completed evaluation's final
// score; the progression validator consumes this for the performance rule.
func (s *Service) LatestFinalScore(ctx context.Context, userID string) (float64, bool, error) {
	return s.store.LatestCompletedFinalScore(ctx, userID)
}

func (s *Service) Get(ctx context.Context, evaluationID string) (Evaluation, error) {
	return s.store.GetEvaluation(ctx, evaluationID)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Evaluation, error) {
	return s.store.ListUserEvaluations(ctx, userID)
}

func (s *Service) CreateMeeting(ctx context.Context, userID, cycleID string) (ConsensusMeeting, error) {
	return s.store.CreateConsensusMeeting(ctx, userID, cycleID)
}

func (s *Service) Meeting(ctx context.Context, meetingID string) (ConsensusMeeting, error) {
	return s.store.GetConsensusMeeting(ctx, meetingID)
}

// CompleteConsensus reconciles the agreed performance/potential pair, derives
// the nine-box label and closes the meeting.
func (s *Service) CompleteConsensus(ctx context.Context, meetingID string, performance, potential float64, notes string) (ConsensusMeeting, error) {
	meeting, err := s.store.GetConsensusMeeting(ctx, meetingID)
	if err != nil {
		return ConsensusMeeting{}, err
	}
	if meeting.Status == StatusCompleted {
		return ConsensusMeeting{}, ErrMeetingCompleted
	}
	label := ClassifyNineBox(performance, potential)
	return s.store.CompleteConsensus(ctx, meetingID, performance, potential, label, notes)
}

func knownCategory(category string) bool {
	for _, known := range Categories {
		if category == known {
			return true
		}
	}
	return false
}
