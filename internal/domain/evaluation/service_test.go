package evaluation

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	evaluations map[string]Evaluation
	meetings    map[string]ConsensusMeeting
	nextID      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		evaluations: map[string]Evaluation{},
		meetings:    map[string]ConsensusMeeting{},
	}
}

func (f *fakeStore) id() string {
	f.nextID++
	return string(rune('a' + f.nextID - 1))
}

func (f *fakeStore) CreateEvaluation(_ context.Context, eval Evaluation) (Evaluation, error) {
	eval.ID = f.id()
	f.evaluations[eval.ID] = eval
	return eval, nil
}

func (f *fakeStore) GetEvaluation(_ context.Context, evaluationID string) (Evaluation, error) {
	eval, ok := f.evaluations[evaluationID]
	if !ok {
		return Evaluation{}, ErrEvaluationNotFound
	}
	return eval, nil
}

func (f *fakeStore) ListUserEvaluations(_ context.Context, userID string) ([]Evaluation, error) {
	var out []Evaluation
	for _, eval := range f.evaluations {
		if eval.UserID == userID {
			out = append(out, eval)
		}
	}
	return out, nil
}

func (f *fakeStore) LatestCompletedFinalScore(_ context.Context, userID string) (float64, bool, error) {
	var latest Evaluation
	var found bool
	for _, eval := range f.evaluations {
		if eval.UserID == userID && eval.Status == StatusCompleted {
			if !found || eval.EvaluatedAt.After(latest.EvaluatedAt) {
				latest, found = eval, true
			}
		}
	}
	if !found {
		return 0, false, nil
	}
	return latest.FinalScore, true, nil
}

func (f *fakeStore) CreateConsensusMeeting(_ context.Context, userID, cycleID string) (ConsensusMeeting, error) {
	meeting := ConsensusMeeting{ID: f.id(), UserID: userID, CycleID: cycleID, Status: StatusPending}
	f.meetings[meeting.ID] = meeting
	return meeting, nil
}

func (f *fakeStore) GetConsensusMeeting(_ context.Context, meetingID string) (ConsensusMeeting, error) {
	meeting, ok := f.meetings[meetingID]
	if !ok {
		return ConsensusMeeting{}, ErrMeetingNotFound
	}
	return meeting, nil
}

func (f *fakeStore) CompleteConsensus(_ context.Context, meetingID string, performance, potential float64, nineBox, notes string) (ConsensusMeeting, error) {
	meeting, ok := f.meetings[meetingID]
	if !ok {
		return ConsensusMeeting{}, ErrMeetingNotFound
	}
	now := time.Now()
	meeting.PerformanceScore = performance
	meeting.PotentialScore = potential
	meeting.NineBoxPosition = nineBox
	meeting.Notes = notes
	meeting.Status = StatusCompleted
	meeting.CompletedAt = &now
	f.meetings[meetingID] = meeting
	return meeting, nil
}

func TestSubmitDerivesScores(t *testing.T) {
	svc := NewService(newFakeStore())

	eval, err := svc.Submit(context.Background(), KindLeader, "user-1", "leader-1", "", []Competency{
		{Name: "Go", Category: CategoryTechnical, Score: 4},
		{Name: "SQL", Category: CategoryTechnical, Score: 3},
		{Name: "Comunicação", Category: CategoryBehavioral, Score: 5},
		{Name: "Entregas no prazo", Category: CategoryDeliveries, Score: 4},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if eval.TechnicalScore != 3.5 || eval.BehavioralScore != 5 || eval.DeliveriesScore != 4 {
		t.Fatalf("category scores = %v/%v/%v", eval.TechnicalScore, eval.BehavioralScore, eval.DeliveriesScore)
	}
	if eval.FinalScore != 4 {
		t.Fatalf("final score = %v, want 4", eval.FinalScore)
	}
	if eval.Status != StatusCompleted {
		t.Fatalf("status = %q, want %q", eval.Status, StatusCompleted)
	}
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	if _, err := svc.Submit(ctx, KindSelf, "user-1", "user-1", "", nil); !errors.Is(err, ErrNoCompetencies) {
		t.Fatalf("empty competencies: err = %v", err)
	}
	if _, err := svc.Submit(ctx, KindSelf, "user-1", "user-1", "", []Competency{
		{Name: "X", Category: "leadership", Score: 3},
	}); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("unknown category: err = %v", err)
	}
	if _, err := svc.Submit(ctx, KindSelf, "user-1", "user-1", "", []Competency{
		{Name: "X", Category: CategoryTechnical, Score: 5.5},
	}); !errors.Is(err, ErrScoreOutOfRange) {
		t.Fatalf("score above range: err = %v", err)
	}
	if _, err := svc.Submit(ctx, KindSelf, "user-1", "user-1", "", []Competency{
		{Name: "X", Category: CategoryTechnical, Score: -1},
	}); !errors.Is(err, ErrScoreOutOfRange) {
		t.Fatalf("negative score: err = %v", err)
	}
}

func TestLatestFinalScore(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	if _, found, err := svc.LatestFinalScore(ctx, "user-1"); err != nil || found {
		t.Fatalf("no evaluations: found=%v err=%v", found, err)
	}

	if _, err := svc.Submit(ctx, KindLeader, "user-1", "leader-1", "", []Competency{
		{Name: "Go", Category: CategoryTechnical, Score: 4},
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	score, found, err := svc.LatestFinalScore(ctx, "user-1")
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if score != 4 {
		t.Fatalf("latest final score = %v, want 4", score)
	}
}

func TestCompleteConsensus(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	meeting, err := svc.CreateMeeting(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("CreateMeeting: %v", err)
	}

	done, err := svc.CompleteConsensus(ctx, meeting.ID, 4.2, 4.8, "pronto para promoção")
	if err != nil {
		t.Fatalf("CompleteConsensus: %v", err)
	}
	if done.NineBoxPosition != "Estrela" {
		t.Fatalf("nine box = %q, want Estrela", done.NineBoxPosition)
	}
	if done.Status != StatusCompleted || done.CompletedAt == nil {
		t.Fatalf("meeting not closed: status=%q completedAt=%v", done.Status, done.CompletedAt)
	}

	if _, err := svc.CompleteConsensus(ctx, meeting.ID, 3, 3, ""); !errors.Is(err, ErrMeetingCompleted) {
		t.Fatalf("second completion: err = %v", err)
	}

	if _, err := svc.CompleteConsensus(ctx, "missing", 3, 3, ""); !errors.Is(err, ErrMeetingNotFound) {
		t.Fatalf("missing meeting: err = %v", err)
	}
}
