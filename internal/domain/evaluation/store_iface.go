package evaluation

import "context"

type StoreAPI interface {
	CreateEvaluation(ctx context.Context, eval Evaluation) (Evaluation, error)
	GetEvaluation(ctx context.Context, evaluationID string) (Evaluation, error)
	ListUserEvaluations(ctx context.Context, userID string) ([]Evaluation, error)
	LatestCompletedFinalScore(ctx context.Context, userID string) (float64, bool, error)
	CreateConsensusMeeting(ctx context.Context, userID, cycleID string) (ConsensusMeeting, error)
	GetConsensusMeeting(ctx context.Context, meetingID string) (ConsensusMeeting, error)
	CompleteConsensus(ctx context.Context, meetingID string, performance, potential float64, nineBox, notes string) (ConsensusMeeting, error)
}
