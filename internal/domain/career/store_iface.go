package career

import "context"

type StoreAPI interface {
	GetUser(ctx context.Context, userID string) (User, error)
	GetTrackPosition(ctx context.Context, positionID string) (TrackPosition, error)
	GetCareerTrack(ctx context.Context, trackID string) (CareerTrack, error)
	GetSalaryLevel(ctx context.Context, levelID string) (SalaryLevel, error)
	ListSalaryLevels(ctx context.Context) ([]SalaryLevel, error)
	ListCareerTracks(ctx context.Context) ([]CareerTrack, error)
	ListTrackPositions(ctx context.Context, trackID string) ([]TrackPosition, error)
	GetProgressionRule(ctx context.Context, fromPositionID, toPositionID, progressionType string) (ProgressionRule, error)
	ListProgressionRules(ctx context.Context) ([]ProgressionRule, error)
	OpenVacancies(ctx context.Context, positionID string) (int, error)
	UserCertifications(ctx context.Context, userID string) ([]string, error)
	UserProjectCount(ctx context.Context, userID string) (int, error)
	AssignTrack(ctx context.Context, userID, positionID, levelID string, salary float64) (User, error)
	ExecuteProgression(ctx context.Context, record ProgressionRecord) (ProgressionHistory, User, error)
	ListProgressionHistory(ctx context.Context, userID string) ([]ProgressionHistory, error)
}
