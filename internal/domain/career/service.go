package career

import "context"

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

type SalaryCalculation struct {
	BaseSalary       float64 `json:"baseSalary"`
	LevelPercentage  float64 `json:"levelPercentage"`
	CalculatedSalary float64 `json:"calculatedSalary"`
}

func (s *Service) CalculateForPosition(ctx context.Context, trackPositionID, salaryLevelID string) (SalaryCalculation, error) {
	position, err := s.store.GetTrackPosition(ctx, trackPositionID)
	if err != nil {
		return SalaryCalculation{}, err
	}
	level, err := s.store.GetSalaryLevel(ctx, salaryLevelID)
	if err != nil {
		return SalaryCalculation{}, err
	}
	pct := LevelPercentage(position, level)
	return SalaryCalculation{
		BaseSalary:       position.BaseSalary,
		LevelPercentage:  pct,
		CalculatedSalary: CalculateSalary(position.BaseSalary, pct),
	}, nil
}

func (s *Service) SalaryTableForPosition(ctx context.Context, trackPositionID string) ([]SalaryTableRow, error) {
	position, err := s.store.GetTrackPosition(ctx, trackPositionID)
	if err != nil {
		return nil, err
	}
	levels, err := s.store.ListSalaryLevels(ctx)
	if err != nil {
		return nil, err
	}
	return SalaryTable(position, levels), nil
}

// AssignTrack places a user on a position/level and updates the current
// salary. Business rules must have been checked through the Validator first.
func (s *Service) AssignTrack(ctx context.Context, userID, trackPositionID, salaryLevelID string) (User, error) {
	calc, err := s.CalculateForPosition(ctx, trackPositionID, salaryLevelID)
	if err != nil {
		return User{}, err
	}
	return s.store.AssignTrack(ctx, userID, trackPositionID, salaryLevelID, calc.CalculatedSalary)
}

// Progress executes an already-validated progression: one history row plus
// the user position/level/salary update, atomically. It performs no
// validation of its own.
func (s *Service) Progress(ctx context.Context, userID, toPositionID, toLevelID, progressionType, reason, approvedBy string) (ProgressionHistory, User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return ProgressionHistory{}, User{}, err
	}
	calc, err := s.CalculateForPosition(ctx, toPositionID, toLevelID)
	if err != nil {
		return ProgressionHistory{}, User{}, err
	}

	return s.store.ExecuteProgression(ctx, ProgressionRecord{
		UserID:         userID,
		FromPositionID: user.TrackPositionID,
		ToPositionID:   toPositionID,
		FromLevelID:    user.SalaryLevelID,
		ToLevelID:      toLevelID,
		FromSalary:     user.CurrentSalary,
		ToSalary:       calc.CalculatedSalary,
		Type:           progressionType,
		Reason:         reason,
		ApprovedBy:     approvedBy,
	})
}

func (s *Service) History(ctx context.Context, userID string) ([]ProgressionHistory, error) {
	return s.store.ListProgressionHistory(ctx, userID)
}

func (s *Service) User(ctx context.Context, userID string) (User, error) {
	return s.store.GetUser(ctx, userID)
}

func (s *Service) Tracks(ctx context.Context) ([]CareerTrack, error) {
	return s.store.ListCareerTracks(ctx)
}

func (s *Service) TrackPositions(ctx context.Context, trackID string) ([]TrackPosition, error) {
	return s.store.ListTrackPositions(ctx, trackID)
}

func (s *Service) Levels(ctx context.Context) ([]SalaryLevel, error) {
	return s.store.ListSalaryLevels(ctx)
}

func (s *Service) Rules(ctx context.Context) ([]ProgressionRule, error) {
	return s.store.ListProgressionRules(ctx)
}
