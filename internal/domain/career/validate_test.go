package career

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

type fakeStore struct {
	users     map[string]User
	positions map[string]TrackPosition
	tracks    map[string]CareerTrack
	levels    map[string]SalaryLevel
	rules     map[string]ProgressionRule
	vacancies map[string]int
	certs     map[string][]string
	projects  map[string]int
	history   map[string][]ProgressionHistory
	failWith  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[string]User{},
		positions: map[string]TrackPosition{},
		tracks:    map[string]CareerTrack{},
		levels:    map[string]SalaryLevel{},
		rules:     map[string]ProgressionRule{},
		vacancies: map[string]int{},
		certs:     map[string][]string{},
		projects:  map[string]int{},
		history:   map[string][]ProgressionHistory{},
	}
}

func ruleKey(from, to, ptype string) string { return from + "|" + to + "|" + ptype }

func (f *fakeStore) GetUser(ctx context.Context, userID string) (User, error) {
	if f.failWith != nil {
		return User{}, f.failWith
	}
	user, ok := f.users[userID]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) GetTrackPosition(ctx context.Context, positionID string) (TrackPosition, error) {
	position, ok := f.positions[positionID]
	if !ok {
		return TrackPosition{}, ErrPositionNotFound
	}
	return position, nil
}

func (f *fakeStore) GetCareerTrack(ctx context.Context, trackID string) (CareerTrack, error) {
	return f.tracks[trackID], nil
}

func (f *fakeStore) GetSalaryLevel(ctx context.Context, levelID string) (SalaryLevel, error) {
	level, ok := f.levels[levelID]
	if !ok {
		return SalaryLevel{}, ErrLevelNotFound
	}
	return level, nil
}

func (f *fakeStore) ListSalaryLevels(ctx context.Context) ([]SalaryLevel, error) {
	var out []SalaryLevel
	for _, level := range f.levels {
		out = append(out, level)
	}
	return out, nil
}

func (f *fakeStore) ListCareerTracks(ctx context.Context) ([]CareerTrack, error) { return nil, nil }

func (f *fakeStore) ListTrackPositions(ctx context.Context, trackID string) ([]TrackPosition, error) {
	return nil, nil
}

func (f *fakeStore) GetProgressionRule(ctx context.Context, from, to, ptype string) (ProgressionRule, error) {
	rule, ok := f.rules[ruleKey(from, to, ptype)]
	if !ok {
		return ProgressionRule{}, ErrRuleNotFound
	}
	return rule, nil
}

func (f *fakeStore) ListProgressionRules(ctx context.Context) ([]ProgressionRule, error) {
	return nil, nil
}

func (f *fakeStore) OpenVacancies(ctx context.Context, positionID string) (int, error) {
	return f.vacancies[positionID], nil
}

func (f *fakeStore) UserCertifications(ctx context.Context, userID string) ([]string, error) {
	return f.certs[userID], nil
}

func (f *fakeStore) UserProjectCount(ctx context.Context, userID string) (int, error) {
	return f.projects[userID], nil
}

func (f *fakeStore) AssignTrack(ctx context.Context, userID, positionID, levelID string, salary float64) (User, error) {
	user := f.users[userID]
	user.TrackPositionID = positionID
	user.SalaryLevelID = levelID
	user.CurrentSalary = salary
	f.users[userID] = user
	return user, nil
}

func (f *fakeStore) ExecuteProgression(ctx context.Context, record ProgressionRecord) (ProgressionHistory, User, error) {
	now := time.Now()
	history := ProgressionHistory{
		ID:             "hist-" + record.UserID,
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
		CreatedAt:      now,
	}
	f.history[record.UserID] = append([]ProgressionHistory{history}, f.history[record.UserID]...)

	user := f.users[record.UserID]
	user.TrackPositionID = record.ToPositionID
	user.SalaryLevelID = record.ToLevelID
	user.CurrentSalary = record.ToSalary
	user.PositionStartDate = &now
	f.users[record.UserID] = user
	return history, user, nil
}

func (f *fakeStore) ListProgressionHistory(ctx context.Context, userID string) ([]ProgressionHistory, error) {
	return f.history[userID], nil
}

type fakeEvals struct {
	score float64
	found bool
	err   error
}

func (f fakeEvals) LatestFinalScore(ctx context.Context, userID string) (float64, bool, error) {
	return f.score, f.found, f.err
}

func assignmentFixture() *fakeStore {
	store := newFakeStore()
	store.users["user-1"] = User{ID: "user-1", Department: "engineering", Active: true, CurrentSalary: 10000}
	store.tracks["track-1"] = CareerTrack{ID: "track-1", Department: "engineering", Active: true}
	store.positions["pos-1"] = TrackPosition{ID: "pos-1", TrackID: "track-1", SalaryClassID: "class-1", BaseSalary: 10000}
	store.levels["level-a"] = SalaryLevel{ID: "level-a", Name: "A", Percentage: 0, OrderIndex: 1}
	return store
}

func TestValidateTrackAssignmentInactiveUser(t *testing.T) {
	store := assignmentFixture()
	user := store.users["user-1"]
	user.Active = false
	store.users["user-1"] = user

	result := NewValidator(store, fakeEvals{}).ValidateTrackAssignment(context.Background(), "user-1", "pos-1", "level-a")
	if result.IsValid {
		t.Fatalf("expected invalid result, got %+v", result)
	}
	if !containsSubstring(result.Errors, "inactive") {
		t.Fatalf("expected inactive user error, got %v", result.Errors)
	}
}

func TestValidateTrackAssignmentInactiveTrack(t *testing.T) {
	store := assignmentFixture()
	track := store.tracks["track-1"]
	track.Active = false
	store.tracks["track-1"] = track

	result := NewValidator(store, fakeEvals{}).ValidateTrackAssignment(context.Background(), "user-1", "pos-1", "level-a")
	if result.IsValid || !containsSubstring(result.Errors, "track") {
		t.Fatalf("expected inactive track error, got %+v", result)
	}
}

func TestValidateTrackAssignmentDepartmentMismatchWarns(t *testing.T) {
	store := assignmentFixture()
	track := store.tracks["track-1"]
	track.Department = "finance"
	store.tracks["track-1"] = track

	result := NewValidator(store, fakeEvals{}).ValidateTrackAssignment(context.Background(), "user-1", "pos-1", "level-a")
	if !result.IsValid {
		t.Fatalf("department mismatch must not block, got %+v", result)
	}
	if !containsSubstring(result.Warnings, "department") {
		t.Fatalf("expected department warning, got %v", result.Warnings)
	}
}

func TestValidateTrackAssignmentLargeIncreaseWarns(t *testing.T) {
	store := assignmentFixture()
	position := store.positions["pos-1"]
	position.BaseSalary = 16000
	store.positions["pos-1"] = position

	result := NewValidator(store, fakeEvals{}).ValidateTrackAssignment(context.Background(), "user-1", "pos-1", "level-a")
	if !result.IsValid {
		t.Fatalf("a 60%% increase must not block, got %+v", result)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}
	if !containsSubstring(result.Warnings, "special approval") {
		t.Fatalf("expected approval warning, got %v", result.Warnings)
	}
}

func TestValidateTrackAssignmentLargeReductionBlocks(t *testing.T) {
	store := assignmentFixture()
	position := store.positions["pos-1"]
	position.BaseSalary = 7000
	store.positions["pos-1"] = position

	result := NewValidator(store, fakeEvals{}).ValidateTrackAssignment(context.Background(), "user-1", "pos-1", "level-a")
	if result.IsValid {
		t.Fatalf("a 30%% reduction must block, got %+v", result)
	}
	if !containsSubstring(result.Errors, "reduction") {
		t.Fatalf("expected salary reduction error, got %v", result.Errors)
	}
}

func TestValidateTrackAssignmentLookupFaultDegrades(t *testing.T) {
	store := assignmentFixture()
	store.failWith = errors.New("connection refused")

	result := NewValidator(store, fakeEvals{}).ValidateTrackAssignment(context.Background(), "user-1", "pos-1", "level-a")
	if result.IsValid {
		t.Fatalf("expected invalid result on lookup fault")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "validation failed") {
		t.Fatalf("expected one synthetic error, got %v", result.Errors)
	}
}

func progressionFixture() *fakeStore {
	store := newFakeStore()
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	store.users["user-1"] = User{
		ID: "user-1", Active: true, Department: "engineering",
		TrackPositionID: "pos-1", SalaryLevelID: "level-a",
		CurrentSalary: 10000, PositionStartDate: &start,
	}
	store.positions["pos-1"] = TrackPosition{ID: "pos-1", TrackID: "track-1", SalaryClassID: "class-1", BaseSalary: 10000}
	store.positions["pos-2"] = TrackPosition{ID: "pos-2", TrackID: "track-1", SalaryClassID: "class-2", BaseSalary: 12000}
	store.levels["level-a"] = SalaryLevel{ID: "level-a", Name: "A", Percentage: 0, OrderIndex: 1}
	return store
}

func validatorAt(store StoreAPI, evals EvaluationSource, now time.Time) *Validator {
	v := NewValidator(store, evals)
	v.now = func() time.Time { return now }
	return v
}

func TestValidateProgressionRuleNotFound(t *testing.T) {
	store := progressionFixture()

	result := NewValidator(store, fakeEvals{}).ValidateProgression(context.Background(), "user-1", "pos-1", "pos-2", ProgressionVertical)
	if result.IsValid {
		t.Fatalf("expected invalid result, got %+v", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "rule") {
		t.Fatalf("expected single rule-not-found error, got %v", result.Errors)
	}
}

func TestValidateProgressionMinTimeNotMet(t *testing.T) {
	store := progressionFixture()
	months := 12
	store.rules[ruleKey("pos-1", "pos-2", ProgressionVertical)] = ProgressionRule{
		FromPositionID: "pos-1", ToPositionID: "pos-2", Type: ProgressionVertical, MinTimeMonths: &months,
	}
	store.vacancies["pos-2"] = 1

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	result := validatorAt(store, fakeEvals{}, now).ValidateProgression(context.Background(), "user-1", "pos-1", "pos-2", ProgressionVertical)
	if result.IsValid {
		t.Fatalf("expected invalid result, got %+v", result)
	}
	if !containsSubstring(result.Errors, "12 months, user has 8") {
		t.Fatalf("expected min-time error with required and actual months, got %v", result.Errors)
	}
}

func TestValidateProgressionPerformanceRequirement(t *testing.T) {
	store := progressionFixture()
	required := 4.0
	store.rules[ruleKey("pos-1", "pos-2", ProgressionVertical)] = ProgressionRule{
		FromPositionID: "pos-1", ToPositionID: "pos-2", Type: ProgressionVertical, PerformanceRequirement: &required,
	}
	store.vacancies["pos-2"] = 1

	result := NewValidator(store, fakeEvals{score: 3.2, found: true}).ValidateProgression(context.Background(), "user-1", "pos-1", "pos-2", ProgressionVertical)
	if result.IsValid || !containsSubstring(result.Errors, "3.2") {
		t.Fatalf("expected score-below-requirement error, got %+v", result)
	}

	result = NewValidator(store, fakeEvals{found: false}).ValidateProgression(context.Background(), "user-1", "pos-1", "pos-2", ProgressionVertical)
	if result.IsValid || !containsSubstring(result.Errors, "no completed evaluation") {
		t.Fatalf("expected missing evaluation error, got %+v", result)
	}

	result = NewValidator(store, fakeEvals{score: 4.5, found: true}).ValidateProgression(context.Background(), "user-1", "pos-1", "pos-2", ProgressionVertical)
	if !result.IsValid {
		t.Fatalf("expected valid result when score meets requirement, got %+v", result)
	}
}

func TestValidateProgressionAdditionalRequirements(t *testing.T) {
	store := progressionFixture()
	store.rules[ruleKey("pos-1", "pos-2", ProgressionVertical)] = ProgressionRule{
		FromPositionID: "pos-1", ToPositionID: "pos-2", Type: ProgressionVertical,
		Additional: AdditionalRequirements{Certifications: []string{"PMP", "Scrum Master"}, MinimumProjects: 3},
	}
	store.vacancies["pos-2"] = 1
	store.certs["user-1"] = []string{"pmp"}
	store.projects["user-1"] = 2

	result := NewValidator(store, fakeEvals{}).ValidateProgression(context.Background(), "user-1", "pos-1", "pos-2", ProgressionVertical)
	if result.IsValid {
		t.Fatalf("expected invalid result, got %+v", result)
	}
	if !containsSubstring(result.Errors, "Scrum Master") {
		t.Fatalf("expected missing certification error, got %v", result.Errors)
	}
	if containsSubstring(result.Errors, "PMP") {
		t.Fatalf("certification match must be case-insensitive, got %v", result.Errors)
	}
	if !containsSubstring(result.Errors, "3 completed projects") {
		t.Fatalf("expected minimum projects error, got %v", result.Errors)
	}
}

func TestValidateProgressionVerticalNoVacancyWarns(t *testing.T) {
	store := progressionFixture()
	store.rules[ruleKey("pos-1", "pos-2", ProgressionVertical)] = ProgressionRule{
		FromPositionID: "pos-1", ToPositionID: "pos-2", Type: ProgressionVertical,
	}
	store.vacancies["pos-2"] = 0

	result := NewValidator(store, fakeEvals{}).ValidateProgression(context.Background(), "user-1", "pos-1", "pos-2", ProgressionVertical)
	if !result.IsValid {
		t.Fatalf("missing vacancy must not block, got %+v", result)
	}
	if !containsSubstring(result.Warnings, "vacancy") {
		t.Fatalf("expected vacancy warning, got %v", result.Warnings)
	}
}

func TestValidateProgressionHorizontalRequiresSameClass(t *testing.T) {
	store := progressionFixture()
	store.rules[ruleKey("pos-1", "pos-2", ProgressionHorizontal)] = ProgressionRule{
		FromPositionID: "pos-1", ToPositionID: "pos-2", Type: ProgressionHorizontal,
	}

	result := NewValidator(store, fakeEvals{}).ValidateProgression(context.Background(), "user-1", "pos-1", "pos-2", ProgressionHorizontal)
	if result.IsValid || !containsSubstring(result.Errors, "salary class") {
		t.Fatalf("expected salary class error, got %+v", result)
	}

	position := store.positions["pos-2"]
	position.SalaryClassID = "class-1"
	store.positions["pos-2"] = position

	result = NewValidator(store, fakeEvals{}).ValidateProgression(context.Background(), "user-1", "pos-1", "pos-2", ProgressionHorizontal)
	if !result.IsValid {
		t.Fatalf("expected valid result for same class, got %+v", result)
	}
}

func TestValidateProgressionMeritCurrentlyPasses(t *testing.T) {
	store := progressionFixture()
	store.rules[ruleKey("pos-1", "pos-2", ProgressionMerit)] = ProgressionRule{
		FromPositionID: "pos-1", ToPositionID: "pos-2", Type: ProgressionMerit,
	}

	result := NewValidator(store, fakeEvals{}).ValidateProgression(context.Background(), "user-1", "pos-1", "pos-2", ProgressionMerit)
	if !result.IsValid {
		t.Fatalf("merit criteria hook must currently pass, got %+v", result)
	}
}

func TestValidateProgressionIsDeterministic(t *testing.T) {
	store := progressionFixture()
	months := 12
	required := 4.0
	store.rules[ruleKey("pos-1", "pos-2", ProgressionVertical)] = ProgressionRule{
		FromPositionID: "pos-1", ToPositionID: "pos-2", Type: ProgressionVertical,
		MinTimeMonths: &months, PerformanceRequirement: &required,
	}

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	validator := validatorAt(store, fakeEvals{score: 3.0, found: true}, now)

	first := validator.ValidateProgression(context.Background(), "user-1", "pos-1", "pos-2", ProgressionVertical)
	second := validator.ValidateProgression(context.Background(), "user-1", "pos-1", "pos-2", ProgressionVertical)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestProgressRoundTrip(t *testing.T) {
	store := progressionFixture()
	store.levels["level-b"] = SalaryLevel{ID: "level-b", Name: "B", Percentage: 5, OrderIndex: 2}
	service := NewService(store)

	history, user, err := service.Progress(context.Background(), "user-1", "pos-2", "level-b", ProgressionVertical, "annual cycle", "director-1")
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if history.FromPositionID != "pos-1" || history.ToPositionID != "pos-2" {
		t.Fatalf("unexpected history positions: %+v", history)
	}
	if history.ToSalary != 12600 {
		t.Fatalf("expected to_salary 12600, got %v", history.ToSalary)
	}
	if user.TrackPositionID != "pos-2" || user.SalaryLevelID != "level-b" || user.CurrentSalary != 12600 {
		t.Fatalf("user row not updated: %+v", user)
	}

	records, err := service.History(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(records) != 1 || records[0].ToPositionID != "pos-2" || records[0].ToLevelID != "level-b" {
		t.Fatalf("expected stored history to match executed call, got %+v", records)
	}
}

func TestMonthsBetween(t *testing.T) {
	cases := []struct {
		start, end time.Time
		want       int
	}{
		{time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 8},
		{time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 2},
		{time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tc := range cases {
		if got := monthsBetween(tc.start, tc.end); got != tc.want {
			t.Fatalf("monthsBetween(%v, %v) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}

func containsSubstring(values []string, substr string) bool {
	for _, value := range values {
		if strings.Contains(value, substr) {
			return true
		}
	}
	return false
}
