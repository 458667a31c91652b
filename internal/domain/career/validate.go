package career

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ValidationResult is a domain outcome, not an error: rule violations land in
// Errors, non-blocking findings in Warnings. Callers must check IsValid
// instead of relying on a returned fault.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (r *ValidationResult) addError(message string) {
	r.Errors = append(r.Errors, message)
}

func (r *ValidationResult) addWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

func (r *ValidationResult) finalize() {
	if r.Errors == nil {
		r.Errors = []string{}
	}
	if r.Warnings == nil {
		r.Warnings = []string{}
	}
	r.IsValid = len(r.Errors) == 0
}

// failedResult downgrades an unexpected lookup fault to a single synthetic
// error so validator callers always receive a structured result.
func failedResult(err error) ValidationResult {
	return ValidationResult{
		IsValid:  false,
		Errors:   []string{"validation failed: " + err.Error()},
		Warnings: []string{},
	}
}

// EvaluationSource supplies the final score of a user's most recent completed
// evaluation. The second return is false when no completed evaluation exists.
type EvaluationSource interface {
	LatestFinalScore(ctx context.Context, userID string) (float64, bool, error)
}

type Validator struct {
	store StoreAPI
	evals EvaluationSource
	now   func() time.Time
}

func NewValidator(store StoreAPI, evals EvaluationSource) *Validator {
	return &Validator{store: store, evals: evals, now: time.Now}
}

// ValidateTrackAssignment checks whether a user may be placed on a
// track position at a salary level.
func (v *Validator) ValidateTrackAssignment(ctx context.Context, userID, trackPositionID, salaryLevelID string) ValidationResult {
	var result ValidationResult

	user, err := v.store.GetUser(ctx, userID)
	if err != nil {
		return failedResult(err)
	}
	if !user.Active {
		result.addError("user is inactive")
	}

	position, err := v.store.GetTrackPosition(ctx, trackPositionID)
	if err != nil {
		return failedResult(err)
	}
	track, err := v.store.GetCareerTrack(ctx, position.TrackID)
	if err != nil {
		return failedResult(err)
	}
	if !track.Active {
		result.addError("career track is inactive")
	}
	if track.Department != "" && user.Department != "" && track.Department != user.Department {
		result.addWarning(fmt.Sprintf("career track belongs to department %s, user is in %s", track.Department, user.Department))
	}

	level, err := v.store.GetSalaryLevel(ctx, salaryLevelID)
	if err != nil {
		return failedResult(err)
	}
	newSalary := CalculateSalary(position.BaseSalary, LevelPercentage(position, level))
	if user.CurrentSalary > 0 {
		changePct := (newSalary - user.CurrentSalary) / user.CurrentSalary * 100
		if changePct > salaryIncreaseWarningPct {
			result.addWarning(fmt.Sprintf("salary increase of %.1f%% requires special approval", changePct))
		} else if changePct < -salaryDecreaseLimitPct {
			result.addError(fmt.Sprintf("salary reduction of %.1f%% is not allowed", -changePct))
		}
	}

	if position.Multifunctional && !v.multifunctionalQualified(user) {
		result.addWarning("target position is multifunctional and the user has no multifunctional qualification")
	}

	result.finalize()
	return result
}

// ValidateProgression evaluates the rule for the exact (from, to, type)
// triple. A missing rule short-circuits with a single error.
func (v *Validator) ValidateProgression(ctx context.Context, userID, fromPositionID, toPositionID, progressionType string) ValidationResult {
	var result ValidationResult

	rule, err := v.store.GetProgressionRule(ctx, fromPositionID, toPositionID, progressionType)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			result.addError(fmt.Sprintf("no %s progression rule found between the two positions", progressionType))
			result.finalize()
			return result
		}
		return failedResult(err)
	}

	user, err := v.store.GetUser(ctx, userID)
	if err != nil {
		return failedResult(err)
	}

	if rule.MinTimeMonths != nil {
		required := *rule.MinTimeMonths
		elapsed := 0
		if user.PositionStartDate != nil {
			elapsed = monthsBetween(*user.PositionStartDate, v.now())
		}
		if elapsed < required {
			result.addError(fmt.Sprintf("minimum time in position is %d months, user has %d", required, elapsed))
		}
	}

	if rule.PerformanceRequirement != nil {
		required := *rule.PerformanceRequirement
		score, found, err := v.evals.LatestFinalScore(ctx, userID)
		if err != nil {
			return failedResult(err)
		}
		if !found {
			result.addError(fmt.Sprintf("performance requirement of %.1f not met: no completed evaluation", required))
		} else if score < required {
			result.addError(fmt.Sprintf("performance requirement of %.1f not met: latest final score is %.1f", required, score))
		}
	}

	if len(rule.Additional.Certifications) > 0 {
		held, err := v.store.UserCertifications(ctx, userID)
		if err != nil {
			return failedResult(err)
		}
		for _, required := range rule.Additional.Certifications {
			if !containsFold(held, required) {
				result.addError("missing required certification: " + required)
			}
		}
	}
	if rule.Additional.MinimumProjects > 0 {
		count, err := v.store.UserProjectCount(ctx, userID)
		if err != nil {
			return failedResult(err)
		}
		if count < rule.Additional.MinimumProjects {
			result.addError(fmt.Sprintf("minimum of %d completed projects required, user has %d", rule.Additional.MinimumProjects, count))
		}
	}

	switch progressionType {
	case ProgressionVertical:
		open, err := v.store.OpenVacancies(ctx, toPositionID)
		if err != nil {
			return failedResult(err)
		}
		if open <= 0 {
			result.addWarning("no open vacancy in the target position")
		}
	case ProgressionHorizontal:
		fromPosition, err := v.store.GetTrackPosition(ctx, fromPositionID)
		if err != nil {
			return failedResult(err)
		}
		toPosition, err := v.store.GetTrackPosition(ctx, toPositionID)
		if err != nil {
			return failedResult(err)
		}
		if fromPosition.SalaryClassID != toPosition.SalaryClassID {
			result.addError("horizontal progression must keep the same salary class")
		}
	case ProgressionMerit:
		for _, unmet := range v.unmetMeritCriteria(user, rule) {
			result.addError("merit criterion not met: " + unmet)
		}
	}

	result.finalize()
	return result
}

// multifunctionalQualified is a policy hook; every user currently qualifies.
func (v *Validator) multifunctionalQualified(user User) bool {
	return true
}

// unmetMeritCriteria is a policy hook for merit-specific criteria; none are
// enforced yet.
func (v *Validator) unmetMeritCriteria(user User, rule ProgressionRule) []string {
	return nil
}

// monthsBetween counts whole calendar months between two dates, ignoring the
// day of month.
func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(target)) {
			return true
		}
	}
	return false
}
