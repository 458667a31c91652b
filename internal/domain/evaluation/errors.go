package evaluation

import "errors"

var (
	ErrNoCompetencies     = errors.New("evaluation requires at least one competency")
	ErrUnknownCategory    = errors.New("unknown competency category")
	ErrScoreOutOfRange    = errors.New("competency score must be between 0 and 5")
	ErrMeetingNotFound    = errors.New("consensus meeting not found")
	ErrMeetingCompleted   = errors.New("consensus meeting already completed")
	ErrEvaluationNotFound = errors.New("evaluation not found")
)
