package career

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPositionNotFound = errors.New("track position not found")
	ErrLevelNotFound    = errors.New("salary level not found")
	ErrRuleNotFound     = errors.New("progression rule not found")
)
