package pdi

import "errors"

var (
	ErrInvalidItems = errors.New("development plan items are invalid")
	ErrPlanNotFound = errors.New("development plan not found")
)
