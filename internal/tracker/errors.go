package tracker

import "errors"

var (
	ErrNoDateSelected        = errors.New("no date selected")
	ErrDistanceRequired      = errors.New("distance must be greater than zero")
	ErrInvalidTime           = errors.New("elapsed time must be m:ss with seconds below 60")
	ErrInvalidGoal           = errors.New("invalid goal input")
	ErrGoalExists            = errors.New("goal already exists for date")
	ErrGoalNotFound          = errors.New("goal not found")
	ErrRecordExists          = errors.New("record already exists for date")
	ErrNotConfirmed          = errors.New("deletion not confirmed")
	ErrQuickRecordIncomplete = errors.New("date and distance are required")
	ErrNegativeDistance      = errors.New("distance must not be negative")
	ErrShoeNotFound          = errors.New("shoe not found")
	ErrShoeLimitReached      = errors.New("shoe limit reached")
	ErrInvalidShoe           = errors.New("invalid shoe")
	ErrDuplicateDate         = errors.New("more than one entry for date")
	ErrNotViewing            = errors.New("edit is only available from view mode")
)
