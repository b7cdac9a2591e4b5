package ledger

import "errors"

var (
	ErrRecordNotFound  = errors.New("leave record not found")
	ErrRecordExists    = errors.New("leave record already exists for this month")
	ErrInvalidPeriod   = errors.New("month must be 1-12 and year within range")
	ErrInvalidHours    = errors.New("undertime hours must be greater than zero")
	ErrUnknownCategory = errors.New("unknown leave category")
)
