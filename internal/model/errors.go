package model

import "errors"

var (
	// ErrInsufficientHistory means the series is too short for the requested statistic.
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrInvalidSeries means the series breaks an ordering or price invariant.
	ErrInvalidSeries = errors.New("invalid series")
	// ErrDataUnavailable is returned by fetchers when the provider has no data.
	ErrDataUnavailable = errors.New("data unavailable")
)
