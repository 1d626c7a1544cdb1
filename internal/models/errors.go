package models

import "errors"

// Custom errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrTargetNotFound     = errors.New("target not found in primary ranking")
	ErrPrimaryUnavailable = errors.New("primary draw list unavailable")
	ErrNoDataset          = errors.New("no dataset loaded")
)
