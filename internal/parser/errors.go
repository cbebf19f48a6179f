package parser

import "errors"

var (
	// ErrNoFeature is returned when a file has content but no Feature: line.
	ErrNoFeature = errors.New("no feature found")

	ErrDuplicateFeature    = errors.New("duplicated feature in file")
	ErrDuplicateBackground = errors.New("duplicated background")

	// ErrMalformedTable is returned when an Examples table has repeated or
	// empty header names, or a row whose cell count differs from the header.
	ErrMalformedTable = errors.New("malformed examples table")
)
