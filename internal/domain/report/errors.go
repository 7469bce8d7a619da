package report

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid report period")
	ErrExportFailed  = errors.New("failed to render report export")
)
