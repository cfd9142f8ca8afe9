package usecase

import "time"

// SetClock is exported for testing
func (uc *HARAUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// FixedReportMarkdown is exported for testing
var FixedReportMarkdown = fixedReportMarkdown
