package sqlbatch

// BatchOutcome result of one batch operation. Built once when the operation
// completes and never mutated afterwards.
type BatchOutcome struct {
	ProcessedCount int64
	BatchCount     int
	Success        bool
	ErrorMessage   string
}

func successOutcome(processed int64, batches int) *BatchOutcome {
	return &BatchOutcome{
		ProcessedCount: processed,
		BatchCount:     batches,
		Success:        true,
	}
}

func failureOutcome(err error) *BatchOutcome {
	msg := "batch operation failed"
	if err != nil {
		msg = err.Error()
	}
	return &BatchOutcome{
		Success:      false,
		ErrorMessage: msg,
	}
}
