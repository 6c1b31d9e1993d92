package sqlbatch

import (
	"context"
	"time"
)

// BackoffFunc computes the delay before retry attempt+1, given the 1-based
// number of the attempt that just failed. Delays must strictly increase.
type BackoffFunc func(attempt int) time.Duration

// LinearBackoff delay grows linearly with the attempt number.
func LinearBackoff(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * base
	}
}

// RetryWithBackoff runs op up to maxAttempts times, waiting backoff(n) after
// the nth failure. Each attempt is an independent pool submission; the retry
// loop itself runs on its own goroutine so it never holds a pool worker while
// waiting.
//
// The Future always resolves to a *BatchOutcome: the succeeding attempt's
// result, or on exhaustion a failure outcome carrying the last error. If ctx
// is cancelled during a backoff wait the controller gives up immediately with
// a cancelled reason instead of finishing the wait.
func RetryWithBackoff(ctx context.Context, maxAttempts int, backoff BackoffFunc, op func() Future) Future {
	if maxAttempts < 1 {
		return completedFuture(nil, NewBatchError(ErrCodeInvalidConfig, "max attempts must be positive, got:%v", maxAttempts))
	}
	if backoff == nil {
		backoff = LinearBackoff(DefaultRetryBaseDelay)
	}
	result := make(chan interface{}, 2)
	go func() {
		var lastErr error
	attempts:
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			val, err := op().Get()
			if err == nil {
				out, ok := val.(*BatchOutcome)
				if !ok || out.Success {
					result <- val
					result <- nil
					close(result)
					return
				}
				lastErr = NewBatchError(ErrCodeBatchFail, out.ErrorMessage)
			} else {
				lastErr = err
			}
			if attempt == maxAttempts {
				break
			}
			delay := backoff(attempt)
			logger.Warn(ctx, "attempt %v failed, retrying in %v, err:%v", attempt, delay, lastErr)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				lastErr = NewBatchError(ErrCodeCancelled, "retry cancelled during backoff, attempt:%v", attempt, ctx.Err())
				break attempts
			case <-timer.C:
			}
		}
		logger.Error(ctx, "retry exhausted, attempts:%v, err:%v", maxAttempts, lastErr)
		result <- failureOutcome(lastErr)
		result <- nil
		close(result)
	}()
	return &futureImpl{ch: result}
}

// BatchProcessWithRetry batch-inserts items, retrying the whole operation up
// to maxRetries times with the engine's linear backoff.
func (e *Engine) BatchProcessWithRetry(ctx context.Context, stmt string, items []interface{}, binder ItemBinder, maxRetries int) Future {
	return RetryWithBackoff(ctx, maxRetries, LinearBackoff(e.RetryBaseDelay), func() Future {
		return e.BatchInsert(ctx, stmt, items, binder)
	})
}
