package sqlbatch

import "context"

// ParallelBatchProcess splits items into up to parallelism shares, runs each
// share as an independent batch insert unit on the pool and merges the
// per-share outcomes. The merge is a commutative sum of processed counts, so
// share completion order does not affect the result; Success is the AND over
// all shares and BatchCount is the number of shares submitted.
//
// Parallelism beyond the item count is clamped to the item count. The join
// barrier runs on its own goroutine, never on a pool worker.
func (e *Engine) ParallelBatchProcess(ctx context.Context, stmt string, items []interface{}, binder ItemBinder, parallelism int) Future {
	if parallelism < 1 {
		return completedFuture(nil, NewBatchError(ErrCodeInvalidConfig, "parallelism must be positive, got:%v", parallelism))
	}
	if len(items) == 0 {
		return completedFuture(successOutcome(0, 0), nil)
	}
	if parallelism > len(items) {
		parallelism = len(items)
	}
	shareSize := (len(items) + parallelism - 1) / parallelism
	shares, err := Partition(items, shareSize)
	if err != nil {
		return completedFuture(nil, err)
	}
	result := make(chan interface{}, 2)
	go e.runShares(ctx, stmt, shares, binder, result)
	return &futureImpl{ch: result}
}

func (e *Engine) runShares(ctx context.Context, stmt string, shares [][]interface{}, binder ItemBinder, result chan<- interface{}) {
	logger.Info(ctx, "fan-out start, shares:%v", len(shares))
	futures := make([]Future, 0, len(shares))
	var cancelled BatchError
	for i, share := range shares {
		if ctxErr := ctx.Err(); ctxErr != nil {
			cancelled = NewBatchError(ErrCodeCancelled, "fan-out cancelled before share:%v", i, ctxErr)
			break
		}
		index, items := i, share
		futures = append(futures, e.pool.Submit(ctx, func() (interface{}, error) {
			args, bindErr := bindChunk(items, binder)
			if bindErr != nil {
				return nil, bindErr
			}
			chunks, pErr := partitionArgs(args, e.InsertChunkSize)
			if pErr != nil {
				return nil, pErr
			}
			logger.Debug(ctx, "share execute start, share:%v, items:%v", index, len(items))
			return e.runChunks(ctx, stmt, chunks)
		}))
	}
	var processed int64
	var firstErr error
	for i, fu := range futures {
		val, shareErr := fu.Get()
		if shareErr != nil {
			logger.Error(ctx, "share execute failed, share:%v, err:%v", i, shareErr)
			if firstErr == nil {
				firstErr = shareErr
			}
			continue
		}
		processed += val.(*BatchOutcome).ProcessedCount
	}
	outcome := &BatchOutcome{
		ProcessedCount: processed,
		BatchCount:     len(futures),
		Success:        firstErr == nil && cancelled == nil,
	}
	if firstErr != nil {
		outcome.ErrorMessage = firstErr.Error()
	} else if cancelled != nil {
		outcome.ErrorMessage = cancelled.Error()
	}
	logger.Info(ctx, "fan-out finish, shares:%v, processed:%v, success:%v", len(futures), processed, outcome.Success)
	result <- outcome
	result <- nil
	close(result)
}
