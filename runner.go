package sqlbatch

import (
	"context"
	"strings"
	"time"
)

// Engine executes bulk batch operations against a backing store through the
// supplied executor collaborators. All operations are asynchronous: they are
// scheduled on the shared pool and return a Future for the eventual outcome.
type Engine struct {
	exec  StatementExecutor
	query PagedQueryExecutor
	pool  *taskPool

	//tunables, adjust before first use
	InsertChunkSize int
	UpdateChunkSize int
	RetryBaseDelay  time.Duration
}

// NewEngine create an Engine on top of the given collaborators. Either may be
// nil if the corresponding operations are not used.
func NewEngine(exec StatementExecutor, query PagedQueryExecutor) *Engine {
	return &Engine{
		exec:            exec,
		query:           query,
		pool:            batchPool,
		InsertChunkSize: DefaultInsertChunkSize,
		UpdateChunkSize: DefaultUpdateChunkSize,
		RetryBaseDelay:  DefaultRetryBaseDelay,
	}
}

// BatchInsert executes stmt once per item as batched calls, one call per chunk.
// The returned Future resolves to a *BatchOutcome.
func (e *Engine) BatchInsert(ctx context.Context, stmt string, items []interface{}, binder ItemBinder) Future {
	return e.submitWrite(ctx, stmt, items, binder, e.InsertChunkSize)
}

// BatchUpdate same contract as BatchInsert with the update-sized chunking.
func (e *Engine) BatchUpdate(ctx context.Context, stmt string, items []interface{}, binder ItemBinder) Future {
	return e.submitWrite(ctx, stmt, items, binder, e.UpdateChunkSize)
}

// BatchUpsert appends a conflict-resolution clause to the base insert statement
// and runs it as a batch insert. The conflict columns and update clause are
// taken as-is; identifier validation is the statement layer's concern.
func (e *Engine) BatchUpsert(ctx context.Context, insertStmt string, conflictColumns []string, updateClause string, items []interface{}, binder ItemBinder) Future {
	return e.submitWrite(ctx, BuildUpsertStatement(insertStmt, conflictColumns, updateClause), items, binder, e.InsertChunkSize)
}

// BatchDelete executes stmt once per argument tuple, chunked like updates.
func (e *Engine) BatchDelete(ctx context.Context, stmt string, argTuples [][]interface{}) Future {
	chunks, err := partitionArgs(argTuples, e.UpdateChunkSize)
	if err != nil {
		return completedFuture(nil, err)
	}
	return e.pool.Submit(ctx, func() (interface{}, error) {
		return e.runChunks(ctx, stmt, chunks)
	})
}

// BuildUpsertStatement derives an upsert statement from a base insert. The
// result depends only on its inputs, so identical inputs yield identical text.
func BuildUpsertStatement(insertStmt string, conflictColumns []string, updateClause string) string {
	return insertStmt + " ON CONFLICT (" + strings.Join(conflictColumns, ", ") + ") DO UPDATE SET " + updateClause
}

func (e *Engine) submitWrite(ctx context.Context, stmt string, items []interface{}, binder ItemBinder, chunkSize int) Future {
	chunks, err := Partition(items, chunkSize)
	if err != nil {
		return completedFuture(nil, err)
	}
	return e.pool.Submit(ctx, func() (interface{}, error) {
		argChunks := make([][][]interface{}, 0, len(chunks))
		for _, chunk := range chunks {
			args, bindErr := bindChunk(chunk, binder)
			if bindErr != nil {
				return nil, bindErr
			}
			argChunks = append(argChunks, args)
		}
		return e.runChunks(ctx, stmt, argChunks)
	})
}

func bindChunk(items []interface{}, binder ItemBinder) ([][]interface{}, BatchError) {
	args := make([][]interface{}, 0, len(items))
	for _, item := range items {
		tuple, err := binder(item)
		if err != nil {
			return nil, NewBatchError(ErrCodeGeneral, "bind item failed", err)
		}
		args = append(args, tuple)
	}
	return args, nil
}

// runChunks issues one batched executor call per chunk and sums affected rows.
// Rows the executor reports as -1 executed but are not counted.
func (e *Engine) runChunks(ctx context.Context, stmt string, chunks [][][]interface{}) (*BatchOutcome, BatchError) {
	var processed int64
	for i, chunk := range chunks {
		n, err := e.runChunk(ctx, stmt, chunk, i)
		if err != nil {
			return nil, err
		}
		processed += n
	}
	return successOutcome(processed, len(chunks)), nil
}

func (e *Engine) runChunk(ctx context.Context, stmt string, chunk [][]interface{}, chunkIndex int) (int64, BatchError) {
	logger.Debug(ctx, "execute chunk, index:%v, size:%v", chunkIndex, len(chunk))
	outcomes, err := e.exec.ExecuteBatch(ctx, stmt, chunk)
	if err != nil {
		logger.Error(ctx, "chunk execute failed, index:%v, err:%v", chunkIndex, err)
		return 0, NewBatchError(ErrCodeBatchFail, "batch execution failed, chunk:%v", chunkIndex, err)
	}
	var processed int64
	for _, rc := range outcomes {
		if rc >= 0 {
			processed += int64(rc)
		}
	}
	return processed, nil
}
