package sqlbatch

import (
	"context"
	"database/sql"
)

// SQLExecutor database/sql backed implementation of both executor contracts.
// Each batched call runs inside its own transaction with a single prepared
// statement, so a chunk either commits as a whole or leaves no effect.
type SQLExecutor struct {
	db *sql.DB
}

// NewSQLExecutor create a SQLExecutor over an opened *sql.DB
func NewSQLExecutor(sqlDb *sql.DB) *SQLExecutor {
	if sqlDb == nil {
		panic("sqlDb must not be nil")
	}
	return &SQLExecutor{db: sqlDb}
}

// NewSQLEngine create an Engine wired to a SQLExecutor for both writes and reads
func NewSQLEngine(sqlDb *sql.DB) *Engine {
	exec := NewSQLExecutor(sqlDb)
	return NewEngine(exec, exec)
}

func (e *SQLExecutor) ExecuteBatch(ctx context.Context, stmt string, args [][]interface{}) ([]RowOutcome, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, NewBatchError(ErrCodeDbFail, "start transaction failed", err)
	}
	st, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		tx.Rollback()
		return nil, NewBatchError(ErrCodeDbFail, "prepare statement failed", err)
	}
	outcomes := make([]RowOutcome, 0, len(args))
	for _, tuple := range args {
		res, execErr := st.ExecContext(ctx, tuple...)
		if execErr != nil {
			st.Close()
			tx.Rollback()
			return nil, NewBatchError(ErrCodeDbFail, "batched statement failed", execErr)
		}
		affected, raErr := res.RowsAffected()
		if raErr != nil {
			affected = -1
		}
		outcomes = append(outcomes, RowOutcome(affected))
	}
	st.Close()
	if err = tx.Commit(); err != nil {
		tx.Rollback()
		return nil, NewBatchError(ErrCodeDbFail, "transaction commit failed", err)
	}
	return outcomes, nil
}

func (e *SQLExecutor) ExecuteQueryPage(ctx context.Context, stmt string, params []interface{}, limit, offset int) ([]RawRow, error) {
	args := make([]interface{}, 0, len(params)+2)
	args = append(args, params...)
	args = append(args, limit, offset)
	rows, err := e.db.QueryContext(ctx, stmt+" LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, NewBatchError(ErrCodeDbFail, "page query failed", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, NewBatchError(ErrCodeDbFail, "read columns failed", err)
	}
	page := make([]RawRow, 0, limit)
	for rows.Next() {
		vals := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err = rows.Scan(ptrs...); err != nil {
			return nil, NewBatchError(ErrCodeDbFail, "scan row failed", err)
		}
		page = append(page, RawRow(vals))
	}
	if err = rows.Err(); err != nil {
		return nil, NewBatchError(ErrCodeDbFail, "row iteration failed", err)
	}
	return page, nil
}
