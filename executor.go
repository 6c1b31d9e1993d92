package sqlbatch

import "context"

// RawRow one raw result row as returned by the store.
type RawRow []interface{}

// RowOutcome affected-row count reported for one statement within a batched
// call. A value of -1 means the store could not determine the per-row outcome.
type RowOutcome int64

// StatementExecutor runs a parameterized write once per argument tuple as a
// single batched call against the backing store.
type StatementExecutor interface {
	ExecuteBatch(ctx context.Context, stmt string, args [][]interface{}) ([]RowOutcome, error)
}

// PagedQueryExecutor runs a parameterized read bounded by limit/offset.
type PagedQueryExecutor interface {
	ExecuteQueryPage(ctx context.Context, stmt string, params []interface{}, limit, offset int) ([]RawRow, error)
}

// ItemBinder maps one item onto the positional parameters of a statement.
// Must be stateless; it may be called concurrently from multiple shares.
type ItemBinder func(item interface{}) ([]interface{}, error)

// RowDecoder maps one raw row and its ordinal position onto a domain value.
// Must not retain the row past the call.
type RowDecoder func(row RawRow, ordinal int) (interface{}, error)
