package sqlbatch

import "context"

// BatchRead repeatedly issues stmt with increasing offsets of pageSize rows,
// decoding every returned row, until an empty or short page signals exhaustion.
// The Future resolves to []interface{} in store order. Callers wanting stable
// page boundaries under concurrent writes must state an explicit order key in
// the statement.
func (e *Engine) BatchRead(ctx context.Context, stmt string, params []interface{}, decoder RowDecoder, pageSize int) Future {
	if pageSize <= 0 {
		return completedFuture(nil, NewBatchError(ErrCodeInvalidConfig, "page size must be positive, got:%v", pageSize))
	}
	return e.pool.Submit(ctx, func() (interface{}, error) {
		return e.readAllPages(ctx, stmt, params, decoder, pageSize)
	})
}

func (e *Engine) readAllPages(ctx context.Context, stmt string, params []interface{}, decoder RowDecoder, pageSize int) ([]interface{}, BatchError) {
	acc := make([]interface{}, 0, pageSize)
	for offset := 0; ; offset += pageSize {
		rows, err := e.query.ExecuteQueryPage(ctx, stmt, params, pageSize, offset)
		if err != nil {
			logger.Error(ctx, "page read failed, offset:%v, err:%v", offset, err)
			return nil, NewBatchError(ErrCodeBatchFail, "page read failed, offset:%v", offset, err)
		}
		for i, row := range rows {
			val, decErr := decoder(row, offset+i)
			if decErr != nil {
				return nil, NewBatchError(ErrCodeGeneral, "decode row failed, ordinal:%v", offset+i, decErr)
			}
			acc = append(acc, val)
		}
		// a short page proves there is no further page, saving one round trip
		if len(rows) < pageSize {
			break
		}
	}
	logger.Debug(ctx, "paged read finished, rows:%v", len(acc))
	return acc, nil
}
