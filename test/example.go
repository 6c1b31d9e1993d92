package test

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eomaxl/sqlbatch"
	_ "github.com/go-sql-driver/mysql"
)

type account struct {
	ID       int64
	Currency string
	Balance  int64
}

func main() {
	var db *sql.DB
	var err error
	db, err = sql.Open("mysql", "root:root123@tcp(127.0.0.1:3306)/payments?charset=utf8&parseTime=true")
	if err != nil {
		panic(err)
	}
	engine := sqlbatch.NewSQLEngine(db)

	accounts := make([]interface{}, 0, 100000)
	for i := 0; i < 100000; i++ {
		accounts = append(accounts, &account{ID: int64(i), Currency: "EUR", Balance: int64(i * 10)})
	}
	binder := func(item interface{}) ([]interface{}, error) {
		a := item.(*account)
		return []interface{}{a.ID, a.Currency, a.Balance}, nil
	}

	//parallel insert across 4 shares, retried up to 3 times as a whole
	fu := sqlbatch.RetryWithBackoff(context.Background(), 3, nil, func() sqlbatch.Future {
		return engine.ParallelBatchProcess(context.Background(),
			"insert into account(id, currency, balance) values(?, ?, ?)",
			accounts, binder, 4)
	})
	val, err := fu.Get()
	if err != nil {
		panic(err)
	}
	outcome := val.(*sqlbatch.BatchOutcome)
	fmt.Printf("processed:%v batches:%v success:%v\n", outcome.ProcessedCount, outcome.BatchCount, outcome.Success)

	//page through what was written
	decoder := func(row sqlbatch.RawRow, ordinal int) (interface{}, error) {
		return row, nil
	}
	rfu := engine.BatchRead(context.Background(),
		"select id, currency, balance from account order by id",
		nil, decoder, 1000)
	rows, err := rfu.Get()
	if err != nil {
		panic(err)
	}
	fmt.Printf("read rows:%v\n", len(rows.([]interface{})))

	sqlbatch.Shutdown()
}
