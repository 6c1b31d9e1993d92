package sqlbatch

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

func TestParallelBatchProcess_Merge(t *testing.T) {
	fake := &fakeExecutor{delay: time.Duration(rand.Intn(5)) * time.Millisecond}
	e := NewEngine(fake, nil)

	out := getOutcome(t, e.ParallelBatchProcess(context.Background(), "insert into t(v) values(?)", makeItems(100), intBinder, 4))
	assert.Equal(t, int64(100), out.ProcessedCount)
	assert.Equal(t, 4, out.BatchCount)
	assert.Equal(t, true, out.Success)
	assert.Equal(t, 4, fake.calls)
}

func TestParallelBatchProcess_ClampParallelism(t *testing.T) {
	fake := &fakeExecutor{}
	e := NewEngine(fake, nil)

	out := getOutcome(t, e.ParallelBatchProcess(context.Background(), "insert into t(v) values(?)", makeItems(3), intBinder, 10))
	assert.Equal(t, int64(3), out.ProcessedCount)
	assert.Equal(t, 3, out.BatchCount)
	assert.Equal(t, true, out.Success)
	assert.Equal(t, []int{1, 1, 1}, fake.chunkSizes)
}

func TestParallelBatchProcess_ShareFailure(t *testing.T) {
	fake := &fakeExecutor{failFirst: 1}
	e := NewEngine(fake, nil)

	// one of the four shares fails, the rest still count
	out := getOutcome(t, e.ParallelBatchProcess(context.Background(), "insert into t(v) values(?)", makeItems(100), intBinder, 4))
	assert.Equal(t, int64(75), out.ProcessedCount)
	assert.Equal(t, 4, out.BatchCount)
	assert.Equal(t, false, out.Success)
	assert.NotEqual(t, "", out.ErrorMessage)
}

func TestParallelBatchProcess_InvalidParallelism(t *testing.T) {
	fake := &fakeExecutor{}
	e := NewEngine(fake, nil)

	_, err := e.ParallelBatchProcess(context.Background(), "insert into t(v) values(?)", makeItems(10), intBinder, 0).Get()
	assert.NotEqual(t, nil, err)
	assert.Equal(t, ErrCodeInvalidConfig, err.(BatchError).Code())
	assert.Equal(t, 0, fake.calls)
}

func TestParallelBatchProcess_Empty(t *testing.T) {
	fake := &fakeExecutor{}
	e := NewEngine(fake, nil)

	out := getOutcome(t, e.ParallelBatchProcess(context.Background(), "insert into t(v) values(?)", nil, intBinder, 4))
	assert.Equal(t, int64(0), out.ProcessedCount)
	assert.Equal(t, 0, out.BatchCount)
	assert.Equal(t, true, out.Success)
	assert.Equal(t, 0, fake.calls)
}

func TestParallelBatchProcess_CancelledBeforeSubmit(t *testing.T) {
	fake := &fakeExecutor{}
	e := NewEngine(fake, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := getOutcome(t, e.ParallelBatchProcess(ctx, "insert into t(v) values(?)", makeItems(100), intBinder, 4))
	assert.Equal(t, false, out.Success)
	assert.Equal(t, 0, out.BatchCount)
	assert.NotEqual(t, "", out.ErrorMessage)
	assert.Equal(t, 0, fake.calls)
}
