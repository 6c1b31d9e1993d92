package sqlbatch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

func TestFutureImpl_Get(t *testing.T) {
	ctx := context.Background()
	pool := newTaskPool(4)
	defer pool.Release()

	fu := pool.Submit(ctx, func() (interface{}, error) {
		return "ok", nil
	})
	val, err := fu.Get()
	assert.Equal(t, "ok", val)
	assert.Equal(t, nil, err)

	fu = pool.Submit(ctx, func() (interface{}, error) {
		var m []string
		return m[0], nil
	})
	val, err = fu.Get()
	assert.Equal(t, nil, val)
	assert.NotEqual(t, nil, err)
}

func TestTaskPool_CallerRunsOnSaturation(t *testing.T) {
	ctx := context.Background()
	pool := newTaskPool(2)
	defer pool.Release()

	var done int64
	futures := make([]Future, 0, 50)
	for i := 0; i < 50; i++ {
		futures = append(futures, pool.Submit(ctx, func() (interface{}, error) {
			time.Sleep(time.Millisecond)
			atomic.AddInt64(&done, 1)
			return nil, nil
		}))
	}
	for _, fu := range futures {
		_, err := fu.Get()
		assert.Equal(t, nil, err)
	}
	// nothing dropped even though submissions far exceeded pool capacity
	assert.Equal(t, int64(50), atomic.LoadInt64(&done))
}

func TestTaskPool_CallerRunsAfterRelease(t *testing.T) {
	ctx := context.Background()
	pool := newTaskPool(2)
	pool.Release()

	fu := pool.Submit(ctx, func() (interface{}, error) {
		return "still runs", nil
	})
	val, err := fu.Get()
	assert.Equal(t, "still runs", val)
	assert.Equal(t, nil, err)
}
