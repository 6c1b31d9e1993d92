package sqlbatch

import (
	"os"
	"time"

	"github.com/eomaxl/sqlbatch/internal/logs"
)

//log
var logger logs.Logger = logs.NewLogger(os.Stdout, logs.Info)

//SetLogger set a logger instance for the engine
func SetLogger(l logs.Logger) {
	logger = l
}

//task pool
const (
	DefaultPoolSize = 1000
)

//default tunables
const (
	//DefaultInsertChunkSize chunk size for insert-family operations
	DefaultInsertChunkSize = 10000
	//DefaultUpdateChunkSize chunk size for update/delete operations, smaller
	//since these are typically costlier per row
	DefaultUpdateChunkSize = 1000
	//DefaultRetryBaseDelay base delay unit for retry backoff
	DefaultRetryBaseDelay = 100 * time.Millisecond
)

var batchPool = newTaskPool(DefaultPoolSize)

//SetMaxPoolSize set max number of concurrent batch units
func SetMaxPoolSize(size int) {
	batchPool.SetMaxSize(size)
}

//Shutdown release the shared pool. In-flight units finish, later submissions
//run on the submitting goroutine.
func Shutdown() {
	batchPool.Release()
}
