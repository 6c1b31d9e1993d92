package sqlbatch

import (
	"fmt"

	"github.com/pkg/errors"
)

// BatchError classified engine error
type BatchError interface {
	Code() string
	Message() string
	Error() string
	StackTrace() errors.StackTrace
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

type batchErr struct {
	code string
	msg  string
	err  error
}

func (err *batchErr) Code() string {
	return err.code
}

func (err *batchErr) Message() string {
	return err.msg
}

func (err *batchErr) Error() string {
	return fmt.Sprintf("batch err, code:%v, message:%v", err.code, err.msg)
}

func (err *batchErr) StackTrace() errors.StackTrace {
	if st, ok := err.err.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

func (err *batchErr) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			fmt.Fprintf(f, "%v\n%+v", err.Error(), err.err)
			return
		}
		fallthrough
	default:
		fmt.Fprint(f, err.Error())
	}
}

// NewBatchError build a BatchError from a message with optional printf args.
// If the last arg is an error it becomes the cause and keeps its stack.
func NewBatchError(code string, msg string, args ...interface{}) BatchError {
	var cause error
	if len(args) > 0 {
		if e, ok := args[len(args)-1].(error); ok {
			cause = e
			args = args[:len(args)-1]
		}
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	if cause != nil {
		msg = fmt.Sprintf("%v, cause:%v", msg, cause)
		cause = errors.WithStack(cause)
	} else {
		cause = errors.New(msg)
	}
	return &batchErr{code: code, msg: msg, err: cause}
}

const (
	ErrCodeInvalidConfig = "invalid_config"
	ErrCodeBatchFail     = "batch_fail"
	ErrCodeCancelled     = "cancelled"
	ErrCodeDbFail        = "db_fail"
	ErrCodeGeneral       = "general"
)
