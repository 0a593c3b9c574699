package helper

import (
	"runtime"
)

// GetFuncName returns the fully qualified name of the calling function,
// used as log context.
func GetFuncName() string {
	pc, _, _, _ := runtime.Caller(1)
	return runtime.FuncForPC(pc).Name()
}
