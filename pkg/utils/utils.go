package utils

import (
	"fmt"
	"runtime/debug"

	"ratemynus-portal/pkg/logger"
)

// GoSafe runs fn on a new goroutine and logs any panic it raises.
func GoSafe(log *logger.Logger, fn func()) {
	if log == nil {
		log = logger.NewNop()
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Recovered from panic",
					logger.StringField("panic", fmt.Sprint(r)),
					logger.StringField("stack", string(debug.Stack())))
			}
		}()
		fn()
	}()
}

// ToPointer returns a pointer to v.
func ToPointer[T any](v T) *T {
	return &v
}
