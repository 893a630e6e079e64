// Package assert panics on broken internal invariants. Used for conditions
// the decoder itself guarantees, never for validating input.
package assert

import (
	"fmt"
	"runtime/debug"
)

func Assert(condition bool) {
	if !condition {
		s := debug.Stack()

		panic("assertion failed:\n" + string(s))
	}
}

func Assertf(condition bool, format string, args ...any) {
	if !condition {
		s := debug.Stack()

		panic("assertion failed: " + fmt.Sprintf(format, args...) + "\n" + string(s))
	}
}
