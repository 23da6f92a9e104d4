package util

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/driftloom/photofs/pkg/errors"
)

// HandleFatalError prints the user-facing message for err and exits.
func HandleFatalError(err error) {
	fmt.Fprintln(os.Stderr, errors.GetPrintableMessage(err))
	os.Exit(1)
}

// HandlePanic recovers from panics in the calling goroutine and prints the
// stack trace before exiting, so that crashes are reportable.
func HandlePanic() {
	if r := recover(); r != nil {
		fmt.Fprintf(os.Stderr, "panic: %v\n\n%s", r, debug.Stack())
		os.Exit(1)
	}
}
