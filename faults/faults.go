// Package faults turns panics inside host-facing calls into a diagnostic
// that reaches the host before the module aborts.
//
// A Reporter is registered once at startup with Install. Each call crossing
// the host boundary then runs under Guard, which reports the panic and
// re-panics. Out-of-memory conditions are fatal runtime errors in Go and
// cannot be recovered, so they never reach the reporter.
package faults

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/pkg/errors"
)

// Fault describes a recovered panic.
type Fault struct {
	// Value is the value passed to panic.
	Value interface{}
	// Err is the panic as an error carrying a stack trace.
	Err error
	// Stack is the goroutine stack at the time of recovery.
	Stack []byte
}

// NewFault builds a Fault from a recovered panic value.
func NewFault(v interface{}) *Fault {
	var err error
	if e, ok := v.(error); ok {
		err = errors.WithStack(e)
	} else {
		err = errors.Errorf("panic: %v", v)
	}
	return &Fault{Value: v, Err: err, Stack: debug.Stack()}
}

func (f *Fault) Error() string {
	return f.Err.Error()
}

// Unwrap returns the panic as an error.
func (f *Fault) Unwrap() error {
	return f.Err
}

// Reporter receives faults. It must not panic.
type Reporter func(f *Fault)

// WriterReporter returns a Reporter printing faults with their stack to w.
func WriterReporter(w io.Writer) Reporter {
	return func(f *Fault) {
		fmt.Fprintf(w, "fatal: %+v\n", f.Err)
	}
}

// StderrReporter prints faults to standard error. It is used when no
// reporter has been installed.
var StderrReporter = WriterReporter(os.Stderr)

// Handler holds one registered Reporter.
type Handler struct {
	once     sync.Once
	mu       sync.RWMutex
	reporter Reporter
}

// Install registers r. Only the first call takes effect; it returns true when
// r was registered. A nil r registers StderrReporter.
func (h *Handler) Install(r Reporter) bool {
	installed := false
	h.once.Do(func() {
		if r == nil {
			r = StderrReporter
		}
		h.mu.Lock()
		h.reporter = r
		h.mu.Unlock()
		installed = true
	})
	return installed
}

// Installed reports whether a reporter has been registered.
func (h *Handler) Installed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.reporter != nil
}

// Report hands f to the registered reporter, or StderrReporter if none.
func (h *Handler) Report(f *Fault) {
	h.mu.RLock()
	r := h.reporter
	h.mu.RUnlock()
	if r == nil {
		r = StderrReporter
	}
	r(f)
}

// Guard runs fn. If fn panics, the fault is reported and the panic resumes.
func (h *Handler) Guard(fn func()) {
	defer func() {
		if v := recover(); v != nil {
			h.Report(NewFault(v))
			panic(v)
		}
	}()
	fn()
}

var defaultHandler = &Handler{}

// Install registers the process-wide reporter. See Handler.Install.
func Install(r Reporter) bool {
	return defaultHandler.Install(r)
}

// Installed reports whether the process-wide reporter is registered.
func Installed() bool {
	return defaultHandler.Installed()
}

// Guard runs fn under the process-wide handler. See Handler.Guard.
func Guard(fn func()) {
	defaultHandler.Guard(fn)
}
