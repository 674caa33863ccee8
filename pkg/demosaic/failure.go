package demosaic

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// FailureSink receives precondition violations. The engine treats every
// violation as an integration error, not a runtime condition: after Fail is
// called no result is produced. Implementations are expected to halt or
// escalate (abort, log-and-halt, raise a safing signal) and must not resume
// the caller; if Fail returns, the engine panics.
type FailureSink interface {
	// Fail reports a failed check. location is "file:line" of the check,
	// cond describes the expected condition, and values holds up to a few
	// diagnostic operands (ints or floats).
	Fail(location, cond string, values ...any)
}

// abortSink is the default FailureSink. It panics with the check details.
type abortSink struct{}

func (abortSink) Fail(location, cond string, values ...any) {
	if len(values) == 0 {
		panic(fmt.Sprintf("demosaic: precondition failed at %s: %s", location, cond))
	}
	panic(fmt.Sprintf("demosaic: precondition failed at %s: %s %v", location, cond, values))
}

var sink FailureSink = abortSink{}

// SetFailureSink installs the handler for precondition violations and
// returns the previous one. Passing nil restores the default aborting sink.
// Not safe to call concurrently with demosaicing.
func SetFailureSink(s FailureSink) FailureSink {
	prev := sink
	if s == nil {
		s = abortSink{}
	}
	sink = s
	return prev
}

// check reports through the sink when ok is false. It never returns after a
// failed check: a sink that yields control back would let demosaicing
// continue on invalid state.
func check(ok bool, cond string, values ...any) {
	if ok {
		return
	}
	sink.Fail(caller(), cond, values...)
	panic("demosaic: FailureSink.Fail returned")
}

func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
