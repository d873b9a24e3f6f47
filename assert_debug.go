//go:build debug

package handles

import "fmt"
import "runtime/debug"

import "github.com/bnclabs/golog"
import "github.com/tebeka/atexit"

// assertf check a precondition that correct calling code never
// violates. What happens on failure is the table's "assert" setting.
func (t *Table) assertf(cond bool, format string, args ...interface{}) {
	if cond {
		return
	}
	msg := callsite(2) + fmt.Sprintf(format, args...)
	switch t.assertpolicy {
	case "ignore":
	case "log":
		log.Errorf("%v assert: %v\n", t.logprefix, msg)
	case "exit":
		log.Fatalf("%v assert: %v\n", t.logprefix, msg)
		atexit.Exit(1)
	default:
		trace := getStackTrace(2, debug.Stack())
		log.Fatalf("%v assert: %v\n%v", t.logprefix, msg, trace)
		panic(fmt.Errorf("%v assert: %v", t.logprefix, msg))
	}
}

// assertvalid sweep all table invariants after a mutation.
func (t *Table) assertvalid() {
	if err := t.Validate(); err != nil {
		t.assertf(false, "%v", err)
	}
}
