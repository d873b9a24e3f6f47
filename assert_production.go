//go:build !debug

package handles

// assertf is compiled out, preconditions are not checked.
func (t *Table) assertf(cond bool, format string, args ...interface{}) {
}

func (t *Table) assertvalid() {
}
