package handles

import "github.com/tebeka/atexit"

// Atexit register table's Release to run when the process exits
// through atexit.Exit or atexit.Fatal. A table already released by
// the application is skipped, a failing release is logged as fatal
// and the exit proceeds.
func (t *Table) Atexit() {
	atexit.Register(t.releaseatexit)
}

func (t *Table) releaseatexit() {
	if err := t.onexit(); err != nil {
		fatalf("%v release at exit: %v\n", t.logprefix, err)
	}
}

func (t *Table) onexit() error {
	if !t.Isinitialized() {
		return nil
	}
	infof("%v releasing at exit\n", t.logprefix)
	return t.Release()
}
