package handles

import "github.com/bnclabs/handles/malloc"
import s "github.com/bnclabs/gosettings"

// Defaultsettings for handle table along with its memory backend.
//
// "capacity" (int64, default: 1024)
//		Number of slots, including the reserved slot 0, used by New().
//		Must be in [1, MaxHandles).
//
// "zeroblocks" (bool, default: true)
//		Clear blocks when they are freed, overrides "malloc.zeroblocks".
//
// "assert" (string, default: "panic")
//		What a failed debug assertion does, can be "ignore", "log",
//		"exit" or "panic". Only honoured by builds tagged `debug`,
//		other builds compile assertions out.
//
// "malloc.allocator" (string, default: "heap")
//		Memory backend, refer malloc.Defaultsettings().
//
// "malloc.capacity" (int64, default: <free RAM>)
//		Bytes the backend can reserve. Init reserves capacity*Slotsize
//		bytes for the slot records, blocks share the rest.
func Defaultsettings() s.Settings {
	setts := s.Settings{
		"capacity":   int64(1024),
		"zeroblocks": true,
		"assert":     "panic",
	}
	mallocsetts := malloc.Defaultsettings().AddPrefix("malloc.")
	return setts.Mixin(mallocsetts)
}

func (t *Table) readsettings(setts s.Settings) {
	t.capacity = setts.Int64("capacity")
	t.zeroblocks = setts.Bool("zeroblocks")
	t.assertpolicy = setts.String("assert")
	switch t.assertpolicy {
	case "ignore", "log", "exit", "panic":
	default:
		panicerr("invalid assert policy %q", t.assertpolicy)
	}
}
