package malloc

import "fmt"

import "github.com/bnclabs/handles/api"
import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"

// Defaultsettings for memory backends.
//
// "allocator" (string, default: "heap")
//		Backend to reserve blocks from, can be "heap" or "mmap".
//
// "capacity" (int64, default: <free RAM>)
//		Maximum number of bytes the backend can reserve.
//
// "zeroblocks" (bool, default: true)
//		Clear heap blocks when they are freed. Mappings are returned to
//		the host on free, hence ignored by "mmap".
func Defaultsettings() s.Settings {
	_, _, free := getsysmem()
	return s.Settings{
		"allocator":  "heap",
		"capacity":   int64(free),
		"zeroblocks": true,
	}
}

// New create a backend as per settings.
func New(setts s.Settings) (api.Mallocer, error) {
	capacity := setts.Int64("capacity")
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity %v", ErrInvalidSize, capacity)
	}
	zeroblocks := setts.Bool("zeroblocks")
	switch allocator := setts.String("allocator"); allocator {
	case "heap":
		return newheap(capacity, zeroblocks), nil
	case "mmap":
		return newmmap(capacity)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAllocator, allocator)
	}
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
