package handles

import "fmt"
import "sort"
import "strings"
import "encoding/json"

import "github.com/bnclabs/golog"
import gohumanize "github.com/dustin/go-humanize"

type tablestats struct {
	n_allocs     int64
	n_frees      int64
	n_copies     int64
	n_allocfails int64
	n_boundfails int64
	n_reinits    int64
}

// Usedsize return sum of block sizes over all allocated slots, 0 if
// table is not initialized.
func (t *Table) Usedsize() int64 {
	if !t.Isinitialized() {
		return 0
	}
	size := int64(0)
	for i, ok := t.occupied.NextSet(1); ok; i, ok = t.occupied.NextSet(i + 1) {
		size += t.slots[i].size
	}
	return size
}

// Allusedsize return Usedsize plus the memory held by slot records,
// 0 if table is not initialized.
func (t *Table) Allusedsize() int64 {
	if !t.Isinitialized() {
		return 0
	}
	return t.Usedsize() + int64(len(t.slots))*Slotsize
}

// Freehandles return number of free slots, 0 if table is not
// initialized.
func (t *Table) Freehandles() int64 {
	if !t.Isinitialized() {
		return 0
	}
	return int64(len(t.slots)-1) - t.Usedhandles()
}

// Usedhandles return number of allocated slots, 0 if table is not
// initialized.
func (t *Table) Usedhandles() int64 {
	if !t.Isinitialized() {
		return 0
	}
	return int64(t.occupied.Count()) - 1 // slot 0 is always set
}

// Stats return a map of table counters and memory figures.
func (t *Table) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"capacity":     t.Capacity(),
		"initialized":  t.Isinitialized(),
		"usedsize":     t.Usedsize(),
		"allusedsize":  t.Allusedsize(),
		"usedhandles":  t.Usedhandles(),
		"freehandles":  t.Freehandles(),
		"n_allocs":     t.n_allocs,
		"n_frees":      t.n_frees,
		"n_copies":     t.n_copies,
		"n_allocfails": t.n_allocfails,
		"n_boundfails": t.n_boundfails,
		"n_reinits":    t.n_reinits,
	}
	stats["mallocer.allocated"] = t.mallocer.Allocated()
	stats["mallocer.available"] = t.mallocer.Available()
	stats["h_allocsz"] = t.h_allocsz.Fullstats()
	return stats
}

// Logstats write table statistics to log, byte counts are humanized
// if `humanize` is true.
func (t *Table) Logstats(humanize bool) {
	stats := t.Stats()

	dohumanize := func(val interface{}) interface{} {
		if humanize {
			return humanbytes(val.(int64))
		}
		return val.(int64)
	}
	used, all := dohumanize(stats["usedsize"]), dohumanize(stats["allusedsize"])
	alloc := dohumanize(stats["mallocer.allocated"])
	avail := dohumanize(stats["mallocer.available"])
	fmsg := "%v mem: %v used, %v with slots, backend allocated %v avail %v\n"
	log.Infof(fmsg, t.logprefix, used, all, alloc, avail)

	fmsg = "%v handles: %v used %v free of %v\n"
	log.Infof(fmsg, t.logprefix, stats["usedhandles"], stats["freehandles"],
		t.Capacity()-1)
	log.Infof("%v allocs: %v\n", t.logprefix, t.h_allocsz.Logstring())

	keys, counters := []string{}, []string{}
	for key := range stats {
		if strings.HasPrefix(key, "n_") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		counters = append(counters, fmt.Sprintf("%v:%v", key, stats[key]))
	}
	log.Infof("%v counts %v\n", t.logprefix, strings.Join(counters, " "))

	if text, err := json.Marshal(stats); err == nil {
		log.Debugf("%v stats %v\n", t.logprefix, string(text))
	}
}

func humanbytes(n int64) string {
	if n < 0 {
		return "-" + gohumanize.Bytes(uint64(-n))
	}
	return gohumanize.Bytes(uint64(n))
}
