package main

import "fmt"

import "github.com/bnclabs/handles"
import humanize "github.com/dustin/go-humanize"

func bytestr(n int64) string {
	if rootopts.nohumanize {
		return fmt.Sprintf("%v", n)
	}
	return humanize.Bytes(uint64(n))
}

func printcounts(table *handles.Table) {
	fmsg := "handles: %v used, %v free, %v bytes used, %v with slots\n"
	fmt.Printf(fmsg, table.Usedhandles(), table.Freehandles(),
		bytestr(table.Usedsize()), bytestr(table.Allusedsize()))
}

func printstats(table *handles.Table) {
	stats := table.Stats()
	fmsg := "allocs:%v frees:%v copies:%v allocfails:%v boundfails:%v\n"
	fmt.Printf(fmsg, stats["n_allocs"], stats["n_frees"], stats["n_copies"],
		stats["n_allocfails"], stats["n_boundfails"])
	fmsg = "backend allocated:%v available:%v\n"
	fmt.Printf(fmsg, bytestr(stats["mallocer.allocated"].(int64)),
		bytestr(stats["mallocer.available"].(int64)))
	table.Logstats(!rootopts.nohumanize)
}
