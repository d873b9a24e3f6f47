package main

import "os"
import "fmt"

import "github.com/bnclabs/golog"
import "github.com/bnclabs/handles"
import "github.com/bnclabs/handles/lib"
import s "github.com/bnclabs/gosettings"
import "github.com/mattn/go-isatty"
import "github.com/spf13/cobra"
import "github.com/tebeka/atexit"

var rootopts struct {
	config     string
	loglevel   string
	logcomps   string
	allocator  string
	assert     string
	mcapacity  int64
	nohumanize bool
}

var rootCmd = &cobra.Command{
	Use:   "handlectl",
	Short: "Exercise a fixed capacity handle table",
	Long: `handlectl drives a handle table through its lifecycle: init,
allocate, copy, lookup, free and release, printing the table's
accounting along the way. Settings are read from an optional YAML
file, command line flags override them.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootopts.config, "config", "",
		"YAML file with table settings")
	flags.StringVar(&rootopts.loglevel, "loglevel", "warn",
		"ignore, fatal, error, warn, info, verbose, debug, trace")
	flags.StringVar(&rootopts.logcomps, "logcomponents", "",
		"comma separated list of components to log, handles,all")
	flags.StringVar(&rootopts.allocator, "allocator", "",
		"memory backend, heap or mmap")
	flags.StringVar(&rootopts.assert, "assert", "",
		"on failed debug assertion, ignore, log, exit or panic")
	flags.Int64Var(&rootopts.mcapacity, "memory", 0,
		"bytes the memory backend can reserve")
	flags.BoolVar(&rootopts.nohumanize, "nohumanize", false,
		"print byte counts as plain numbers")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func setlogger() {
	setts := map[string]interface{}{
		"log.level":      rootopts.loglevel,
		"log.timeformat": "",
		"log.prefix":     "",
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		setts["log.colorfatal"] = "red"
		setts["log.colorerror"] = "hired"
		setts["log.colorwarn"] = "yellow"
	}
	log.SetLogger(nil, setts)
	if rootopts.logcomps != "" {
		handles.LogComponents(lib.Parsecsv(rootopts.logcomps)...)
	}
}

// tablesettings compose default settings, the YAML config file and
// the command line, in that order of precedence.
func tablesettings(capacity int64) (s.Settings, error) {
	setts := handles.Defaultsettings()
	if rootopts.config != "" {
		fsetts, err := loadconfig(rootopts.config)
		if err != nil {
			return nil, err
		}
		setts = setts.Mixin(fsetts)
	}
	if capacity > 0 {
		setts["capacity"] = capacity
	}
	if rootopts.allocator != "" {
		setts["malloc.allocator"] = rootopts.allocator
	}
	if rootopts.assert != "" {
		setts["assert"] = rootopts.assert
	}
	if rootopts.mcapacity > 0 {
		setts["malloc.capacity"] = rootopts.mcapacity
	}
	return setts, nil
}

func newtable(name string, capacity int64) (*handles.Table, error) {
	setlogger()
	setts, err := tablesettings(capacity)
	if err != nil {
		return nil, err
	}
	return handles.New(name, setts)
}
