// Package lib provide small helpers that are not tied to the handle
// table, like statistical accumulators and argument parsing. They shall
// not depend on anything other than the standard library.
package lib
