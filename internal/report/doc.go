// Package report renders an estimation result.
//
// The text form prints one line per worker followed by the total time:
//
//	worker0: π ~ 3.141589764 [4.291877181s]
//	worker1: π ~ 3.141602488 [4.306196059s]
//	All done in 4.306301142s
//
// The YAML and JSON forms carry the same data plus the run summary
// (combined estimate, absolute error, worker time spread, throughput).
package report
