// Package collector joins launched workers in start order.
//
// Collect blocks on each handle in the order it was started, so results are
// always reported worker0, worker1, ... regardless of which thread finished
// first. The first handle that resolves with an error stops the collection
// and the error is returned; no partial results are handed back.
package collector
