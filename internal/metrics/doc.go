// Package metrics aggregates per-worker sampling statistics for a run.
//
// Metrics counts completed workers, spawn failures and sampled points, and
// keeps every worker's elapsed time so that the fastest, slowest and mean
// worker can be reported beside the combined estimate.
//
// # Basic Usage
//
//	m := metrics.New()
//	m.RecordWorker(res.Elapsed, res.Inside, res.Iterations)
//	snap := m.Snapshot(total)
//	fmt.Printf("π ~ %v, %.0f samples/s\n", snap.CombinedEstimate, snap.SamplesPerSecond)
//
// # Thread Safety
//
// Counters are atomic and the duration list is mutex protected, so workers
// may record concurrently.
package metrics
