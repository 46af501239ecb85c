// Package estimator runs one complete π estimation.
//
// An Engine launches the configured number of sampling workers, joins them
// in start order and measures the wall-clock time from just before the
// launch to just after the last join. Spawn failures are tolerated and
// recorded; a worker that terminates abnormally aborts the run.
//
// # Basic Usage
//
//	cfg := estimator.DefaultConfig()
//	cfg.Workers = 8
//	engine := estimator.New(cfg)
//	result, err := engine.Run(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, r := range result.Results {
//	    fmt.Printf("%s: π ~ %v [%v]\n", r.ID, r.Estimate, r.Elapsed)
//	}
//
// Once started, sampling loops are never interrupted; the context is only
// consulted before the launch.
package estimator
