// Package sampler implements the Monte Carlo kernel that estimates π.
//
// A Task draws Iterations points uniformly from the closed square
// [-Radius, Radius]² using a PCG generator it owns exclusively, counts the
// points that fall inside the inscribed circle and reports
// 4 * inside / Iterations together with the time spent in the sampling loop.
//
//	task := sampler.NewTask(0, sampler.DefaultConfig())
//	res := task.Run()
//	fmt.Printf("%s: π ~ %v [%v]\n", res.ID, res.Estimate, res.Elapsed)
//
// Tasks share nothing, so any number of them may run in parallel without
// locks.
package sampler
