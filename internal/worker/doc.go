// Package worker launches sampling tasks, one OS thread per task.
//
// A Launcher builds N tasks from a TaskFactory and starts each of them
// through a SpawnFunc. Every started task is represented by a Handle that
// can be waited on exactly like a thread join. A task that cannot be
// started is reported and skipped; the remaining tasks still launch.
//
// # Basic Usage
//
//	l := worker.NewLauncher(factory, worker.DefaultLauncherConfig())
//	handles, failures := l.Launch(8)
//	for _, h := range handles {
//	    res, err := h.Wait()
//	    ...
//	}
//
// # Task States
//
// A handle moves Created -> Running -> Completed, or Created ->
// FailedToStart when spawning fails, or Running -> Panicked when the task
// terminates abnormally. There are no retries.
//
// # Concurrency
//
// Tasks share no state. The only synchronisation is the done channel
// closed when a task finishes.
package worker
