// Package main is the entry point for mcpi, a parallel Monte Carlo π estimator.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"montecarlo-pi/internal/config"
	"montecarlo-pi/internal/cpuinfo"
	"montecarlo-pi/internal/estimator"
	"montecarlo-pi/internal/events"
	"montecarlo-pi/internal/logger"
	"montecarlo-pi/internal/report"
	"montecarlo-pi/internal/sampler"
	"montecarlo-pi/internal/worker"
)

// app はCLIの依存関係をまとめる
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	cores    cpuinfo.Counter
	sampling sampler.Config
	spawn    worker.SpawnFunc
	factory  worker.TaskFactory
}

func main() {
	a := &app{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		cores:    cpuinfo.Host{},
		sampling: sampler.DefaultConfig(),
	}
	os.Exit(a.run(os.Args))
}

// run はCLIを実行して終了コードを返す
func (a *app) run(args []string) int {
	program := "mcpi"
	if len(args) > 0 {
		program = args[0]
		args = args[1:]
	}

	fmt.Fprintf(a.stdout, "CPUs: %d physical, %d logical\n", a.cores.Physical(), a.cores.Logical())

	cfg, err := config.Parse(args)
	if err != nil {
		return a.usage(program)
	}
	workers, err := cfg.Workers(a.cores)
	if err != nil {
		return a.usage(program)
	}

	level := logger.LevelInfo
	if cfg.Verbose {
		level = logger.LevelDebug
	}
	log := logger.New(a.stderr, level)

	engineConfig := estimator.DefaultConfig()
	engineConfig.Workers = workers
	engineConfig.Sampling = a.sampling
	engineConfig.Spawn = a.spawn
	engineConfig.Factory = a.factory
	engineConfig.Logger = log
	engine := estimator.New(engineConfig)

	var done chan struct{}
	var bus *events.Bus
	if log.Enabled(logger.LevelDebug) {
		bus = events.NewBus()
		engine.SetEventBus(bus)
		done = logEvents(log, bus.Subscribe())
	}

	result, err := engine.Run(context.Background())
	if bus != nil {
		bus.Close()
		<-done
	}
	if err != nil {
		log.Error("", "estimation failed: %v", err)
		return 1
	}

	if err := report.Write(a.stdout, result, cfg.Format); err != nil {
		log.Error("", "failed to write report: %v", err)
		return 1
	}
	return 0
}

// usage は使い方を標準出力に表示し、終了コード 1 を返す
func (a *app) usage(program string) int {
	fmt.Fprint(a.stdout, config.Usage(program))
	return 1
}

// logEvents はイベントをデバッグログに流す。ch が閉じられると done を閉じる
func logEvents(log *logger.Logger, ch <-chan events.Event) chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range ch {
			switch ev.Type {
			case events.EventWorkerSpawnFailed, events.EventWorkerPanicked:
				log.Debug(ev.WorkerID, "%s: %s", ev.Type, ev.Data.Error)
			case events.EventWorkerCompleted:
				log.Debug(ev.WorkerID, "%s: π ~ %v [%s]", ev.Type, ev.Data.Estimate, ev.Data.Elapsed)
			case events.EventRunCompleted:
				log.Debug("", "%s: %d workers in %s", ev.Type, ev.Data.Workers, ev.Data.Elapsed)
			default:
				log.Debug(ev.WorkerID, "%s", ev.Type)
			}
		}
	}()
	return done
}
