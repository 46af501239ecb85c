package estimator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"montecarlo-pi/internal/collector"
	"montecarlo-pi/internal/events"
	"montecarlo-pi/internal/logger"
	"montecarlo-pi/internal/metrics"
	"montecarlo-pi/internal/sampler"
	"montecarlo-pi/internal/worker"
)

var (
	ErrAlreadyRunning = errors.New("estimation is already running")
	ErrNoWorkers      = errors.New("worker count must be positive")
)

// Config は推定実行の設定
type Config struct {
	Workers  int            // ワーカー数
	Sampling sampler.Config // 各ワーカーのサンプリング設定

	Spawn   worker.SpawnFunc   // nil で worker.SpawnThread
	Factory worker.TaskFactory // nil で Sampling から sampler.Task を作る
	Logger  *logger.Logger     // nil で logger.Default
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() Config {
	return Config{
		Workers:  1,
		Sampling: sampler.DefaultConfig(),
	}
}

// Result は推定実行の結果
type Result struct {
	Workers       int                  // 要求されたワーカー数
	Results       []sampler.Result     // 起動順の結果
	SpawnFailures []*worker.SpawnError // 起動できなかったワーカー
	StartTime     time.Time
	Total         time.Duration // 起動直前から最後の回収直後まで
	Summary       metrics.Snapshot
}

// Engine は推定実行エンジン
type Engine struct {
	config   Config
	eventBus *events.Bus
	log      *logger.Logger

	mu      sync.RWMutex
	running bool
}

// New は新しいEngineを作成する
func New(config Config) *Engine {
	log := config.Logger
	if log == nil {
		log = logger.Default
	}
	return &Engine{
		config: config,
		log:    log,
	}
}

// SetEventBus はイベントバスを設定する
func (e *Engine) SetEventBus(bus *events.Bus) {
	e.eventBus = bus
}

func (e *Engine) publishEvent(event events.Event) {
	if e.eventBus != nil {
		e.eventBus.Publish(event)
	}
}

// IsRunning は実行中かどうかを返す
func (e *Engine) IsRunning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

func (e *Engine) validate() error {
	if e.config.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrNoWorkers, e.config.Workers)
	}
	if e.config.Factory == nil {
		if err := e.config.Sampling.Validate(); err != nil {
			return fmt.Errorf("invalid sampling config: %w", err)
		}
	}
	return nil
}

// Run はワーカーを起動し、全ての結果を回収する
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	e.running = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.validate(); err != nil {
		return nil, err
	}

	factory := e.config.Factory
	if factory == nil {
		factory = worker.SamplerFactory(e.config.Sampling)
	}

	launcher := worker.NewLauncher(factory, worker.LauncherConfig{
		Spawn:  e.config.Spawn,
		Logger: e.log,
	})
	launcher.SetEventBus(e.eventBus)

	m := metrics.New()
	c := collector.New()
	c.SetObserver(func(res sampler.Result) {
		m.RecordWorker(res.Elapsed, res.Inside, res.Iterations)
		e.publishEvent(events.NewWorkerCompletedEvent(res.ID, res.Estimate, res.Elapsed))
	})
	c.SetFailureObserver(func(id string, err error) {
		e.publishEvent(events.NewWorkerPanickedEvent(id, err))
	})

	e.log.Debug("", "launching %d workers (%d iterations each, radius %v)",
		e.config.Workers, e.config.Sampling.Iterations, e.config.Sampling.Radius)

	result := &Result{
		Workers:   e.config.Workers,
		StartTime: time.Now(),
	}

	handles, failures := launcher.Launch(e.config.Workers)
	for range failures {
		m.RecordSpawnFailure()
	}

	results, err := c.Collect(handles)
	result.Total = time.Since(result.StartTime)
	if err != nil {
		return nil, err
	}

	result.Results = results
	result.SpawnFailures = failures
	result.Summary = m.Snapshot(result.Total)

	e.publishEvent(events.NewRunCompletedEvent(len(results), result.Total))
	e.log.Debug("", "run completed: %d collected, %d failed to start, %v total",
		len(results), len(failures), result.Total)

	return result, nil
}
