package worker

import (
	"fmt"
	"runtime"

	"montecarlo-pi/internal/events"
	"montecarlo-pi/internal/logger"
	"montecarlo-pi/internal/sampler"
)

// Task はワーカーが実行するタスク
type Task interface {
	ID() string
	Run() sampler.Result
}

// TaskFactory はインデックスからタスクを生成する
type TaskFactory func(index int) Task

// SpawnFunc は fn を独立したスレッドで開始する
// エラーを返した場合 fn は実行されない
type SpawnFunc func(id string, fn func()) error

// SpawnThread は OS スレッドに固定したゴルーチンで fn を開始する
// The goroutine never unlocks, so its thread exits together with the task.
func SpawnThread(_ string, fn func()) error {
	go func() {
		runtime.LockOSThread()
		fn()
	}()
	return nil
}

// SamplerFactory は sampler.Task を生成するファクトリを返す
func SamplerFactory(config sampler.Config) TaskFactory {
	return func(index int) Task {
		return sampler.NewTask(index, config)
	}
}

// SpawnError は起動に失敗したワーカー
type SpawnError struct {
	Index int
	ID    string
	Err   error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("error spawning worker %s: %v", e.ID, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// LauncherConfig はランチャーの設定
type LauncherConfig struct {
	Spawn  SpawnFunc      // nil で SpawnThread
	Logger *logger.Logger // nil で logger.Default
}

// DefaultLauncherConfig はデフォルト設定を返す
func DefaultLauncherConfig() LauncherConfig {
	return LauncherConfig{
		Spawn: SpawnThread,
	}
}

// Launcher はワーカーを起動する
type Launcher struct {
	factory  TaskFactory
	spawn    SpawnFunc
	log      *logger.Logger
	eventBus *events.Bus
}

// NewLauncher は新しいランチャーを作成する
func NewLauncher(factory TaskFactory, config LauncherConfig) *Launcher {
	spawn := config.Spawn
	if spawn == nil {
		spawn = SpawnThread
	}
	log := config.Logger
	if log == nil {
		log = logger.Default
	}
	return &Launcher{
		factory: factory,
		spawn:   spawn,
		log:     log,
	}
}

// SetEventBus はイベントバスを設定する
func (l *Launcher) SetEventBus(bus *events.Bus) {
	l.eventBus = bus
}

func (l *Launcher) publishEvent(event events.Event) {
	if l.eventBus != nil {
		l.eventBus.Publish(event)
	}
}

// Launch は n 個のタスクを起動し、起動できたもののハンドルを起動順に返す
// 起動に失敗したワーカーはログに記録して飛ばす
func (l *Launcher) Launch(n int) ([]*Handle, []*SpawnError) {
	if n <= 0 {
		return nil, nil
	}

	handles := make([]*Handle, 0, n)
	var failures []*SpawnError

	for i := range n {
		task := l.factory(i)
		h := newHandle(i, task.ID())

		if err := l.spawn(h.id, func() { h.run(task) }); err != nil {
			h.state.Store(int32(StateFailedToStart))
			spawnErr := &SpawnError{Index: i, ID: h.id, Err: err}
			failures = append(failures, spawnErr)
			l.log.Error(h.id, "%v", spawnErr)
			l.publishEvent(events.NewWorkerSpawnFailedEvent(h.id, i, err))
			continue
		}

		handles = append(handles, h)
		l.publishEvent(events.NewWorkerSpawnedEvent(h.id, i))
	}

	return handles, failures
}
