package metrics

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics はワーカーの実行統計を収集する
type Metrics struct {
	completed     atomic.Uint64
	spawnFailures atomic.Uint64
	totalSamples  atomic.Uint64
	totalInside   atomic.Uint64
	totalWorkNs   atomic.Uint64

	mu        sync.RWMutex
	durations []time.Duration
}

// New は新しいメトリクスを作成する
func New() *Metrics {
	return &Metrics{
		durations: make([]time.Duration, 0, 16),
	}
}

// RecordWorker は完了したワーカーの結果を記録する
func (m *Metrics) RecordWorker(elapsed time.Duration, inside, iterations uint64) {
	m.completed.Add(1)
	m.totalSamples.Add(iterations)
	m.totalInside.Add(inside)
	m.totalWorkNs.Add(uint64(elapsed.Nanoseconds()))

	m.mu.Lock()
	m.durations = append(m.durations, elapsed)
	m.mu.Unlock()
}

// RecordSpawnFailure は起動に失敗したワーカーを記録する
func (m *Metrics) RecordSpawnFailure() {
	m.spawnFailures.Add(1)
}

// Completed は完了したワーカー数を返す
func (m *Metrics) Completed() uint64 {
	return m.completed.Load()
}

// SpawnFailures は起動失敗数を返す
func (m *Metrics) SpawnFailures() uint64 {
	return m.spawnFailures.Load()
}

// TotalSamples は全ワーカーの試行回数の合計を返す
func (m *Metrics) TotalSamples() uint64 {
	return m.totalSamples.Load()
}

// CombinedEstimate は全ワーカーの点数を合算したπの推定値を返す
func (m *Metrics) CombinedEstimate() float64 {
	total := m.totalSamples.Load()
	if total == 0 {
		return 0
	}
	return 4 * float64(m.totalInside.Load()) / float64(total)
}

// AverageWorkerTime はワーカーの平均実行時間を返す
func (m *Metrics) AverageWorkerTime() time.Duration {
	n := m.completed.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(m.totalWorkNs.Load() / n)
}

// MinWorkerTime は最速ワーカーの実行時間を返す
func (m *Metrics) MinWorkerTime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.durations) == 0 {
		return 0
	}
	lo := m.durations[0]
	for _, d := range m.durations[1:] {
		lo = min(lo, d)
	}
	return lo
}

// MaxWorkerTime は最遅ワーカーの実行時間を返す
func (m *Metrics) MaxWorkerTime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hi time.Duration
	for _, d := range m.durations {
		hi = max(hi, d)
	}
	return hi
}

// SamplesPerSecond は壁時計時間あたりの試行回数を返す
func (m *Metrics) SamplesPerSecond(wall time.Duration) float64 {
	secs := wall.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(m.totalSamples.Load()) / secs
}

// Snapshot はメトリクスのスナップショット
type Snapshot struct {
	Completed         uint64        `json:"completed" yaml:"completed"`
	SpawnFailures     uint64        `json:"spawn_failures" yaml:"spawn_failures"`
	TotalSamples      uint64        `json:"total_samples" yaml:"total_samples"`
	CombinedEstimate  float64       `json:"combined_estimate" yaml:"combined_estimate"`
	AbsError          float64       `json:"abs_error" yaml:"abs_error"`
	MinWorkerTime     time.Duration `json:"min_worker_time" yaml:"min_worker_time"`
	MaxWorkerTime     time.Duration `json:"max_worker_time" yaml:"max_worker_time"`
	AverageWorkerTime time.Duration `json:"average_worker_time" yaml:"average_worker_time"`
	SamplesPerSecond  float64       `json:"samples_per_second" yaml:"samples_per_second"`
	Wall              time.Duration `json:"wall" yaml:"wall"`
}

// Snapshot は壁時計時間 wall を基準にしたスナップショットを返す
func (m *Metrics) Snapshot(wall time.Duration) Snapshot {
	estimate := m.CombinedEstimate()
	var absErr float64
	if m.TotalSamples() > 0 {
		absErr = math.Abs(math.Pi - estimate)
	}
	return Snapshot{
		Completed:         m.Completed(),
		SpawnFailures:     m.SpawnFailures(),
		TotalSamples:      m.TotalSamples(),
		CombinedEstimate:  estimate,
		AbsError:          absErr,
		MinWorkerTime:     m.MinWorkerTime(),
		MaxWorkerTime:     m.MaxWorkerTime(),
		AverageWorkerTime: m.AverageWorkerTime(),
		SamplesPerSecond:  m.SamplesPerSecond(wall),
		Wall:              wall,
	}
}
