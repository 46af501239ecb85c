package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"time"
)

const (
	// DefaultIterations は1ワーカーあたりの試行回数
	DefaultIterations uint64 = 1_000_000_000
	// DefaultRadius はサンプリング領域の半幅
	DefaultRadius = 10.0

	workerPrefix = "worker"
)

// unitScale maps a 53-bit integer onto the closed interval [0, 1].
const unitScale = 1.0 / float64(1<<53-1)

var (
	ErrNoIterations  = errors.New("iterations must be positive")
	ErrInvalidRadius = errors.New("radius must be a positive finite number")
)

// Config はサンプリングの設定
type Config struct {
	Iterations uint64  // 試行回数
	Radius     float64 // 領域の半幅 R（点は [-R, R] から取る）
	Seed       uint64  // 乱数シード（0でプロセスごとにランダム）
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() Config {
	return Config{
		Iterations: DefaultIterations,
		Radius:     DefaultRadius,
	}
}

// Validate は設定を検証する
func (c Config) Validate() error {
	if c.Iterations == 0 {
		return ErrNoIterations
	}
	if c.Radius <= 0 || math.IsInf(c.Radius, 0) || math.IsNaN(c.Radius) {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, c.Radius)
	}
	return nil
}

// Result は1ワーカーの推定結果
type Result struct {
	ID         string        `json:"id" yaml:"id"`
	Estimate   float64       `json:"estimate" yaml:"estimate"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
	Inside     uint64        `json:"inside" yaml:"inside"`
	Iterations uint64        `json:"iterations" yaml:"iterations"`
}

// Task は独立した乱数ストリームを持つサンプリングタスク
type Task struct {
	id     string
	config Config
	src    *rand.PCG
}

// WorkerID はインデックスからワーカーIDを生成する
func WorkerID(index int) string {
	return workerPrefix + strconv.Itoa(index)
}

// NewTask は新しいタスクを作成する
// Seed が 0 の場合はプロセス全体の乱数源からシードを引く
func NewTask(index int, config Config) *Task {
	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Task{
		id:     WorkerID(index),
		config: config,
		src:    rand.NewPCG(seed, uint64(index)),
	}
}

// ID はタスクIDを返す
func (t *Task) ID() string {
	return t.id
}

// Config はタスクの設定を返す
func (t *Task) Config() Config {
	return t.config
}

// coordinate returns a uniform sample from [-r, r], both ends included.
func (t *Task) coordinate(r float64) float64 {
	u := float64(t.src.Uint64()>>11) * unitScale
	return -r + 2*r*u
}

// Run はサンプリングを実行して結果を返す
// 経過時間はサンプリングループのみを計測する
func (t *Task) Run() Result {
	iterations := t.config.Iterations
	r := t.config.Radius
	r2 := r * r

	start := time.Now()
	var inside uint64
	for range iterations {
		x := t.coordinate(r)
		y := t.coordinate(r)
		if x*x+y*y <= r2 {
			inside++
		}
	}
	elapsed := time.Since(start)

	return Result{
		ID:         t.id,
		Estimate:   Estimate(inside, iterations),
		Elapsed:    elapsed,
		Inside:     inside,
		Iterations: iterations,
	}
}

// Estimate は円内の点数からπの推定値を計算する
func Estimate(inside, iterations uint64) float64 {
	if iterations == 0 {
		return 0
	}
	return 4 * float64(inside) / float64(iterations)
}
