package collector

import (
	"fmt"

	"montecarlo-pi/internal/sampler"
	"montecarlo-pi/internal/worker"
)

// Handle は Collect が待機する対象（*worker.Handle が実装する）
type Handle interface {
	ID() string
	Wait() (sampler.Result, error)
}

var _ Handle = (*worker.Handle)(nil)

// Observer は結果を1件回収するたびに呼ばれる
type Observer func(res sampler.Result)

// FailureObserver は回収に失敗したときに呼ばれる
type FailureObserver func(id string, err error)

// Collector はワーカーの結果を起動順に回収する
type Collector struct {
	onResult  Observer
	onFailure FailureObserver
}

// New は新しいCollectorを作成する
func New() *Collector {
	return &Collector{}
}

// SetObserver は結果ごとのコールバックを設定する
func (c *Collector) SetObserver(fn Observer) {
	c.onResult = fn
}

// SetFailureObserver は失敗時のコールバックを設定する
func (c *Collector) SetFailureObserver(fn FailureObserver) {
	c.onFailure = fn
}

// Collect は handles を順番に待ち、結果を同じ順序で返す
// 最初に失敗したハンドルで中断し、そのエラーを返す
func (c *Collector) Collect(handles []*worker.Handle) ([]sampler.Result, error) {
	hs := make([]Handle, len(handles))
	for i, h := range handles {
		hs[i] = h
	}
	return c.CollectFrom(hs)
}

// CollectFrom は任意の Handle 実装から結果を回収する
func (c *Collector) CollectFrom(handles []Handle) ([]sampler.Result, error) {
	results := make([]sampler.Result, 0, len(handles))

	for _, h := range handles {
		res, err := h.Wait()
		if err != nil {
			if c.onFailure != nil {
				c.onFailure(h.ID(), err)
			}
			return nil, fmt.Errorf("collecting %s: %w", h.ID(), err)
		}
		if c.onResult != nil {
			c.onResult(res)
		}
		results = append(results, res)
	}

	return results, nil
}

// Collect はデフォルトのCollectorで回収する
func Collect(handles []*worker.Handle) ([]sampler.Result, error) {
	return New().Collect(handles)
}
