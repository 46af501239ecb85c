// Package cpuinfo reports the host's physical and logical core counts.
package cpuinfo

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// Counter はコア数を返す
type Counter interface {
	Physical() int
	Logical() int
}

// Host は実行中のマシンのコア数を返す
type Host struct{}

var _ Counter = Host{}

// Logical はスケジューラが使える論理コア数を返す
func (Host) Logical() int {
	return runtime.NumCPU()
}

// Physical は物理コア数を返す
// CPUID で判別できない場合は論理コア数から推定する
func (h Host) Physical() int {
	return physicalFrom(cpuid.CPU.PhysicalCores, cpuid.CPU.ThreadsPerCore, h.Logical())
}

func physicalFrom(physical, threadsPerCore, logical int) int {
	if physical <= 0 {
		physical = logical
		if threadsPerCore > 1 {
			physical = logical / threadsPerCore
		}
	}
	// A restricted affinity mask can hide cores that CPUID still reports.
	physical = min(physical, logical)
	return max(physical, 1)
}

// Static は固定値を返す Counter（テストやオーバーライド用）
type Static struct {
	PhysicalCores int
	LogicalCores  int
}

// Physical は PhysicalCores を返す
func (s Static) Physical() int { return s.PhysicalCores }

// Logical は LogicalCores を返す
func (s Static) Logical() int { return s.LogicalCores }
