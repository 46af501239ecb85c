package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"montecarlo-pi/internal/cpuinfo"
)

const (
	PhysicalCoresParam = "-physical"
	LogicalCoresParam  = "-logical"
	ThreadsParam       = "-threads:"
	FormatParam        = "-format:"
	VerboseParam       = "-verbose"
)

var (
	ErrNoMode         = errors.New("no worker mode given")
	ErrInvalidThreads = errors.New("thread count must be a positive integer")
	ErrUnknownFormat  = errors.New("unknown output format")
)

// Mode はワーカー数の決め方
type Mode int

const (
	ModeNone Mode = iota
	ModePhysical
	ModeLogical
	ModeThreads
)

func (m Mode) String() string {
	switch m {
	case ModePhysical:
		return "physical"
	case ModeLogical:
		return "logical"
	case ModeThreads:
		return "threads"
	default:
		return "none"
	}
}

// Format は結果の出力形式
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat は文字列を出力形式に変換する
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
}

// RunConfig は起動時に一度だけ決まる実行設定
type RunConfig struct {
	Mode    Mode
	Threads int    // ModeThreads のときのワーカー数
	Format  Format // 出力形式
	Verbose bool   // ライフサイクルイベントをデバッグ出力する
}

// DefaultRunConfig はデフォルト設定を返す
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Mode:   ModeNone,
		Format: FormatText,
	}
}

// Parse は引数（プログラム名を除く）から設定を組み立てる
func Parse(args []string) (RunConfig, error) {
	cfg := DefaultRunConfig()

	for _, arg := range args {
		switch {
		case arg == PhysicalCoresParam:
			cfg.Mode = ModePhysical
		case arg == LogicalCoresParam:
			cfg.Mode = ModeLogical
		case strings.HasPrefix(arg, ThreadsParam):
			n, err := parseThreads(strings.TrimPrefix(arg, ThreadsParam))
			if err != nil {
				return cfg, err
			}
			cfg.Mode = ModeThreads
			cfg.Threads = n
		case strings.HasPrefix(arg, FormatParam):
			f, err := ParseFormat(strings.TrimPrefix(arg, FormatParam))
			if err != nil {
				return cfg, err
			}
			cfg.Format = f
		case arg == VerboseParam:
			cfg.Verbose = true
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseThreads(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidThreads, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidThreads, n)
	}
	return n, nil
}

// Validate は設定を検証する
func (c RunConfig) Validate() error {
	switch c.Mode {
	case ModePhysical, ModeLogical:
	case ModeThreads:
		if c.Threads <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidThreads, c.Threads)
		}
	default:
		return ErrNoMode
	}

	if _, err := ParseFormat(string(c.Format)); err != nil {
		return err
	}
	return nil
}

// Workers はモードに応じたワーカー数を返す
func (c RunConfig) Workers(counter cpuinfo.Counter) (int, error) {
	var n int
	switch c.Mode {
	case ModePhysical:
		n = counter.Physical()
	case ModeLogical:
		n = counter.Logical()
	case ModeThreads:
		n = c.Threads
	default:
		return 0, ErrNoMode
	}

	if n <= 0 {
		return 0, fmt.Errorf("%w: %s mode resolved to %d", ErrInvalidThreads, c.Mode, n)
	}
	return n, nil
}

// Usage は使い方の説明を返す
func Usage(program string) string {
	name := filepath.Base(program)
	return fmt.Sprintf(`Usage: %[1]s <%[2]s>|<%[3]s>|<%[4]sthread_count> [%[5]s<text|yaml|json>] [%[6]s]
	where:
		%[2]s means use as many threads as physical cores
		%[3]s means use as many threads as logical cores
		%[4]s means use as many threads as requested (>0)
		%[5]s selects the report format (default text)
		%[6]s logs worker lifecycle events to stderr
`, name, PhysicalCoresParam, LogicalCoresParam, ThreadsParam, FormatParam, VerboseParam)
}
