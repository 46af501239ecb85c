package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"montecarlo-pi/internal/config"
	"montecarlo-pi/internal/estimator"
)

// Document は構造化出力のルート
type Document struct {
	Workers       int            `yaml:"workers" json:"workers"`
	Results       []WorkerEntry  `yaml:"results" json:"results"`
	SpawnFailures []FailureEntry `yaml:"spawn_failures,omitempty" json:"spawn_failures,omitempty"`
	Total         string         `yaml:"total" json:"total"`
	Summary       SummaryEntry   `yaml:"summary" json:"summary"`
}

// WorkerEntry は1ワーカー分の出力
type WorkerEntry struct {
	ID       string  `yaml:"id" json:"id"`
	Estimate float64 `yaml:"estimate" json:"estimate"`
	Elapsed  string  `yaml:"elapsed" json:"elapsed"`
}

// FailureEntry は起動に失敗したワーカー
type FailureEntry struct {
	Index int    `yaml:"index" json:"index"`
	ID    string `yaml:"id" json:"id"`
	Error string `yaml:"error" json:"error"`
}

// SummaryEntry は集計値
type SummaryEntry struct {
	Completed         uint64  `yaml:"completed" json:"completed"`
	SpawnFailures     uint64  `yaml:"spawn_failures" json:"spawn_failures"`
	TotalSamples      uint64  `yaml:"total_samples" json:"total_samples"`
	CombinedEstimate  float64 `yaml:"combined_estimate" json:"combined_estimate"`
	AbsError          float64 `yaml:"abs_error" json:"abs_error"`
	MinWorkerTime     string  `yaml:"min_worker_time" json:"min_worker_time"`
	MaxWorkerTime     string  `yaml:"max_worker_time" json:"max_worker_time"`
	AverageWorkerTime string  `yaml:"average_worker_time" json:"average_worker_time"`
	SamplesPerSecond  float64 `yaml:"samples_per_second" json:"samples_per_second"`
}

// NewDocument は結果から構造化出力を組み立てる
func NewDocument(r *estimator.Result) Document {
	doc := Document{
		Workers: r.Workers,
		Results: make([]WorkerEntry, 0, len(r.Results)),
		Total:   r.Total.String(),
	}

	for _, res := range r.Results {
		doc.Results = append(doc.Results, WorkerEntry{
			ID:       res.ID,
			Estimate: res.Estimate,
			Elapsed:  res.Elapsed.String(),
		})
	}
	for _, f := range r.SpawnFailures {
		doc.SpawnFailures = append(doc.SpawnFailures, FailureEntry{
			Index: f.Index,
			ID:    f.ID,
			Error: f.Err.Error(),
		})
	}

	s := r.Summary
	doc.Summary = SummaryEntry{
		Completed:         s.Completed,
		SpawnFailures:     s.SpawnFailures,
		TotalSamples:      s.TotalSamples,
		CombinedEstimate:  s.CombinedEstimate,
		AbsError:          s.AbsError,
		MinWorkerTime:     s.MinWorkerTime.String(),
		MaxWorkerTime:     s.MaxWorkerTime.String(),
		AverageWorkerTime: s.AverageWorkerTime.String(),
		SamplesPerSecond:  math.Round(s.SamplesPerSecond),
	}
	return doc
}

// Write は format に従って結果を書き出す
func Write(w io.Writer, r *estimator.Result, format config.Format) error {
	switch format {
	case config.FormatText, "":
		return WriteText(w, r)
	case config.FormatYAML:
		return WriteYAML(w, r)
	case config.FormatJSON:
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("%w: %s", config.ErrUnknownFormat, format)
	}
}

// WriteText はワーカーごとの行と合計時間を書き出す
func WriteText(w io.Writer, r *estimator.Result) error {
	for _, res := range r.Results {
		if _, err := fmt.Fprintf(w, "%s: π ~ %v [%v]\n", res.ID, res.Estimate, res.Elapsed); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "All done in %v\n", r.Total)
	return err
}

// WriteYAML はYAMLで書き出す
func WriteYAML(w io.Writer, r *estimator.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(r)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON はJSONで書き出す
func WriteJSON(w io.Writer, r *estimator.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(r)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
