package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"montecarlo-pi/internal/config"
	"montecarlo-pi/internal/estimator"
	"montecarlo-pi/internal/metrics"
	"montecarlo-pi/internal/sampler"
	"montecarlo-pi/internal/worker"
)

func sampleResult() *estimator.Result {
	m := metrics.New()
	m.RecordWorker(1500*time.Millisecond, 785, 1000)
	m.RecordWorker(1250*time.Millisecond, 786, 1000)
	m.RecordSpawnFailure()

	return &estimator.Result{
		Workers: 3,
		Results: []sampler.Result{
			{ID: "worker0", Estimate: 3.14, Elapsed: 1500 * time.Millisecond},
			{ID: "worker2", Estimate: 3.144, Elapsed: 1250 * time.Millisecond},
		},
		SpawnFailures: []*worker.SpawnError{
			{Index: 1, ID: "worker1", Err: errors.New("no threads")},
		},
		Total:   1600 * time.Millisecond,
		Summary: m.Snapshot(1600 * time.Millisecond),
	}
}

func TestWriteText(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteText(buf, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "worker0: π ~ 3.14 [1.5s]\n" +
		"worker2: π ~ 3.144 [1.25s]\n" +
		"All done in 1.6s\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteYAML(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Write(buf, sampleResult(), config.FormatYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc Document
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}
	if doc.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", doc.Workers)
	}
	if len(doc.Results) != 2 || doc.Results[1].ID != "worker2" {
		t.Errorf("unexpected results: %+v", doc.Results)
	}
	if len(doc.SpawnFailures) != 1 || doc.SpawnFailures[0].Error != "no threads" {
		t.Errorf("unexpected spawn failures: %+v", doc.SpawnFailures)
	}
	if doc.Summary.TotalSamples != 2000 {
		t.Errorf("expected 2000 samples, got %d", doc.Summary.TotalSamples)
	}
	if doc.Summary.MaxWorkerTime != "1.5s" {
		t.Errorf("expected max worker time 1.5s, got %s", doc.Summary.MaxWorkerTime)
	}
}

func TestWriteJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Write(buf, sampleResult(), config.FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if doc.Total != "1.6s" {
		t.Errorf("expected total 1.6s, got %s", doc.Total)
	}
	if doc.Summary.Completed != 2 || doc.Summary.SpawnFailures != 1 {
		t.Errorf("unexpected summary: %+v", doc.Summary)
	}
	if !strings.Contains(buf.String(), `"combined_estimate"`) {
		t.Error("expected snake_case keys in JSON output")
	}
}

func TestNewDocumentWithoutFailures(t *testing.T) {
	r := sampleResult()
	r.SpawnFailures = nil

	doc := NewDocument(r)
	if doc.SpawnFailures != nil {
		t.Errorf("expected no spawn failures, got %+v", doc.SpawnFailures)
	}

	buf := &bytes.Buffer{}
	if err := WriteYAML(buf, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "spawn_failures:\n") {
		t.Errorf("expected spawn_failures list to be omitted, got:\n%s", buf.String())
	}
}

func TestWriteDefaultsToText(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Write(buf, sampleResult(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "All done in 1.6s\n") {
		t.Errorf("expected text output, got: %s", buf.String())
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, sampleResult(), config.Format("xml"))
	if !errors.Is(err, config.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
