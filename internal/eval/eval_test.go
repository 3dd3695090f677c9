package eval

import (
	"strings"
	"testing"

	"github.com/danielpatrickdp/gcalc/internal/engine"
)

func makeRecords(probs []float64, costs []float64) []engine.Record {
	records := make([]engine.Record, len(probs))
	for i := range probs {
		records[i] = engine.Record{Index: i + 1, Probability: probs[i], Cost: costs[i]}
	}
	return records
}

func metric(result EvalResult, name string) EvalMetric {
	for _, m := range result.Metrics {
		if m.Name == name {
			return m
		}
	}
	return EvalMetric{}
}

func TestEvalPassesOnEngineOutput(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Probability = 0.3
	cfg.Cost = 2
	cfg.Termination.FixedCount = 20
	records, err := engine.Run(cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	result := NewEvalHarness(DefaultEvalConfig()).Run(records)

	if !result.Passed {
		t.Fatalf("expected pass, got fail: %s", result.Reason)
	}
	if len(result.Metrics) != 5 {
		t.Fatalf("expected 5 metrics, got %d", len(result.Metrics))
	}
}

func TestEvalFailsOnEmpty(t *testing.T) {
	result := NewEvalHarness(DefaultEvalConfig()).Run(nil)
	if result.Passed {
		t.Fatal("expected fail on empty sequence")
	}
	if metric(result, "non_empty").Pass {
		t.Fatal("expected non_empty to fail")
	}
}

func TestEvalFailsOnProbabilityDrop(t *testing.T) {
	records := makeRecords([]float64{0.1, 0.3, 0.2}, []float64{1, 2, 3})

	result := NewEvalHarness(DefaultEvalConfig()).Run(records)

	if result.Passed {
		t.Fatal("expected fail on probability drop")
	}
	m := metric(result, "probability_monotonic")
	if m.Pass || m.Value < 0.099 {
		t.Fatalf("expected drop ~0.1, got %+v", m)
	}
}

func TestEvalFailsOnCostDropAndGap(t *testing.T) {
	records := makeRecords([]float64{0.1, 0.2, 0.3}, []float64{5, 4, 6})
	records[2].Index = 5

	result := NewEvalHarness(DefaultEvalConfig()).Run(records)

	if result.Passed {
		t.Fatal("expected fail")
	}
	if metric(result, "cost_monotonic").Pass || metric(result, "dense_index").Pass {
		t.Fatalf("expected cost and index checks to fail: %+v", result.Metrics)
	}
	if !strings.Contains(result.Reason, "2 checks") {
		t.Fatalf("expected reason to count failures, got %q", result.Reason)
	}
}

func TestEvalToleratesDrift(t *testing.T) {
	records := makeRecords([]float64{0.5, 0.5 - 1e-12, 1 + 1e-12}, []float64{0, 0, 0})
	result := NewEvalHarness(DefaultEvalConfig()).Run(records)
	if !result.Passed {
		t.Fatalf("expected drift within tolerance to pass: %s", result.Reason)
	}
}
