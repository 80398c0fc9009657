// Package testutil provides shared test infrastructure for the roundabout
// simulator: the golden metrics dataset and float assertion helpers used by
// sim/ and its sub-package tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one (λ, μ, entry, exit) input with its expected metrics.
type GoldenTestCase struct {
	Name        string        `json:"name"`
	ArrivalRate float64       `json:"arrival_rate"`
	ServiceRate float64       `json:"service_rate"`
	Entry       int           `json:"entry"`
	Exit        int           `json:"exit"`
	Metrics     GoldenMetrics `json:"metrics"`
}

// GoldenMetrics were computed independently of this code base from the
// M/M/4 formulas.
type GoldenMetrics struct {
	Utilization       float64 `json:"utilization"`
	IdleProbability   float64 `json:"idle_probability"`
	WaitInQueue       float64 `json:"wait_in_queue"`
	QueueLength       float64 `json:"queue_length"`
	TimeInSystem      float64 `json:"time_in_system"`
	SystemLength      float64 `json:"system_length"`
	TravelFraction    float64 `json:"travel_fraction"`
	TotalTimeInSystem float64 `json:"total_time_in_system"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset has no test cases")
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
