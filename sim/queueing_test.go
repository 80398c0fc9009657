package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roundabout-sim/roundabout-sim/sim/internal/testutil"
)

func TestComputeMetrics_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			// GIVEN a stable input from the golden dataset
			in := QueueingInput{ArrivalRate: tc.ArrivalRate, ServiceRate: tc.ServiceRate, EntryID: tc.Entry, ExitID: tc.Exit}

			// WHEN metrics are computed
			got, err := ComputeMetrics(in)
			require.NoError(t, err)

			// THEN every metric matches the reference values
			const tol = 1e-9
			want := tc.Metrics
			testutil.AssertFloat64Equal(t, "Utilization", want.Utilization, got.Utilization, tol)
			testutil.AssertFloat64Equal(t, "IdleProbability", want.IdleProbability, got.IdleProbability, tol)
			testutil.AssertFloat64Equal(t, "WaitInQueue", want.WaitInQueue, got.WaitInQueue, tol)
			testutil.AssertFloat64Equal(t, "QueueLength", want.QueueLength, got.QueueLength, tol)
			testutil.AssertFloat64Equal(t, "TimeInSystem", want.TimeInSystem, got.TimeInSystem, tol)
			testutil.AssertFloat64Equal(t, "SystemLength", want.SystemLength, got.SystemLength, tol)
			testutil.AssertFloat64Equal(t, "TravelFraction", want.TravelFraction, got.TravelFraction, tol)
			testutil.AssertFloat64Equal(t, "TotalTimeInSystem", want.TotalTimeInSystem, got.TotalTimeInSystem, tol)
		})
	}
}

func TestComputeMetrics_HalfLoad_MatchesHandComputation(t *testing.T) {
	// GIVEN λ=2, μ=1 so that ρ = 2/(4·1) = 0.5 and the offered load a = 2
	in := QueueingInput{ArrivalRate: 2, ServiceRate: 1, EntryID: 1, ExitID: 3}

	// WHEN metrics are computed
	got, err := ComputeMetrics(in)
	require.NoError(t, err)

	// THEN P0 = 1/(1 + 2 + 2 + 4/3 + 16/(24·0.5)) = 3/23
	assert.InDelta(t, 0.5, got.Utilization, 1e-12)
	assert.InDelta(t, 3.0/23.0, got.IdleProbability, 1e-12)
	// AND Wq = P0·16·0.5/(24·0.25·1) = 4/23
	assert.InDelta(t, 4.0/23.0, got.WaitInQueue, 1e-12)
	assert.InDelta(t, 4.0/23.0+1, got.TimeInSystem, 1e-12)
	// AND entry 1 (270°) to exit 3 (0°) is three quarters of a lap
	assert.Equal(t, 0.75, got.TravelFraction)
	assert.InDelta(t, 4.0/23.0+1.75, got.TotalTimeInSystem, 1e-12)
}

func TestComputeMetrics_LittlesLaw_HoldsExactly(t *testing.T) {
	for _, mu := range []float64{0.25, 1, 3.7} {
		for _, frac := range []float64{0.01, 0.3, 0.5, 0.9, 0.999} {
			lambda := frac * ServerCount * mu
			// GIVEN any stable input
			got, err := ComputeMetrics(QueueingInput{ArrivalRate: lambda, ServiceRate: mu, EntryID: 2, ExitID: 4})
			require.NoError(t, err)

			// THEN ρ is in [0,1), metrics are non-negative and Little's law holds
			assert.GreaterOrEqual(t, got.Utilization, 0.0)
			assert.Less(t, got.Utilization, 1.0)
			assert.GreaterOrEqual(t, got.WaitInQueue, 0.0)
			assert.GreaterOrEqual(t, got.QueueLength, 0.0)
			assert.GreaterOrEqual(t, got.TimeInSystem, 0.0)
			assert.GreaterOrEqual(t, got.SystemLength, 0.0)
			assert.Equal(t, lambda*got.TimeInSystem, got.SystemLength, "L = λ·W")
			assert.Equal(t, lambda*got.WaitInQueue, got.QueueLength, "Lq = λ·Wq")
		}
	}
}

func TestComputeMetrics_SameInput_BitIdenticalOutput(t *testing.T) {
	in := QueueingInput{ArrivalRate: 3.3, ServiceRate: 1.1, EntryID: 4, ExitID: 1}

	first, err := ComputeMetrics(in)
	require.NoError(t, err)
	second, err := ComputeMetrics(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeMetrics_InvalidInput_ReturnsReason(t *testing.T) {
	tests := []struct {
		name   string
		in     QueueingInput
		reason InputErrorReason
	}{
		{"overloaded", QueueingInput{ArrivalRate: 5, ServiceRate: 1, EntryID: 1, ExitID: 1}, ReasonOverloaded},
		{"exactly saturated", QueueingInput{ArrivalRate: 4, ServiceRate: 1, EntryID: 1, ExitID: 1}, ReasonOverloaded},
		{"entry out of range", QueueingInput{ArrivalRate: 2, ServiceRate: 1, EntryID: 5, ExitID: 1}, ReasonInvalidSelector},
		{"exit zero", QueueingInput{ArrivalRate: 2, ServiceRate: 1, EntryID: 1, ExitID: 0}, ReasonInvalidSelector},
		{"zero arrival rate", QueueingInput{ArrivalRate: 0, ServiceRate: 1, EntryID: 1, ExitID: 1}, ReasonNonPositiveRate},
		{"negative service rate", QueueingInput{ArrivalRate: 1, ServiceRate: -1, EntryID: 1, ExitID: 1}, ReasonNonPositiveRate},
		{"NaN arrival rate", QueueingInput{ArrivalRate: math.NaN(), ServiceRate: 1, EntryID: 1, ExitID: 1}, ReasonNonPositiveRate},
		{"infinite service rate", QueueingInput{ArrivalRate: 1, ServiceRate: math.Inf(1), EntryID: 1, ExitID: 1}, ReasonNonPositiveRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeMetrics(tt.in)

			require.Error(t, err)
			assert.True(t, IsInvalidInput(err, tt.reason), "want reason %q, got %v", tt.reason, err)
			assert.Equal(t, QueueingResult{}, got, "no partial result on failure")
		})
	}
}

func TestParseInput_NumericText_Parses(t *testing.T) {
	in, err := ParseInput(" 2.5", "1", "3 ", "4")

	require.NoError(t, err)
	assert.Equal(t, QueueingInput{ArrivalRate: 2.5, ServiceRate: 1, EntryID: 3, ExitID: 4}, in)
}

func TestParseInput_NonNumericText_ReturnsNonNumeric(t *testing.T) {
	tests := []struct {
		name                    string
		lambda, mu, entry, exit string
	}{
		{"lambda", "abc", "1", "1", "2"},
		{"mu", "2", "", "1", "2"},
		{"entry", "2", "1", "1.5", "2"},
		{"exit", "2", "1", "1", "north"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInput(tt.lambda, tt.mu, tt.entry, tt.exit)

			require.Error(t, err)
			assert.True(t, IsInvalidInput(err, ReasonNonNumeric))
			assert.Contains(t, err.Error(), "non-numeric")
		})
	}
}

func TestIsInvalidInput_OtherErrors_False(t *testing.T) {
	assert.False(t, IsInvalidInput(nil, ""))
	assert.False(t, IsInvalidInput(assert.AnError, ""))

	_, err := ComputeMetrics(QueueingInput{ArrivalRate: 9, ServiceRate: 1, EntryID: 1, ExitID: 1})
	assert.True(t, IsInvalidInput(err, ""))
	assert.False(t, IsInvalidInput(err, ReasonInvalidSelector))
}
