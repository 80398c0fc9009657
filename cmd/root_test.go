package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roundabout-sim/roundabout-sim/sim"
	"github.com/roundabout-sim/roundabout-sim/sim/chart"
)

func TestRunMetrics_PrintsMetricsAndSweep(t *testing.T) {
	var buf bytes.Buffer

	err := runMetrics(&buf, sim.QueueingInput{ArrivalRate: 2, ServiceRate: 1, EntryID: 1, ExitID: 3})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Queueing Metrics")
	assert.Contains(t, out, "Utilization (ρ)      : 0.5000")
	assert.Contains(t, out, "Sensitivity Analysis")
}

func TestRunMetrics_Overloaded_ReturnsErrorAndPrintsNothing(t *testing.T) {
	var buf bytes.Buffer

	err := runMetrics(&buf, sim.QueueingInput{ArrivalRate: 5, ServiceRate: 1, EntryID: 1, ExitID: 3})

	assert.True(t, sim.IsInvalidInput(err, sim.ReasonOverloaded))
	assert.Zero(t, buf.Len())
}

func TestRunSensitivity_WritesChartFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.svg")
	var buf bytes.Buffer

	err := runSensitivity(&buf, sim.QueueingInput{ArrivalRate: 2, ServiceRate: 1}, path, chart.FormatSVG, chart.DefaultOptions())

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, buf.String(), "2.4000")
}

func TestRunSensitivity_NoChartPath_OnlyPrints(t *testing.T) {
	var buf bytes.Buffer

	err := runSensitivity(&buf, sim.QueueingInput{ArrivalRate: 6, ServiceRate: 1}, "", chart.FormatSVG, chart.DefaultOptions())

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "3.6000")
}

func TestResolveParams_PositionalArgs_Override(t *testing.T) {
	c := &cobra.Command{}

	p, err := resolveParams(c, []string{"3", "1.5", "2", "4"})

	require.NoError(t, err)
	assert.Equal(t, sim.QueueingInput{ArrivalRate: 3, ServiceRate: 1.5, EntryID: 2, ExitID: 4}, p.input)
}

func TestResolveParams_NonNumericArg_ReturnsNonNumeric(t *testing.T) {
	_, err := resolveParams(&cobra.Command{}, []string{"fast", "1", "1", "2"})

	assert.True(t, sim.IsInvalidInput(err, sim.ReasonNonNumeric))
}

func TestNoneOrFourArgs(t *testing.T) {
	assert.NoError(t, noneOrFourArgs(runCmd, nil))
	assert.NoError(t, noneOrFourArgs(runCmd, []string{"1", "1", "1", "1"}))
	assert.Error(t, noneOrFourArgs(runCmd, []string{"1", "1"}))
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["sensitivity"])
	assert.True(t, names["animate"])
}
