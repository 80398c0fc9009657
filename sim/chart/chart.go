// Package chart draws a sensitivity table as a λ-vs-metric line chart.
package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/roundabout-sim/roundabout-sim/sim"
)

// Format selects the output encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ValidFormats is the set of recognized chart formats.
var ValidFormats = map[Format]bool{FormatSVG: true, FormatPNG: true}

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !ValidFormats[f] {
		return "", fmt.Errorf("unknown chart format %q (want svg or png)", s)
	}
	return f, nil
}

// seriesColors follows sim.SeriesNames: W, Wq, L, Lq.
var seriesColors = [len(sim.SeriesNames)]drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
}

// Options size the rendered image.
type Options struct {
	Width, Height int
}

// DefaultOptions is a 500x300 image.
func DefaultOptions() Options {
	return Options{Width: 500, Height: 300}
}

// Build assembles the chart without rendering it.
func Build(table sim.SensitivityTable, opts Options) (chart.Chart, error) {
	if len(table) < 2 {
		return chart.Chart{}, fmt.Errorf("sensitivity chart needs at least 2 rows, got %d", len(table))
	}
	x, ys := table.Series()

	series := make([]chart.Series, 0, len(ys))
	for i, y := range ys {
		series = append(series, chart.ContinuousSeries{
			Name:    sim.SeriesNames[i],
			XValues: x,
			YValues: y,
			Style: chart.Style{
				StrokeColor: seriesColors[i],
				StrokeWidth: 2,
				DotColor:    seriesColors[i],
				DotWidth:    4,
			},
		})
	}

	ch := chart.Chart{
		Title:      "Sensitivity analysis",
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Arrival rate (λ)"},
		YAxis:      chart.YAxis{Name: "Value"},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, nil
}

// Render writes the chart for table to w.
func Render(table sim.SensitivityTable, format Format, opts Options, w io.Writer) error {
	ch, err := Build(table, opts)
	if err != nil {
		return err
	}
	var provider chart.RendererProvider
	switch format {
	case FormatSVG:
		provider = chart.SVG
	case FormatPNG:
		provider = chart.PNG
	default:
		return fmt.Errorf("unknown chart format %q", format)
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("rendering sensitivity chart: %w", err)
	}
	return nil
}
