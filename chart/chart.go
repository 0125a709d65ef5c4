// Package chart renders probability mass functions as standalone HTML pages.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/mwiater/mitoolbox/probability"
)

// Labels formats state values for axis categories.
func Labels(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out
}

// PMF builds a bar chart of a single distribution.
func PMF(title, series string, samples []float64) *charts.Bar {
	state := probability.Probability(samples)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d samples, %d states", len(samples), state.NumStates),
		}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
	)

	items := make([]opts.BarData, 0, len(state.PMF))
	for _, p := range state.PMF {
		items = append(items, opts.BarData{Value: p})
	}
	bar.SetXAxis(Labels(probability.Values(samples))).AddSeries(series, items)
	return bar
}

// Joint builds a heat map of the joint distribution of first (x axis) and
// second (y axis).
func Joint(title string, first, second []float64) (*charts.HeatMap, error) {
	state, err := probability.JointProbability(first, second)
	if err != nil {
		return nil, err
	}

	var peak float64
	items := make([]opts.HeatMapData, 0, len(state.JointPMF))
	for s := uint32(0); s < state.NumSecondStates; s++ {
		for f := uint32(0); f < state.NumFirstStates; f++ {
			p := state.At(f, s)
			peak = max(peak, p)
			items = append(items, opts.HeatMapData{Value: [3]interface{}{f, s, p}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d x %d states", state.NumFirstStates, state.NumSecondStates),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category",
			Data: Labels(probability.Values(second)),
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min:     0,
			Max:     float32(peak),
			InRange: &opts.VisualMapInRange{Color: []string{"#f6efa6", "#d88273", "#bf444c"}},
		}),
	)
	hm.SetXAxis(Labels(probability.Values(first))).AddSeries("joint", items)
	return hm, nil
}

// Render writes the charts to w as a single page.
func Render(w io.Writer, c ...components.Charter) error {
	page := components.NewPage()
	page.AddCharts(c...)
	return page.Render(w)
}

// WriteFile renders the charts to path, creating parent directories.
func WriteFile(path string, c ...components.Charter) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create chart directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create chart file: %w", err)
	}
	defer f.Close()
	return Render(f, c...)
}
