package main

import (
	"bytes"
	"errors"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Server-side PNG renditions of the two dashboard charts, offered as
// downloads next to the spreadsheet/CSV/JSON exports. The interactive
// versions on the page itself are chart.js; these exist so the numbers
// can leave the browser.

var errNoChartData = errors.New("no data to chart")

var chartPalette = []drawing.Color{
	{R: 0x3b, G: 0x82, B: 0xf6, A: 255},
	{R: 0x22, G: 0xc5, B: 0x5e, A: 255},
	{R: 0xea, G: 0xb3, B: 0x08, A: 255},
	{R: 0xef, G: 0x44, B: 0x44, A: 255},
	{R: 0xa8, G: 0x55, B: 0xf7, A: 255},
	{R: 0x22, G: 0xd3, B: 0xee, A: 255},
	{R: 0xf9, G: 0x73, B: 0x16, A: 255},
	{R: 0xec, G: 0x48, B: 0x99, A: 255},
	{R: 0x84, G: 0xcc, B: 0x16, A: 255},
}

// RenderPriceHistogram draws the fixed price buckets as a bar chart.
func RenderPriceHistogram(a *SellerAnalysis) ([]byte, error) {
	bars := make([]chart.Value, 0, len(a.PriceBuckets))
	total := 0
	for i, b := range a.PriceBuckets {
		bars = append(bars, chart.Value{
			Label: b.Label,
			Value: float64(b.Count),
			Style: chart.Style{FillColor: chartPalette[i%len(chartPalette)], StrokeWidth: 0},
		})
		total += b.Count
	}
	if total == 0 {
		return nil, errNoChartData
	}

	bc := chart.BarChart{
		Title:    fmt.Sprintf("Price distribution - %s", a.Seller),
		Width:    900,
		Height:   480,
		BarWidth: 72,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render price chart: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderCategoryPie draws the category histogram as a pie, top eight
// slices plus an "other" bucket to keep the legend readable.
func RenderCategoryPie(a *SellerAnalysis) ([]byte, error) {
	const maxSlices = 8

	values := make([]chart.Value, 0, maxSlices+1)
	other := 0
	for i, c := range a.Categories {
		if i < maxSlices {
			values = append(values, chart.Value{
				Label: fmt.Sprintf("%s (%d)", c.Label, c.Count),
				Value: float64(c.Count),
				Style: chart.Style{FillColor: chartPalette[i%len(chartPalette)], StrokeWidth: 1},
			})
		} else {
			other += c.Count
		}
	}
	if other > 0 {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("other (%d)", other),
			Value: float64(other),
			Style: chart.Style{FillColor: drawing.Color{R: 0x8b, G: 0x94, B: 0x9e, A: 255}, StrokeWidth: 1},
		})
	}
	if len(values) == 0 {
		return nil, errNoChartData
	}

	pc := chart.PieChart{
		Title:  fmt.Sprintf("Categories - %s", a.Seller),
		Width:  640,
		Height: 640,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category chart: %w", err)
	}
	return buf.Bytes(), nil
}
