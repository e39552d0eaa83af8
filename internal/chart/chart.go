// Package chart renders dashboard aggregations as SVG or PNG images.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/paperdash/internal/analysis"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to plot; callers omit the chart.
var ErrNoData = errors.New("no data to chart")

// Format selects the image encoding.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat accepts "svg" or "png" in any case. Empty means SVG.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", SVG:
		return SVG, nil
	case PNG:
		return PNG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q (use svg or png)", s)
}

// ContentType is the MIME type of the encoded image.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Options sizes and encodes a chart.
type Options struct {
	Width  int
	Height int
	Format Format
}

func (o Options) normalized() Options {
	if o.Width <= 0 {
		o.Width = 1000
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.Format == "" {
		o.Format = SVG
	}
	return o
}

func (o Options) renderer() gochart.RendererProvider {
	if o.Format == PNG {
		return gochart.PNG
	}
	return gochart.SVG
}

var lineColor = drawing.ColorFromHex("1f77b4")

// TimeSeries draws publications per year as a line with markers. Points are
// placed at their position in the series and labelled with the year key, so
// gaps between years are not stretched.
func TimeSeries(points []analysis.Count, opts Options) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}
	opts = opts.normalized()

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	// go-chart derives the x range from the ticks, so blank ticks at both
	// edges keep the range non-empty when there is a single year.
	minX, maxX := 0.5, float64(len(points))+0.5
	ticks := make([]gochart.Tick, 0, len(points)+2)
	ticks = append(ticks, gochart.Tick{Value: minX})
	maxY := 0.0
	for i, p := range points {
		x := float64(i + 1)
		xs[i] = x
		ys[i] = float64(p.Count)
		ticks = append(ticks, gochart.Tick{Value: x, Label: p.Key})
		maxY = math.Max(maxY, ys[i])
	}
	ticks = append(ticks, gochart.Tick{Value: maxX})

	ch := gochart.Chart{
		Title:      "Publications Over Time",
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  "Year",
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: minX, Max: maxX},
		},
		YAxis: gochart.YAxis{
			Name:           "Number of Publications",
			Range:          &gochart.ContinuousRange{Min: 0, Max: niceMax(maxY)},
			ValueFormatter: intFormatter,
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Publications",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					DotColor:    lineColor,
					DotWidth:    4,
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := ch.Render(opts.renderer(), &buf); err != nil {
		return nil, fmt.Errorf("render time series: %w", err)
	}
	return buf.Bytes(), nil
}

// TopJournals draws the n most frequent journals as bars. Labels are
// shortened with analysis.DisplayLabel.
func TopJournals(points []analysis.Count, n int, opts Options) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}
	if n < 1 {
		n = 1
	}
	if len(points) > n {
		points = points[:n]
	}
	opts = opts.normalized()

	bars := make([]gochart.Value, len(points))
	maxY := 0.0
	for i, p := range points {
		bars[i] = gochart.Value{Label: analysis.DisplayLabel(p.Key), Value: float64(p.Count)}
		maxY = math.Max(maxY, bars[i].Value)
	}
	barWidth := opts.Width / (len(bars) * 2)
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 4 {
		barWidth = 4
	}
	bc := gochart.BarChart{
		Title:      fmt.Sprintf("Top %d Publishing Journals", n),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}},
		BarWidth:   barWidth,
		BarSpacing: barWidth / 2,
		XAxis:      gochart.Style{FontSize: 7, TextWrap: gochart.TextWrapWord},
		YAxis: gochart.YAxis{
			Name:           "Number of Publications",
			Range:          &gochart.ContinuousRange{Min: 0, Max: niceMax(maxY)},
			ValueFormatter: intFormatter,
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := bc.Render(opts.renderer(), &buf); err != nil {
		return nil, fmt.Errorf("render top journals: %w", err)
	}
	return buf.Bytes(), nil
}

// niceMax rounds the largest value up so the axis has headroom.
func niceMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if m*mag >= v*1.05 {
			return m * mag
		}
	}
	return 10 * mag
}

func intFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%v", v)
}
