// Package chart renders the dev/prod volume comparison as an SVG document:
// one connected line with circle markers per non-empty series, a grid,
// a legend, and rotated full date+time tick labels on the x-axis. The
// renderer clips drawing to the visible x-range so scrolling the window
// changes the view without touching the data.
package chart

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/akeene/volscope/pkg/series"
)

// TimeFormat is the full date+time layout used for x-axis tick labels and
// range captions.
const TimeFormat = "2006-01-02 15:04"

// Fixed series colors: dev blue, prod green.
const (
	DevColor  = "#1f77b4"
	ProdColor = "#2ca02c"
)

// Renderer draws volume comparison charts at a fixed pixel size.
type Renderer struct {
	Width    int
	Height   int
	MaxTicks int
}

// NewRenderer returns a renderer with the default chart geometry.
func NewRenderer() *Renderer {
	return &Renderer{Width: 960, Height: 440, MaxTicks: 8}
}

// Input is one chart to draw. Dev and Prod are the series already filtered
// to the component; Timestamps is the merged sorted sequence the scroll
// window runs over; XMin/XMax are the visible range.
type Input struct {
	Component  string
	Dev        series.Series
	Prod       series.Series
	Timestamps []time.Time
	XMin       time.Time
	XMax       time.Time
}

const (
	marginLeft   = 64
	marginRight  = 24
	marginTop    = 48
	marginBottom = 96
)

// Render produces the SVG document for in.
func (r *Renderer) Render(in Input) string {
	plotW := float64(r.Width - marginLeft - marginRight)
	plotH := float64(r.Height - marginTop - marginBottom)

	xScale := func(t time.Time) float64 {
		span := in.XMax.Sub(in.XMin)
		if span <= 0 {
			return marginLeft + plotW/2
		}
		return marginLeft + float64(t.Sub(in.XMin))/float64(span)*plotW
	}

	yMin, yMax := volumeDomain(in.Dev, in.Prod)
	yScale := func(v int) float64 {
		return marginTop + plotH - (float64(v)-yMin)/(yMax-yMin)*plotH
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		r.Width, r.Height, r.Width, r.Height)
	b.WriteString("\n")

	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="white"/>`+"\n", r.Width, r.Height)
	fmt.Fprintf(&b, `<defs><clipPath id="plot"><rect x="%d" y="%d" width="%.1f" height="%.1f"/></clipPath></defs>`+"\n",
		marginLeft, marginTop, plotW, plotH)

	fmt.Fprintf(&b, `<text x="%d" y="24" text-anchor="middle" font-size="16">Volume Comparison for Component: %s</text>`+"\n",
		r.Width/2, html.EscapeString(in.Component))

	r.writeYAxis(&b, yMin, yMax, plotW, yScale)
	r.writeXAxis(&b, in, plotH, xScale)

	// Plot frame.
	fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%.1f" height="%.1f" fill="none" stroke="#999"/>`+"\n",
		marginLeft, marginTop, plotW, plotH)

	if !in.Dev.Empty() {
		writeSeries(&b, in.Dev, DevColor, xScale, yScale)
	}
	if !in.Prod.Empty() {
		writeSeries(&b, in.Prod, ProdColor, xScale, yScale)
	}

	r.writeLegend(&b, in)

	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="13">Timestamp</text>`+"\n",
		marginLeft+int(plotW)/2, r.Height-8)
	fmt.Fprintf(&b, `<text x="16" y="%d" text-anchor="middle" font-size="13" transform="rotate(-90 16 %d)">Volume</text>`+"\n",
		marginTop+int(plotH)/2, marginTop+int(plotH)/2)

	b.WriteString("</svg>\n")
	return b.String()
}

func (r *Renderer) writeYAxis(b *strings.Builder, yMin, yMax, plotW float64, yScale func(int) float64) {
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		v := yMin + (yMax-yMin)*float64(i)/ticks
		y := yScale(int(v))
		fmt.Fprintf(b, `<line x1="%d" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ddd"/>`+"\n",
			marginLeft, y, float64(marginLeft)+plotW, y)
		fmt.Fprintf(b, `<text x="%d" y="%.1f" text-anchor="end" font-size="11">%.0f</text>`+"\n",
			marginLeft-6, y+4, v)
	}
}

func (r *Renderer) writeXAxis(b *strings.Builder, in Input, plotH float64, xScale func(time.Time) float64) {
	visible := visibleTicks(in.Timestamps, in.XMin, in.XMax)
	step := 1
	if r.MaxTicks > 0 && len(visible) > r.MaxTicks {
		step = (len(visible) + r.MaxTicks - 1) / r.MaxTicks
	}
	for i := 0; i < len(visible); i += step {
		ts := visible[i]
		x := xScale(ts)
		yBase := float64(marginTop) + plotH
		fmt.Fprintf(b, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%.1f" stroke="#ddd"/>`+"\n",
			x, marginTop, x, yBase)
		// Rotated for legibility, matching the dense full-timestamp labels.
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="10" text-anchor="start" transform="rotate(45 %.1f %.1f)">%s</text>`+"\n",
			x, yBase+14, x, yBase+14, ts.Format(TimeFormat))
	}
}

func (r *Renderer) writeLegend(b *strings.Builder, in Input) {
	x := r.Width - marginRight - 130
	y := marginTop + 8
	entry := func(label, color string) {
		fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>`+"\n",
			x, y, x+22, y, color)
		fmt.Fprintf(b, `<circle cx="%d" cy="%d" r="3" fill="%s"/>`+"\n", x+11, y, color)
		fmt.Fprintf(b, `<text x="%d" y="%d" font-size="12">%s</text>`+"\n", x+28, y+4, label)
		y += 18
	}
	if !in.Dev.Empty() {
		entry("Dev Volume", DevColor)
	}
	if !in.Prod.Empty() {
		entry("Prod Volume", ProdColor)
	}
}

func writeSeries(b *strings.Builder, s series.Series, color string, xScale func(time.Time) float64, yScale func(int) float64) {
	fmt.Fprintf(b, `<g clip-path="url(#plot)">`+"\n")

	var points strings.Builder
	for i, rd := range s.Readings {
		if i > 0 {
			points.WriteByte(' ')
		}
		fmt.Fprintf(&points, "%.1f,%.1f", xScale(rd.Timestamp), yScale(rd.Volume))
	}
	fmt.Fprintf(b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
		points.String(), color)

	for _, rd := range s.Readings {
		fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n",
			xScale(rd.Timestamp), yScale(rd.Volume), color)
	}
	b.WriteString("</g>\n")
}

// volumeDomain returns the padded y-axis range covering every reading of
// both series. The full data drives the domain, not only the visible slice,
// so scrolling never rescales the y-axis.
func volumeDomain(dev, prod series.Series) (float64, float64) {
	first := true
	var lo, hi int
	for _, s := range []series.Series{dev, prod} {
		for _, r := range s.Readings {
			if first || r.Volume < lo {
				lo = r.Volume
			}
			if first || r.Volume > hi {
				hi = r.Volume
			}
			first = false
		}
	}
	if first {
		return 0, 1
	}
	if lo == hi {
		return float64(lo) - 10, float64(hi) + 10
	}
	pad := float64(hi-lo) * 0.05
	return float64(lo) - pad, float64(hi) + pad
}

func visibleTicks(timestamps []time.Time, min, max time.Time) []time.Time {
	var out []time.Time
	for _, ts := range timestamps {
		if !ts.Before(min) && !ts.After(max) {
			out = append(out, ts)
		}
	}
	return out
}
