package report

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	chartWidth  = 15 * vg.Inch
	chartHeight = 10 * vg.Inch
	chartDPI    = 300
)

var (
	ordersColor     = color.RGBA{R: 135, G: 206, B: 235, A: 255} // sky blue
	aovColor        = color.RGBA{R: 0, G: 128, B: 0, A: 255}     // green
	weekdayColor    = color.RGBA{R: 240, G: 128, B: 128, A: 255} // light coral
	cumulativeColor = color.RGBA{R: 128, G: 0, B: 128, A: 255}   // purple
)

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// writeChart renders the four-panel sales chart as a PNG: daily sales,
// daily orders, average order value, and either mean sales per weekday
// (series of a week or more) or cumulative sales. A partially written
// file is removed on failure.
func writeChart(points []SalesPoint, path string) error {
	salesP, err := salesPanel(points)
	if err != nil {
		return fmt.Errorf("sales panel: %w", err)
	}
	ordersP, err := ordersPanel(points)
	if err != nil {
		return fmt.Errorf("orders panel: %w", err)
	}
	aovP, err := aovPanel(points)
	if err != nil {
		return fmt.Errorf("avg order value panel: %w", err)
	}
	trendP, err := trendPanel(points)
	if err != nil {
		return fmt.Errorf("trend panel: %w", err)
	}

	panels := [][]*plot.Plot{
		{salesP, ordersP},
		{aovP, trendP},
	}

	img := vgimg.NewWith(vgimg.UseWH(chartWidth, chartHeight), vgimg.UseDPI(chartDPI))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2, Cols: 2,
		PadX: vg.Millimeter * 5, PadY: vg.Millimeter * 5,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}

	canvases := plot.Align(panels, tiles, dc)
	for i := range panels {
		for j := range panels[i] {
			panels[i][j].Draw(canvases[i][j])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("encode chart: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close chart file: %w", err)
	}
	return nil
}

func salesPanel(points []SalesPoint) (*plot.Plot, error) {
	p := newDatePanel("Daily Sales", "Sales ($)")

	line, markers, err := plotter.NewLinePoints(dateSeries(points, func(pt SalesPoint) float64 {
		return float64(pt.Sales)
	}))
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	markers.GlyphStyle.Shape = draw.CircleGlyph{}
	markers.GlyphStyle.Radius = vg.Points(2)

	p.Add(line, markers, plotter.NewGrid())
	return p, nil
}

func ordersPanel(points []SalesPoint) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Daily Orders"
	p.Y.Label.Text = "Number of Orders"

	values := make(plotter.Values, len(points))
	labels := make([]string, len(points))
	for i, pt := range points {
		values[i] = float64(pt.Orders)
		labels[i] = pt.Date.Format(dateLayout)
	}

	bars, err := plotter.NewBarChart(values, barWidth(len(points)))
	if err != nil {
		return nil, err
	}
	bars.Color = ordersColor
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(labels...)
	rotateDateLabels(p)
	return p, nil
}

func aovPanel(points []SalesPoint) (*plot.Plot, error) {
	p := newDatePanel("Average Order Value", "AOV ($)")

	line, markers, err := plotter.NewLinePoints(dateSeries(points, func(pt SalesPoint) float64 {
		return pt.AvgOrderValue
	}))
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = aovColor
	markers.GlyphStyle.Shape = draw.BoxGlyph{}
	markers.GlyphStyle.Radius = vg.Points(2)
	markers.GlyphStyle.Color = aovColor

	p.Add(line, markers, plotter.NewGrid())
	return p, nil
}

// trendPanel picks the fourth panel: mean sales per weekday for series
// covering at least a full week, cumulative sales otherwise.
func trendPanel(points []SalesPoint) (*plot.Plot, error) {
	if len(points) >= 7 {
		return weekdaySalesPanel(points)
	}
	return cumulativeSalesPanel(points)
}

func weekdaySalesPanel(points []SalesPoint) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Average Sales by Day of Week"
	p.Y.Label.Text = "Average Sales ($)"

	totals := make(map[time.Weekday]int)
	counts := make(map[time.Weekday]int)
	for _, pt := range points {
		wd := pt.Date.Weekday()
		totals[wd] += pt.Sales
		counts[wd]++
	}

	var values plotter.Values
	var labels []string
	for _, wd := range weekdayOrder {
		if counts[wd] == 0 {
			continue
		}
		values = append(values, float64(totals[wd])/float64(counts[wd]))
		labels = append(labels, wd.String())
	}

	bars, err := plotter.NewBarChart(values, barWidth(len(values)))
	if err != nil {
		return nil, err
	}
	bars.Color = weekdayColor
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(labels...)
	rotateDateLabels(p)
	return p, nil
}

func cumulativeSalesPanel(points []SalesPoint) (*plot.Plot, error) {
	p := newDatePanel("Cumulative Sales", "Cumulative Sales ($)")

	cumulative := 0
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		cumulative += pt.Sales
		xys[i].X = float64(pt.Date.Unix())
		xys[i].Y = float64(cumulative)
	}

	line, markers, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = cumulativeColor
	markers.GlyphStyle.Shape = draw.CircleGlyph{}
	markers.GlyphStyle.Radius = vg.Points(2)
	markers.GlyphStyle.Color = cumulativeColor

	p.Add(line, markers, plotter.NewGrid())
	return p, nil
}

func newDatePanel(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: dateLayout}
	rotateDateLabels(p)
	return p
}

func rotateDateLabels(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

func dateSeries(points []SalesPoint, value func(SalesPoint) float64) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Date.Unix())
		xys[i].Y = value(pt)
	}
	return xys
}

// barWidth keeps 7-day and 30-day bar charts readable on the same panel
// size.
func barWidth(n int) vg.Length {
	if n <= 0 {
		return vg.Points(10)
	}
	w := vg.Points(160.0 / float64(n))
	if w > vg.Points(20) {
		w = vg.Points(20)
	}
	return w
}
