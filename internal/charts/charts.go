package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	charts "github.com/vicanso/go-charts/v2"

	"stockAnalyzer/internal/analytics"
	"stockAnalyzer/internal/series"
)

const (
	chartWidth = 1200

	// The price panel gets three times the height of the two metric panels,
	// mirroring the report layout.
	priceHeight  = 600
	metricHeight = 240
)

// RenderAnalysis renders the three-panel analysis image for one stock:
// price with its running peak, the drawdown curve, and rolling 1/2/3-year
// returns. Panels are rendered separately and stacked into a single PNG.
func RenderAnalysis(symbol string, s *series.Series, p *analytics.RiskProfile) ([]byte, error) {
	if len(s.Points) == 0 || len(p.Drawdown) != len(s.Points) {
		return nil, errors.New("charts: series and risk profile are misaligned")
	}

	x := make([]string, len(s.Points))
	for i, pt := range s.Points {
		x[i] = pt.Date.Format("2006-01-02")
	}
	split := 12
	if len(x) < 60 {
		split = 6
	}

	pricePanel, err := renderPanel(
		[][]float64{s.Closes(), p.Peaks},
		[]string{"Close Price", "Historical Peak"},
		strings.ToUpper(symbol)+" • Price and Risk Analysis",
		x, split, priceHeight,
	)
	if err != nil {
		return nil, fmt.Errorf("price panel: %w", err)
	}

	// Drawdown is plotted as a decline below zero so dips read as losses.
	dd := make([]float64, len(p.Drawdown))
	for i, v := range p.Drawdown {
		dd[i] = -v * 100
	}
	ddPanel, err := renderPanel(
		[][]float64{dd},
		[]string{"Drawdown %"},
		"Drawdown from Peak",
		x, split, metricHeight,
	)
	if err != nil {
		return nil, fmt.Errorf("drawdown panel: %w", err)
	}

	panels := [][]byte{pricePanel, ddPanel}

	if values, names := rollingSeries(p, len(s.Points)); len(values) > 0 {
		rollPanel, err := renderPanel(values, names, "Rolling Returns %", x, split, metricHeight)
		if err != nil {
			return nil, fmt.Errorf("rolling panel: %w", err)
		}
		panels = append(panels, rollPanel)
	}

	return stackVertical(panels)
}

// WritePNG writes an already rendered chart as <SYMBOL>.png into dir,
// returning the full path.
func WritePNG(dir, symbol string, img []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, strings.ToUpper(symbol)+".png")
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// rollingSeries aligns the rolling return series to the full x axis, padding
// the leading lookback window with null points so the missing values render
// as gaps, not zeros. Horizons with no defined values are dropped.
func rollingSeries(p *analytics.RiskProfile, n int) ([][]float64, []string) {
	var values [][]float64
	var names []string
	for _, k := range analytics.RollingHorizons {
		rs, ok := p.Rolling[k]
		if !ok || len(rs.Values) == 0 {
			continue
		}
		row := make([]float64, n)
		for i := 0; i < rs.Offset && i < n; i++ {
			row[i] = charts.GetNullValue()
		}
		for i, v := range rs.Values {
			if rs.Offset+i < n {
				row[rs.Offset+i] = v * 100
			}
		}
		values = append(values, row)
		names = append(names, fmt.Sprintf("%d-Year Return", k))
	}
	return values, names
}

func renderPanel(values [][]float64, names []string, title string, x []string, split, height int) ([]byte, error) {
	painter, err := charts.LineRender(values,
		charts.TitleTextOptionFunc(title),
		charts.LegendLabelsOptionFunc(names),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: x, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(height),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// stackVertical composes the rendered panels top to bottom into one PNG.
func stackVertical(panels [][]byte) ([]byte, error) {
	var imgs []image.Image
	width, height := 0, 0
	for _, data := range panels {
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if w := img.Bounds().Dx(); w > width {
			width = w
		}
		height += img.Bounds().Dy()
		imgs = append(imgs, img)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	y := 0
	for _, img := range imgs {
		b := img.Bounds()
		draw.Draw(canvas, image.Rect(0, y, b.Dx(), y+b.Dy()), img, b.Min, draw.Src)
		y += b.Dy()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
