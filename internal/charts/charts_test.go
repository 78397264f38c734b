package charts

import (
	"bytes"
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockAnalyzer/internal/analytics"
	"stockAnalyzer/internal/series"
)

func testSeries(t *testing.T, n int) *series.Series {
	t.Helper()
	s := &series.Series{Symbol: "TEST"}
	start := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	prices := []float64{100, 104, 99, 108, 112, 105, 118, 120, 116, 125}
	for i := 0; i < n; i++ {
		p := prices[i%len(prices)] + float64(i)
		s.Points = append(s.Points, series.Point{Date: start.AddDate(0, 0, i), Open: p, High: p, Low: p, Close: p, Volume: 100})
	}
	return s
}

func TestRenderAnalysisProducesPNG(t *testing.T) {
	s := testSeries(t, 30)
	// A small annualization factor gives the rolling panel data to draw.
	profile, err := analytics.ComputeRiskProfile(s.Dates(), s.Closes(), 5)
	require.NoError(t, err)

	img, err := RenderAnalysis("test", s, profile)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, chartWidth, decoded.Bounds().Dx())
	// Price, drawdown, and rolling panels stacked.
	assert.Equal(t, priceHeight+2*metricHeight, decoded.Bounds().Dy())
}

func TestRenderAnalysisWithoutRollingData(t *testing.T) {
	s := testSeries(t, 10)
	// 252-day lookback exceeds the series, so every horizon is absent and
	// the rolling panel is dropped.
	profile, err := analytics.ComputeRiskProfile(s.Dates(), s.Closes(), 252)
	require.NoError(t, err)

	img, err := RenderAnalysis("test", s, profile)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, priceHeight+metricHeight, decoded.Bounds().Dy())
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	s := testSeries(t, 20)
	profile, err := analytics.ComputeRiskProfile(s.Dates(), s.Closes(), 5)
	require.NoError(t, err)

	img, err := RenderAnalysis("test", s, profile)
	require.NoError(t, err)

	path, err := WritePNG(dir, "test", img)
	require.NoError(t, err)
	assert.Contains(t, path, "TEST.png")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// The file holds exactly the rendered bytes, not a second render.
	assert.Equal(t, img, data)
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}
