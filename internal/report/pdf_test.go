package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockAnalyzer/internal/analytics"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBuildProducesPDF(t *testing.T) {
	recovery := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	stocks := []StockReport{
		{
			Ranking:     1,
			Ticker:      "AAPL",
			Score:       4.2031,
			Description: "<p>A <b>large</b> company.</p><ul><li>Reason one</li><li>Reason two</li></ul>",
			ChartPNG:    tinyPNG(t),
			Stats: analytics.DrawdownStats{
				MaxDrawdown:     0.31,
				MaxDrawdownDate: time.Date(2020, 3, 23, 0, 0, 0, 0, time.UTC),
				PeakDate:        time.Date(2020, 2, 19, 0, 0, 0, 0, time.UTC),
				PeakValue:       81.8,
				RecoveryDate:    &recovery,
			},
		},
		{
			Ranking:     2,
			Ticker:      "GOOG",
			Score:       3.9,
			Description: "Plain text description.",
			Stats: analytics.DrawdownStats{
				MaxDrawdown:     0.44,
				MaxDrawdownDate: time.Date(2022, 11, 3, 0, 0, 0, 0, time.UTC),
				PeakDate:        time.Date(2021, 11, 18, 0, 0, 0, 0, time.UTC),
				PeakValue:       150.7,
			},
		},
	}

	data, err := NewBuilder("Stock Scout").Build(stocks)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should start with the PDF magic")
	assert.Greater(t, len(data), 1000)
}

func TestStripHTML(t *testing.T) {
	in := "<p>Summary line.</p><ul><li>First</li><li>Second</li></ul><b>bold</b><br>end"
	out := stripHTML(in)
	assert.Equal(t, "Summary line.\n- First\n- Second\n\nbold\nend", out)
}

func TestStatsText(t *testing.T) {
	stats := analytics.DrawdownStats{
		MaxDrawdown:     0.25,
		MaxDrawdownDate: time.Date(2020, 3, 23, 0, 0, 0, 0, time.UTC),
		PeakDate:        time.Date(2020, 2, 19, 0, 0, 0, 0, time.UTC),
		PeakValue:       120,
	}
	out := statsText(stats)
	assert.Contains(t, out, "Max drawdown: 25.00%")
	assert.Contains(t, out, "not yet recovered")

	rec := time.Date(2020, 8, 10, 0, 0, 0, 0, time.UTC)
	stats.RecoveryDate = &rec
	out = statsText(stats)
	assert.Contains(t, out, "Recovered: 2020-08-10 (173 days)")
}
