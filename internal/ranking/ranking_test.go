package ranking

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockAnalyzer/internal/analytics"
	"stockAnalyzer/internal/series"
)

// writeSeries saves a synthetic daily series spanning six years with a fixed
// daily growth rate plus a deterministic wiggle, so the trend fit sees real
// residual noise.
func writeSeries(t *testing.T, dir, symbol string, dailyGrowth float64) {
	t.Helper()
	s := &series.Series{Symbol: symbol}
	start := time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC)
	trend := 100.0
	for i := 0; i < 6*365; i++ {
		price := trend * (1 + 0.02*math.Sin(float64(i)))
		s.Points = append(s.Points, series.Point{
			Date: start.AddDate(0, 0, i), Open: price, High: price, Low: price, Close: price, Volume: 1000,
		})
		trend *= dailyGrowth
	}
	_, err := series.Save(dir, s)
	require.NoError(t, err)
}

func TestScoreFolderRanksByScore(t *testing.T) {
	dir := t.TempDir()
	writeSeries(t, dir, "SLOW", 1.0001)
	writeSeries(t, dir, "FAST", 1.001)

	entries, err := ScoreFolder(dir, 5, analytics.DefaultWeights())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "FAST", entries[0].Ticker)
	assert.Equal(t, 1, entries[0].Ranking)
	assert.Equal(t, "SLOW", entries[1].Ticker)
	assert.Equal(t, 2, entries[1].Ranking)
	assert.Greater(t, entries[0].Score, entries[1].Score)
}

func TestScoreFolderSkipsShortHistory(t *testing.T) {
	dir := t.TempDir()
	writeSeries(t, dir, "FAST", 1.001)

	s := &series.Series{Symbol: "NEW"}
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		s.Points = append(s.Points, series.Point{Date: start.AddDate(0, 0, i), Open: 10, High: 10, Low: 10, Close: 10, Volume: 1})
	}
	_, err := series.Save(dir, s)
	require.NoError(t, err)

	entries, err := ScoreFolder(dir, 5, analytics.DefaultWeights())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "FAST", entries[0].Ticker)
}

func TestTop(t *testing.T) {
	entries := []Entry{{Ranking: 1}, {Ranking: 2}, {Ranking: 3}}
	assert.Len(t, Top(entries, 2), 2)
	assert.Len(t, Top(entries, 10), 3)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring_results.json")
	entries := []Entry{{Ranking: 1, Ticker: "AAPL", Score: 3.1415}}
	require.NoError(t, WriteJSON(path, entries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []Entry
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "AAPL", got[0].Ticker)
	assert.Equal(t, 3.1415, got[0].Score)
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, []Entry{{Ranking: 1, Ticker: "GOOG", Score: 2.5}})
	out := buf.String()
	assert.Contains(t, out, "GOOG")
	assert.Contains(t, out, "2.5000")
}
