package analytics

import (
	"time"
)

// RollingHorizons are the lookback horizons, in years, of the rolling return
// series in a RiskProfile.
var RollingHorizons = []int{1, 2, 3}

// DrawdownStats describes the worst peak-to-trough decline of a series.
type DrawdownStats struct {
	// MaxDrawdown is the largest fractional decline from the running peak.
	MaxDrawdown float64

	// MaxDrawdownDate is the trough: the earliest date with the most
	// negative drawdown.
	MaxDrawdownDate time.Time

	// PeakDate is the last date at or before the trough where the price
	// equals its running peak.
	PeakDate time.Time

	// PeakValue is the price at PeakDate.
	PeakValue float64

	// RecoveryDate is the first date at or after the trough where the price
	// returns to at least PeakValue; nil if the series never recovers.
	RecoveryDate *time.Time
}

// RollingSeries is a rolling return series. Values start at index Offset of
// the source series; indices before the lookback window have no value rather
// than a zero, which would read as a flat return.
type RollingSeries struct {
	Offset int
	Values []float64
}

// RiskProfile is the per-day analytics bundle for one price series.
type RiskProfile struct {
	Dates []time.Time

	// Peaks[t] is the running maximum of the prices up to t.
	Peaks []float64

	// Drawdown[t] = (Peaks[t] - price[t]) / Peaks[t], in [0, 1).
	Drawdown []float64

	Stats DrawdownStats

	// Rolling maps a horizon in years to its rolling return series.
	Rolling map[int]RollingSeries
}

// ComputeRiskProfile derives the drawdown curve, drawdown statistics, and
// rolling 1/2/3-year returns from an aligned date/price series. It is a pure
// function: the inputs are not mutated and nothing is cached between calls.
//
// Unlike ComputeScore there is no sentinel here; a series too short to draw a
// curve for is a hard failure.
func ComputeRiskProfile(dates []time.Time, prices []float64, annualizationFactor int) (*RiskProfile, error) {
	if len(dates) != len(prices) {
		return nil, domainErrorf("dates and prices are misaligned: %d dates, %d prices", len(dates), len(prices))
	}
	if len(prices) < 2 {
		return nil, ErrInsufficientData
	}
	if err := checkPrices(prices); err != nil {
		return nil, err
	}

	n := len(prices)
	peaks := make([]float64, n)
	drawdown := make([]float64, n)

	peak := prices[0]
	troughIdx := 0
	for i, p := range prices {
		if p > peak {
			peak = p
		}
		peaks[i] = peak
		drawdown[i] = (peak - p) / peak
		// Strict comparison keeps the earliest trough on ties.
		if drawdown[i] > drawdown[troughIdx] {
			troughIdx = i
		}
	}

	// Most recent index at or before the trough whose price equals the
	// running peak at that point.
	peakIdx := troughIdx
	for peakIdx > 0 && prices[peakIdx] != peaks[peakIdx] {
		peakIdx--
	}
	peakValue := prices[peakIdx]

	stats := DrawdownStats{
		MaxDrawdown:     drawdown[troughIdx],
		MaxDrawdownDate: dates[troughIdx],
		PeakDate:        dates[peakIdx],
		PeakValue:       peakValue,
	}
	for i := troughIdx; i < n; i++ {
		if prices[i] >= peakValue {
			d := dates[i]
			stats.RecoveryDate = &d
			break
		}
	}

	rolling := make(map[int]RollingSeries, len(RollingHorizons))
	for _, k := range RollingHorizons {
		window := k * annualizationFactor
		rs := RollingSeries{Offset: window}
		for t := window; t < n; t++ {
			rs.Values = append(rs.Values, prices[t]/prices[t-window]-1)
		}
		rolling[k] = rs
	}

	return &RiskProfile{
		Dates:    dates,
		Peaks:    peaks,
		Drawdown: drawdown,
		Stats:    stats,
		Rolling:  rolling,
	}, nil
}
