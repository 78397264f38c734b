package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Weights configures the score formula. The drawdown term is a non-negative
// magnitude, so callers supply a negative MaxDrawdown weight to penalize it.
type Weights struct {
	AnnReturn    float64
	MaxDrawdown  float64
	SlopeToNoise float64

	// AnnualizationFactor is the number of trading periods per year.
	AnnualizationFactor int
}

// DefaultWeights are the production ranking weights.
func DefaultWeights() Weights {
	return Weights{
		AnnReturn:           1.0,
		MaxDrawdown:         -2.0,
		SlopeToNoise:        4.0,
		AnnualizationFactor: 252,
	}
}

// ComputeScore reduces a daily price series to a single ranking score:
// a weighted sum of annualized return, maximum drawdown, and the
// slope-to-noise ratio of an OLS fit on log price.
//
// A series with fewer than 2 points is unscorable and yields -Inf with a nil
// error so batch ranking can skip past it. Non-positive or non-finite prices
// yield a *DomainError.
//
// The return is annualized over the elapsed sample count divided by the
// annualization factor, not elapsed calendar time. Series with gaps are
// approximated the same way on purpose; changing this would silently reorder
// rankings.
func ComputeScore(prices []float64, w Weights) (float64, error) {
	if len(prices) < 2 {
		return math.Inf(-1), nil
	}
	if err := checkPrices(prices); err != nil {
		return 0, err
	}

	af := float64(w.AnnualizationFactor)
	n := float64(len(prices))
	annReturn := math.Pow(prices[len(prices)-1]/prices[0], af/n) - 1

	maxDD := MaxDrawdown(prices)

	index := make([]float64, len(prices))
	logPrices := make([]float64, len(prices))
	for i, p := range prices {
		index[i] = float64(i)
		logPrices[i] = math.Log(p)
	}
	alpha, slope := stat.LinearRegression(index, logPrices, nil, false)

	residuals := make([]float64, len(prices))
	for i := range logPrices {
		residuals[i] = logPrices[i] - (alpha + slope*index[i])
	}
	noise := stat.PopStdDev(residuals, nil)

	// A perfectly linear log-price fit has zero residual noise; it scores
	// neutrally on this term rather than infinitely.
	slopeToNoise := 0.0
	if noise != 0 {
		slopeToNoise = slope / noise
	}

	score := w.AnnReturn*annReturn + w.MaxDrawdown*maxDD + w.SlopeToNoise*slopeToNoise
	return score, nil
}

// MaxDrawdown returns the largest fractional decline from the running peak,
// in [0, 1) for strictly positive prices. A single forward pass maintains the
// running maximum.
func MaxDrawdown(prices []float64) float64 {
	peak := prices[0]
	maxDD := 0.0
	for _, p := range prices {
		if p > peak {
			peak = p
		}
		if dd := (peak - p) / peak; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

func checkPrices(prices []float64) error {
	for i, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return domainErrorf("non-finite price %f at index %d", p, i)
		}
		if p <= 0 {
			return domainErrorf("non-positive price %f at index %d", p, i)
		}
	}
	return nil
}
