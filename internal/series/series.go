package series

import (
	"fmt"
	"math"
	"time"
)

// Point is one daily OHLCV bar.
type Point struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Series is an ordered daily price history for one symbol, ascending by date.
type Series struct {
	Symbol string
	Points []Point
}

// Closes returns the close prices aligned with Dates.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// Dates returns the bar dates aligned with Closes.
func (s *Series) Dates() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Date
	}
	return out
}

// Start returns the first bar date, zero if the series is empty.
func (s *Series) Start() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[0].Date
}

// End returns the last bar date, zero if the series is empty.
func (s *Series) End() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[len(s.Points)-1].Date
}

// SpanDays returns the calendar days covered by the series.
func (s *Series) SpanDays() float64 {
	if len(s.Points) < 2 {
		return 0
	}
	return s.End().Sub(s.Start()).Hours() / 24
}

// Clip returns the sub-series with dates in [from, to]. A zero bound is open.
// The returned series shares the underlying points.
func (s *Series) Clip(from, to time.Time) *Series {
	lo, hi := 0, len(s.Points)
	if !from.IsZero() {
		for lo < hi && s.Points[lo].Date.Before(from) {
			lo++
		}
	}
	if !to.IsZero() {
		for hi > lo && s.Points[hi-1].Date.After(to) {
			hi--
		}
	}
	return &Series{Symbol: s.Symbol, Points: s.Points[lo:hi]}
}

// LastYears returns the trailing sub-series covering the given number of
// calendar years before the series end.
func (s *Series) LastYears(years int) *Series {
	if len(s.Points) == 0 {
		return &Series{Symbol: s.Symbol}
	}
	return s.Clip(s.End().AddDate(-years, 0, 0), time.Time{})
}

// Validate checks the invariants downstream analytics rely on: at least two
// points, strictly ascending dates, and positive finite closes. The series is
// trusted to already be daily; no resampling or gap-filling happens here.
func (s *Series) Validate() error {
	if len(s.Points) < 2 {
		return fmt.Errorf("series %s: need at least 2 points, have %d", s.Symbol, len(s.Points))
	}
	for i, p := range s.Points {
		if i > 0 && !s.Points[i-1].Date.Before(p.Date) {
			return fmt.Errorf("series %s: dates not strictly ascending at index %d (%s then %s)",
				s.Symbol, i, s.Points[i-1].Date.Format(dateLayout), p.Date.Format(dateLayout))
		}
		if math.IsNaN(p.Close) || math.IsInf(p.Close, 0) || p.Close <= 0 {
			return fmt.Errorf("series %s: invalid close %f at index %d", s.Symbol, p.Close, i)
		}
	}
	return nil
}
