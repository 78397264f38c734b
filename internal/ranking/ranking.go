package ranking

import (
	"encoding/json"
	"log"
	"math"
	"os"
	"sort"

	"stockAnalyzer/internal/analytics"
	"stockAnalyzer/internal/series"
)

// scoreYears is how much trailing history feeds the score. Older data is
// still kept on disk for the risk profile and charts.
const scoreYears = 5

// Entry is one ranked stock.
type Entry struct {
	Ranking int     `json:"ranking"`
	Ticker  string  `json:"ticker"`
	Score   float64 `json:"score"`

	// Path is the data file the score was computed from.
	Path string `json:"-"`
}

// ScoreFolder scores every series CSV in dataDir and returns the entries
// sorted by score descending, ranked from 1. Series with less than minYears
// of calendar history are skipped, as are unscorable (-Inf) series. A broken
// file skips that file, not the batch.
func ScoreFolder(dataDir string, minYears int, w analytics.Weights) ([]Entry, error) {
	paths, err := series.ListDataFiles(dataDir)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, path := range paths {
		s, err := series.Load(path)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		if s.SpanDays() < float64(minYears)*365.25 {
			continue
		}
		scoring := s.LastYears(scoreYears)
		if err := scoring.Validate(); err != nil {
			log.Printf("skipping %s: %v", s.Symbol, err)
			continue
		}
		score, err := analytics.ComputeScore(scoring.Closes(), w)
		if err != nil {
			log.Printf("skipping %s: %v", s.Symbol, err)
			continue
		}
		if math.IsInf(score, -1) {
			continue
		}
		entries = append(entries, Entry{Ticker: s.Symbol, Score: score, Path: path})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	for i := range entries {
		entries[i].Ranking = i + 1
	}
	return entries, nil
}

// Top returns the first n entries, or all of them if fewer.
func Top(entries []Entry, n int) []Entry {
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

// WriteJSON saves entries as the scoring results file consumed by report
// tooling.
func WriteJSON(path string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
