package nasdaq

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"stockAnalyzer/internal/series"
)

// requestPace is the delay between per-symbol downloads to avoid
// overwhelming the server.
const requestPace = 1 * time.Second

// DownloadSummary reports the outcome of a batch download.
type DownloadSummary struct {
	Succeeded int
	Failed    int
}

// DownloadAll fetches and saves history for every ticker, paced one request
// per second. Per-symbol failures are logged and counted, not fatal; only a
// cancelled context aborts the batch.
func (c *Client) DownloadAll(ctx context.Context, tickers []string, from, to time.Time, dataDir string) (DownloadSummary, error) {
	var sum DownloadSummary
	for i, ticker := range tickers {
		if i > 0 {
			select {
			case <-time.After(requestPace):
			case <-ctx.Done():
				return sum, ctx.Err()
			}
		}
		log.Printf("[%d/%d] downloading %s", i+1, len(tickers), ticker)

		s, err := c.FetchHistory(ctx, ticker, from, to)
		if err != nil {
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			log.Printf("ERROR downloading %s: %v", ticker, err)
			sum.Failed++
			continue
		}
		path, err := series.Save(dataDir, s)
		if err != nil {
			log.Printf("ERROR saving %s: %v", ticker, err)
			sum.Failed++
			continue
		}
		log.Printf("saved %d bars to %s", len(s.Points), path)
		sum.Succeeded++
	}
	return sum, nil
}

// ReadTickerList reads ticker symbols from a CSV file with a "Ticker" column.
// Column names are matched after trimming whitespace; duplicates and blanks
// are dropped, order is preserved.
func ReadTickerList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: empty file", path)
	}

	col := -1
	for i, name := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(name), "Ticker") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("read %s: no Ticker column", path)
	}

	seen := make(map[string]bool)
	var tickers []string
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		t := strings.ToUpper(strings.TrimSpace(row[col]))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tickers = append(tickers, t)
	}
	return tickers, nil
}
