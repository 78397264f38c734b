package nasdaq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"stockAnalyzer/internal/series"
)

const (
	baseURL = "https://api.nasdaq.com/api/quote"

	// Nasdaq returns the whole range in one response given a large limit.
	historyLimit = 99999

	// Nasdaq rejects requests without a browser User-Agent.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"
)

var backoffs = []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, 1 * time.Second}

// historicalResp mirrors the Nasdaq historical endpoint (trimmed to needed fields).
type historicalResp struct {
	Data struct {
		TradesTable struct {
			Rows []struct {
				Date   string `json:"date"`
				Close  string `json:"close"`
				Volume string `json:"volume"`
				Open   string `json:"open"`
				High   string `json:"high"`
				Low    string `json:"low"`
			} `json:"rows"`
		} `json:"tradesTable"`
	} `json:"data"`
	Status struct {
		RCode int `json:"rCode"`
	} `json:"status"`
}

// Client downloads daily historical prices from nasdaq.com.
type Client struct {
	hc      *http.Client
	baseURL string
}

func NewClient() *Client {
	return &Client{
		hc:      &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
	}
}

// FetchHistory downloads the daily bars for one symbol in [from, to] and
// returns them sorted ascending by date. Transient failures (transport
// errors, 429s, non-JSON bodies) are retried with backoff.
func (c *Client) FetchHistory(ctx context.Context, symbol string, from, to time.Time) (*series.Series, error) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	q := url.Values{}
	q.Set("assetclass", "stocks")
	q.Set("fromdate", from.Format("2006-01-02"))
	q.Set("todate", to.Format("2006-01-02"))
	q.Set("limit", strconv.Itoa(historyLimit))
	reqURL := fmt.Sprintf("%s/%s/historical?%s", c.baseURL, sym, q.Encode())

	var hr historicalResp
	var lastErr error
	for attempt := 0; attempt < len(backoffs)+1; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json, text/plain, */*")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := c.hc.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("failed to read nasdaq response: %w", readErr)
			case resp.StatusCode == http.StatusTooManyRequests:
				lastErr = fmt.Errorf("nasdaq returned 429 for %s", sym)
			case resp.StatusCode != http.StatusOK:
				lastErr = fmt.Errorf("nasdaq returned %d for %s: %s", resp.StatusCode, sym, preview(body))
			case strings.HasPrefix(strings.TrimSpace(string(body)), "<"):
				lastErr = fmt.Errorf("nasdaq returned non-json body for %s: %s", sym, preview(body))
			default:
				if err := json.Unmarshal(body, &hr); err != nil {
					lastErr = fmt.Errorf("failed to parse nasdaq json for %s: %v; body: %s", sym, err, preview(body))
				} else {
					lastErr = nil
				}
			}
		}
		if lastErr == nil {
			break
		}
		if attempt < len(backoffs) {
			select {
			case <-time.After(backoffs[attempt]):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	rows := hr.Data.TradesTable.Rows
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data for %s between %s and %s",
			sym, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	s := &series.Series{Symbol: sym}
	for _, row := range rows {
		p, err := parseRow(row.Date, row.Open, row.High, row.Low, row.Close, row.Volume)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sym, err)
		}
		s.Points = append(s.Points, p)
	}
	// Nasdaq serves newest-first.
	sort.Slice(s.Points, func(i, j int) bool { return s.Points[i].Date.Before(s.Points[j].Date) })
	return s, nil
}

// parseRow converts one Nasdaq table row. Prices arrive formatted like
// "$1,234.56" and volumes like "12,345,678".
func parseRow(date, open, high, low, closeP, volume string) (series.Point, error) {
	var p series.Point
	d, err := time.Parse("01/02/2006", date)
	if err != nil {
		return p, fmt.Errorf("bad date %q: %w", date, err)
	}
	p.Date = d
	if p.Open, err = parseDollar(open); err != nil {
		return p, err
	}
	if p.High, err = parseDollar(high); err != nil {
		return p, err
	}
	if p.Low, err = parseDollar(low); err != nil {
		return p, err
	}
	if p.Close, err = parseDollar(closeP); err != nil {
		return p, err
	}
	v := strings.ReplaceAll(strings.TrimSpace(volume), ",", "")
	if v == "" || v == "N/A" {
		p.Volume = 0
		return p, nil
	}
	if p.Volume, err = strconv.ParseInt(v, 10, 64); err != nil {
		return p, fmt.Errorf("bad volume %q: %w", volume, err)
	}
	return p, nil
}

func parseDollar(v string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(v)
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("bad price %q: %w", v, err)
	}
	return f, nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}
