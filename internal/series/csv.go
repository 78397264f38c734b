package series

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var csvHeader = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// Filename returns the data file name for a series,
// e.g. AAPL_2015-01-02_to_2024-12-31.csv.
func Filename(s *Series) string {
	return fmt.Sprintf("%s_%s_to_%s.csv",
		strings.ToUpper(s.Symbol), s.Start().Format(dateLayout), s.End().Format(dateLayout))
}

// Save writes the series as a CSV file into dir and returns the full path.
func Save(dir string, s *Series) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, Filename(s))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, p := range s.Points {
		row := []string{
			p.Date.Format(dateLayout),
			formatF(p.Open), formatF(p.High), formatF(p.Low), formatF(p.Close),
			strconv.FormatInt(p.Volume, 10),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}

// Load reads a series CSV written by Save. The symbol is recovered from the
// file name.
func Load(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("read %s: empty file", path)
	}

	s := &Series{Symbol: SymbolFromFilename(path)}
	for i, row := range rows[1:] {
		if len(row) < 6 {
			return nil, fmt.Errorf("read %s: row %d has %d fields, want 6", path, i+2, len(row))
		}
		date, err := time.Parse(dateLayout, row[0])
		if err != nil {
			return nil, fmt.Errorf("read %s: row %d: %w", path, i+2, err)
		}
		var p Point
		p.Date = date
		if p.Open, err = strconv.ParseFloat(row[1], 64); err != nil {
			return nil, fmt.Errorf("read %s: row %d open: %w", path, i+2, err)
		}
		if p.High, err = strconv.ParseFloat(row[2], 64); err != nil {
			return nil, fmt.Errorf("read %s: row %d high: %w", path, i+2, err)
		}
		if p.Low, err = strconv.ParseFloat(row[3], 64); err != nil {
			return nil, fmt.Errorf("read %s: row %d low: %w", path, i+2, err)
		}
		if p.Close, err = strconv.ParseFloat(row[4], 64); err != nil {
			return nil, fmt.Errorf("read %s: row %d close: %w", path, i+2, err)
		}
		if p.Volume, err = strconv.ParseInt(row[5], 10, 64); err != nil {
			return nil, fmt.Errorf("read %s: row %d volume: %w", path, i+2, err)
		}
		s.Points = append(s.Points, p)
	}
	return s, nil
}

func formatF(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// SymbolFromFilename extracts the ticker from a data file path,
// e.g. data/AAPL_2015-01-02_to_2024-12-31.csv -> AAPL.
func SymbolFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.Index(base, "_"); i > 0 {
		base = base[:i]
	}
	return strings.ToUpper(base)
}

// FindDataFile locates the data file for a symbol in dir. When several match,
// the lexicographically first one is used.
func FindDataFile(dir, symbol string) (string, error) {
	pattern := filepath.Join(dir, strings.ToUpper(symbol)+"_*_to_*.csv")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no data file found for %s in %s", symbol, dir)
	}
	sort.Strings(matches)
	return matches[0], nil
}

// ListDataFiles returns all series CSV files in dir, sorted by name.
func ListDataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}
