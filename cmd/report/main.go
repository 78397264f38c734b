package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"stockAnalyzer/internal/analytics"
	"stockAnalyzer/internal/charts"
	"stockAnalyzer/internal/config"
	"stockAnalyzer/internal/openai"
	"stockAnalyzer/internal/ranking"
	"stockAnalyzer/internal/report"
	"stockAnalyzer/internal/series"
	"stockAnalyzer/internal/storage"
)

func main() {
	cfg := config.Load()
	defaults := analytics.DefaultWeights()

	var (
		dataDir  string
		topN     int
		minYears int
		plotDir  string
		pdfOut   string
		dbPath   string
		title    string
	)
	flag.StringVar(&dataDir, "data", cfg.DataDir, "directory containing the price CSV files")
	flag.IntVar(&topN, "top", 10, "number of top stocks to include")
	flag.IntVar(&minYears, "min-years", 5, "minimum years of history required for scoring")
	flag.StringVar(&plotDir, "outdir", "plots", "directory for the generated chart images")
	flag.StringVar(&pdfOut, "pdf", "report.pdf", "path for the PDF report")
	flag.StringVar(&dbPath, "db", cfg.DBPath, "sqlite cache for generated descriptions")
	flag.StringVar(&title, "title", "Stock Scout", "report cover title")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := storage.OpenSQLite("file:" + dbPath + "?_fk=1")
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.InitSchema(db); err != nil {
		log.Fatal(err)
	}
	store := storage.NewStore(db)
	describer := openai.NewDescriber(cfg.MustOpenAIKey(), cfg.OpenAIModel)

	entries, err := ranking.ScoreFolder(dataDir, minYears, defaults)
	if err != nil {
		log.Fatal(err)
	}
	top := ranking.Top(entries, topN)
	if len(top) == 0 {
		log.Fatal("no stocks to report on")
	}
	log.Printf("building report for top %d of %d scored stocks", len(top), len(entries))

	var stocks []report.StockReport
	for _, entry := range top {
		s, err := series.Load(entry.Path)
		if err != nil {
			log.Fatalf("%s: %v", entry.Ticker, err)
		}
		profile, err := analytics.ComputeRiskProfile(s.Dates(), s.Closes(), defaults.AnnualizationFactor)
		if err != nil {
			log.Fatalf("%s: %v", entry.Ticker, err)
		}

		log.Printf("[%d/%d] rendering chart for %s", entry.Ranking, len(top), entry.Ticker)
		png, err := charts.RenderAnalysis(entry.Ticker, s, profile)
		if err != nil {
			log.Fatalf("%s: %v", entry.Ticker, err)
		}
		if _, err := charts.WritePNG(plotDir, entry.Ticker, png); err != nil {
			log.Printf("WARNING: could not save chart image for %s: %v", entry.Ticker, err)
		}

		stocks = append(stocks, report.StockReport{
			Ranking:     entry.Ranking,
			Ticker:      entry.Ticker,
			Score:       entry.Score,
			Description: describe(ctx, store, describer, entry.Ticker),
			ChartPNG:    png,
			Stats:       profile.Stats,
		})
	}

	if err := report.NewBuilder(title).WriteFile(pdfOut, stocks); err != nil {
		log.Fatal(err)
	}
	log.Printf("report written to %s", pdfOut)
}

// describe returns the company description for a ticker, preferring the
// cache, falling back to boilerplate when generation fails.
func describe(ctx context.Context, store *storage.Store, describer *openai.Describer, ticker string) string {
	hash := openai.PromptHash(ticker)
	if body, ok, err := store.GetDescription(hash); err == nil && ok {
		log.Printf("using cached description for %s (%s...)", ticker, hash[:7])
		return body
	}

	body, err := describer.Describe(ctx, ticker)
	if err != nil {
		log.Printf("WARNING: description for %s failed: %v", ticker, err)
		return openai.Fallback(ticker)
	}
	if err := store.PutDescription(hash, ticker, body, time.Now().Unix()); err != nil {
		log.Printf("WARNING: could not cache description for %s: %v", ticker, err)
	}
	return body
}
