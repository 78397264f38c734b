package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"stockAnalyzer/internal/config"
	"stockAnalyzer/internal/nasdaq"
)

func main() {
	cfg := config.Load()

	var (
		tickersCSV string
		symbol     string
		startStr   string
		endStr     string
		outDir     string
	)
	flag.StringVar(&tickersCSV, "tickers", "", "CSV file with a Ticker column to download in batch")
	flag.StringVar(&symbol, "symbol", "", "single ticker symbol to download")
	flag.StringVar(&startStr, "start", "", "start date (YYYY-MM-DD), defaults to full history")
	flag.StringVar(&endStr, "end", time.Now().Format("2006-01-02"), "end date (YYYY-MM-DD)")
	flag.StringVar(&outDir, "outdir", cfg.DataDir, "directory for the output CSV files")
	flag.Parse()

	if (tickersCSV == "") == (symbol == "") {
		log.Fatal("exactly one of -tickers or -symbol is required")
	}

	// Nasdaq returns data from the first trading day given an early start.
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	if startStr != "" {
		var err error
		if start, err = time.Parse("2006-01-02", startStr); err != nil {
			log.Fatalf("bad -start: %v", err)
		}
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		log.Fatalf("bad -end: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := nasdaq.NewClient()

	tickers := []string{symbol}
	if tickersCSV != "" {
		tickers, err = nasdaq.ReadTickerList(tickersCSV)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("found %d unique tickers in %s", len(tickers), tickersCSV)
	}

	sum, err := client.DownloadAll(ctx, tickers, start, end, outDir)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("download summary: %d succeeded, %d failed", sum.Succeeded, sum.Failed)
	if sum.Succeeded == 0 {
		os.Exit(1)
	}
}
