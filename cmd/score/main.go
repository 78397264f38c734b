package main

import (
	"flag"
	"log"
	"os"

	"stockAnalyzer/internal/analytics"
	"stockAnalyzer/internal/config"
	"stockAnalyzer/internal/ranking"
)

func main() {
	cfg := config.Load()
	defaults := analytics.DefaultWeights()

	var (
		dataDir  string
		topN     int
		minYears int
		jsonOut  string
		w        analytics.Weights
	)
	flag.StringVar(&dataDir, "data", cfg.DataDir, "directory containing the price CSV files")
	flag.IntVar(&topN, "top", 10, "number of top stocks to show")
	flag.IntVar(&minYears, "min-years", 5, "minimum years of history required for scoring")
	flag.StringVar(&jsonOut, "json", "scoring_results.json", "path for the JSON results, empty to skip")
	flag.Float64Var(&w.AnnReturn, "w-return", defaults.AnnReturn, "weight of the annualized return term")
	flag.Float64Var(&w.MaxDrawdown, "w-drawdown", defaults.MaxDrawdown, "weight of the max drawdown term (negative penalizes)")
	flag.Float64Var(&w.SlopeToNoise, "w-slope", defaults.SlopeToNoise, "weight of the slope-to-noise term")
	flag.IntVar(&w.AnnualizationFactor, "periods", defaults.AnnualizationFactor, "trading periods per year")
	flag.Parse()

	entries, err := ranking.ScoreFolder(dataDir, minYears, w)
	if err != nil {
		log.Fatal(err)
	}
	if len(entries) == 0 {
		log.Fatal("no stocks were scored")
	}
	log.Printf("scored %d stocks from %s", len(entries), dataDir)

	top := ranking.Top(entries, topN)
	ranking.RenderTable(os.Stdout, top)

	if jsonOut != "" {
		if err := ranking.WriteJSON(jsonOut, top); err != nil {
			log.Fatal(err)
		}
		log.Printf("saved results to %s", jsonOut)
	}
}
