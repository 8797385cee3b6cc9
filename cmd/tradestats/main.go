package main

import (
	"context"
	"flag"
	"log"
	"os"

	"tradestats/internal/metrics"
	"tradestats/internal/repository"
	"tradestats/internal/tradelog"
	"tradestats/types"

	"github.com/shopspring/decimal"
)

func main() {
	csvPath := flag.String("csv", "", "Path to a trade log CSV file")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	runName := flag.String("run", "", "Run name to import to / analyze from Postgres")
	doImport := flag.Bool("import", false, "Import the CSV trade log into Postgres under -run")

	startingBalance := flag.Float64("starting-balance", 10000.0, "Starting account balance")
	riskFreeRate := flag.Float64("risk-free-rate", 0.0, "Annual risk-free rate as a decimal (e.g. 0.04)")
	periodsPerYear := flag.Int("periods-per-year", 252, "Trading periods per year (252 daily, 52 weekly)")
	exportCSV := flag.String("export-csv", "", "Write the equity curve to this CSV file")

	flag.Parse()

	logger := log.New(os.Stderr, "[tradestats] ", log.LstdFlags)
	ctx := context.Background()

	var db repository.Database
	if *postgresDSN != "" {
		var err error
		db, err = repository.NewDatabase(*postgresDSN)
		if err != nil {
			logger.Fatal(err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			logger.Fatal(err)
		}
	}

	if *doImport {
		if *csvPath == "" || *postgresDSN == "" || *runName == "" {
			logger.Fatal("-import requires -csv, -postgres-dsn and -run")
		}
		trades, err := tradelog.LoadCSVFile(*csvPath)
		if err != nil {
			logger.Fatal(err)
		}
		if err := db.SaveTradeLog(*runName, trades, ctx); err != nil {
			logger.Fatal(err)
		}
		logger.Printf("imported %d trades as run %q", len(trades), *runName)
		return
	}

	var trades []types.Trade
	var err error
	switch {
	case *csvPath != "":
		trades, err = tradelog.LoadCSVFile(*csvPath)
	case *runName != "" && *postgresDSN != "":
		trades, err = db.GetTradeLog(*runName, ctx)
	default:
		logger.Fatal("provide -csv, or -postgres-dsn with -run")
	}
	if err != nil {
		logger.Fatal(err)
	}

	cfg := metrics.NewRatioConfig(*riskFreeRate, *periodsPerYear)
	report := metrics.BuildReport(trades, decimal.NewFromFloat(*startingBalance), cfg)
	report.Print(os.Stdout)

	if *exportCSV != "" {
		if err := metrics.WriteEquityCurveCSVFile(*exportCSV, report.Curve); err != nil {
			logger.Fatal(err)
		}
		logger.Printf("equity curve written to %s", *exportCSV)
	}
}
