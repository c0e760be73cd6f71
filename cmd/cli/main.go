package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vvadla/upi-tracker/internal/analytics"
	"github.com/vvadla/upi-tracker/internal/config"
	"github.com/vvadla/upi-tracker/internal/export"
	infraBQ "github.com/vvadla/upi-tracker/internal/infra/bigquery"
	"github.com/vvadla/upi-tracker/internal/logger"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "summary":
		runSummary(log)
	case "forecast":
		runForecast(log)
	case "export":
		runExport(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("UPI Tracker CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  summary   Print category totals, cash flow and spending alerts")
	fmt.Println("  forecast  Print the monthly spending forecast")
	fmt.Println("  export    Write a CSV snapshot of the ledger to GCS")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func loadLedgerOrExit(ctx context.Context, log zerolog.Logger, configPath string) (*config.Config, *infraBQ.BigQueryLedgerRepository, func()) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	repo, err := infraBQ.NewLedgerRepository(ctx, cfg.ProjectID, cfg.Dataset)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create ledger repository")
	}
	return cfg, repo, func() { _ = repo.Close() }
}

func runSummary(log zerolog.Logger) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (optional)")
	fs.Parse(os.Args[2:])

	ctx := context.Background()
	_, repo, closeRepo := loadLedgerOrExit(ctx, log, *configPath)
	defer closeRepo()

	ledger, err := infraBQ.LoadLedger(ctx, repo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load ledger")
	}

	cf := analytics.CashFlowAnalysis(ledger)
	fmt.Printf("Transactions: %d\n", ledger.Size())
	fmt.Printf("Inflow:  %.2f\n", cf.Inflow)
	fmt.Printf("Outflow: %.2f\n\n", cf.Outflow)

	totals := analytics.CategoryTotals(ledger)
	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	fmt.Println("Category totals:")
	for _, category := range categories {
		fmt.Printf("  %-20s %12.2f\n", category, totals[category])
	}

	if alerts := analytics.SpendingAlerts(ledger); len(alerts) > 0 {
		fmt.Println("\nAlerts:")
		for _, alert := range alerts {
			fmt.Printf("  %s\n", alert)
		}
	}
}

func runForecast(log zerolog.Logger) {
	fs := flag.NewFlagSet("forecast", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (optional)")
	months := fs.Int("months", 0, "Months to forecast (default from config)")
	fs.Parse(os.Args[2:])

	ctx := context.Background()
	cfg, repo, closeRepo := loadLedgerOrExit(ctx, log, *configPath)
	defer closeRepo()

	ledger, err := infraBQ.LoadLedger(ctx, repo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load ledger")
	}

	horizon := *months
	if horizon < 1 {
		horizon = cfg.ForecastHorizon
	}

	points, err := analytics.SpendingForecast(ledger, horizon)
	if err != nil {
		log.Fatal().Err(err).Msg("Forecast failed")
	}

	for _, p := range points {
		marker := " "
		if p.IsForecast {
			marker = "*"
		}
		fmt.Printf("%s %s %12.2f\n", marker, p.Month, analytics.Round(p.Amount))
	}
	fmt.Println("\n* forecast")
}

func runExport(log zerolog.Logger) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (optional)")
	bucket := fs.String("bucket", "", "GCS bucket (overrides config)")
	fs.Parse(os.Args[2:])

	ctx := context.Background()
	cfg, repo, closeRepo := loadLedgerOrExit(ctx, log, *configPath)
	defer closeRepo()

	target := *bucket
	if target == "" {
		target = cfg.Bucket
	}
	if target == "" {
		log.Fatal().Msg("No GCS bucket configured (use -bucket or UPI_BUCKET)")
	}

	ledger, err := infraBQ.LoadLedger(ctx, repo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load ledger")
	}

	data, err := export.BuildCSV(ledger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render CSV")
	}

	objectName := export.ObjectName(time.Now().Format("2006/01/02"), uuid.New().String())
	if err := export.UploadCSV(ctx, target, objectName, data); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	log.Info().
		Str("gcs_uri", fmt.Sprintf("gs://%s/%s", target, objectName)).
		Int("transactions", ledger.Size()).
		Msg("Export uploaded")
}
