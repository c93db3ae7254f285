package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"healthmart/internal/config"
	"healthmart/internal/database"
	"healthmart/internal/models"
	"healthmart/internal/repositories"
	"healthmart/internal/services"
)

// Exit codes: 1 for fatal errors, 2 when the run finished but some tables
// failed to move.
func main() {
	var (
		destination = flag.String("to", "", "destination schema (required)")
		source      = flag.String("from", "public", "source schema")
		tables      = flag.String("tables", "", "comma-separated table names (required)")
		timeout     = flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	)
	flag.Parse()

	if *destination == "" || *tables == "" {
		flag.Usage()
		os.Exit(1)
	}

	tableNames := splitTables(*tables)
	if len(tableNames) == 0 {
		log.Fatal("no table names given")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("%v: %v", services.ErrConnectionFailed, err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("failed to prepare run history table: %v", err)
	}

	catalogRepo := repositories.NewCatalogRepository(pool)
	runRepo := repositories.NewMigrationRunRepository(pool)
	migrationService := services.NewMigrationService(catalogRepo, runRepo)

	report, err := migrationService.Migrate(ctx, &models.MigrationRequest{
		Destination: *destination,
		Source:      *source,
		Tables:      tableNames,
	})
	if err != nil {
		if report != nil {
			printReport(report)
		}
		log.Fatalf("migration failed: %v", err)
	}

	printReport(report)

	if !report.Success() {
		os.Exit(2)
	}
}

func splitTables(list string) []string {
	var names []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func printReport(report *models.MigrationReport) {
	fmt.Printf("Migration run %s: %s -> %s\n", report.RunID, report.Source, report.Destination)
	fmt.Printf("  Duration: %s\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))

	for _, table := range report.Moved {
		fmt.Printf("  moved:   %s\n", table)
	}
	for _, table := range report.Skipped {
		fmt.Printf("  skipped: %s (already in %s)\n", table, report.Destination)
	}
	for _, failure := range report.Failed {
		fmt.Printf("  FAILED:  %s (%s): %s\n", failure.Table, failure.Kind, failure.Reason)
	}

	fmt.Printf("Schema %s now contains %d tables: %s\n",
		report.Destination, len(report.Membership), strings.Join(report.Membership, ", "))
}
