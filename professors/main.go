package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/brequin/brequin/soc/config"
	"github.com/brequin/brequin/soc/db"
	"github.com/brequin/brequin/soc/enrich"
	"github.com/brequin/brequin/soc/logger"
	"github.com/brequin/brequin/soc/rating"
	"github.com/brequin/brequin/soc/snapshot"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	input := flag.String("in", "", "professor snapshot to import (defaults to ratings.snapshot)")
	dryRun := flag.Bool("dry-run", false, "print department statistics without writing to the database")
	list := flag.Bool("list", false, "also print every kept professor")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *input == "" {
		*input = cfg.Ratings.Snapshot
	}

	l, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()
	l = l.With("run_id", uuid.NewString())

	records, err := snapshot.ReadProfessors(*input)
	if err != nil {
		l.Fatal("Unable to read professor snapshot", "path", *input, "error", err)
	}
	read := len(records)
	records = rating.FilterDepartments(rating.Dedupe(records), cfg.Ratings.DepartmentKeywords)
	l.Info("Loaded professors", "read", read, "kept", len(records), "keywords", cfg.Ratings.DepartmentKeywords)

	if !*dryRun {
		if cfg.Database.ConnectionString == "" {
			l.Fatal("DATABASE_CONNECTION_STRING is required unless -dry-run is set")
		}
		ctx := context.Background()
		database, err := db.Connect(ctx, cfg.Database.ConnectionString)
		if err != nil {
			l.Fatal("Unable to connect to the rating store", "error", err)
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			l.Fatal("Unable to create schema", "error", err)
		}
		inserted, err := database.InsertProfessors(ctx, records)
		if err != nil {
			l.Fatal("Unable to insert professors", "error", err)
		}
		l.Info("Imported professors", "upserted", inserted, "skipped", len(records)-inserted)
	}

	if *list {
		color.Yellow("\nProfessors")
		db.WriteProfessorTable(os.Stdout, records)
	}
	color.Yellow("\nProfessors by department")
	enrich.WriteDepartmentTable(os.Stdout, rating.Aggregate(records))
}
