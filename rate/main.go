package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/brequin/brequin/soc/config"
	"github.com/brequin/brequin/soc/enrich"
	"github.com/brequin/brequin/soc/logger"
	"github.com/brequin/brequin/soc/snapshot"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	input := flag.String("in", "", "raw catalog to enrich (defaults to output.raw)")
	output := flag.String("out", "", "enriched catalog to write (defaults to output.enriched)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *input == "" {
		*input = cfg.Output.Raw
	}
	if *output == "" {
		*output = cfg.Output.Enriched
	}

	l, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()
	l = l.With("run_id", uuid.NewString())

	c, err := snapshot.ReadCatalog(*input)
	if err != nil {
		l.Fatal("Unable to read catalog", "path", *input, "error", err)
	}

	ctx := context.Background()
	pipeline, closeSource, err := enrich.NewPipeline(ctx, cfg, l)
	defer closeSource()
	if err != nil {
		l.Fatal("Unable to open rating source", "error", err)
	}

	summary, err := pipeline.Run(ctx, c)
	if err != nil {
		l.Fatal("Enrichment failed", "error", err)
	}
	if err := snapshot.WriteJSON(*output, c, cfg.Output.Indent); err != nil {
		l.Fatal("Unable to write enriched catalog", "path", *output, "error", err)
	}

	color.Cyan("\n=== Enrichment summary ===")
	summary.WriteTable(os.Stdout)
	color.Green("Wrote %s", *output)
}
