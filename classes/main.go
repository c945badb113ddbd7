package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/brequin/brequin/soc/catalog"
	"github.com/brequin/brequin/soc/config"
	"github.com/brequin/brequin/soc/enrich"
	"github.com/brequin/brequin/soc/logger"
	"github.com/brequin/brequin/soc/snapshot"
	"github.com/brequin/brequin/soc/soc"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	rawOnly := flag.Bool("raw-only", false, "skip enrichment and only write the raw catalog")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	l, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()
	l = l.With("run_id", uuid.NewString())

	ctx := context.Background()
	client := &soc.Client{
		HTTP:        &http.Client{},
		SearchUrl:   cfg.Schedule.SearchUrl,
		ResultsUrl:  cfg.Schedule.ResultsUrl,
		UserAgent:   cfg.Schedule.UserAgent,
		Term:        cfg.Schedule.Term,
		Subjects:    cfg.Schedule.Subjects,
		FormTimeout: cfg.Schedule.PageTimeout,
	}
	if err := discover(ctx, client, l); err != nil {
		l.Fatal("Unable to read the search form", "error", err)
	}

	paginator := &catalog.Paginator{
		Source:      client,
		PageTimeout: cfg.Schedule.PageTimeout,
		Log:         l,
		OnPage: func(page *catalog.Page, c *catalog.Catalog) error {
			return snapshot.WriteJSON(cfg.Output.Raw, c, cfg.Output.Indent)
		},
	}
	c, scrapeErr := paginator.Run(ctx)
	if scrapeErr == nil && paginator.Pages() == 0 {
		if err := snapshot.WriteJSON(cfg.Output.Raw, c, cfg.Output.Indent); err != nil {
			l.Fatal("Unable to write raw catalog", "path", cfg.Output.Raw, "error", err)
		}
	}

	var timeoutErr *catalog.PageTimeoutError
	switch {
	case scrapeErr == nil:
		l.Info("Scrape finished", "pages", paginator.Pages(), "sections", c.SectionCount(), "path", cfg.Output.Raw)
	case errors.As(scrapeErr, &timeoutErr):
		l.Error("Scrape timed out", "page", timeoutErr.Page, "pages", paginator.Pages(), "error", scrapeErr)
	default:
		l.Error("Scrape failed", "state", paginator.State().String(), "pages", paginator.Pages(), "error", scrapeErr)
	}

	switch {
	case *rawOnly:
	case !paginator.HasCatalog():
		l.Warn("Skipping enrichment", "state", paginator.State().String(), "pages", paginator.Pages(), "path", cfg.Output.Enriched)
	default:
		if err := enrichCatalog(ctx, cfg, c, l); err != nil {
			l.Error("Enrichment failed", "error", err)
		}
	}

	if scrapeErr != nil {
		color.Red("Scrape stopped %s after %d pages", paginator.State(), paginator.Pages())
		l.Sync()
		os.Exit(1)
	}
}

// discover fills in the term and subjects from the search form when the
// config leaves them empty.
func discover(ctx context.Context, client *soc.Client, l *logger.Logger) error {
	if client.Term != "" && len(client.Subjects) > 0 {
		return nil
	}
	form, err := client.SearchForm(ctx)
	if err != nil {
		return err
	}
	if client.Term == "" {
		if len(form.Terms) == 0 {
			return errors.New("search form lists no terms")
		}
		client.Term = form.Terms[0].Value
	}
	if len(client.Subjects) == 0 {
		client.Subjects = soc.Values(form.Subjects)
	}
	l.Info("Discovered search options", "term", client.Term, "subjects", len(client.Subjects))
	return nil
}

func enrichCatalog(ctx context.Context, cfg *config.Config, c *catalog.Catalog, l *logger.Logger) error {
	pipeline, closeSource, err := enrich.NewPipeline(ctx, cfg, l)
	defer closeSource()
	if err != nil {
		return err
	}

	summary, err := pipeline.Run(ctx, c)
	if err != nil {
		return err
	}
	if err := snapshot.WriteJSON(cfg.Output.Enriched, c, cfg.Output.Indent); err != nil {
		return err
	}

	color.Cyan("\n=== Enrichment summary ===")
	summary.WriteTable(os.Stdout)
	color.Green("Wrote %s", cfg.Output.Enriched)
	return nil
}
