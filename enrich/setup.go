package enrich

import (
	"context"
	"fmt"

	"github.com/brequin/brequin/soc/config"
	"github.com/brequin/brequin/soc/db"
	"github.com/brequin/brequin/soc/logger"
	"github.com/brequin/brequin/soc/rating"
	"github.com/brequin/brequin/soc/snapshot"
)

// NewPipeline wires a Pipeline to the configured rating source. The returned
// close function releases the source and is never nil.
func NewPipeline(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Pipeline, func(), error) {
	log = logger.OrNop(log)
	closeSource := func() {}

	var database *db.Database
	var records []rating.ProfessorRecord
	switch cfg.Ratings.Source {
	case config.SourcePostgres:
		var err error
		database, err = db.Connect(ctx, cfg.Database.ConnectionString)
		if err != nil {
			return nil, closeSource, fmt.Errorf("connect rating store: %w", err)
		}
		closeSource = database.Close
		if cfg.Ratings.Mode == config.ModeIndex || cfg.Ratings.Aggregate {
			if records, err = database.ListProfessors(ctx); err != nil {
				closeSource()
				return nil, func() {}, fmt.Errorf("list professors: %w", err)
			}
		}
	default:
		var err error
		if records, err = snapshot.ReadProfessors(cfg.Ratings.Snapshot); err != nil {
			return nil, closeSource, fmt.Errorf("read professor snapshot: %w", err)
		}
	}
	records = rating.Dedupe(records)

	pipeline := &Pipeline{
		Mapping:   cfg.Ratings.Mapping,
		Aggregate: cfg.Ratings.Aggregate,
		Log:       log,
	}
	if cfg.Ratings.Aggregate {
		pipeline.Aggregates = rating.Aggregate(records)
	}

	policy := cfg.FallbackPolicy()
	if cfg.Ratings.Mode == config.ModeLive && database != nil {
		lookup := rating.StoreLookup{Searcher: database, Policy: policy}
		pipeline.Resolver = rating.NewCachedLookup(lookup, cfg.Ratings.Throttle, log)
	} else {
		index := rating.BuildIndex(records)
		pipeline.Resolver = rating.NewMatcher(index, policy)
		log.Info("Built professor index", "records", len(records), "keys", index.Len())
	}

	return pipeline, closeSource, nil
}
