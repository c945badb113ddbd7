package rating

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/brequin/brequin/soc/logger"
)

// Lookup asks the rating source about one instructor. Implementations return
// ErrNotFound when nobody matches.
type Lookup interface {
	FindProfessor(ctx context.Context, instructor string) (*ProfessorRecord, error)
}

// Searcher returns candidate records for an instructor string; the caller
// decides which candidate, if any, is the instructor.
type Searcher interface {
	SearchProfessors(ctx context.Context, instructor string) ([]ProfessorRecord, error)
}

// StoreLookup narrows the source down with a Searcher and then matches the
// candidates the same way an Index does.
type StoreLookup struct {
	Searcher Searcher
	Policy   FallbackPolicy
}

func (s StoreLookup) FindProfessor(ctx context.Context, instructor string) (*ProfessorRecord, error) {
	candidates, err := s.Searcher.SearchProfessors(ctx, instructor)
	if err != nil {
		return nil, err
	}
	match := NewMatcher(BuildIndex(candidates), s.Policy).Match(instructor)
	if !match.Found() {
		return nil, ErrNotFound
	}
	return match.Record, nil
}

// CachedLookup resolves instructors through a Lookup at most once each.
// Only calls that reach the Lookup wait on the throttle.
type CachedLookup struct {
	lookup  Lookup
	limiter *rate.Limiter
	cache   map[string]*ProfessorRecord
	log     *logger.Logger

	Calls int
}

func NewCachedLookup(lookup Lookup, throttle time.Duration, log *logger.Logger) *CachedLookup {
	limit := rate.Inf
	if throttle > 0 {
		limit = rate.Every(throttle)
	}
	return &CachedLookup{
		lookup:  lookup,
		limiter: rate.NewLimiter(limit, 1),
		cache:   make(map[string]*ProfessorRecord),
		log:     logger.OrNop(log),
	}
}

// Resolve returns the cached or freshly looked-up record for instructor.
// Lookup failures are logged and remembered as "no record"; only context
// cancellation is returned as an error.
func (c *CachedLookup) Resolve(ctx context.Context, instructor string) (*ProfessorRecord, error) {
	if IsPlaceholder(instructor) {
		return nil, nil
	}
	key := strings.TrimSpace(instructor)
	if record, ok := c.cache[key]; ok {
		return record, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	c.Calls++
	record, err := c.lookup.FindProfessor(ctx, key)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !errors.Is(err, ErrNotFound) {
			c.log.Warn("Rating lookup failed", "instructor", key, "error", err)
		}
		record = nil
	}
	c.cache[key] = record
	return record, nil
}
