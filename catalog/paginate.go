package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brequin/brequin/soc/logger"
)

const DefaultPageTimeout = 10 * time.Second

type Page struct {
	Number int
	Total  int
	Rows   []Row
}

// PageSource fetches one page of the listing. It returns ErrNoResults when
// the page has no page metadata and ErrTableMissing when the results table
// is absent.
type PageSource interface {
	FetchPage(ctx context.Context, number int) (*Page, error)
}

type State int

const (
	StateFetchingPage State = iota
	StateParsing
	StateAdvancing
	StateDone
	StateTimedOut
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateFetchingPage:
		return "fetching"
	case StateParsing:
		return "parsing"
	case StateAdvancing:
		return "advancing"
	case StateDone:
		return "done"
	case StateTimedOut:
		return "timed out"
	default:
		return "failed"
	}
}

// Paginator walks a PageSource from page 1 until the last page, feeding
// every row to a Builder. Each fetch gets PageTimeout to produce the
// results table.
type Paginator struct {
	Source      PageSource
	Builder     *Builder
	PageTimeout time.Duration
	// OnPage runs after every parsed page with the catalog so far. An error
	// stops the run.
	OnPage func(page *Page, catalog *Catalog) error
	Log    *logger.Logger

	state State
	pages int
}

func (p *Paginator) State() State {
	return p.state
}

// Pages is the number of pages parsed so far.
func (p *Paginator) Pages() int {
	return p.pages
}

// HasCatalog reports whether the catalog from Run is worth writing
// downstream: the listing was read to the end, or it stopped on a timeout
// after at least one page was parsed.
func (p *Paginator) HasCatalog() bool {
	switch p.state {
	case StateDone:
		return true
	case StateTimedOut:
		return p.pages > 0
	}
	return false
}

// Run returns the catalog built so far together with any fatal error, so a
// timed-out run still hands back its partial catalog.
func (p *Paginator) Run(ctx context.Context) (*Catalog, error) {
	if p.Builder == nil {
		p.Builder = NewBuilder()
	}
	log := logger.OrNop(p.Log)
	timeout := p.PageTimeout
	if timeout <= 0 {
		timeout = DefaultPageTimeout
	}

	requested := 1
	for {
		p.state = StateFetchingPage
		page, err := p.fetch(ctx, requested, timeout)
		switch {
		case errors.Is(err, ErrNoResults):
			p.state = StateDone
			log.Info("No classes found", "page", requested)
			return p.Builder.Catalog(), nil
		case errors.Is(err, ErrTableMissing), errors.Is(err, context.DeadlineExceeded):
			p.state = StateTimedOut
			return p.Builder.Catalog(), &PageTimeoutError{Page: requested, Timeout: timeout, Err: err}
		case err != nil:
			p.state = StateFailed
			return p.Builder.Catalog(), fmt.Errorf("fetch page %d: %w", requested, err)
		}
		if page.Number != requested {
			p.state = StateFailed
			return p.Builder.Catalog(), fmt.Errorf("%w: requested %d, got %d", ErrPageOrder, requested, page.Number)
		}

		p.state = StateParsing
		for i, row := range page.Rows {
			if _, err := p.Builder.Apply(row); err != nil {
				p.state = StateFailed
				return p.Builder.Catalog(), fmt.Errorf("page %d row %d: %w", page.Number, i, err)
			}
		}
		p.pages++
		log.Info("Parsed page", "page", page.Number, "total", page.Total, "rows", len(page.Rows))

		if p.OnPage != nil {
			if err := p.OnPage(page, p.Builder.Catalog()); err != nil {
				p.state = StateFailed
				return p.Builder.Catalog(), fmt.Errorf("page %d snapshot: %w", page.Number, err)
			}
		}

		p.state = StateAdvancing
		if page.Number >= page.Total {
			p.state = StateDone
			return p.Builder.Catalog(), nil
		}
		requested = page.Number + 1
	}
}

func (p *Paginator) fetch(ctx context.Context, number int, timeout time.Duration) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.Source.FetchPage(ctx, number)
}
