package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"orlof/internal/records"
)

// Source fetches the four record collections. Satisfied by *Client; tests
// substitute fakes.
type Source interface {
	Individuals(ctx context.Context) ([]records.RegistryEntry, error)
	Children(ctx context.Context) ([]records.ChildEntry, error)
	Incomes(ctx context.Context) ([]records.IncomeEntry, error)
	BirthEstimates(ctx context.Context) ([]records.EstimatedBirthEntry, error)
}

// Loader is the single designated writer for the record store. It gathers a
// complete snapshot first and then performs one atomic Replace, so query
// serving never observes a partially loaded state.
type Loader struct {
	source Source
	store  records.Store
	logger *slog.Logger
}

func NewLoader(source Source, store records.Store, logger *slog.Logger) *Loader {
	return &Loader{source: source, store: store, logger: logger}
}

// LoadFromSource fetches all four collections concurrently and swaps them
// into the store. Any single fetch failure aborts the whole load; the
// previous snapshot stays in place.
func (l *Loader) LoadFromSource(ctx context.Context) error {
	start := time.Now()
	var snap records.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Registry, err = l.source.Individuals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Children, err = l.source.Children(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Incomes, err = l.source.Incomes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.BirthEstimates, err = l.source.BirthEstimates(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("fetch record collections: %w", err)
	}

	if err := l.store.Replace(ctx, snap); err != nil {
		return fmt.Errorf("replace record snapshot: %w", err)
	}

	l.logger.InfoContext(ctx, "record snapshot loaded",
		"registry", len(snap.Registry),
		"incomes", len(snap.Incomes),
		"birth_estimates", len(snap.BirthEstimates),
		"children", len(snap.Children),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// LoadFromDir reads the four ';'-delimited CSV exports from dir and swaps
// them into the store. Used for local development and offline snapshots.
func (l *Loader) LoadFromDir(ctx context.Context, dir string) error {
	var snap records.Snapshot

	if err := readFile(filepath.Join(dir, "individuals.csv"), ReadRegistry, &snap.Registry); err != nil {
		return err
	}
	if err := readFile(filepath.Join(dir, "children.csv"), ReadChildren, &snap.Children); err != nil {
		return err
	}
	if err := readFile(filepath.Join(dir, "incomes.csv"), ReadIncomes, &snap.Incomes); err != nil {
		return err
	}
	if err := readFile(filepath.Join(dir, "birth_estimates.csv"), ReadBirthEstimates, &snap.BirthEstimates); err != nil {
		return err
	}

	if err := l.store.Replace(ctx, snap); err != nil {
		return fmt.Errorf("replace record snapshot: %w", err)
	}

	l.logger.InfoContext(ctx, "record snapshot loaded from csv",
		"dir", dir,
		"registry", len(snap.Registry),
		"incomes", len(snap.Incomes),
		"birth_estimates", len(snap.BirthEstimates),
		"children", len(snap.Children),
	)
	return nil
}

func readFile[T any](path string, decode func(r io.Reader) ([]T, error), dst *[]T) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	entries, err := decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	*dst = entries
	return nil
}
