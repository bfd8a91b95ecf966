// Package ingest persists batches of normalized records.
//
// Each batch runs inside a single transaction: either every accepted record
// of the batch becomes visible at once, or none do. The ingestor never
// retries; on a storage error it rolls back and reports the failure so the
// caller can decide whether to re-run.
package ingest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Musxeto/crawl4ai-demo/internal/record"
)

// Store is the write surface the ingestor drives. The postgres.Store
// satisfies it.
type Store interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	InsertBook(ctx context.Context, tx pgx.Tx, b record.Book) error
	InsertMovie(ctx context.Context, tx pgx.Tx, m record.Movie) error
	InsertVideo(ctx context.Context, tx pgx.Tx, v record.Video) error
	VideoExists(ctx context.Context, tx pgx.Tx, url string) (bool, error)
}

// Result counts the outcome of one batch.
type Result struct {
	Inserted int
	// Skipped counts records whose uniqueness key was already persisted.
	// Only keyed kinds (videos) ever skip.
	Skipped int
}

// Ingestor owns the transaction boundary around batch writes.
type Ingestor struct {
	store  Store
	logger *zap.Logger
}

// New constructs an Ingestor.
func New(store Store, logger *zap.Logger) *Ingestor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingestor{store: store, logger: logger}
}

// Books inserts every book unconditionally. Books have no uniqueness key, so
// re-crawling the same listing accumulates duplicate rows by design.
func (i *Ingestor) Books(ctx context.Context, books []record.Book) (Result, error) {
	return i.batch(ctx, len(books), func(ctx context.Context, tx pgx.Tx, idx int, res *Result) error {
		if err := i.store.InsertBook(ctx, tx, books[idx]); err != nil {
			return err
		}
		res.Inserted++
		return nil
	})
}

// Movies inserts every movie unconditionally, like Books.
func (i *Ingestor) Movies(ctx context.Context, movies []record.Movie) (Result, error) {
	return i.batch(ctx, len(movies), func(ctx context.Context, tx pgx.Tx, idx int, res *Result) error {
		if err := i.store.InsertMovie(ctx, tx, movies[idx]); err != nil {
			return err
		}
		res.Inserted++
		return nil
	})
}

// Videos inserts videos whose URL is not yet persisted and skips the rest.
// A skip is a normal outcome, reported in the result, not an error.
func (i *Ingestor) Videos(ctx context.Context, videos []record.Video) (Result, error) {
	return i.batch(ctx, len(videos), func(ctx context.Context, tx pgx.Tx, idx int, res *Result) error {
		v := videos[idx]
		exists, err := i.store.VideoExists(ctx, tx, v.URL)
		if err != nil {
			return err
		}
		if exists {
			i.logger.Debug("skipping duplicate video", zap.String("url", v.URL), zap.String("title", v.Title))
			res.Skipped++
			return nil
		}
		if err := i.store.InsertVideo(ctx, tx, v); err != nil {
			return err
		}
		res.Inserted++
		return nil
	})
}

// batch opens the transaction, applies fn per record in order, and commits.
// Any error rolls the whole batch back so partial writes are never visible.
func (i *Ingestor) batch(
	ctx context.Context,
	n int,
	fn func(ctx context.Context, tx pgx.Tx, idx int, res *Result) error,
) (Result, error) {
	var res Result
	if n == 0 {
		return res, nil
	}

	tx, err := i.store.Begin(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("begin batch: %w", err)
	}
	// Rollback after a successful commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	for idx := 0; idx < n; idx++ {
		if err := fn(ctx, tx, idx, &res); err != nil {
			return Result{}, fmt.Errorf("ingest record %d of %d: %w", idx+1, n, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Result{}, fmt.Errorf("commit batch: %w", err)
	}
	return res, nil
}
