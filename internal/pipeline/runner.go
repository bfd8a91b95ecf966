// Package pipeline orchestrates one crawl target end to end: crawl, extract,
// normalize, ingest, summarize.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Musxeto/crawl4ai-demo/internal/crawler"
	"github.com/Musxeto/crawl4ai-demo/internal/extract"
	"github.com/Musxeto/crawl4ai-demo/internal/hash/sha256"
	"github.com/Musxeto/crawl4ai-demo/internal/ingest"
	"github.com/Musxeto/crawl4ai-demo/internal/metrics"
	"github.com/Musxeto/crawl4ai-demo/internal/normalize"
	"github.com/Musxeto/crawl4ai-demo/internal/publish"
	"github.com/Musxeto/crawl4ai-demo/internal/record"
	"github.com/Musxeto/crawl4ai-demo/internal/snapshot"
)

// Terminal failure classes surfaced to the caller. The summary is returned
// alongside either of these so counts survive a failed run.
var (
	ErrCrawlFailed = errors.New("crawl failed")
	ErrStorage     = errors.New("storage failure")
)

// Ingestor is the write boundary the runner drives. ingest.Ingestor
// satisfies it.
type Ingestor interface {
	Books(ctx context.Context, books []record.Book) (ingest.Result, error)
	Movies(ctx context.Context, movies []record.Movie) (ingest.Result, error)
	Videos(ctx context.Context, videos []record.Video) (ingest.Result, error)
}

// Target names one pipeline run: what kind of listing to extract, and from
// where.
type Target struct {
	Kind record.Kind
	URL  string
}

// Runner executes pipeline runs. Runs share no mutable state, so a single
// Runner may execute runs concurrently.
type Runner struct {
	crawler   crawler.Crawler
	ingestor  Ingestor
	snapshots snapshot.Provider
	publisher publish.Provider
	runCfg    crawler.RunConfig
	hasher    *sha256.Hasher
	logger    *zap.Logger
}

// New wires a Runner. snapshots and publisher may be nil to disable those
// side channels.
func New(
	cr crawler.Crawler,
	ing Ingestor,
	snapshots snapshot.Provider,
	publisher publish.Provider,
	runCfg crawler.RunConfig,
	logger *zap.Logger,
) *Runner {
	if snapshots == nil {
		snapshots = snapshot.NoOpProvider{}
	}
	if publisher == nil {
		publisher = publish.NoOpProvider{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		crawler:   cr,
		ingestor:  ing,
		snapshots: snapshots,
		publisher: publisher,
		runCfg:    runCfg,
		hasher:    sha256.New(),
		logger:    logger,
	}
}

// Run drives one target through the pipeline and returns its summary. The
// error is non-nil only for the run-level failure classes: ErrCrawlFailed
// when no page could be crawled, ErrStorage when a batch failed to persist.
// Per-record rejections and duplicate skips are normal outcomes reported in
// the summary.
func (r *Runner) Run(ctx context.Context, t Target) (Summary, error) {
	if !t.Kind.Valid() {
		return Summary{}, fmt.Errorf("unknown listing kind %q", t.Kind)
	}

	summary := Summary{
		RunID: uuid.NewString(),
		Kind:  t.Kind,
		URL:   t.URL,
		State: StateCrawling,
	}
	logger := r.logger.With(
		zap.String("run_id", summary.RunID),
		zap.String("kind", string(t.Kind)),
		zap.String("url", t.URL),
	)
	logger.Info("starting pipeline run")
	start := time.Now()

	results, err := r.crawler.Crawl(ctx, t.URL, r.runCfg)
	metrics.ObserveCrawlDuration(string(t.Kind), time.Since(start))
	if err != nil {
		return r.finish(ctx, summary, start, logger, fmt.Errorf("%w: %v", ErrCrawlFailed, err))
	}

	var storageErr error
	var crawlMsg string
	for _, res := range results {
		if !res.Success {
			summary.PagesFailed++
			if crawlMsg == "" {
				crawlMsg = res.ErrorMessage
			}
			logger.Warn("crawl result failed", zap.String("page_url", res.URL), zap.String("error", res.ErrorMessage))
			continue
		}
		summary.Pages++
		r.saveSnapshot(ctx, logger, t.Kind, res)

		if err := r.processResult(ctx, logger, t.Kind, res, &summary); err != nil {
			// The failed batch rolled back; other pages keep going.
			if storageErr == nil {
				storageErr = err
			}
			logger.Error("ingest batch failed", zap.String("page_url", res.URL), zap.Error(err))
		}
	}

	switch {
	case summary.Pages == 0 && summary.PagesFailed > 0:
		return r.finish(ctx, summary, start, logger, fmt.Errorf("%w: %s", ErrCrawlFailed, crawlMsg))
	case storageErr != nil:
		return r.finish(ctx, summary, start, logger, fmt.Errorf("%w: %v", ErrStorage, storageErr))
	}

	if summary.Candidates == 0 {
		logger.Info("no records found")
	}
	return r.finish(ctx, summary, start, logger, nil)
}

// processResult runs the extract -> normalize -> ingest stages for one page
// and accumulates the counts.
func (r *Runner) processResult(
	ctx context.Context,
	logger *zap.Logger,
	kind record.Kind,
	res crawler.Result,
	summary *Summary,
) error {
	summary.State = StateExtracting

	var (
		ingRes     ingest.Result
		err        error
		candidates int
		normalized int
		rejections []*normalize.Rejection
	)

	switch kind {
	case record.KindBooks:
		cands := extract.Books(res.Markdown)
		candidates = len(cands)
		accepted := make([]record.Book, 0, len(cands))
		summary.State = StateNormalizing
		for _, c := range cands {
			rec, rej := normalize.Book(c)
			if rej != nil {
				rejections = append(rejections, rej)
				continue
			}
			accepted = append(accepted, rec)
		}
		normalized = len(accepted)
		summary.State = StateIngesting
		ingRes, err = r.ingestor.Books(ctx, accepted)

	case record.KindMovies:
		cands := extract.Movies(res.Markdown)
		candidates = len(cands)
		accepted := make([]record.Movie, 0, len(cands))
		summary.State = StateNormalizing
		for _, c := range cands {
			rec, rej := normalize.Movie(c)
			if rej != nil {
				rejections = append(rejections, rej)
				continue
			}
			accepted = append(accepted, rec)
		}
		normalized = len(accepted)
		summary.State = StateIngesting
		ingRes, err = r.ingestor.Movies(ctx, accepted)

	case record.KindVideos:
		cands := extract.Videos(res.Markdown)
		candidates = len(cands)
		accepted := make([]record.Video, 0, len(cands))
		summary.State = StateNormalizing
		for _, c := range cands {
			rec, rej := normalize.Video(c)
			if rej != nil {
				rejections = append(rejections, rej)
				continue
			}
			accepted = append(accepted, rec)
		}
		normalized = len(accepted)
		summary.State = StateIngesting
		ingRes, err = r.ingestor.Videos(ctx, accepted)
	}

	summary.Candidates += candidates
	summary.Normalized += normalized
	summary.Rejected += len(rejections)
	metrics.RecordCandidates(string(kind), candidates)
	metrics.RecordNormalized(string(kind), normalized)
	for _, rej := range rejections {
		metrics.RecordRejection(string(rej.Kind), rej.Field)
		logger.Info("candidate rejected",
			zap.String("field", rej.Field),
			zap.String("value", rej.Value),
			zap.String("reason", rej.Reason),
		)
	}

	if err != nil {
		return err
	}
	summary.Inserted += ingRes.Inserted
	summary.Duplicates += ingRes.Skipped
	metrics.RecordInserted(string(kind), ingRes.Inserted)
	metrics.RecordDuplicates(string(kind), ingRes.Skipped)
	return nil
}

// finish settles the terminal state, emits metrics and the summary event,
// and returns.
func (r *Runner) finish(
	ctx context.Context,
	summary Summary,
	start time.Time,
	logger *zap.Logger,
	err error,
) (Summary, error) {
	switch {
	case err == nil:
		summary.State = StateDone
	case errors.Is(err, ErrCrawlFailed):
		summary.State = StateCrawlFailed
		summary.FailureReason = err.Error()
	case errors.Is(err, ErrStorage):
		summary.State = StateStorageFailed
		summary.FailureReason = err.Error()
	}
	summary.Duration = time.Since(start)
	metrics.RecordRun(string(summary.Kind), string(summary.State))

	if _, pubErr := r.publisher.Publish(ctx, summary); pubErr != nil {
		logger.Warn("publish run summary failed", zap.Error(pubErr))
	}

	logger.Info("pipeline run finished",
		zap.String("state", string(summary.State)),
		zap.Int("pages", summary.Pages),
		zap.Int("candidates", summary.Candidates),
		zap.Int("normalized", summary.Normalized),
		zap.Int("rejected", summary.Rejected),
		zap.Int("inserted", summary.Inserted),
		zap.Int("duplicates_skipped", summary.Duplicates),
		zap.Duration("duration", summary.Duration),
	)
	return summary, err
}

// saveSnapshot stores the raw markdown for later replay. Failures are logged
// and never fail the run.
func (r *Runner) saveSnapshot(ctx context.Context, logger *zap.Logger, kind record.Kind, res crawler.Result) {
	if res.Markdown == "" {
		return
	}
	name := fmt.Sprintf("%s/%s-%s.md",
		kind,
		time.Now().UTC().Format("20060102T150405Z"),
		r.hasher.HashString(res.Markdown)[:16],
	)
	if _, err := r.snapshots.Save(ctx, name, []byte(res.Markdown)); err != nil {
		logger.Warn("snapshot save failed", zap.String("object", name), zap.Error(err))
	}
}
