package pipeline

import (
	"time"

	"github.com/Musxeto/crawl4ai-demo/internal/record"
)

// State is the terminal (or in-flight) stage of a pipeline run.
type State string

// Run states. A run moves Idle -> Crawling -> Extracting -> Normalizing ->
// Ingesting -> Done, short-circuiting to CrawlFailed or StorageFailed.
const (
	StateIdle          State = "idle"
	StateCrawling      State = "crawling"
	StateExtracting    State = "extracting"
	StateNormalizing   State = "normalizing"
	StateIngesting     State = "ingesting"
	StateDone          State = "done"
	StateCrawlFailed   State = "crawl_failed"
	StateStorageFailed State = "storage_failed"
)

// Summary is the aggregate outcome of one run. For multi-page crawls the
// counts accumulate across pages.
type Summary struct {
	RunID string      `json:"run_id"`
	Kind  record.Kind `json:"kind"`
	URL   string      `json:"url"`
	State State       `json:"state"`

	Pages       int `json:"pages"`
	PagesFailed int `json:"pages_failed"`
	Candidates  int `json:"candidates"`
	Normalized  int `json:"normalized"`
	Rejected    int `json:"rejected"`
	Inserted    int `json:"inserted"`
	Duplicates  int `json:"duplicates_skipped"`

	FailureReason string        `json:"failure_reason,omitempty"`
	Duration      time.Duration `json:"duration_ns"`
}
