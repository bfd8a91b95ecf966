// Package normalize coerces raw listing candidates into typed records.
//
// Each function returns either a record ready for ingestion or a Rejection
// naming the field that failed coercion. A candidate is accepted or rejected
// whole; no partially coerced record ever reaches storage. Defaults are
// substituted only when an optional field is absent or empty - a value that
// is present but invalid is a rejection, never a default.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Musxeto/crawl4ai-demo/internal/extract"
	"github.com/Musxeto/crawl4ai-demo/internal/record"
)

// Rejection describes why a candidate was dropped. It carries the raw value
// so the orchestrator can log it for diagnosis; rejections are never retried.
type Rejection struct {
	Kind   record.Kind
	Field  string
	Value  string
	Reason string
}

// Error formats the rejection for logs and summaries.
func (r *Rejection) Error() string {
	return fmt.Sprintf("%s candidate rejected: field %q value %q: %s", r.Kind, r.Field, r.Value, r.Reason)
}

func reject(kind record.Kind, field, value, reason string) *Rejection {
	return &Rejection{Kind: kind, Field: field, Value: value, Reason: reason}
}

// Book coerces a ranked book candidate. Rank must parse as an integer and
// title and author must be non-empty after trimming.
func Book(c extract.BookCandidate) (record.Book, *Rejection) {
	rank, err := strconv.Atoi(strings.TrimSpace(c.Rank))
	if err != nil {
		return record.Book{}, reject(record.KindBooks, "rank", c.Rank, "not an integer")
	}

	title := strings.TrimSpace(c.Title)
	if title == "" {
		return record.Book{}, reject(record.KindBooks, "title", c.Title, "empty")
	}
	author := strings.TrimSpace(c.Author)
	if author == "" {
		return record.Book{}, reject(record.KindBooks, "author", c.Author, "empty")
	}

	return record.Book{
		Rank:       rank,
		Title:      title,
		Author:     author,
		ImageURL:   strings.TrimSpace(c.ImageURL),
		ProductURL: strings.TrimSpace(c.ProductURL),
	}, nil
}

// Movie coerces a movie candidate. Price must parse as a non-negative
// decimal and seats as a non-negative integer.
func Movie(c extract.MovieCandidate) (record.Movie, *Rejection) {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return record.Movie{}, reject(record.KindMovies, "title", c.Title, "empty")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(c.Price), 64)
	if err != nil {
		return record.Movie{}, reject(record.KindMovies, "price", c.Price, "not a number")
	}
	if price < 0 {
		return record.Movie{}, reject(record.KindMovies, "price", c.Price, "negative")
	}

	seats, err := strconv.Atoi(strings.TrimSpace(c.SeatsAvailable))
	if err != nil {
		return record.Movie{}, reject(record.KindMovies, "seats_available", c.SeatsAvailable, "not an integer")
	}
	if seats < 0 {
		return record.Movie{}, reject(record.KindMovies, "seats_available", c.SeatsAvailable, "negative")
	}

	return record.Movie{
		Title:          title,
		ShowTime:       strings.TrimSpace(c.ShowTime),
		Price:          price,
		Location:       strings.TrimSpace(c.Location),
		SeatsAvailable: seats,
	}, nil
}

// Video coerces a video candidate. URL is required; every other field falls
// back to its documented default when absent or empty.
func Video(c extract.VideoCandidate) (record.Video, *Rejection) {
	url := strings.TrimSpace(c.URL)
	if url == "" {
		return record.Video{}, reject(record.KindVideos, "url", c.URL, "empty")
	}

	return record.Video{
		URL:       url,
		Title:     stringOrDefault(c.Title, record.DefaultVideoTitle),
		Channel:   stringOrDefault(c.Channel, record.DefaultVideoChannel),
		Views:     stringOrDefault(c.Views, record.DefaultVideoViews),
		Uploaded:  stringOrDefault(c.Uploaded, record.DefaultVideoUploaded),
		Thumbnail: strings.TrimSpace(c.Thumbnail),
	}, nil
}

func stringOrDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}
