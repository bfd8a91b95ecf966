// Package record defines the persisted row shapes produced by the scrape pipeline.
package record

// Kind identifies one of the scraped listing types. It doubles as the metrics
// label and the API path segment for that type.
type Kind string

// Supported listing kinds.
const (
	KindBooks  Kind = "books"
	KindMovies Kind = "movies"
	KindVideos Kind = "videos"
)

// Valid reports whether k names a known listing kind.
func (k Kind) Valid() bool {
	switch k {
	case KindBooks, KindMovies, KindVideos:
		return true
	}
	return false
}

// Book is one entry of a ranked best-seller listing. Rank reflects the order
// the entry appeared in the source page and is not re-validated for
// contiguity or uniqueness.
type Book struct {
	ID         int64  `json:"id"`
	Rank       int    `json:"rank"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	ImageURL   string `json:"image_url"`
	ProductURL string `json:"product_url"`
}

// Movie is one scraped event listing.
type Movie struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	ShowTime       string  `json:"show_time"`
	Price          float64 `json:"price"`
	Location       string  `json:"location"`
	SeatsAvailable int     `json:"seats_available"`
}

// Video is one scraped media listing. URL is globally unique in storage;
// the ingestor skips rows whose URL is already persisted.
type Video struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Channel   string `json:"channel"`
	Views     string `json:"views"`
	Uploaded  string `json:"uploaded"`
	Thumbnail string `json:"thumbnail"`
}

// Defaults applied by the normalizer when an optional video field is absent.
const (
	DefaultVideoTitle    = "Unknown Title"
	DefaultVideoChannel  = "Unknown"
	DefaultVideoViews    = "0 views"
	DefaultVideoUploaded = "Unknown upload date"
)
