// Package extract turns crawl markdown into raw listing candidates.
//
// Extractors are pure functions: they never touch the network or the
// database, and a page that matches nothing yields an empty slice, not an
// error. All candidate fields are left as raw strings; coercion and
// validation happen in the normalize package.
package extract

// BookCandidate is one pre-coercion match of the ranked book block pattern.
type BookCandidate struct {
	Rank       string
	Title      string
	ImageURL   string
	ProductURL string
	Author     string
}

// MovieCandidate is one pre-coercion match of the movie listing pattern.
type MovieCandidate struct {
	Title          string
	ShowTime       string
	Price          string
	Location       string
	SeatsAvailable string
}

// VideoCandidate is one pre-coercion video block. Unmatched fields stay
// empty; the normalizer substitutes the documented defaults for everything
// except URL, which is required.
type VideoCandidate struct {
	URL       string
	Title     string
	Channel   string
	Views     string
	Uploaded  string
	Thumbnail string
}
