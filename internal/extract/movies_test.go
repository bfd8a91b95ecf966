package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const movieMarkdown = `## Now Showing

**Dune Part Three**
Showtime: 7:30 PM
Price: 12.50
Location: Cinema 4
Seats Available: 42

**Midnight Matinee**
Showtime: 11:55 PM
Price: free
Location: Cinema 1
Seats Available: 120
`

func TestMoviesExtractsListings(t *testing.T) {
	t.Parallel()

	got := Movies(movieMarkdown)
	require.Len(t, got, 2)

	require.Equal(t, MovieCandidate{
		Title:          "Dune Part Three",
		ShowTime:       "7:30 PM",
		Price:          "12.50",
		Location:       "Cinema 4",
		SeatsAvailable: "42",
	}, got[0])

	// Price stays raw here; whether "free" is usable is the normalizer's call.
	require.Equal(t, "free", got[1].Price)
	require.Equal(t, "Midnight Matinee", got[1].Title)
}

func TestMoviesRequiresLabelsInOrder(t *testing.T) {
	t.Parallel()

	reordered := "**Backwards**\nPrice: 10.00\nShowtime: 9:00 PM\nLocation: Cinema 2\nSeats Available: 5\n"
	require.Empty(t, Movies(reordered))
}

func TestMoviesIgnoresProseWithoutListings(t *testing.T) {
	t.Parallel()

	require.Empty(t, Movies("nothing bold, no labels, just text\n"))
}

func TestMoviesMissingLabelYieldsNoCandidate(t *testing.T) {
	t.Parallel()

	missingSeats := "**Short**\nShowtime: 1:00 PM\nPrice: 8.00\nLocation: Cinema 3\n"
	require.Empty(t, Movies(missingSeats))
}
