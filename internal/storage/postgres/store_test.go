package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/Musxeto/crawl4ai-demo/internal/record"
)

func TestNewWithPoolRequiresPool(t *testing.T) {
	t.Parallel()

	_, err := NewWithPool(nil)
	require.Error(t, err)
}

func TestMigrateCreatesTables(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock)
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS books").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS movies").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS videos").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateStopsOnFirstFailure(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock)
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS books").
		WillReturnError(errors.New("permission denied"))

	require.Error(t, store.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBookWritesRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock)
	require.NoError(t, err)

	b := record.Book{
		Rank:       1,
		Title:      "The Sunrise on the Reaping",
		Author:     "Suzanne Collins",
		ImageURL:   "https://images.example.com/cover.jpg",
		ProductURL: "https://www.amazon.com/dp/1546171460",
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO books").
		WithArgs(b.Rank, b.Title, b.Author, b.ImageURL, b.ProductURL).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, store.InsertBook(ctx, tx, b))
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertMovieWritesRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock)
	require.NoError(t, err)

	m := record.Movie{
		Title:          "Dune Part Three",
		ShowTime:       "7:30 PM",
		Price:          12.50,
		Location:       "Cinema 4",
		SeatsAvailable: 42,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO movies").
		WithArgs(m.Title, m.ShowTime, m.Price, m.Location, m.SeatsAvailable).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, store.InsertMovie(ctx, tx, m))
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoExists(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock)
	require.NoError(t, err)

	const url = "https://www.youtube.com/watch?v=abc123"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM videos").
		WithArgs(url).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM videos").
		WithArgs("https://www.youtube.com/watch?v=missing").
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}))
	mock.ExpectRollback()

	ctx := context.Background()
	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	exists, err := store.VideoExists(ctx, tx, url)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = store.VideoExists(ctx, tx, "https://www.youtube.com/watch?v=missing")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, tx.Rollback(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertVideoWritesRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock)
	require.NoError(t, err)

	v := record.Video{
		Title:     "Build a Crawler in an Afternoon",
		URL:       "https://www.youtube.com/watch?v=abc123",
		Channel:   "GopherAcademy",
		Views:     "12K views",
		Uploaded:  "2 weeks ago",
		Thumbnail: "https://i.ytimg.com/vi/abc123/hq720.jpg",
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO videos").
		WithArgs(v.Title, v.URL, v.Channel, v.Views, v.Uploaded, v.Thumbnail).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, store.InsertVideo(ctx, tx, v))
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListBooksScansRows(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock)
	require.NoError(t, err)

	rows := pgxmock.NewRows([]string{"id", "rank", "title", "author", "image_url", "product_url"}).
		AddRow(int64(1), 1, "First Book", "Author One", "https://img/1.jpg", "https://shop/1").
		AddRow(int64(2), 2, "Second Book", "Author Two", "https://img/2.jpg", "https://shop/2")
	mock.ExpectQuery("SELECT id, rank, title, author, image_url, product_url FROM books").
		WillReturnRows(rows)

	books, err := store.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	require.Equal(t, "First Book", books[0].Title)
	require.Equal(t, 2, books[1].Rank)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListVideosReturnsEmptySliceForNoRows(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, title, url, channel, views, uploaded, thumbnail FROM videos").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "url", "channel", "views", "uploaded", "thumbnail"}))

	videos, err := store.ListVideos(context.Background())
	require.NoError(t, err)
	require.NotNil(t, videos)
	require.Empty(t, videos)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListMoviesScansRows(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewWithPool(mock)
	require.NoError(t, err)

	rows := pgxmock.NewRows([]string{"id", "title", "show_time", "price", "location", "seats_available"}).
		AddRow(int64(7), "Dune Part Three", "7:30 PM", 12.5, "Cinema 4", 42)
	mock.ExpectQuery("SELECT id, title, show_time, price, location, seats_available FROM movies").
		WillReturnRows(rows)

	movies, err := store.ListMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	require.Equal(t, 12.5, movies[0].Price)
	require.NoError(t, mock.ExpectationsWereMet())
}
