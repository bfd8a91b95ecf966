package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/Musxeto/crawl4ai-demo/internal/record"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeStore struct {
	tx        *fakeTx
	beginErr  error
	insertErr error
	existing  map[string]bool

	books  []record.Book
	movies []record.Movie
	videos []record.Video
}

func newFakeStore() *fakeStore {
	return &fakeStore{tx: &fakeTx{}, existing: map[string]bool{}}
}

func (s *fakeStore) Begin(context.Context) (pgx.Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return s.tx, nil
}

func (s *fakeStore) InsertBook(_ context.Context, _ pgx.Tx, b record.Book) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.books = append(s.books, b)
	return nil
}

func (s *fakeStore) InsertMovie(_ context.Context, _ pgx.Tx, m record.Movie) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.movies = append(s.movies, m)
	return nil
}

func (s *fakeStore) InsertVideo(_ context.Context, _ pgx.Tx, v record.Video) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.videos = append(s.videos, v)
	s.existing[v.URL] = true
	return nil
}

func (s *fakeStore) VideoExists(_ context.Context, _ pgx.Tx, url string) (bool, error) {
	return s.existing[url], nil
}

func TestBooksInsertsWholeBatch(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	ing := New(store, nil)

	books := []record.Book{
		{Rank: 1, Title: "First", Author: "A"},
		{Rank: 2, Title: "Second", Author: "B"},
	}
	res, err := ing.Books(context.Background(), books)
	require.NoError(t, err)
	require.Equal(t, Result{Inserted: 2}, res)
	require.Equal(t, books, store.books)
	require.True(t, store.tx.committed)
	require.False(t, store.tx.rolledBack)
}

func TestBooksAllowsDuplicates(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	ing := New(store, nil)

	same := record.Book{Rank: 1, Title: "Same", Author: "A"}
	res, err := ing.Books(context.Background(), []record.Book{same, same})
	require.NoError(t, err)
	require.Equal(t, Result{Inserted: 2}, res)
	require.Len(t, store.books, 2)
}

func TestEmptyBatchSkipsTransaction(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.beginErr = errors.New("should not begin")
	ing := New(store, nil)

	res, err := ing.Movies(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, Result{}, res)
}

func TestVideosSkipsDuplicatesByURL(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.existing["https://www.youtube.com/watch?v=old"] = true
	ing := New(store, nil)

	videos := []record.Video{
		{Title: "New", URL: "https://www.youtube.com/watch?v=new"},
		{Title: "Old", URL: "https://www.youtube.com/watch?v=old"},
	}
	res, err := ing.Videos(context.Background(), videos)
	require.NoError(t, err)
	require.Equal(t, Result{Inserted: 1, Skipped: 1}, res)
	require.Len(t, store.videos, 1)
	require.Equal(t, "New", store.videos[0].Title)
	require.True(t, store.tx.committed)
}

func TestVideosSkipsDuplicateWithinBatch(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	ing := New(store, nil)

	v := record.Video{Title: "Clip", URL: "https://www.youtube.com/watch?v=clip"}
	res, err := ing.Videos(context.Background(), []record.Video{v, v})
	require.NoError(t, err)
	require.Equal(t, Result{Inserted: 1, Skipped: 1}, res)
}

func TestInsertFailureRollsBackBatch(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.insertErr = errors.New("disk full")
	ing := New(store, nil)

	_, err := ing.Movies(context.Background(), []record.Movie{{Title: "Doomed"}})
	require.Error(t, err)
	require.ErrorContains(t, err, "disk full")
	require.True(t, store.tx.rolledBack)
	require.False(t, store.tx.committed)
}

func TestBeginFailureSurfaces(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.beginErr = errors.New("pool closed")
	ing := New(store, nil)

	_, err := ing.Books(context.Background(), []record.Book{{Rank: 1, Title: "t", Author: "a"}})
	require.Error(t, err)
	require.ErrorContains(t, err, "pool closed")
}
