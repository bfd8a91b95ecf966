package postgres

import (
	"context"
	"fmt"

	"github.com/Musxeto/crawl4ai-demo/internal/record"
)

// ListBooks returns every persisted book in insertion order.
func (s *Store) ListBooks(ctx context.Context) ([]record.Book, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, rank, title, author, image_url, product_url FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []record.Book{}
	for rows.Next() {
		var b record.Book
		if err := rows.Scan(&b.ID, &b.Rank, &b.Title, &b.Author, &b.ImageURL, &b.ProductURL); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// ListMovies returns every persisted movie in insertion order.
func (s *Store) ListMovies(ctx context.Context) ([]record.Movie, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, show_time, price, location, seats_available FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := []record.Movie{}
	for rows.Next() {
		var m record.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.ShowTime, &m.Price, &m.Location, &m.SeatsAvailable); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// ListVideos returns every persisted video in insertion order.
func (s *Store) ListVideos(ctx context.Context) ([]record.Video, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, url, channel, views, uploaded, thumbnail FROM videos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	videos := []record.Video{}
	for rows.Next() {
		var v record.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.URL, &v.Channel, &v.Views, &v.Uploaded, &v.Thumbnail); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}
