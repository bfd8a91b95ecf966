package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Musxeto/crawl4ai-demo/internal/record"
)

// InsertBook writes one book row inside tx. Books carry no uniqueness key,
// so repeated crawls of the same page accumulate duplicate rows. That
// mirrors the source listing semantics and is intentional.
func (s *Store) InsertBook(ctx context.Context, tx pgx.Tx, b record.Book) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO books (rank, title, author, image_url, product_url) VALUES ($1, $2, $3, $4, $5)`,
		b.Rank, b.Title, b.Author, b.ImageURL, b.ProductURL,
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// InsertMovie writes one movie row inside tx. Insert-only, like books.
func (s *Store) InsertMovie(ctx context.Context, tx pgx.Tx, m record.Movie) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO movies (title, show_time, price, location, seats_available) VALUES ($1, $2, $3, $4, $5)`,
		m.Title, m.ShowTime, m.Price, m.Location, m.SeatsAvailable,
	)
	if err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}
	return nil
}

// InsertVideo writes one video row inside tx.
func (s *Store) InsertVideo(ctx context.Context, tx pgx.Tx, v record.Video) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO videos (title, url, channel, views, uploaded, thumbnail) VALUES ($1, $2, $3, $4, $5, $6)`,
		v.Title, v.URL, v.Channel, v.Views, v.Uploaded, v.Thumbnail,
	)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	return nil
}

// VideoExists reports whether a video with the given URL is already
// persisted, reading through tx so the check and the subsequent insert see
// the same snapshot.
func (s *Store) VideoExists(ctx context.Context, tx pgx.Tx, url string) (bool, error) {
	var one int
	err := tx.QueryRow(ctx, `SELECT 1 FROM videos WHERE url = $1`, url).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check video url: %w", err)
	}
	return true, nil
}
