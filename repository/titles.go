package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avelichko/kritika/data"
)

type titles interface {
	CreateTitle(title *data.Title) error
	GetTitle(titleID int64) (*data.Title, error)
	UpdateTitle(title *data.Title) error
	DeleteTitle(titleID int64) error
	GetAllTitles(name string, year int32, genreSlug, categorySlug string, filters data.Filters) ([]*data.Title, data.Metadata, error)
}

// CreateTitle creates a title record together with its genre links, inside a
// single transaction.
func (r *repository) CreateTitle(title *data.Title) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		INSERT INTO titles (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version`
	var categoryID interface{}
	if title.Category != nil {
		categoryID = title.Category.ID
	}
	args := []interface{}{title.Name, title.Year, title.Description, categoryID}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&title.ID, &title.CreatedAt, &title.Version)
	if err != nil {
		return err
	}
	err = insertGenreLinks(ctx, tx, title)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func insertGenreLinks(ctx context.Context, tx *sql.Tx, title *data.Title) error {
	query := `
		INSERT INTO titles_genres (title_id, genre_id)
		VALUES ($1, $2)`
	for i := range title.Genres {
		_, err := tx.ExecContext(ctx, query, title.ID, title.Genres[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetTitle retrieves a title record along with its category, genres and the
// rating derived from its reviews. The rating is recomputed on every read so
// that it always reflects the current review set.
func (r *repository) GetTitle(titleID int64) (*data.Title, error) {
	if titleID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT titles.id, titles.created_at, titles.name, titles.year, titles.description,
			categories.name, categories.slug,
			coalesce(sum(reviews.score), 0), count(reviews.id),
			titles.version
		FROM titles
		LEFT JOIN categories ON titles.category_id = categories.id
		LEFT JOIN reviews ON reviews.title_id = titles.id
		WHERE titles.id = $1
		GROUP BY titles.id, categories.id`
	var title data.Title
	var categoryName, categorySlug sql.NullString
	var scoreSum, scoreCount int64
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, titleID).Scan(
		&title.ID,
		&title.CreatedAt,
		&title.Name,
		&title.Year,
		&title.Description,
		&categoryName,
		&categorySlug,
		&scoreSum,
		&scoreCount,
		&title.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if categorySlug.Valid {
		title.Category = &data.Category{Name: categoryName.String, Slug: categorySlug.String}
	}
	title.Rating = data.RatingFromAggregate(scoreSum, scoreCount)
	title.Genres, err = r.getGenresForTitle(title.ID)
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *repository) getGenresForTitle(titleID int64) ([]data.Genre, error) {
	query := `
		SELECT genres.id, genres.name, genres.slug
		FROM genres
		INNER JOIN titles_genres ON titles_genres.genre_id = genres.id
		WHERE titles_genres.title_id = $1
		ORDER BY genres.slug ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, titleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	genres := []data.Genre{}
	for rows.Next() {
		var genre data.Genre
		err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug)
		if err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}
	return genres, rows.Err()
}

// UpdateTitle updates a title record and replaces its genre links, inside a
// single transaction.
func (r *repository) UpdateTitle(title *data.Title) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		UPDATE titles
		SET name = $1, year = $2, description = $3, category_id = $4, version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version`
	var categoryID interface{}
	if title.Category != nil {
		categoryID = title.Category.ID
	}
	args := []interface{}{title.Name, title.Year, title.Description, categoryID, title.ID, title.Version}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&title.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM titles_genres WHERE title_id = $1`, title.ID)
	if err != nil {
		return err
	}
	err = insertGenreLinks(ctx, tx, title)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteTitle deletes a title record. Reviews of the title and their comments
// are removed by the ON DELETE CASCADE constraints.
func (r *repository) DeleteTitle(titleID int64) error {
	if titleID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM titles
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, titleID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// GetAllTitles retrieves a paginated list of title records including their
// derived ratings. Records can be filtered by name, year, genre slug and
// category slug, and sorted.
func (r *repository) GetAllTitles(name string, year int32, genreSlug, categorySlug string, filters data.Filters) ([]*data.Title, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), titles.id, titles.created_at, titles.name, titles.year, titles.description,
			categories.name, categories.slug,
			coalesce(sum(reviews.score), 0), count(reviews.id),
			titles.version
		FROM titles
		LEFT JOIN categories ON titles.category_id = categories.id
		LEFT JOIN reviews ON reviews.title_id = titles.id
		WHERE (titles.name ILIKE '%%' || $1 || '%%' OR $1 = '')
		AND (titles.year = $2 OR $2 = 0)
		AND ($3 = '' OR categories.slug = $3)
		AND ($4 = '' OR EXISTS (
			SELECT 1 FROM titles_genres
			INNER JOIN genres ON genres.id = titles_genres.genre_id
			WHERE titles_genres.title_id = titles.id AND genres.slug = $4))
		GROUP BY titles.id, categories.id
		ORDER BY titles.%s %s, titles.id ASC
		LIMIT $5 OFFSET $6`,
		filters.SortColumn(), filters.SortDirection())
	args := []interface{}{name, year, categorySlug, genreSlug, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	titles := []*data.Title{}
	for rows.Next() {
		var title data.Title
		var categoryName, categorySlug sql.NullString
		var scoreSum, scoreCount int64
		err := rows.Scan(
			&totalRecords,
			&title.ID,
			&title.CreatedAt,
			&title.Name,
			&title.Year,
			&title.Description,
			&categoryName,
			&categorySlug,
			&scoreSum,
			&scoreCount,
			&title.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		if categorySlug.Valid {
			title.Category = &data.Category{Name: categoryName.String, Slug: categorySlug.String}
		}
		title.Rating = data.RatingFromAggregate(scoreSum, scoreCount)
		titles = append(titles, &title)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	for _, title := range titles {
		title.Genres, err = r.getGenresForTitle(title.ID)
		if err != nil {
			return nil, data.Metadata{}, err
		}
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return titles, metadata, nil
}
