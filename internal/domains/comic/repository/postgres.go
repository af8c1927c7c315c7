// Package repository implements the comic record store on PostgreSQL with
// raw SQL over pgxpool.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rlcurrall/collection-example/internal/domains/comic"
)

const comicColumns = `id, username, title, issue_number, main_character, genre,
	cover_year, publisher, grade, price, image_url, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the pgx-backed comic repository.
func NewPostgresRepository(pool *pgxpool.Pool) comic.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) List(ctx context.Context, q comic.ListQuery) ([]comic.Comic, error) {
	where := ""
	args := []interface{}{}
	argIndex := 1

	appendCond := func(cond string, arg interface{}) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, argIndex)
		args = append(args, arg)
		argIndex++
	}

	if q.Username != "" {
		appendCond("username = $%d", q.Username)
	}
	if q.Title != "" {
		appendCond("title ILIKE $%d", "%"+q.Title+"%")
	}

	order := ""
	switch q.OrderPrice {
	case comic.OrderAsc:
		order = " ORDER BY price ASC"
	case comic.OrderDesc:
		order = " ORDER BY price DESC"
	}

	query := fmt.Sprintf("SELECT %s FROM comics%s%s LIMIT $%d OFFSET $%d",
		comicColumns, where, order, argIndex, argIndex+1)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()

	comics := make([]comic.Comic, 0, q.Limit)
	for rows.Next() {
		var c comic.Comic
		if err := scanComic(rows, &c); err != nil {
			return nil, fmt.Errorf("list scan failed: %w", err)
		}
		comics = append(comics, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rows failed: %w", err)
	}

	return comics, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*comic.Comic, error) {
	query := fmt.Sprintf("SELECT %s FROM comics WHERE id = $1", comicColumns)

	var c comic.Comic
	if err := scanComic(r.pool.QueryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comic.ErrComicNotFound
		}
		return nil, fmt.Errorf("find query failed: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) Insert(ctx context.Context, owner string, f comic.ReplaceComicRequest) (*comic.Comic, error) {
	query := fmt.Sprintf(`INSERT INTO comics
		(username, title, issue_number, main_character, genre, cover_year,
		 publisher, grade, price, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, comicColumns)

	var c comic.Comic
	row := r.pool.QueryRow(ctx, query,
		owner, f.Title, f.IssueNumber, f.MainCharacter, f.Genre, f.CoverYear,
		f.Publisher, f.Grade, f.Price, f.ImageURL)
	if err := scanComic(row, &c); err != nil {
		return nil, fmt.Errorf("insert failed: %w", err)
	}

	return &c, nil
}

// ReplaceOwned overwrites every mutable field in one conditional statement:
// the WHERE clause carries both id and owner, so the ownership check cannot
// race with a concurrent mutation.
func (r *postgresRepository) ReplaceOwned(ctx context.Context, id int64, owner string, f comic.ReplaceComicRequest) (*comic.Comic, error) {
	query := fmt.Sprintf(`UPDATE comics SET
		title = $1, issue_number = $2, main_character = $3, genre = $4,
		cover_year = $5, publisher = $6, grade = $7, price = $8,
		image_url = $9, updated_at = now()
		WHERE id = $10 AND username = $11
		RETURNING %s`, comicColumns)

	var c comic.Comic
	row := r.pool.QueryRow(ctx, query,
		f.Title, f.IssueNumber, f.MainCharacter, f.Genre, f.CoverYear,
		f.Publisher, f.Grade, f.Price, f.ImageURL, id, owner)
	if err := scanComic(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comic.ErrComicNotFound
		}
		return nil, fmt.Errorf("replace failed: %w", err)
	}

	return &c, nil
}

// UpdateOwned writes only the supplied fields, under the same conditional
// WHERE as ReplaceOwned.
func (r *postgresRepository) UpdateOwned(ctx context.Context, id int64, owner string, p comic.UpdateComicRequest) (*comic.Comic, error) {
	set := ""
	args := []interface{}{}
	argIndex := 1

	appendSet := func(column string, arg interface{}) {
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", column, argIndex)
		args = append(args, arg)
		argIndex++
	}

	if p.Title != nil {
		appendSet("title", *p.Title)
	}
	if p.IssueNumber != nil {
		appendSet("issue_number", *p.IssueNumber)
	}
	if p.MainCharacter != nil {
		appendSet("main_character", *p.MainCharacter)
	}
	if p.Genre != nil {
		appendSet("genre", *p.Genre)
	}
	if p.CoverYear != nil {
		appendSet("cover_year", *p.CoverYear)
	}
	if p.Publisher != nil {
		appendSet("publisher", *p.Publisher)
	}
	if p.Grade != nil {
		appendSet("grade", *p.Grade)
	}
	if p.Price != nil {
		appendSet("price", *p.Price)
	}
	if p.ImageURL != nil {
		appendSet("image_url", *p.ImageURL)
	}

	if set != "" {
		set += ", "
	}
	set += "updated_at = now()"

	query := fmt.Sprintf("UPDATE comics SET %s WHERE id = $%d AND username = $%d RETURNING %s",
		set, argIndex, argIndex+1, comicColumns)
	args = append(args, id, owner)

	var c comic.Comic
	if err := scanComic(r.pool.QueryRow(ctx, query, args...), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comic.ErrComicNotFound
		}
		return nil, fmt.Errorf("update failed: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) DeleteOwned(ctx context.Context, id int64, owner string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM comics WHERE id = $1 AND username = $2", id, owner)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return comic.ErrComicNotFound
	}

	return nil
}

func scanComic(row pgx.Row, c *comic.Comic) error {
	return row.Scan(
		&c.ID,
		&c.Username,
		&c.Title,
		&c.IssueNumber,
		&c.MainCharacter,
		&c.Genre,
		&c.CoverYear,
		&c.Publisher,
		&c.Grade,
		&c.Price,
		&c.ImageURL,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}
