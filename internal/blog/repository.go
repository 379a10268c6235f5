package blog

import (
	"context"
	"database/sql"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r Repository) AllPublished(ctx context.Context) ([]BlogPost, error) {
	all := []BlogPost{}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, tags, slug, text, created_at, updated_at, published_at, created_by FROM blog_post WHERE published_at IS NOT NULL ORDER BY published_at DESC`)
	if err == sql.ErrNoRows {
		return all, nil
	}
	if err != nil {
		return all, err
	}
	defer rows.Close()
	for rows.Next() {
		var bp BlogPost
		err := rows.Scan(&bp.ID, &bp.Title, &bp.Description, &bp.Tags, &bp.Slug, &bp.Text, &bp.CreatedAt, &bp.UpdatedAt, &bp.PublishedAt, &bp.CreatedBy)
		if err != nil {
			return all, err
		}
		all = append(all, bp)
	}
	if err := rows.Err(); err != nil {
		return all, err
	}

	return all, nil
}

func (r Repository) ByID(ctx context.Context, id string) (BlogPost, error) {
	var bp BlogPost
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, tags, slug, text, created_at, updated_at, published_at, created_by FROM blog_post WHERE id = $1 AND published_at IS NOT NULL`, id)
	if err := row.Scan(&bp.ID, &bp.Title, &bp.Description, &bp.Tags, &bp.Slug, &bp.Text, &bp.CreatedAt, &bp.UpdatedAt, &bp.PublishedAt, &bp.CreatedBy); err != nil {
		return bp, err
	}

	return bp, nil
}
