package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/amatveev/feedhub/internal/errs"
	"github.com/amatveev/feedhub/internal/model"
)

// PostRepo implements PostRepository using PostgreSQL.
type PostRepo struct{ db *DB }

// NewPostRepo constructs a post repository.
func NewPostRepo(db *DB) *PostRepo { return &PostRepo{db: db} }

const postColumns = `id, title, content, image_ref, creator_id, created_at, updated_at`

// GetByID selects a single post.
func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	const q = `
SELECT ` + postColumns + `
FROM posts WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var p model.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.ImageRef, &p.CreatorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListPage selects one page ordered by creation time descending.
func (r *PostRepo) ListPage(ctx context.Context, skip, limit int) ([]model.Post, error) {
	const q = `
SELECT ` + postColumns + `
FROM posts
ORDER BY created_at DESC
OFFSET $1 LIMIT $2`
	rows, err := r.db.Pool.Query(ctx, q, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.ImageRef, &p.CreatorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Count returns the total number of posts.
func (r *PostRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM posts`).Scan(&n)
	return n, err
}

// CreateWithBackref inserts the post and appends its ID to the creator's
// post list; both writes commit or neither does.
func (r *PostRepo) CreateWithBackref(ctx context.Context, p *model.Post) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const ins = `
INSERT INTO posts (id, title, content, image_ref, creator_id, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)`
	if _, err = tx.Exec(ctx, ins, p.ID, p.Title, p.Content, p.ImageRef, p.CreatorID, p.CreatedAt, p.UpdatedAt); err != nil {
		return err
	}

	const upd = `
UPDATE users SET post_ids = array_append(post_ids, $2) WHERE id=$1`
	var tag pgconn.CommandTag
	if tag, err = tx.Exec(ctx, upd, p.CreatorID, p.ID); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = errs.ErrNotFound
		return err
	}
	return nil
}

// Update rewrites the mutable post fields.
func (r *PostRepo) Update(ctx context.Context, p *model.Post) error {
	const q = `
UPDATE posts SET title=$2, content=$3, image_ref=$4, updated_at=$5 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, p.ID, p.Title, p.Content, p.ImageRef, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DeleteWithBackref removes the post and its back-reference transactionally.
func (r *PostRepo) DeleteWithBackref(ctx context.Context, id, creatorID uuid.UUID) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	var tag pgconn.CommandTag
	if tag, err = tx.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = errs.ErrNotFound
		return err
	}

	const upd = `
UPDATE users SET post_ids = array_remove(post_ids, $2) WHERE id=$1`
	if _, err = tx.Exec(ctx, upd, creatorID, id); err != nil {
		return err
	}
	return nil
}
