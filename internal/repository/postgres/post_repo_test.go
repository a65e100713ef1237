package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/amatveev/feedhub/internal/errs"
	"github.com/amatveev/feedhub/internal/model"
)

var postCols = []string{"id", "title", "content", "image_ref", "creator_id", "created_at", "updated_at"}

func somePost() model.Post {
	now := time.Now()
	return model.Post{
		ID:        uuid.Must(uuid.NewV4()),
		Title:     "first post",
		Content:   "hello world",
		ImageRef:  "abc.png",
		CreatorID: uuid.Must(uuid.NewV4()),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostRepo_GetByID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPostRepo(db)
	ctx := context.Background()
	p := somePost()

	mock.ExpectQuery(`FROM posts WHERE id=\$1`).
		WithArgs(p.ID).
		WillReturnRows(pgxmock.NewRows(postCols).
			AddRow(p.ID, p.Title, p.Content, p.ImageRef, p.CreatorID, p.CreatedAt, p.UpdatedAt))
	got, err := r.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.Title, got.Title)
	require.Equal(t, p.CreatorID, got.CreatorID)

	mock.ExpectQuery(`FROM posts WHERE id=\$1`).
		WithArgs(p.ID).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByID(ctx, p.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPostRepo_ListPage_And_Count(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPostRepo(db)
	ctx := context.Background()
	a, b := somePost(), somePost()

	mock.ExpectQuery(`ORDER BY created_at DESC`).
		WithArgs(2, 2).
		WillReturnRows(pgxmock.NewRows(postCols).
			AddRow(a.ID, a.Title, a.Content, a.ImageRef, a.CreatorID, a.CreatedAt, a.UpdatedAt).
			AddRow(b.ID, b.Title, b.Content, b.ImageRef, b.CreatorID, b.CreatedAt, b.UpdatedAt))
	posts, err := r.ListPage(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, a.ID, posts[0].ID)

	mock.ExpectQuery(`SELECT count\(\*\) FROM posts`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))
	n, err := r.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, n)
}

func TestPostRepo_CreateWithBackref_Commits(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPostRepo(db)
	ctx := context.Background()
	p := somePost()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO posts`).
		WithArgs(p.ID, p.Title, p.Content, p.ImageRef, p.CreatorID, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE users SET post_ids = array_append`).
		WithArgs(p.CreatorID, p.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, r.CreateWithBackref(ctx, &p))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepo_CreateWithBackref_RollsBackOnMissingUser(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPostRepo(db)
	ctx := context.Background()
	p := somePost()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO posts`).
		WithArgs(p.ID, p.Title, p.Content, p.ImageRef, p.CreatorID, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE users SET post_ids = array_append`).
		WithArgs(p.CreatorID, p.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	require.ErrorIs(t, r.CreateWithBackref(ctx, &p), errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepo_Update(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPostRepo(db)
	ctx := context.Background()
	p := somePost()

	mock.ExpectExec(`UPDATE posts SET`).
		WithArgs(p.ID, p.Title, p.Content, p.ImageRef, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.Update(ctx, &p))

	mock.ExpectExec(`UPDATE posts SET`).
		WithArgs(p.ID, p.Title, p.Content, p.ImageRef, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.Update(ctx, &p), errs.ErrNotFound)
}

func TestPostRepo_DeleteWithBackref(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPostRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	creator := uuid.Must(uuid.NewV4())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM posts WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`UPDATE users SET post_ids = array_remove`).
		WithArgs(creator, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	require.NoError(t, r.DeleteWithBackref(ctx, id, creator))

	// missing post rolls back with not-found
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM posts WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()
	require.ErrorIs(t, r.DeleteWithBackref(ctx, id, creator), errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
