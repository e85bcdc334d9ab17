package repository

import (
	"context"
	"regexp"
	"testing"

	"recurate/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	post := &models.Post{Title: "hello", Content: "first", UserID: 1}
	err := repo.Create(context.Background(), post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByIDAndOwner(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Owned post is returned", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "title", "content", "user_id"}).
			AddRow(7, "hello", "first", 1)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE id = $1 AND user_id = $2`)).
			WithArgs(7, 1, 1).
			WillReturnRows(rows)

		post, err := repo.GetByIDAndOwner(ctx, 7, 1)
		require.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, uint(1), post.UserID)
	})

	t.Run("Foreign post looks absent", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE id = $1 AND user_id = $2`)).
			WithArgs(7, 2, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		post, err := repo.GetByIDAndOwner(ctx, 7, 2)
		assert.NoError(t, err)
		assert.Nil(t, post)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UpdateContent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Owner update touches one row", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rows, err := repo.UpdateContent(ctx, 7, 1, "new title", "new body")
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	})

	t.Run("Non-owner update touches nothing", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		rows, err := repo.UpdateContent(ctx, 7, 2, "new title", "new body")
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Owner delete removes one row", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE id = $1 AND user_id = $2`)).
			WithArgs(7, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rows, err := repo.Delete(ctx, 7, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	})

	t.Run("Non-owner delete removes nothing", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE id = $1 AND user_id = $2`)).
			WithArgs(7, 2).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		rows, err := repo.Delete(ctx, 7, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListFeed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	postRows := sqlmock.NewRows([]string{"id", "title", "content", "user_id"}).
		AddRow(2, "second", "newer", 1).
		AddRow(1, "first", "older", 2)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" ORDER BY created_at DESC, id DESC`)).
		WillReturnRows(postRows)
	userRows := sqlmock.NewRows([]string{"id", "full_name"}).
		AddRow(1, "Alice").
		AddRow(2, "Bob")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2)`)).
		WillReturnRows(userRows)

	posts, err := repo.ListFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, uint(2), posts[0].ID)
	assert.Equal(t, "Alice", posts[0].User.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
