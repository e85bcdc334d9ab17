package repository

import (
	"context"
	"errors"

	"recurate/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts. Ownership-scoped
// reads and writes filter on id AND user_id in a single query, so existence
// and authorization are one observation.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByIDAndOwner(ctx context.Context, id, ownerID uint) (*models.Post, error)
	ListFeed(ctx context.Context) ([]*models.Post, error)
	UpdateContent(ctx context.Context, id, ownerID uint, title, content string) (int64, error)
	Delete(ctx context.Context, id, ownerID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByIDAndOwner returns (nil, nil) when no post matches both id and owner;
// callers must not distinguish "absent" from "someone else's".
func (r *postRepository) GetByIDAndOwner(ctx context.Context, id, ownerID uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// ListFeed returns every post newest-first with its owner preloaded for
// rendering. Pagination is deliberately absent.
func (r *postRepository) ListFeed(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// UpdateContent overwrites title and content for the post owned by ownerID.
// Media paths are untouched. Returns the number of rows updated.
func (r *postRepository) UpdateContent(ctx context.Context, id, ownerID uint, title, content string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(map[string]interface{}{"title": title, "content": content})
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

// Delete removes the post owned by ownerID. Returns the number of rows deleted.
func (r *postRepository) Delete(ctx context.Context, id, ownerID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Post{})
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
