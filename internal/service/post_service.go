package service

import (
	"context"

	"recurate/internal/models"
	"recurate/internal/observability"
	"recurate/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID    uint
	Title     string
	Content   string
	ImagePath string
	VideoPath string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Title   string
	Content string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("content is required")
	}

	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		ImagePath: in.ImagePath,
		VideoPath: in.VideoPath,
		UserID:    in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	kind := "text"
	switch {
	case in.VideoPath != "":
		kind = "video"
	case in.ImagePath != "":
		kind = "image"
	}
	observability.PostsCreated.WithLabelValues(kind).Inc()
	return post, nil
}

// ListFeed returns every post newest-first for the main page.
func (s *PostService) ListFeed(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.ListFeed(ctx)
}

// GetPostForEdit loads the post for the edit form. A post that does not
// belong to userID is reported as forbidden whether or not it exists.
func (s *PostService) GetPostForEdit(ctx context.Context, postID, userID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByIDAndOwner(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewForbiddenError("you cannot edit this post")
	}
	return post, nil
}

// UpdatePost overwrites title and content of the caller's own post. Attached
// media is left as it was.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) error {
	if in.Content == "" {
		return models.NewValidationError("content is required")
	}
	rows, err := s.postRepo.UpdateContent(ctx, in.PostID, in.UserID, in.Title, in.Content)
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewForbiddenError("you cannot edit this post")
	}
	return nil
}

func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	rows, err := s.postRepo.Delete(ctx, postID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewForbiddenError("you cannot delete this post")
	}
	return nil
}

func (s *PostService) CountPosts(ctx context.Context) (int64, error) {
	return s.postRepo.Count(ctx)
}
