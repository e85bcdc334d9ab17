package server

import (
	"errors"

	"recurate/internal/service"
	"recurate/internal/upload"

	"github.com/gofiber/fiber/v2"
)

// Feed renders the main page: newest posts first, each with its author.
func (s *Server) Feed(c *fiber.Ctx) error {
	posts, err := s.postService.ListFeed(c.UserContext())
	if err != nil {
		return s.renderError(c, err, "main", "re*curate")
	}
	return renderPage(c, fiber.StatusOK, "main", "re*curate", fiber.Map{
		"Posts": posts,
	})
}

// CreatePost stores a new post for the session user. An attached file is
// sniffed and lands in ImagePath or VideoPath depending on what it actually
// is.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	sess := s.currentSession(c)

	in := service.CreatePostInput{
		UserID:  sess.UserID,
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
	}

	if fh, err := c.FormFile("media"); err == nil && fh != nil {
		stored, err := s.uploads.Save(fh)
		if err != nil {
			return s.renderError(c, err, "main", "re*curate")
		}
		switch stored.Kind {
		case upload.KindVideo:
			in.VideoPath = stored.Path
		default:
			in.ImagePath = stored.Path
		}
	}

	if _, err := s.postService.CreatePost(c.UserContext(), in); err != nil {
		return s.renderError(c, err, "main", "re*curate")
	}
	return c.Redirect("/main", fiber.StatusFound)
}

// EditPostForm renders the edit form for one of the session user's own posts.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return err
	}
	sess := s.currentSession(c)

	post, err := s.postService.GetPostForEdit(c.UserContext(), id, sess.UserID)
	if err != nil {
		return s.renderError(c, err, "main", "re*curate")
	}
	return renderPage(c, fiber.StatusOK, "edit_post", "edit post", fiber.Map{
		"Post": post,
	})
}

// UpdatePost overwrites title and content of the session user's own post.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return err
	}
	sess := s.currentSession(c)

	in := service.UpdatePostInput{
		UserID:  sess.UserID,
		PostID:  id,
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
	}
	if err := s.postService.UpdatePost(c.UserContext(), in); err != nil {
		return s.renderError(c, err, "main", "re*curate")
	}
	return c.Redirect("/main", fiber.StatusFound)
}

// DeletePost removes the session user's own post.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return err
	}
	sess := s.currentSession(c)

	if err := s.postService.DeletePost(c.UserContext(), id, sess.UserID); err != nil {
		return s.renderError(c, err, "main", "re*curate")
	}
	return c.Redirect("/main", fiber.StatusFound)
}
