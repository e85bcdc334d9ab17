package server

import (
	"errors"
	"time"

	"recurate/internal/middleware"
	"recurate/internal/models"
	"recurate/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the session middleware.
const (
	localsSession = "session"
	localsUserID  = "userID"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts the :id route parameter as a positive uint. On failure it
// writes a 400 response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// SessionMiddleware resolves the session cookie on every request. A valid
// session refreshes its idle clock and lands in locals; a tampered, expired
// or unknown cookie is cleared and the request continues anonymous. Route
// guards decide what anonymity means per endpoint.
func (s *Server) SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		signed := c.Cookies(session.CookieName)
		if signed == "" {
			return c.Next()
		}

		token, ok := s.sessions.Verify(signed)
		if !ok {
			s.clearSessionCookie(c)
			return c.Next()
		}

		sess, err := s.sessions.Get(c.UserContext(), token)
		if err != nil {
			middleware.Logger.ErrorContext(c.UserContext(), "session lookup failed", "error", err)
			s.clearSessionCookie(c)
			return c.Next()
		}
		if sess == nil {
			s.clearSessionCookie(c)
			return c.Next()
		}

		if err := s.sessions.Touch(c.UserContext(), sess); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "session touch failed", "error", err)
		}

		c.Locals(localsSession, sess)
		c.Locals(localsUserID, sess.UserID)
		return c.Next()
	}
}

// AuthRequired redirects anonymous requests to the login page. Mutating
// endpoints share the same behavior as page loads; the original request is
// not replayed after login.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals(localsSession).(*session.Session); !ok {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

// AdminRequired rejects non-admin sessions with 403. Must run after
// AuthRequired.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := s.currentSession(c)
		if sess == nil || !sess.IsAdmin {
			return s.renderDialog(c, fiber.StatusForbidden, "Access denied.", "/main")
		}
		return c.Next()
	}
}

func (s *Server) currentSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(localsSession).(*session.Session)
	return sess
}

func (s *Server) setSessionCookie(c *fiber.Ctx, sess *session.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    s.sessions.Sign(sess.Token),
		Path:     "/",
		MaxAge:   int(s.sessions.IdleTimeout() / time.Second),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
}

// renderDialog shows a standalone message page, used for access-denied and
// similar dead ends.
func (s *Server) renderDialog(c *fiber.Ctx, status int, message, backLink string) error {
	return renderPage(c, status, "dialog", "re*curate", fiber.Map{
		"Message":  message,
		"BackLink": backLink,
	})
}

// renderError maps a service error onto the right page. Validation problems
// re-render the given form with the reason; forbidden becomes the dialog
// page; anything internal logs the detail and shows a generic message.
func (s *Server) renderError(c *fiber.Ctx, err error, formPage, formTitle string) error {
	status := models.StatusForError(err)

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code == models.CodeInternal {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed", "error", err)
		return s.renderDialog(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.", "/main")
	}

	switch appErr.Code {
	case models.CodeForbidden:
		return s.renderDialog(c, status, appErr.Message, "/main")
	default:
		return renderPage(c, status, formPage, formTitle, fiber.Map{
			"Error": appErr.Message,
		})
	}
}
