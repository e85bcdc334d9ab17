package server

import (
	"recurate/internal/models"
	"recurate/internal/observability"
	"recurate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// unifiedLoginError is shown for both unknown emails and wrong passwords so
// the form does not reveal which one it was.
const unifiedLoginError = "Invalid email or password."

// LoginForm renders the login page. A visitor who already holds a session is
// sent straight to their landing page.
func (s *Server) LoginForm(c *fiber.Ctx) error {
	if sess := s.currentSession(c); sess != nil {
		return c.Redirect(s.landingPath(sess.IsAdmin), fiber.StatusFound)
	}
	return renderPage(c, fiber.StatusOK, "login", "re*curate login", fiber.Map{})
}

// Login authenticates the posted credentials and opens a session. Admins land
// on /admin, everyone else on /main.
func (s *Server) Login(c *fiber.Ctx) error {
	in := service.LoginInput{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	user, sess, err := s.authService.Login(c.UserContext(), in)
	if err != nil {
		switch {
		case models.IsCode(err, models.CodeNotFound):
			observability.LoginAttempts.WithLabelValues("unknown_email").Inc()
			return renderPage(c, fiber.StatusUnauthorized, "login", "re*curate login", fiber.Map{
				"Error": unifiedLoginError,
			})
		case models.IsCode(err, models.CodeUnauthenticated):
			observability.LoginAttempts.WithLabelValues("wrong_password").Inc()
			return renderPage(c, fiber.StatusUnauthorized, "login", "re*curate login", fiber.Map{
				"Error": unifiedLoginError,
			})
		default:
			return s.renderError(c, err, "login", "re*curate login")
		}
	}

	observability.LoginAttempts.WithLabelValues("success").Inc()
	s.setSessionCookie(c, sess)
	return c.Redirect(s.landingPath(user.IsAdmin), fiber.StatusFound)
}

// RegisterForm renders the registration page.
func (s *Server) RegisterForm(c *fiber.Ctx) error {
	if sess := s.currentSession(c); sess != nil {
		return c.Redirect(s.landingPath(sess.IsAdmin), fiber.StatusFound)
	}
	return renderPage(c, fiber.StatusOK, "register", "register to re*curate", fiber.Map{})
}

// Register creates an account from the posted form, stores an optional
// profile photo, and logs the new user in.
func (s *Server) Register(c *fiber.Ctx) error {
	in := service.RegisterInput{
		FullName:        c.FormValue("full_name"),
		Email:           c.FormValue("email"),
		Phone:           c.FormValue("phone"),
		Password:        c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirm_password"),
	}

	if fh, err := c.FormFile("profile_photo"); err == nil && fh != nil {
		stored, err := s.uploads.SaveImage(fh)
		if err != nil {
			return s.renderError(c, err, "register", "register to re*curate")
		}
		in.ProfilePhoto = stored.Path
	}

	_, sess, err := s.authService.Register(c.UserContext(), in)
	if err != nil {
		return s.renderError(c, err, "register", "register to re*curate")
	}

	s.setSessionCookie(c, sess)
	return c.Redirect("/main", fiber.StatusFound)
}

// Logout destroys the current session and clears the cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	sess := s.currentSession(c)
	if sess != nil {
		if err := s.authService.Logout(c.UserContext(), sess.Token); err != nil {
			return s.renderError(c, err, "login", "re*curate login")
		}
	}
	s.clearSessionCookie(c)
	return c.Redirect("/login", fiber.StatusFound)
}

func (s *Server) landingPath(isAdmin bool) string {
	if isAdmin {
		return "/admin"
	}
	return "/main"
}
