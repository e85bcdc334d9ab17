package server

import (
	"github.com/gofiber/fiber/v2"
)

// AdminDashboard renders the admin overview: every account plus post totals.
func (s *Server) AdminDashboard(c *fiber.Ctx) error {
	dash, err := s.adminService.GetDashboard(c.UserContext())
	if err != nil {
		return s.renderError(c, err, "main", "re*curate")
	}
	return renderPage(c, fiber.StatusOK, "admin", "re*curate admin", fiber.Map{
		"Dashboard": dash,
	})
}
