package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"recurate/internal/session"

	"github.com/gofiber/fiber/v2"
)

//go:embed views/*.html
var viewsFS embed.FS

// pageData is the envelope every template renders with. Viewer is nil for
// anonymous visitors.
type pageData struct {
	Title  string
	Viewer *session.Session
	Data   fiber.Map
}

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"login", "register", "main", "edit_post", "admin", "dialog"} {
		pages[name] = template.Must(template.ParseFS(viewsFS,
			"views/base.html", "views/"+name+".html"))
	}
}

// renderPage executes a page template into the response. Template errors are
// surfaced before any bytes are written so a broken view never emits a torn
// page.
func renderPage(c *fiber.Ctx, status int, page, title string, data fiber.Map) error {
	tmpl, ok := pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	viewer, _ := c.Locals(localsSession).(*session.Session)
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", pageData{
		Title:  title,
		Viewer: viewer,
		Data:   data,
	}); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
