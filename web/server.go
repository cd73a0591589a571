//Package web serves the structure-to-scene conversion over HTTP.
package web

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	cryst "github.com/crystkit/gocryst"
	"github.com/crystkit/gocryst/clog"
	"github.com/crystkit/gocryst/scene"
)

type Server struct {
	app    *fiber.App
	logger *clog.Logger
}

func NewServer(logger *clog.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Authorization, Content-Type",
	}))

	s := &Server{app: app, logger: logger}
	s.setupRoutes()
	return s
}

func (s *Server) Run(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully closes the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app, for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.healthCheck)
	s.app.Post("/api/scene/cif", s.cifToScene)
	s.app.Post("/api/scene/file", s.fileToScene)
}

func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

//fail maps a conversion error to its HTTP status and the {"error": ...}
//body shape.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	status := cryst.ErrorStatus(err)
	detail := err.Error()
	var ce *cryst.Error
	if e, ok := err.(*cryst.Error); ok {
		ce = e
		detail = ce.Message
	}
	if status >= 500 {
		s.logger.Errorw("Scene conversion failed", "status", status, "error", err)
	} else {
		s.logger.Infow("Rejected scene request", "status", status, "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": detail})
}

// cifToScene converts CIF content sent as the request body.
func (s *Server) cifToScene(c *fiber.Ctx) error {
	content := string(c.Body())
	if strings.TrimSpace(content) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Empty request body."})
	}
	sc, err := scene.FromCIFString(content, c.Query("radius_strategy"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(sc)
}

// fileToScene converts an uploaded structure file (field "file"); the
// format is detected from the uploaded file name.
func (s *Server) fileToScene(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing 'file' upload."})
	}
	dir, err := os.MkdirTemp("", "gocryst")
	if err != nil {
		s.logger.Errorw("Couldn't create upload directory", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store upload."})
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, filepath.Base(fh.Filename))
	if err := c.SaveFile(fh, path); err != nil {
		s.logger.Errorw("Couldn't store upload", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store upload."})
	}
	sc, err := scene.FromFile(path, c.Query("radius_strategy"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(sc)
}
