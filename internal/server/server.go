// Package server exposes the workspace over HTTP: a rendered preview of the
// CV and a JSON API for the editor.
package server

import (
	"context"
	"errors"
	"net/url"

	"github.com/fadcv/fadcv/internal/completion"
	"github.com/fadcv/fadcv/internal/export"
	"github.com/fadcv/fadcv/internal/render"
	"github.com/fadcv/fadcv/internal/schema"
	"github.com/fadcv/fadcv/internal/sections"
	"github.com/fadcv/fadcv/internal/storage"
	"github.com/fadcv/fadcv/internal/workspace"
	"github.com/fadcv/fadcv/pkg/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

// Server is the preview server
type Server struct {
	ws       *workspace.Workspace
	exporter *export.Pipeline
	log      *logrus.Logger
	app      *fiber.App
}

// New builds the fiber app and its routes
func New(ws *workspace.Workspace, exporter *export.Pipeline, log *logrus.Logger) *Server {
	s := &Server{ws: ws, exporter: exporter, log: log}

	app := fiber.New(fiber.Config{
		AppName:               "FadCV",
		DisableStartupMessage: true,
		BodyLimit:             16 << 20, // photos travel as data URLs
		ErrorHandler:          s.handleError,
	})
	app.Use(logger.New(logger.Config{Output: log.WriterLevel(logrus.DebugLevel)}))
	s.routes(app)
	s.app = app
	return s
}

func (s *Server) routes(app *fiber.App) {
	app.Get("/", s.Preview)

	api := app.Group("/api")
	api.Get("/cv", s.GetDocument)
	api.Put("/cv", s.PutDocument)
	api.Delete("/cv", s.ResetDocument)
	api.Get("/progress", s.Progress)
	api.Get("/status", s.Status)
	api.Post("/sections/reorder", s.Reorder)
	api.Post("/sections/:id/toggle", s.Toggle)
	api.Post("/export", s.Export)
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown
func (s *Server) Listen(addr string) error {
	s.log.WithField("addr", addr).Info("preview server listening")
	return s.app.Listen(addr)
}

// Shutdown stops the server and flushes pending edits
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.app.ShutdownWithContext(ctx)
	s.ws.Flush()
	return err
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.log.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// Preview renders the CV with its current template
func (s *Server) Preview(c *fiber.Ctx) error {
	html, err := render.Render(s.ws.Document(), render.Options{})
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.SendString(html)
}

func (s *Server) GetDocument(c *fiber.Ctx) error {
	return c.JSON(s.ws.Document())
}

// PutDocument replaces the document with the request body. Missing keys
// take their defaults.
func (s *Server) PutDocument(c *fiber.Ctx) error {
	body := c.Body()
	if err := schema.Validate(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	doc, err := storage.Decode(body)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(s.ws.Replace(doc))
}

func (s *Server) ResetDocument(c *fiber.Ctx) error {
	return c.JSON(s.ws.Reset(c.UserContext()))
}

func (s *Server) Progress(c *fiber.Ctx) error {
	score := completion.Score(s.ws.Document())
	tier := completion.TierFor(score)
	return c.JSON(fiber.Map{"score": score, "label": tier.Label, "color": tier.Color})
}

func (s *Server) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"save":   s.ws.SaveStatus().String(),
		"export": s.exporter.State().String(),
	})
}

// Reorder applies a drag gesture to the section order
func (s *Server) Reorder(c *fiber.Ctx) error {
	var drop sections.Drop
	if err := c.BodyParser(&drop); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	doc, _ := s.ws.Update(func(d models.Document) (models.Document, error) {
		d.SectionOrder = sections.ApplyDrop(d.SectionOrder, drop)
		return d, nil
	})
	return c.JSON(doc.SectionOrder)
}

func (s *Server) Toggle(c *fiber.Ctx) error {
	id, err := url.PathUnescape(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid section id")
	}
	// unknown ids leave the order unchanged
	doc, _ := s.ws.Update(func(d models.Document) (models.Document, error) {
		d.SectionOrder = sections.ToggleVisibility(d.SectionOrder, id)
		return d, nil
	})
	return c.JSON(doc.SectionOrder)
}

// Export returns the CV as a PDF attachment
func (s *Server) Export(c *fiber.Ctx) error {
	var name string
	var pdf []byte
	_, err := s.exporter.Export(c.UserContext(), s.ws.Document(), export.DeliverFunc(
		func(_ context.Context, n string, data []byte) (string, error) {
			name, pdf = n, data
			return "download", nil
		}))
	switch {
	case errors.Is(err, export.ErrExportInProgress):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Attachment(name)
	c.Type("pdf")
	return c.Send(pdf)
}
