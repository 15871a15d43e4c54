package server

import (
	"log"

	"ai-poemreview-be/internal/bootstrap"
	"ai-poemreview-be/internal/config"
	"ai-poemreview-be/internal/pkg/serverutils"
	"ai-poemreview-be/pkg/audiostore"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		// Audio uploads go up to 25MB, leave headroom for the multipart envelope
		BodyLimit: audiostore.MaxAudioSize + 1024*1024,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Static: stored voice recordings
	app.Static("/api/audio", cfg.Uploads.AudioDir)

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.PoemController.RegisterRoutes(api)
	c.GuideController.RegisterRoutes(api)
	c.FeedbackController.RegisterRoutes(api)
	c.VoiceController.RegisterRoutes(api)
	c.RevisionController.RegisterRoutes(api)
}
