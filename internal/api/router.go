package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/quicknotes/notes-api/docs"
	"github.com/quicknotes/notes-api/internal/api/handler"
)

// Deps carries everything the router needs. Services are constructed once at
// process start and injected here; the router owns no state of its own.
type Deps struct {
	AuthHandler *handler.AuthHandler
	NoteHandler *handler.NoteHandler
	Mongo       *mongo.Database
	Redis       *redis.Client // nil when the note-list cache is disabled
	CORSOrigins []string
	UploadMaxMB int64
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType},
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dM", deps.UploadMaxMB)))
	e.Use(echoprometheus.NewMiddleware("notes"))

	// --- Auth routes ---
	e.POST("/auth/register", deps.AuthHandler.Register)
	e.POST("/auth/login", deps.AuthHandler.Login)

	// --- Note routes ---
	// Echo requires one param name per path position, so the list route's
	// user id travels as :id like the note id routes below it.
	e.GET("/notes/:id", deps.NoteHandler.List)
	e.POST("/notes", deps.NoteHandler.Create)
	e.PUT("/notes/:id", deps.NoteHandler.Update)
	e.DELETE("/notes/:id", deps.NoteHandler.Delete)
	e.GET("/notes/:id/image", deps.NoteHandler.GetImage)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
