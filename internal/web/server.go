package web

import (
	"context"
	"embed"
	"io"
	"io/fs"
	"log/slog"
	"net/http"

	"go-desk/internal/auth"
	"go-desk/internal/clients"
	"go-desk/internal/models"
	"go-desk/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Authenticator interface {
	Register(ctx context.Context, name, login, password string) (auth.Session, error)
	Login(ctx context.Context, login, password string) (auth.Session, error)
}

type ClientStore interface {
	Create(ctx context.Context, in clients.Input) (models.Client, error)
	Search(ctx context.Context, query string) ([]models.Client, error)
	Get(ctx context.Context, id uint) (models.Client, error)
	Update(ctx context.Context, id uint, in clients.Input) (models.Client, error)
	Delete(ctx context.Context, id uint) error
	SetStatus(ctx context.Context, id uint, status string) error
}

type Launcher interface {
	Launch(c models.Client)
}

// Deps bundles what the handlers need. AccessLog, when set, receives one
// line per request.
type Deps struct {
	Auth      Authenticator
	Clients   ClientStore
	Sessions  *session.Insecure
	Launcher  Launcher
	Logger    *slog.Logger
	AccessLog io.Writer
}

// NewApp builds the Fiber app with templates, middleware and routes.
func NewApp(deps Deps) (*fiber.App, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, err
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("value", func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	})

	app := fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if deps.AccessLog != nil {
		app.Use(logger.New(logger.Config{Output: deps.AccessLog}))
	}

	SetupRoutes(app, deps)
	return app, nil
}
