package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/geststock/internal/application/auth"
	"github.com/jhoicas/geststock/internal/application/state"
	"github.com/jhoicas/geststock/internal/application/transcode"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store     *state.Store
	AuthUC    *auth.UseCase
	Gate      *auth.Gate
	Transcode *transcode.Service
	JWTSecret string
}

// Router registra las rutas de la API. Solo el login es público; el resto va
// detrás del middleware de bearer token, y la administración de usuarios
// además detrás del gate de admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.Store)
	productHandler := NewProductHandler(deps.Store)
	userHandler := NewUserHandler(deps.Store)
	dashboardHandler := NewDashboardHandler(deps.Store)
	transferHandler := NewTransferHandler(deps.Store, deps.Transcode)

	// Auth (login público)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/session", authHandler.Session)

	// Productos y dashboard
	protected.Get("/products", productHandler.List)
	protected.Post("/products", productHandler.Create)
	protected.Put("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", productHandler.Delete)
	protected.Get("/dashboard", dashboardHandler.Summary)

	// Export / import
	protected.Get("/export/csv", transferHandler.ExportCSV)
	protected.Get("/export/json", transferHandler.ExportJSON)
	protected.Post("/import", transferHandler.Import)

	// Administración de usuarios (solo admin: el middleware corta antes
	// de llegar a los handlers)
	users := protected.Group("/users", RequireAdmin(deps.Gate))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Patch("/:id/status", userHandler.ToggleStatus)
	users.Delete("/:id", userHandler.Delete)
}
