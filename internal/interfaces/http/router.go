package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/auth"
	appkardex "github.com/jhoicas/kardex-api/internal/application/kardex"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	KardexRepo repository.KardexRepository
	DeriveUC   *appkardex.DeriveUseCase
	Reports    appkardex.ReportGenerator
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Alta de usuarios solo para admin; sin multi-empresa no hay registro abierto.
	protected.Post("/auth/register", RequireRole("admin"), authHandler.Register)
	protected.Get("/auth/me", authHandler.Me)

	// Kardex (protegido)
	kardexGroup := protected.Group("/kardex")
	kardexHandler := NewKardexHandler(deps.KardexRepo, deps.DeriveUC, deps.Reports)
	kardexGroup.Get("/", kardexHandler.List)
	kardexGroup.Get("/variants/:id/report.pdf", kardexHandler.VariantReport)
}
