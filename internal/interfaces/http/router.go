package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/encartes-api/internal/application/analytics"
	"github.com/jhoicas/encartes-api/internal/application/auth"
	"github.com/jhoicas/encartes-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ClientUC       *usecase.ClientUseCase
	ProductUC      *usecase.ProductUseCase
	CollaboratorUC *usecase.CollaboratorUseCase
	FlyerUC        *usecase.FlyerUseCase
	TemplateUC     *usecase.TemplateUseCase
	FontUC         *usecase.FontUseCase
	UploadUC       *usecase.UploadUseCase
	GalleryUC      *usecase.GalleryUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	HealthUC       *usecase.HealthUseCase
	Users          UserResolver
	JWTSecret      string
}

// Router registra las rutas de la API bajo /v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/v1", BodyDispatcher())
	protect := AuthMiddleware(deps.JWTSecret, deps.Users)

	// Health (público)
	api.Get("/health", NewHealthHandler(deps.HealthUC).Check)

	// Auth: login, registro y recuperación son públicos; el perfil no.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/verify-email", authHandler.VerifyEmail)
	authGroup.Get("/profile", protect, authHandler.GetProfile)
	authGroup.Patch("/profile", protect, authHandler.UpdateProfile)
	authGroup.Post("/avatar", protect, authHandler.UploadAvatar)

	clients := api.Group("/clients", protect)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Patch("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Post("/:id/logo", clientHandler.UploadLogo)

	products := api.Group("/products", protect)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/image", productHandler.UploadImage)

	collaborators := api.Group("/collaborators", protect)
	collaboratorHandler := NewCollaboratorHandler(deps.CollaboratorUC)
	collaborators.Post("/", collaboratorHandler.Create)
	collaborators.Get("/", collaboratorHandler.List)
	collaborators.Get("/:id", collaboratorHandler.GetByID)
	collaborators.Patch("/:id", collaboratorHandler.Update)
	collaborators.Delete("/:id", collaboratorHandler.Delete)
	collaborators.Post("/:id/avatar", collaboratorHandler.UploadAvatar)

	flyers := api.Group("/flyers", protect)
	flyerHandler := NewFlyerHandler(deps.FlyerUC)
	flyers.Post("/", flyerHandler.Create)
	flyers.Get("/", flyerHandler.List)
	flyers.Get("/:id", flyerHandler.GetByID)
	flyers.Patch("/:id", flyerHandler.Update)
	flyers.Delete("/:id", flyerHandler.Delete)
	flyers.Post("/:id/duplicate", flyerHandler.Duplicate)
	flyers.Post("/:id/thumbnail", flyerHandler.UploadThumbnail)
	flyers.Get("/:id/export", flyerHandler.Export)

	templates := api.Group("/templates", protect)
	templateHandler := NewTemplateHandler(deps.TemplateUC)
	templates.Post("/", templateHandler.Create)
	templates.Get("/", templateHandler.List)
	templates.Get("/:id", templateHandler.GetByID)
	templates.Patch("/:id", templateHandler.Update)
	templates.Delete("/:id", templateHandler.Delete)
	templates.Post("/:id/thumbnail", templateHandler.UploadThumbnail)

	fonts := api.Group("/fonts", protect)
	fontHandler := NewFontHandler(deps.FontUC)
	fonts.Post("/", fontHandler.Create)
	fonts.Get("/", fontHandler.List)
	fonts.Delete("/:id", fontHandler.Delete)

	api.Post("/uploads", protect, NewUploadHandler(deps.UploadUC).Upload)

	gallery := api.Group("/gallery", protect)
	galleryHandler := NewGalleryHandler(deps.GalleryUC)
	gallery.Get("/", galleryHandler.ListImages)
	gallery.Post("/upload", galleryHandler.Upload)
	gallery.Post("/delete-many", galleryHandler.DeleteMany)
	gallery.Post("/move", galleryHandler.MoveImages)
	gallery.Get("/folders", galleryHandler.ListFolders)
	gallery.Post("/folders", galleryHandler.CreateFolder)
	gallery.Patch("/folders/:id", galleryHandler.UpdateFolder)
	gallery.Delete("/folders/:id", galleryHandler.DeleteFolder)
	gallery.Delete("/:id", galleryHandler.DeleteImage)

	dashboard := api.Group("/dashboard", protect)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/recent", dashboardHandler.GetRecent)
}
