package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/afero"

	appanalytics "github.com/jhoicas/encartes-api/internal/application/analytics"
	"github.com/jhoicas/encartes-api/internal/application/auth"
	"github.com/jhoicas/encartes-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/encartes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/encartes-api/internal/infrastructure/mail"
	"github.com/jhoicas/encartes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/encartes-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/encartes-api/internal/interfaces/http"
	"github.com/jhoicas/encartes-api/pkg/config"
	"github.com/jhoicas/encartes-api/pkg/logger"
	"github.com/jhoicas/encartes-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}

	log := logger.New(logger.Config{
		Env:        cfg.App.Env,
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.Migrate.Auto {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}

	m := metrics.NewManager()

	store, err := storage.NewLocalStorage(afero.NewOsFs(), cfg.Storage.UploadDest, cfg.Storage.CDNURL,
		storage.WithObserver(m.RecordUpload),
		storage.WithLogger(log.Named("storage")),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de archivos")
	}
	mailer, err := mail.NewSMTPMailer(cfg.Mail, cfg.URLs, m.RecordEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("plantillas de email")
	}

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	flyerRepo := postgres.NewFlyerRepository(pool)
	templateRepo := postgres.NewTemplateRepository(pool)
	fontRepo := postgres.NewFontRepository(pool)
	galleryRepo := postgres.NewGalleryRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, mailer, store, auth.JWTConfig{
		Secret:           cfg.JWT.Secret,
		ExpiresIn:        cfg.JWT.ExpiresIn,
		RefreshSecret:    cfg.JWT.RefreshSecret,
		RefreshExpiresIn: cfg.JWT.RefreshExpiresIn,
		Issuer:           cfg.JWT.Issuer,
	}, log.Named("auth"))
	clientUC := usecase.NewClientUseCase(clientRepo, txRunner, store)
	productUC := usecase.NewProductUseCase(productRepo, store)
	collaboratorUC := usecase.NewCollaboratorUseCase(userRepo, store)
	flyerUC := usecase.NewFlyerUseCase(flyerRepo, store, infrapdf.NewFlyerExporter(), cfg.URLs.FrontendURL, m)
	templateUC := usecase.NewTemplateUseCase(templateRepo, store)
	fontUC := usecase.NewFontUseCase(fontRepo, store)
	uploadUC := usecase.NewUploadUseCase(store)
	galleryUC := usecase.NewGalleryUseCase(galleryRepo, txRunner, store)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, flyerRepo, templateRepo)
	healthUC := usecase.NewHealthUseCase(pool, cfg.App.Env)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler(cfg.App.IsProduction(), log.Named("http")),
		BodyLimit:    cfg.HTTP.BodyLimit(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(httpRouter.MetricsMiddleware(m))
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	app.Static("/uploads", cfg.Storage.UploadDest)

	// Swagger UI: http://localhost:<port>/api
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "api",
		Title:    "Encartes API",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ClientUC:       clientUC,
		ProductUC:      productUC,
		CollaboratorUC: collaboratorUC,
		FlyerUC:        flyerUC,
		TemplateUC:     templateUC,
		FontUC:         fontUC,
		UploadUC:       uploadUC,
		GalleryUC:      galleryUC,
		DashboardUC:    dashboardUC,
		HealthUC:       healthUC,
		Users:          userRepo,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
