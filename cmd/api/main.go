package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/synaptica/aurea-api/internal/application/auth"
	"github.com/synaptica/aurea-api/internal/application/billing"
	"github.com/synaptica/aurea-api/internal/application/fiscal"
	"github.com/synaptica/aurea-api/internal/infrastructure/facturapi"
	infrapdf "github.com/synaptica/aurea-api/internal/infrastructure/pdf"
	"github.com/synaptica/aurea-api/internal/infrastructure/postgres"
	httpRouter "github.com/synaptica/aurea-api/internal/interfaces/http"
	"github.com/synaptica/aurea-api/pkg/config"
	"github.com/synaptica/aurea-api/pkg/logger"
)

// defaultLogoPath logo que se adjunta a la Organization si el usuario no sube uno.
const defaultLogoPath = "./assets/logo-default.png"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	accountRepo := postgres.NewAccountRepository(pool)
	invoiceRepo := postgres.NewInvoiceRecordRepository(pool)

	pac := facturapi.New(cfg.PAC.BaseURL, cfg.PAC.APIKey)

	// Logo por defecto: su ausencia no es fatal, simplemente no se adjunta.
	defaultLogo, err := os.ReadFile(defaultLogoPath)
	if err != nil {
		log.Warn().Err(err).Str("path", defaultLogoPath).Msg("logo por defecto no disponible")
		defaultLogo = nil
	}

	linkOrgUC := fiscal.NewLinkOrganizationUseCase(accountRepo, pac, defaultLogo, log)

	quota := billing.QuotaEnforcer{
		TrialDays:         cfg.Billing.TrialDays,
		TrialInvoiceLimit: cfg.Billing.TrialInvoiceLimit,
	}
	resolver := billing.NewCustomerResolver(pac, log)
	stampUC := billing.NewStampInvoiceUseCase(accountRepo, invoiceRepo, resolver, pac, quota, log)
	queryUC := billing.NewInvoiceQueryUseCase(invoiceRepo, pac, log)
	customerUC := billing.NewCustomerUseCase(pac)
	catalogUC := billing.NewCatalogUseCase(pac)

	receiptGen := infrapdf.NewCFDIReceiptGenerator()
	receiptUC := billing.NewReceiptUseCase(invoiceRepo, accountRepo, receiptGen)

	authUC := auth.NewAuthUseCase(accountRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Aurea API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		LinkOrg:      linkOrgUC,
		StampInvoice: stampUC,
		InvoiceQuery: queryUC,
		Receipt:      receiptUC,
		CustomerUC:   customerUC,
		CatalogUC:    catalogUC,
		JWTSecret:    cfg.JWT.Secret,
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
