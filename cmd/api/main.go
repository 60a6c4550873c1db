package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/geststock/internal/application/auth"
	"github.com/jhoicas/geststock/internal/application/state"
	"github.com/jhoicas/geststock/internal/application/transcode"
	"github.com/jhoicas/geststock/internal/infrastructure/localstore"
	httpRouter "github.com/jhoicas/geststock/internal/interfaces/http"
	"github.com/jhoicas/geststock/pkg/config"
	"github.com/jhoicas/geststock/pkg/logger"
)

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
		Str("storage", cfg.Storage.Path).
		Msg("iniciando aplicación")

	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		// Secret efímero por ejecución: suficiente para una aplicación
		// local de un solo usuario; los tokens mueren con el proceso.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.Fatal().Err(err).Msg("generar secret JWT")
		}
		jwtSecret = hex.EncodeToString(buf)
		log.Warn().Msg("JWT_SECRET no definido, usando secret efímero")
	}

	repo := localstore.NewStateRepository(cfg.Storage.Path, log)
	store, err := state.New(repo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar estado persistido")
	}

	gate := auth.NewGate(store)
	transcodeSvc := transcode.NewService(store)
	authUC := auth.NewUseCase(store, auth.JWTConfig{
		Secret:     jwtSecret,
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

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:     store,
		AuthUC:    authUC,
		Gate:      gate,
		Transcode: transcodeSvc,
		JWTSecret: jwtSecret,
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
