package main

import (
	"os"

	"github.com/benbeisheim/macanchess-backend/internal/config"
	"github.com/benbeisheim/macanchess-backend/internal/controller"
	"github.com/benbeisheim/macanchess-backend/internal/service"
	"github.com/benbeisheim/macanchess-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(logLevels[cfg.LogLevel])

	store, err := storage.NewStore(cfg.SaveDir)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		AppName: "macanchess",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	gameManager := service.NewGameManager(store, cfg.AIDelay)
	gameService := service.NewGameService(gameManager)

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)
	controller.RegisterRoutes(app, gameController, wsController, cfg.Origins())

	log.Infow("listening", "addr", cfg.Addr, "saves", cfg.SaveDir, "ai_delay", cfg.AIDelay)
	log.Fatal(app.Listen(cfg.Addr))
}
