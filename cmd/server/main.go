package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/pickupkart/internal/config"
	"github.com/example/pickupkart/internal/database"
	"github.com/example/pickupkart/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	if err := database.EnsureRoles(db); err != nil {
		log.Fatalf("failed to ensure roles: %v", err)
	}

	if cfg.SeedDemoData {
		if err := database.SeedDemoData(db); err != nil {
			log.Printf("demo data seeding failed: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName: "PickupKart Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
