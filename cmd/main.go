package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/TomiStyle/formaciones-api/config"
	"github.com/TomiStyle/formaciones-api/database"
	"github.com/TomiStyle/formaciones-api/routes"
)

func main() {
	cfg := config.Load()

	// fail fast when the database is not reachable
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
