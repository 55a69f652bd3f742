package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/tdnghia/superhero-catalog/config"
	"github.com/tdnghia/superhero-catalog/http/controller"
	routes "github.com/tdnghia/superhero-catalog/http/route"
	infraPkg "github.com/tdnghia/superhero-catalog/infra"
	"github.com/tdnghia/superhero-catalog/repository"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	defer infra.Logger.Shutdown(context.Background())

	repo := repository.InitRepository(infra)
	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	addr := ":" + cfg.EnvConfig.Server.Port
	log.Println("HTTP Server started on", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
