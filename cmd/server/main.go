package main

import (
	"log"

	"github.com/shopcore/admin-service/internal/app"
	"github.com/shopcore/admin-service/internal/app/config"
)

func main() {
	cfg := config.MustLoad()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	application.Run()
}
