package main

import (
	"log"

	"github.com/shaneomac1337/komplexaci-api/internal/app"
	"github.com/shaneomac1337/komplexaci-api/internal/config"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("starting komplexaci-api with config: %s", cfg)

	fiberApp, shutdown := app.New(cfg)
	defer shutdown()

	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
