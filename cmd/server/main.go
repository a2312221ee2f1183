package main

import (
	"log"
	"net/http"

	"ticklist/internal/config"
	"ticklist/internal/serverapp"
)

func main() {
	cfg, err := config.Load("ticklist.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app, err := serverapp.New(serverapp.Options{
		Config:        cfg,
		UseDiskStatic: cfg.DevStatic,
		Logger:        log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}
	defer app.Close()

	log.Printf("listening on http://localhost%s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, app.Handler))
}
