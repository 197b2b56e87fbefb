package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/shiftdesk/shiftdesk/internal/config"
	"github.com/shiftdesk/shiftdesk/internal/stubserver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load configuration:", err)
		os.Exit(1)
	}
	if err := cfg.ValidateServer(); err != nil {
		fmt.Println("Invalid configuration:", err)
		os.Exit(1)
	}

	srv, err := stubserver.New(cfg.Server.DatabasePath, cfg.Server.JWTSecret, cfg.Server.TokenExpiration)
	if err != nil {
		fmt.Println("Failed to open storage:", err)
		os.Exit(1)
	}
	defer srv.Close()

	if cfg.Server.Seed {
		if err := srv.Seed(context.Background()); err != nil {
			fmt.Println("Failed to seed demo data:", err)
			os.Exit(1)
		}
	}

	port := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("Stub backend running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, srv.Handler); err != nil {
		fmt.Println("Server error:", err)
	}
}
