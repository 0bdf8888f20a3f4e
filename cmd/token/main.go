// Command token prints a signed bearer token for local development.
// Accounts live in the user service; this only signs claims with the
// configured secret so the catalog can be exercised by hand.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/tair/plant-catalog/internal/config"
	"github.com/tair/plant-catalog/pkg/auth"
)

func main() {
	userID := flag.Uint("user", 1, "user id to put in the token")
	username := flag.String("username", "dev", "username claim")
	role := flag.String("role", "user", "role claim")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to mint development tokens in production")
	}

	auth.Configure(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	token, err := auth.GenerateToken(*userID, *username, *role)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Println(token)
}
