// Command devtoken prints a signed access token for local testing of the
// subscription and admin endpoints.
//
//	go run ./cmd/devtoken -user user-1 -role admin
package main

import (
	"flag"
	"fmt"
	"os"

	"learning-platform-service/internal/config"
	"learning-platform-service/internal/infra/auth"
)

func main() {
	userID := flag.String("user", "user-1", "user id placed in the sub claim")
	role := flag.String("role", "student", "role claim (admin unlocks /api/v1/admin)")
	configPath := flag.String("config", "", "config file path (defaults to ./config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	token, err := auth.NewJWTProvider(auth.Config{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		TokenTTL: cfg.Auth.TokenTTL,
	}).Issue(*userID, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issuing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
