// Package main prints a signed access token for one of the built-in users,
// for local use against the API:
//
//	curl -H "Authorization: Bearer $(go run ./cmd/devtoken -user accountant)" localhost:8080/api/v1/documents
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"invacc/internal/domain/auth"
	"invacc/pkg/logger"
)

func main() {
	username := flag.String("user", "admin", "built-in username (admin, f_manager, accountant, storekeeper_1000, storekeeper_1001)")
	secret := flag.String("secret", envOr("JWT_SECRET", "your-secret-key-change-in-production"), "HMAC signing secret")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	list := flag.Bool("list", false, "list built-in users and exit")
	flag.Parse()

	users := auth.DefaultUsers()
	if *list {
		for _, u := range users {
			fmt.Printf("%-18s %-18s %s\n", u.Username, u.Role, u.Name)
		}
		return
	}

	log, err := logger.New(logger.Config{Level: "warn", Development: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	ctx := logger.WithLogger(context.Background(), log)

	cfg := auth.DefaultJWTConfig(*secret)
	cfg.AccessTokenTTL = *ttl
	svc := auth.NewService(auth.NewJWTService(cfg), users)

	pair, err := svc.IssueToken(ctx, *username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(pair.AccessToken)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
