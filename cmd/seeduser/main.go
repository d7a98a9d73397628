// Command seeduser creates an account of any role, typically the first administrator.
//
//	go run ./cmd/seeduser -username admin -password secret123 -role ADMIN
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/salon-service/internal/config"
	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/observability"
	"github.com/spec-kit/salon-service/internal/persistence"
	"github.com/spec-kit/salon-service/internal/repository"
	"github.com/spec-kit/salon-service/internal/service"
)

func main() {
	username := flag.String("username", "admin", "account username")
	password := flag.String("password", "", "account password (min 8 characters)")
	role := flag.String("role", string(domain.RoleAdmin), "CUSTOMER, STAFF or ADMIN")
	email := flag.String("email", "", "account email")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Postgres.DSN == "" {
		log.Fatal("POSTGRES_DSN is required to seed users")
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: repository.NewUserRepository(pg.PoolHandle()),
	})
	user, err := authService.Bootstrap(ctx, service.AccountInput{
		Username:  *username,
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
		Password:  *password,
		Role:      domain.Role(strings.ToUpper(*role)),
	})
	if err != nil {
		logger.Fatal("failed to create user", zap.Error(err))
	}
	fmt.Printf("created %s user %q (%s)\n", user.Role, user.Username, user.ID)
}
