package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"whiterabbit/internal/auth"
	"whiterabbit/internal/config"
	"whiterabbit/internal/db"
	"whiterabbit/internal/logging"
	"whiterabbit/internal/model"
	"whiterabbit/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New("info", "json")
		bootLogger.Fatal().Err(err).Msg("load configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Fatal().Msg("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to database")
	}
	if err := db.Migrate(gormDB, false); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		logger.Fatal().Err(err).Msg("password hasher")
	}

	created, err := seedAdmin(context.Background(), repository.NewUserRepository(gormDB), hasher, cfg.AdminEmail, cfg.AdminPassword, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed admin")
	}
	logger.Info().Str("email", cfg.AdminEmail).Bool("created", created).Msg("seed completed")
}

// seedAdmin creates an activated admin account, or promotes and activates
// the existing account with that e-mail and resets its password.
func seedAdmin(ctx context.Context, repo repository.UserRepository, hasher auth.PasswordHasher, email, password string, logger *zerolog.Logger) (created bool, err error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return false, err
	}

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("error checking account %s: %w", email, err)
	}

	if existing != nil {
		existing.PasswordHash = hash
		existing.Roles = appendRole(existing.Roles, model.RoleAdmin)
		existing.ClearActivation()
		if err := repo.Update(ctx, existing); err != nil {
			return false, fmt.Errorf("error updating account %s: %w", email, err)
		}
		logger.Info().Uint("user_id", existing.ID).Msg("existing account promoted to admin")
		return false, nil
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{model.RoleUser, model.RoleAdmin},
		Firstname:    "Admin",
	}
	if err := repo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("error creating account %s: %w", email, err)
	}
	return true, nil
}

func appendRole(roles []string, role string) []string {
	for _, r := range roles {
		if r == role {
			return roles
		}
	}
	return append(roles, role)
}
