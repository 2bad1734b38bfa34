package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/message-board/internal/auth"
	"github.com/spec-kit/message-board/internal/config"
	"github.com/spec-kit/message-board/internal/domain"
	"github.com/spec-kit/message-board/internal/repository"
)

// EnsureAccounts provisions the bundled test account, and an admin account
// when a password for it is configured. Idempotent across restarts.
func EnsureAccounts(ctx context.Context, users repository.UserRepository, cfg config.SeedConfig, bcryptCost int, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	if err := ensureAccount(ctx, users, cfg.Username, cfg.Password, domain.RoleUser, bcryptCost, logger); err != nil {
		return err
	}
	if cfg.AdminPassword != "" {
		if err := ensureAccount(ctx, users, cfg.AdminUsername, cfg.AdminPassword, domain.RoleAdmin, bcryptCost, logger); err != nil {
			return err
		}
	}
	return nil
}

func ensureAccount(ctx context.Context, users repository.UserRepository, username, password string, role domain.Role, bcryptCost int, logger *zap.Logger) error {
	if username == "" || password == "" {
		return nil
	}

	if _, err := users.GetByUsername(ctx, username); err == nil {
		logger.Debug("seed account already exists", zap.String("username", username))
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}

	user := &domain.User{Username: username, PasswordHash: hash, Role: role}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil
		}
		return err
	}

	logger.Info("seed account created",
		zap.String("username", username),
		zap.String("role", string(role)))
	return nil
}
