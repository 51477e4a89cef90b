// Command createadmin creates an admin account, or promotes an existing
// account and resets its password.
//
//	createadmin <username> <email> <password>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"newsroom/internal/config"
	"newsroom/internal/db"
	"newsroom/internal/forms"
	"newsroom/internal/logger"
	"newsroom/internal/models"
	"newsroom/internal/repository"
	"newsroom/internal/utils"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: createadmin <username> <email> <password>")
		os.Exit(2)
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	conn, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}

	user, created, err := createAdmin(ctx, conn, os.Args[1], os.Args[2], os.Args[3])
	if err != nil {
		log.Fatal().Err(err).Msg("create admin")
	}
	if created {
		log.Info().Str("username", user.Username).Msg("admin created")
	} else {
		log.Info().Str("username", user.Username).Msg("existing account promoted to admin")
	}
}

// createAdmin validates the input like the registration form does, then
// creates the account or promotes and updates an existing one.
func createAdmin(ctx context.Context, conn *gorm.DB, username, email, password string) (*models.User, bool, error) {
	form := forms.RegisterForm{Username: username, Email: email, Password1: password, Password2: password}
	form.Normalize()
	if errs := forms.Check(&form); len(errs) > 0 {
		return nil, false, errs
	}

	hash, err := utils.HashPassword(form.Password1)
	if err != nil {
		return nil, false, err
	}

	var (
		user    *models.User
		created bool
	)
	err = conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)

		existing, err := users.GetByUsername(ctx, form.Username)
		switch {
		case errors.Is(err, models.ErrNotFound):
			user = &models.User{Username: form.Username, Email: form.Email, Password: hash, Role: models.RoleAdmin}
			created = true
			return users.Create(ctx, user)
		case err != nil:
			return err
		}

		user = existing
		if err := tx.Model(user).Updates(map[string]any{"email": form.Email, "password": hash}).Error; err != nil {
			return err
		}
		return users.SetRole(ctx, user.ID, models.RoleAdmin)
	})
	if err != nil {
		return nil, false, err
	}
	user.Role = models.RoleAdmin
	return user, created, nil
}
