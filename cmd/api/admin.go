package main

import (
	"errors"
	"fmt"

	"Mala_Admin/internal/config"
	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/repository/database"
	"Mala_Admin/internal/service"

	"github.com/spf13/cobra"
)

func createAdminCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				return errors.New("no config found in context")
			}
			logger := commonRun(cfg)
			db, err := openDB(cfg, logger)
			if err != nil {
				return err
			}
			defer database.Close(db)

			tokens, err := pkg.NewTokenAuthority([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
			if err != nil {
				return err
			}
			svc := service.New(service.Deps{DB: db, Tokens: tokens, Logger: logger})
			admin, err := svc.Auth.CreateAdmin(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (id %d)\n", admin.Email, admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password (at least 8 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				return errors.New("no config found in context")
			}
			logger := commonRun(cfg)
			db, err := database.Open(cfg.Database, logger)
			if err != nil {
				return err
			}
			defer database.Close(db)
			if err := database.Migrate(db); err != nil {
				return err
			}
			logger.Info("schema up to date")
			return nil
		},
	}
}
