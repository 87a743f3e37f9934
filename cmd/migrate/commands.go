package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vfg2006/property-leads-api/infrastructure/database/schema"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/pkg/log"
	"github.com/vfg2006/property-leads-api/pkg/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

func upCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create or update every table and index",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cfg)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}

			return migrate(db)
		},
	}
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(schema.Models()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	for _, stmt := range schema.PostMigrate {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("post migrate statement failed: %w", err)
		}
	}

	log.L.Infof("migrated %d tables", len(schema.Models()))
	return nil
}

func statusCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which tables exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cfg)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tSTATUS")
			for _, model := range schema.Models() {
				stmt := &gorm.Statement{DB: db}
				if err := stmt.Parse(model); err != nil {
					return err
				}

				status := "missing"
				if db.Migrator().HasTable(model) {
					status = "present"
				}
				fmt.Fprintf(w, "%s\t%s\n", stmt.Schema.Table, status)
			}

			return w.Flush()
		},
	}
}

func seedAdminCmd(cfg *config.Config) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the first administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}

			email = domain.NormalizeEmail(email)
			if !validation.Email(email) {
				return fmt.Errorf("invalid email %q", email)
			}
			if len(strings.TrimSpace(password)) < 8 {
				return fmt.Errorf("password must have at least 8 characters")
			}

			db, err := openDB(cfg)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			admin := schema.AdminUser{
				Name:         name,
				Email:        email,
				PasswordHash: string(hash),
				RoleID:       domain.RoleAdmin,
				Active:       true,
			}

			result := db.Where(schema.AdminUser{Email: email}).FirstOrCreate(&admin)
			if result.Error != nil {
				return fmt.Errorf("failed to seed admin: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				log.L.Warnf("admin %s already exists, nothing to do", email)
				return nil
			}

			log.L.Infof("admin %s created with id %d", email, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password (defaults to $ADMIN_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
