// Command seed loads reference data and operator accounts into the database.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"lexmarket/config"
	"lexmarket/database"
	accountRepo "lexmarket/database/repository/account"
	taxonomyRepo "lexmarket/database/repository/taxonomy"
	"lexmarket/models"
	"lexmarket/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seed",
		Short: "Seed lexmarket reference data and admin accounts",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()
		},
		SilenceUsage: true,
	}
	root.AddCommand(newTaxonomyCmd(), newAdminCmd())
	return root
}

func newTaxonomyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "taxonomy",
		Short: "Upsert the starter catalogue of locations, practice areas and languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			database.InitDB()
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			repo := taxonomyRepo.NewMongoTaxonomyRepo(database.DB())
			items := starterCatalogue()
			if err := repo.UpsertMany(ctx, items); err != nil {
				return fmt.Errorf("seed taxonomy: %w", err)
			}
			utils.GetLogger().Info("Taxonomy seeded", zap.Int("items", len(items)))
			return nil
		},
	}
}

func newAdminCmd() *cobra.Command {
	var email, password, firstName, lastName string
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create an admin account for profile reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := newAdminAccount(email, password, firstName, lastName, time.Now())
			if err != nil {
				return err
			}

			database.InitDB()
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if err := accountRepo.NewMongoAccountRepo(database.DB()).Create(ctx, acc); err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			utils.GetLogger().Info("Admin account created", zap.String("accountID", acc.ID), zap.String("email", acc.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&password, "password", "", "admin password, at least 8 characters (required)")
	cmd.Flags().StringVar(&firstName, "first-name", "Admin", "admin first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "admin last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAdminAccount(email, password, firstName, lastName string, now time.Time) (*models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("seed admin: %q is not an email address", email)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("seed admin: password must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("seed admin: failed to hash password: %w", err)
	}
	return &models.Account{
		ID:           uuid.New().String(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
