// Command resetpw resets every provider-linked user's password to that
// user's phone number. One-time recovery tool: no flags, no confirmation,
// no rollback. Records that fail are reported and skipped.
package main

import (
	"context"
	"fmt"
	"log"

	"servicefinder/internal/config"
	"servicefinder/internal/repository"
	"servicefinder/internal/utils"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	userRepo := repository.NewUserRepository(dbPool)
	providerRepo := repository.NewProviderRepository(dbPool)

	ctx := context.Background()

	fmt.Println("Resetting all provider passwords to their phone numbers...")

	providers, err := providerRepo.FindAllAdmin(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to load providers: %v", err)
	}

	reset := 0
	failed := 0
	for _, p := range providers {
		user, err := userRepo.FindByID(ctx, p.UserID)
		if err != nil || user == nil {
			fmt.Printf("FAILED provider %d: user %d not found: %v\n", p.ID, p.UserID, err)
			failed++
			continue
		}

		hash, err := utils.HashPassword(user.Phone)
		if err != nil {
			fmt.Printf("FAILED provider %d (%s): hash error: %v\n", p.ID, user.Phone, err)
			failed++
			continue
		}

		if err := userRepo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			fmt.Printf("FAILED provider %d (%s): %v\n", p.ID, user.Phone, err)
			failed++
			continue
		}

		fmt.Printf("Reset password for %s (user %d, phone %s)\n", p.BusinessName, user.ID, user.Phone)
		reset++
	}

	fmt.Printf("Done. %d passwords reset, %d failed, %d providers total.\n", reset, failed, len(providers))
}
