package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	userDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users and assets for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			fmt.Println("Clearing existing data...")
			for _, table := range []string{"asset_requests", "assets", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
		}

		seedUser(db, "admin@company.com", "admin123", userDatamodel.RoleAdmin, cfg.Security.BCryptCost)
		seedUser(db, "user@company.com", "user123", userDatamodel.RoleUser, cfg.Security.BCryptCost)

		sampleAssets := []struct {
			Name         string
			Category     string
			SerialNumber string
			PurchaseDate time.Time
		}{
			{"MacBook Pro 16-inch", "Laptop", "MBP001", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)},
			{"Dell XPS 13", "Laptop", "DXP002", time.Date(2023, 2, 20, 0, 0, 0, 0, time.UTC)},
			{"iPhone 14 Pro", "Phone", "IPH003", time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC)},
			{"Samsung Galaxy S23", "Phone", "SGS004", time.Date(2023, 4, 5, 0, 0, 0, 0, time.UTC)},
			{"LG 27-inch Monitor", "Monitor", "LGM005", time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC)},
			{"Apple iPad Pro", "Tablet", "IPD006", time.Date(2023, 6, 8, 0, 0, 0, 0, time.UTC)},
		}

		seeded := 0
		for _, a := range sampleAssets {
			var count int64
			if err := db.Model(&assetDatamodel.Asset{}).
				Where("serial_number = ?", a.SerialNumber).
				Count(&count).Error; err != nil {
				log.Fatalf("failed to check asset %s: %v", a.SerialNumber, err)
			}
			if count > 0 {
				continue
			}

			now := time.Now()
			row := &assetDatamodel.Asset{
				Name:         a.Name,
				Category:     a.Category,
				SerialNumber: a.SerialNumber,
				PurchaseDate: a.PurchaseDate,
				Status:       assetDatamodel.StatusAvailable,
				CreatedAt:    now,
				UpdatedAt:    &now,
			}
			if err := db.Create(row).Error; err != nil {
				log.Fatalf("failed to seed asset %s: %v", a.SerialNumber, err)
			}
			seeded++
			fmt.Printf("Seeded asset: %s (%s)\n", a.Name, a.SerialNumber)
		}

		fmt.Printf("Seeding complete: %d new assets\n", seeded)
	},
}

func seedUser(db *gorm.DB, email, password, role string, bcryptCost int) {
	var count int64
	if err := db.Model(&userDatamodel.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		log.Fatalf("failed to check user %s: %v", email, err)
	}
	if count > 0 {
		fmt.Printf("User %s already exists, skipping\n", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password for %s: %v", email, err)
	}

	row := &userDatamodel.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := db.Create(row).Error; err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	fmt.Printf("Seeded %s user: %s\n", role, email)
}
