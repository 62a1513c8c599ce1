package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultCategories are the cuisines the home page rotates through.
var defaultCategories = []string{
	"Aneka Nasi",
	"Bakmie",
	"Bakso & Soto",
	"Cepat Saji",
	"Chinese",
	"Coffee",
	"Dessert",
	"Fast food",
	"Jajanan",
	"Japanese",
	"Korean",
	"Martabak",
	"Minuman",
	"Sate",
	"Seafood",
	"Western",
}

var batchSize int

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data into the Nomato database",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitLogger(); err != nil {
			return err
		}
		config.InitDB()
		return config.Migrate(models.All()...)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		config.CloseDB()
		config.SyncLogger()
	},
	SilenceUsage: true,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Insert the default categories (existing names are kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := seedCategories(config.Gorm, defaultCategories)
		if err != nil {
			return err
		}
		fmt.Printf("✅ %d new categories (%d total in the default set)\n", n, len(defaultCategories))
		return nil
	},
}

var restaurantsCmd = &cobra.Command{
	Use:   "restaurants <file.json>",
	Short: "Import restaurants from a JSON array, upserting by place_id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		restaurants, err := decodeRestaurants(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		n, err := importRestaurants(config.Gorm, restaurants, batchSize)
		if err != nil {
			return err
		}
		fmt.Printf("✅ imported %d restaurants\n", n)
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Create a password account interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, name, password := promptCredentials()
		user, err := createUser(config.Gorm, email, name, password)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println("✅ User created")
		fmt.Printf("ID:    %s\n", user.ID)
		fmt.Printf("Email: %s\n", user.Email)
		fmt.Printf("Name:  %s\n", user.Name)
		return nil
	},
}

func init() {
	_ = godotenv.Load()

	restaurantsCmd.Flags().IntVar(&batchSize, "batch", 200, "rows per insert statement")
	rootCmd.AddCommand(categoriesCmd, restaurantsCmd, userCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Categories
// ═══════════════════════════════════════════════════════════════════════════

// seedCategories inserts any missing names and returns how many were new.
func seedCategories(db *gorm.DB, names []string) (int64, error) {
	rows := make([]models.Category, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			rows = append(rows, models.Category{Name: name})
		}
	}
	if len(rows) == 0 {
		return 0, nil
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows)
	if res.Error != nil {
		return 0, fmt.Errorf("seed categories: %w", res.Error)
	}
	config.Log.Infow("📂 categories seeded", "inserted", res.RowsAffected)
	return res.RowsAffected, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Restaurants
// ═══════════════════════════════════════════════════════════════════════════

func decodeRestaurants(r io.Reader) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := json.NewDecoder(r).Decode(&restaurants); err != nil {
		return nil, fmt.Errorf("decode restaurants: %w", err)
	}

	valid := restaurants[:0]
	for _, rest := range restaurants {
		rest.PlaceID = strings.TrimSpace(rest.PlaceID)
		if rest.PlaceID == "" || strings.TrimSpace(rest.GofoodName) == "" {
			config.Log.Warnw("⚠️ skipping restaurant without place_id or name", "name", rest.GofoodName)
			continue
		}
		valid = append(valid, rest)
	}
	return valid, nil
}

// importRestaurants upserts by place_id, so re-running an import refreshes
// ratings and hours instead of failing.
func importRestaurants(db *gorm.DB, restaurants []models.Restaurant, batch int) (int, error) {
	if len(restaurants) == 0 {
		return 0, nil
	}
	if batch <= 0 {
		batch = 200
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "place_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"gofood_name",
				"address_components",
				"rating",
				"user_ratings_total",
				"categories",
				"price_level",
				"thumbnail",
				"opening_hours",
				"updated_at",
			}),
		}).CreateInBatches(&restaurants, batch).Error
	})
	if err != nil {
		return 0, fmt.Errorf("import restaurants: %w", err)
	}
	config.Log.Infow("🍜 restaurants imported", "count", len(restaurants))
	return len(restaurants), nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Users
// ═══════════════════════════════════════════════════════════════════════════

func createUser(db *gorm.DB, email, name, password string) (*models.User, error) {
	email = services.NormalizeEmail(email)

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("user with email %q already exists", email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:         email,
		Name:          name,
		Provider:      models.ProviderCredentials,
		PasswordHash:  &hash,
		EmailVerified: true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func promptCredentials() (email, name, password string) {
	fmt.Println("Enter account details:")
	fmt.Println()

	for email == "" {
		fmt.Print("Email: ")
		fmt.Scanln(&email)
		if email == "" {
			fmt.Println("❌ Email cannot be empty")
		}
	}

	for name == "" {
		fmt.Print("Name: ")
		fmt.Scanln(&name)
		if name == "" {
			fmt.Println("❌ Name cannot be empty")
		}
	}

	auth := services.GetAuthService()
	for {
		fmt.Printf("Password (min %d characters): ", services.MinPasswordLength)
		fmt.Scanln(&password)
		if !auth.ValidatePassword(password) {
			fmt.Printf("❌ Password must be at least %d characters\n", services.MinPasswordLength)
			continue
		}

		fmt.Print("Confirm Password: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm == password {
			break
		}
		fmt.Println("❌ Passwords do not match")
	}
	return email, name, password
}
