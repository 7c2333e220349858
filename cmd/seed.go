package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"starter.GO/config"
	entity "starter.GO/model/entity"
	userRepo "starter.GO/model/repository/user"
)

var seedFile string

// defaultSeeds are applied when no --file is given. Loosely-typed maps so a
// JSON seed file and the built-ins go through the same mapstructure decode.
var defaultSeeds = []map[string]interface{}{
	{"name": "Admin", "email": "admin@example.com", "is_active": 1},
	{"name": "Demo User", "email": "demo@example.com", "is_active": 1},
}

var seedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Insert seed users (idempotent by email)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAppConfig()
		if err != nil {
			return err
		}
		db, err := config.NewDB(cfg)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}

		seeds := defaultSeeds
		if seedFile != "" {
			b, err := os.ReadFile(seedFile)
			if err != nil {
				return err
			}
			seeds = nil
			if err := json.Unmarshal(b, &seeds); err != nil {
				return fmt.Errorf("parse seed file: %w", err)
			}
		}

		created, err := SeedUsers(db, seeds)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d users (%d skipped).\n", created, len(seeds)-created)
		return nil
	},
}

// SeedUsers decodes each seed map into a User and inserts it unless a user
// with the same email already exists. Returns the number created.
func SeedUsers(db *gorm.DB, seeds []map[string]interface{}) (int, error) {
	repo := userRepo.NewUserRepository(db)
	created := 0
	for _, raw := range seeds {
		var u entity.User
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &u,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return created, err
		}
		if err := dec.Decode(raw); err != nil {
			return created, fmt.Errorf("decode seed %v: %w", raw["email"], err)
		}
		if u.Email == "" {
			return created, fmt.Errorf("seed entry without email: %v", raw)
		}
		if _, err := repo.FindByEmail(u.Email); err == nil {
			continue // already seeded
		}
		if err := repo.Create(&u); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "JSON file with an array of user objects")
	rootCmd.AddCommand(seedCmd)
}
