package cmd

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"starter.GO/config"
)

var (
	migrateDown  bool
	migrateSteps int
	migrateDir   string
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply SQL migrations (down with --down)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAppConfig()
		if err != nil {
			return err
		}

		m, err := migrate.New("file://"+migrateDir, "mysql://"+cfg.MySQLDSN())
		if err != nil {
			return fmt.Errorf("migrate init: %w", err)
		}
		defer m.Close()

		switch {
		case migrateSteps != 0:
			err = m.Steps(migrateSteps)
		case migrateDown:
			err = m.Down()
		default:
			err = m.Up()
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No pending migrations.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println("Migrations applied.")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Revert all migrations")
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 0, "Apply N migrations (negative reverts)")
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "migrations", "Migrations directory")
	rootCmd.AddCommand(migrateCmd)
}
