package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"homestock.GO/config"
	"homestock.GO/migrate"
)

var seedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Insert the default category set if none exist",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		if err := migrate.Up(db); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			return
		}
		if err := migrate.Seed(db); err != nil {
			fmt.Printf("Seeding failed: %v\n", err)
			return
		}
		fmt.Println("Seed complete.")
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
