package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"homestock.GO/config"
	"homestock.GO/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply pending schema migrations",
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
		fmt.Println("Schema up to date.")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
