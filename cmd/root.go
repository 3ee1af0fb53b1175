package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "homestock",
	Short: "Household stock tracker CLI",
}

// Execute runs the CLI after applying registered commands.
func Execute() {
	figure.NewFigure("homestock", "", true).Print()
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
