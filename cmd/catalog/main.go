// Command catalog maintains the curated exercise and nutrition content.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Maintain the cycle-companion content catalog",
	Long: `Seed and inspect the exercise videos, food videos and suggested foods
shown to every user.

Available subcommands:
  seed - Upsert catalog rows from a YAML file
  list - Print the active catalog in display order`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile == "" {
			return nil
		}
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", "", "path to a .env file")
	rootCmd.AddCommand(seedCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
