package cmd

import (
	"context"

	"github.com/Rana718/autoservice/internal/schema"
	"github.com/Rana718/autoservice/internal/seeder"
	"github.com/Rana718/autoservice/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop all service-center tables",
	Long: `
Drop every service-center table, dependents first.

⚠️  WARNING: This will permanently delete all data in these tables!

Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		input := &utils.InputUtils{}
		if !input.AskConfirmation("⚠️  Drop all service-center tables?", force) {
			color.Yellow("Reset cancelled")
			return nil
		}

		ctx := context.Background()
		adapter, err := openSession(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		if err := seeder.NewSeeder(adapter, schema.Default()).DropAll(ctx); err != nil {
			return err
		}
		color.Green("✅ Database reset")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
