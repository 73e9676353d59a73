package cmd

import (
	"context"

	"github.com/Rana718/autoservice/internal/schema"
	"github.com/Rana718/autoservice/internal/seeder"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the service-center tables",
	Long: `
Create every table that does not exist yet, parents before children.
With --drop-first all tables are dropped (children first) before they are
created again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		adapter, err := openSession(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		dropFirst, _ := cmd.Flags().GetBool("drop-first")
		return seeder.NewSeeder(adapter, schema.Default()).Setup(ctx, dropFirst)
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().Bool("drop-first", false, "Drop existing tables before creating them")
}
