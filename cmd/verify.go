package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/autoservice/internal/integrity"
	"github.com/Rana718/autoservice/internal/schema"
	"github.com/Rana718/autoservice/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check stored rows against the schema",
	Long: `
Re-read every table and report foreign keys that point at missing rows and
enumerated values outside their set. With --count N the row counts are also
compared with a single seed run of size N.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var expected map[string]int
		if cmd.Flags().Changed("count") {
			n, _ := cmd.Flags().GetInt("count")
			expected = seeder.ExpectedCounts(n)
		}

		ctx := context.Background()
		adapter, err := openSession(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		color.Cyan("🔍 Verifying stored data...")
		report, err := integrity.Check(ctx, adapter, schema.Default(), expected)
		if err != nil {
			return err
		}
		report.Print()

		if !report.OK() {
			return fmt.Errorf("integrity check failed")
		}
		color.Green("\n✅ All tables consistent")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().Int("count", 0, "Expect the row counts of one seed run with base count N")
}
