package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/autoservice/internal/config"
	"github.com/Rana718/autoservice/internal/schema"
	"github.com/Rana718/autoservice/internal/seeder"
	"github.com/Rana718/autoservice/internal/utils"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with synthetic service-center data",
	Long: `
Declare the schema and insert N service centers, N employees, 5N clients,
N services, N parts, 2N repairs, 5N orders and 5N invoices, one row at a
time in dependency order. Every foreign key is drawn from rows inserted
earlier in the same run.

Running seed again appends a new batch; use --drop-first to start clean.
The first failing row stops the run. Rows inserted before it are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		seedConfig, err := seedConfigFromFlags(cmd, cfg)
		if err != nil {
			return err
		}

		ctx := context.Background()
		adapter, err := openSession(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		result, err := seeder.NewSeeder(adapter, schema.Default()).Seed(ctx, seedConfig)
		if result != nil && len(result.Tables) > 0 {
			fmt.Println()
			printSeedResult(result)
		}
		return err
	},
}

// seedConfigFromFlags starts from the loaded config and applies the flags the
// user set explicitly.
func seedConfigFromFlags(cmd *cobra.Command, cfg *config.Config) (seeder.SeedConfig, error) {
	seedConfig := seeder.SeedConfig{
		Count:        cfg.Seed.Count,
		RecentDays:   cfg.Seed.RecentDays,
		InvoiceRange: cfg.Seed.InvoiceRange,
		RandomSeed:   cfg.Seed.RandomSeed,
	}
	flags := cmd.Flags()
	if flags.Changed("count") {
		seedConfig.Count, _ = flags.GetInt("count")
		if seedConfig.Count < 1 {
			return seedConfig, fmt.Errorf("--count must be a positive integer, got %d", seedConfig.Count)
		}
	}
	if flags.Changed("recent-days") {
		seedConfig.RecentDays, _ = flags.GetInt("recent-days")
		if seedConfig.RecentDays < 1 {
			return seedConfig, fmt.Errorf("--recent-days must be a positive integer, got %d", seedConfig.RecentDays)
		}
	}
	if flags.Changed("invoice-range") {
		seedConfig.InvoiceRange, _ = flags.GetString("invoice-range")
	}
	if flags.Changed("random-seed") {
		seedConfig.RandomSeed, _ = flags.GetInt64("random-seed")
	}
	seedConfig.DropFirst, _ = flags.GetBool("drop-first")
	return seedConfig, nil
}

func printSeedResult(result *seeder.Result) {
	columns := []string{"table", "inserted", "first_id", "last_id"}
	rows := make([]map[string]interface{}, 0, len(result.Tables))
	for _, t := range result.Tables {
		rows = append(rows, map[string]interface{}{
			"table":    t.Table,
			"inserted": t.Inserted,
			"first_id": t.FirstID,
			"last_id":  t.LastID,
		})
	}
	utils.PrintTable(columns, rows)
}

func addSeedFlags(cmd *cobra.Command) {
	cmd.Flags().Int("count", 0, "Base row count N (default from seed.count)")
	cmd.Flags().Int("recent-days", 0, "Generated dates fall within this many days (default from seed.recent_days)")
	cmd.Flags().String("invoice-range", "", "Invoice order_id sampling: full or legacy (default from seed.invoice_range)")
	cmd.Flags().Int64("random-seed", 0, "Seed for reproducible data (0 = random)")
	cmd.Flags().Bool("drop-first", false, "Drop all tables before seeding")
}

func init() {
	rootCmd.AddCommand(seedCmd)
	addSeedFlags(seedCmd)
}
