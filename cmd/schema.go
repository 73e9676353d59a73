package cmd

import (
	"fmt"
	"os"

	"github.com/Rana718/autoservice/internal/config"
	"github.com/Rana718/autoservice/internal/database"
	"github.com/Rana718/autoservice/internal/schema"
	"github.com/Rana718/autoservice/internal/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type schemaDocument struct {
	InsertionOrder []string            `yaml:"insertion_order"`
	DeletionOrder  []string            `yaml:"deletion_order"`
	Tables         []types.SchemaTable `yaml:"tables"`
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the service-center schema",
	Long: `
Print the declared schema without touching a database.

--format sql   CREATE TABLE statements for the configured provider, in insertion order
--format yaml  table descriptors with insertion and deletion order`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		provider, _ := cmd.Flags().GetString("provider")

		if provider == "" {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			provider = cfg.Database.Provider
		}

		registry := schema.Default()
		insertion, err := registry.InsertionOrder()
		if err != nil {
			return err
		}

		switch format {
		case "sql":
			adapter := database.NewAdapter(provider)
			fmt.Printf("-- %s schema\n\n", adapter.Provider())
			for _, name := range insertion {
				table, _ := registry.Table(name)
				fmt.Println(adapter.GenerateCreateTableSQL(table))
				fmt.Println()
			}
			return nil
		case "yaml":
			deletion, err := registry.DeletionOrder()
			if err != nil {
				return err
			}
			doc := schemaDocument{InsertionOrder: insertion, DeletionOrder: deletion}
			for _, name := range insertion {
				table, _ := registry.Table(name)
				doc.Tables = append(doc.Tables, table)
			}
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(doc)
		default:
			return fmt.Errorf("unknown format %q (use sql or yaml)", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().String("format", "sql", "Output format: sql or yaml")
	schemaCmd.Flags().String("provider", "", "SQL dialect (defaults to database.provider from config)")
}
