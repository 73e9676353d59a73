package seeder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/autoservice/internal/database"
	"github.com/Rana718/autoservice/internal/schema"
	"github.com/fatih/color"
)

type rowFunc func() (map[string]interface{}, error)

type Seeder struct {
	adapter     database.DatabaseAdapter
	registry    *schema.Registry
	generator   *DataGenerator
	insertedIDs map[string][]int64
}

func NewSeeder(adapter database.DatabaseAdapter, registry *schema.Registry) *Seeder {
	return &Seeder{
		adapter:     adapter,
		registry:    registry,
		insertedIDs: make(map[string][]int64),
	}
}

// Setup creates every declared table in insertion order. With dropFirst the
// existing tables are dropped in deletion order beforehand.
func (s *Seeder) Setup(ctx context.Context, dropFirst bool) error {
	if dropFirst {
		if err := s.DropAll(ctx); err != nil {
			return err
		}
	}

	order, err := s.registry.InsertionOrder()
	if err != nil {
		return fmt.Errorf("failed to build insertion order: %w", err)
	}

	color.Cyan("🏗️  Declaring %d tables...", len(order))
	for _, name := range order {
		table, _ := s.registry.Table(name)
		if err := s.adapter.CreateTable(ctx, table); err != nil {
			return err
		}
	}
	color.Green("✅ Schema declared")
	return nil
}

// DropAll drops every declared table, dependents first.
func (s *Seeder) DropAll(ctx context.Context) error {
	order, err := s.registry.DeletionOrder()
	if err != nil {
		return fmt.Errorf("failed to build deletion order: %w", err)
	}

	color.Yellow("🗑️  Dropping tables...")
	for _, name := range order {
		if err := s.adapter.DropTable(ctx, name); err != nil {
			return fmt.Errorf("failed to drop %s: %w", name, err)
		}
	}
	return nil
}

// Seed declares the schema and fills every table with Multipliers[table]*N
// rows. Rows are generated, validated and inserted one at a time; the first
// failure stops the run and rows already inserted stay.
func (s *Seeder) Seed(ctx context.Context, cfg SeedConfig) (*Result, error) {
	if cfg.Count < 1 {
		return nil, fmt.Errorf("seed count must be a positive integer, got %d", cfg.Count)
	}
	if cfg.RecentDays < 0 {
		return nil, fmt.Errorf("recent days must not be negative, got %d", cfg.RecentDays)
	}
	if cfg.InvoiceRange == "" {
		cfg.InvoiceRange = InvoiceRangeFull
	}
	if cfg.InvoiceRange != InvoiceRangeFull && cfg.InvoiceRange != InvoiceRangeLegacy {
		return nil, fmt.Errorf("unknown invoice range %q", cfg.InvoiceRange)
	}

	start := time.Now()
	s.generator = NewDataGenerator(cfg.RandomSeed, cfg.RecentDays)
	s.insertedIDs = make(map[string][]int64)

	color.Cyan("🌱 Starting database seeding...")

	if err := s.Setup(ctx, cfg.DropFirst); err != nil {
		return nil, err
	}

	order, err := s.registry.InsertionOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to build insertion order: %w", err)
	}
	color.Cyan("📋 Insertion order: %s", strings.Join(order, " → "))
	fmt.Println()

	result := &Result{}
	for _, name := range order {
		multiplier, ok := Multipliers[name]
		if !ok {
			return result, fmt.Errorf("no row count defined for table %s", name)
		}
		rows, err := s.rowsFor(name, cfg)
		if err != nil {
			return result, err
		}

		tr, err := s.seedTable(ctx, name, multiplier*cfg.Count, rows)
		result.Tables = append(result.Tables, tr)
		if err != nil {
			return result, err
		}
	}

	result.Duration = time.Since(start)
	color.Green("\n✅ Database seeding completed successfully! (%d rows in %s)", result.Total(), result.Duration.Round(time.Millisecond))
	return result, nil
}

func (s *Seeder) seedTable(ctx context.Context, name string, count int, next rowFunc) (TableResult, error) {
	color.Cyan("  📝 Seeding %s (%d records)...", name, count)

	tr := TableResult{Table: name}
	table, ok := s.registry.Table(name)
	if !ok {
		return tr, fmt.Errorf("%w: %s", schema.ErrUndeclaredEntity, name)
	}

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return tr, &SeedError{Table: name, Row: i, Err: err}
		}

		record, err := next()
		if err != nil {
			return tr, &SeedError{Table: name, Row: i, Err: err}
		}
		if err := s.registry.ValidateRecord(name, record); err != nil {
			return tr, &SeedError{Table: name, Row: i, Err: err}
		}

		id, err := s.adapter.InsertRow(ctx, table, record)
		if err != nil {
			return tr, &SeedError{Table: name, Row: i, Err: err}
		}

		s.insertedIDs[name] = append(s.insertedIDs[name], id)
		if tr.Inserted == 0 {
			tr.FirstID = id
		}
		tr.LastID = id
		tr.Inserted++
	}

	color.Green("  ✅ %s seeded successfully", name)
	return tr, nil
}

// rowsFor binds the row generator of a table to the ids inserted so far.
func (s *Seeder) rowsFor(name string, cfg SeedConfig) (rowFunc, error) {
	g := s.generator

	switch name {
	case schema.ServiceCenters:
		return func() (map[string]interface{}, error) { return g.ServiceCenter(), nil }, nil
	case schema.Clients:
		return func() (map[string]interface{}, error) { return g.Client(), nil }, nil
	case schema.Employees:
		return s.withParents(func(ids ...int64) map[string]interface{} { return g.Employee(ids[0]) },
			schema.ServiceCenters), nil
	case schema.Services:
		return s.withParents(func(ids ...int64) map[string]interface{} { return g.Service(ids[0]) },
			schema.ServiceCenters), nil
	case schema.Parts:
		return s.withParents(func(ids ...int64) map[string]interface{} { return g.Part(ids[0]) },
			schema.ServiceCenters), nil
	case schema.VehiclesRepairment:
		return s.withParents(func(ids ...int64) map[string]interface{} { return g.VehicleRepairment(ids[0], ids[1]) },
			schema.Services, schema.Parts), nil
	case schema.Orders:
		return s.withParents(func(ids ...int64) map[string]interface{} { return g.Order(ids[0], ids[1]) },
			schema.Clients, schema.Services), nil
	case schema.Invoices:
		return func() (map[string]interface{}, error) {
			orders := s.insertedIDs[schema.Orders]
			if cfg.InvoiceRange == InvoiceRangeLegacy && len(orders) > cfg.Count {
				orders = orders[:cfg.Count]
			}
			if len(orders) == 0 {
				return nil, fmt.Errorf("no %s rows to reference", schema.Orders)
			}
			return g.Invoice(g.pick(orders)), nil
		}, nil
	}
	return nil, fmt.Errorf("no row generator for table %s", name)
}

// withParents samples one inserted id per parent table and hands them to build
// in the same order.
func (s *Seeder) withParents(build func(ids ...int64) map[string]interface{}, parents ...string) rowFunc {
	return func() (map[string]interface{}, error) {
		ids := make([]int64, len(parents))
		for i, parent := range parents {
			pool := s.insertedIDs[parent]
			if len(pool) == 0 {
				return nil, fmt.Errorf("no %s rows to reference", parent)
			}
			ids[i] = s.generator.pick(pool)
		}
		return build(ids...), nil
	}
}
