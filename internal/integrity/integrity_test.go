package integrity

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Rana718/autoservice/internal/database"
	"github.com/Rana718/autoservice/internal/schema"
	"github.com/Rana718/autoservice/internal/seeder"
)

func seeded(t *testing.T, n int) database.DatabaseAdapter {
	t.Helper()
	path := filepath.Join(t.TempDir(), "autoservice.db")
	adapter, err := database.Open(context.Background(), "sqlite", "sqlite://"+path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { adapter.Close() })

	s := seeder.NewSeeder(adapter, schema.Default())
	if _, err := s.Seed(context.Background(), seeder.SeedConfig{Count: n, RandomSeed: 1}); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	return adapter
}

func TestCheckSeededDatabase(t *testing.T) {
	adapter := seeded(t, 2)

	report, err := Check(context.Background(), adapter, schema.Default(), seeder.ExpectedCounts(2))
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !report.OK() {
		t.Errorf("Expected a clean report, got %+v", report.Tables)
	}
	if len(report.Tables) != 8 {
		t.Errorf("Expected 8 tables in report, got %d", len(report.Tables))
	}

	orders, ok := report.Table(schema.Orders)
	if !ok {
		t.Fatal("orders missing from report")
	}
	if orders.Rows != 10 {
		t.Errorf("Expected 10 orders, got %d", orders.Rows)
	}
	if _, ok := orders.DanglingRefs["client_id"]; !ok {
		t.Error("Expected client_id reference to be checked")
	}
	if _, ok := orders.EnumViolations["status"]; !ok {
		t.Error("Expected status set to be checked")
	}
}

func TestCheckCountMismatch(t *testing.T) {
	adapter := seeded(t, 1)

	report, err := Check(context.Background(), adapter, schema.Default(), seeder.ExpectedCounts(3))
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if report.OK() {
		t.Error("Expected count mismatch to fail the report")
	}

	report, err = Check(context.Background(), adapter, schema.Default(), nil)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !report.OK() {
		t.Error("Without expectations only references and sets are checked")
	}
}

func TestCheckFindsDanglingAndEnumViolations(t *testing.T) {
	ctx := context.Background()
	adapter := seeded(t, 1)

	// The SQLite adapter holds a single connection, so these pragmas apply to
	// the inserts below.
	for _, stmt := range []string{
		"PRAGMA foreign_keys = OFF",
		"PRAGMA ignore_check_constraints = ON",
		`INSERT INTO "invoices" ("order_id", "total_sum") VALUES (999, 150.00)`,
		`INSERT INTO "clients" ("full_name", "status") VALUES ('Oleg', 'Gold')`,
	} {
		if _, err := adapter.ExecuteQuery(ctx, stmt); err != nil {
			t.Fatalf("%s failed: %v", stmt, err)
		}
	}

	report, err := Check(ctx, adapter, schema.Default(), nil)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if report.OK() {
		t.Fatal("Expected violations to be reported")
	}

	invoices, _ := report.Table(schema.Invoices)
	if invoices.DanglingRefs["order_id"] != 1 {
		t.Errorf("Expected 1 dangling order_id, got %d", invoices.DanglingRefs["order_id"])
	}
	clients, _ := report.Table(schema.Clients)
	if clients.EnumViolations["status"] != 1 {
		t.Errorf("Expected 1 status violation, got %d", clients.EnumViolations["status"])
	}
	services, _ := report.Table(schema.Services)
	if !services.OK() {
		t.Errorf("Unrelated tables must stay clean, got %+v", services)
	}
}
