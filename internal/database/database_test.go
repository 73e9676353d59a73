package database

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Rana718/autoservice/internal/schema"
	"github.com/shopspring/decimal"
)

func openSQLite(t *testing.T) DatabaseAdapter {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.db")
	adapter, err := Open(context.Background(), "sqlite", "sqlite://"+path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

func createAll(t *testing.T, adapter DatabaseAdapter, r *schema.Registry) {
	t.Helper()
	order, err := r.InsertionOrder()
	if err != nil {
		t.Fatalf("InsertionOrder failed: %v", err)
	}
	for _, name := range order {
		table, _ := r.Table(name)
		if err := adapter.CreateTable(context.Background(), table); err != nil {
			t.Fatalf("CreateTable %s failed: %v", name, err)
		}
	}
}

func TestNewAdapterProviders(t *testing.T) {
	tests := map[string]string{
		"postgresql": "postgresql",
		"postgres":   "postgresql",
		"mysql":      "mysql",
		"sqlite":     "sqlite",
		"sqlite3":    "sqlite",
	}
	for provider, expected := range tests {
		if got := NewAdapter(provider).Provider(); got != expected {
			t.Errorf("NewAdapter(%q).Provider() = %q, want %q", provider, got, expected)
		}
	}
}

func TestOpenUnreachable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "shop.db")
	_, err := Open(context.Background(), "sqlite", "sqlite://"+missing)
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("Expected ErrUnreachable, got %v", err)
	}
}

func TestGenerateCreateTableSQL(t *testing.T) {
	r := schema.Default()
	clients, _ := r.Table(schema.Clients)
	employees, _ := r.Table(schema.Employees)

	tests := []struct {
		provider string
		table    string
		contains []string
	}{
		{
			provider: "postgresql",
			table:    schema.Clients,
			contains: []string{
				`CREATE TABLE IF NOT EXISTS "clients"`,
				`"id" SERIAL PRIMARY KEY`,
				`"status" TEXT CHECK ("status" IN ('Regular', 'Permanent', 'Premium'))`,
				`"bonus_points" INTEGER NOT NULL DEFAULT 0`,
			},
		},
		{
			provider: "postgresql",
			table:    schema.Employees,
			contains: []string{
				`FOREIGN KEY ("service_center_id") REFERENCES "service_centers"("id") ON DELETE SET NULL`,
				`"salary" NUMERIC(10,2) NOT NULL`,
			},
		},
		{
			provider: "mysql",
			table:    schema.Clients,
			contains: []string{
				"CREATE TABLE IF NOT EXISTS `clients`",
				"`id` INT AUTO_INCREMENT PRIMARY KEY",
				"`status` VARCHAR(32) CHECK (`status` IN ('Regular', 'Permanent', 'Premium'))",
				"`last_purchase_date` DATETIME",
				") ENGINE=InnoDB;",
			},
		},
		{
			provider: "sqlite",
			table:    schema.Employees,
			contains: []string{
				`"id" INTEGER PRIMARY KEY AUTOINCREMENT`,
				`"salary" DECIMAL(10,2) NOT NULL`,
				`ON DELETE SET NULL`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.provider+"/"+tt.table, func(t *testing.T) {
			table := clients
			if tt.table == schema.Employees {
				table = employees
			}
			sql := NewAdapter(tt.provider).GenerateCreateTableSQL(table)
			for _, want := range tt.contains {
				if !strings.Contains(sql, want) {
					t.Errorf("Expected DDL to contain %q, got:\n%s", want, sql)
				}
			}
		})
	}
}

func TestSQLiteInsertAndCount(t *testing.T) {
	ctx := context.Background()
	adapter := openSQLite(t)
	r := schema.Default()
	createAll(t, adapter, r)

	centers, _ := r.Table(schema.ServiceCenters)
	id, err := adapter.InsertRow(ctx, centers, map[string]interface{}{
		"city": "Kazan", "address": "Kazan, Lenina, 4", "postal_code": 420111,
		"phone_number": "+7 900 000 00 00", "staff": 12,
	})
	if err != nil {
		t.Fatalf("InsertRow failed: %v", err)
	}
	if id != 1 {
		t.Errorf("Expected first generated id 1, got %d", id)
	}

	employees, _ := r.Table(schema.Employees)
	if _, err := adapter.InsertRow(ctx, employees, map[string]interface{}{
		"full_name": "Anna Smirnova", "age": 30, "position": "Mechanic",
		"phone_number": "+7 900 111 22 33", "email": "anna@example.com", "experience": 7,
		"salary": decimal.RequireFromString("45000.50"), "service_center_id": id,
	}); err != nil {
		t.Fatalf("InsertRow employee failed: %v", err)
	}

	clients, _ := r.Table(schema.Clients)
	if _, err := adapter.InsertRow(ctx, clients, map[string]interface{}{
		"full_name": "Ivan Petrov", "last_purchase_date": time.Now(),
	}); err != nil {
		t.Fatalf("InsertRow client failed: %v", err)
	}

	counts, err := adapter.GetAllTableRowCounts(ctx, r.Names())
	if err != nil {
		t.Fatalf("GetAllTableRowCounts failed: %v", err)
	}
	expected := map[string]int{schema.ServiceCenters: 1, schema.Employees: 1, schema.Clients: 1, schema.Orders: 0}
	for table, want := range expected {
		if counts[table] != want {
			t.Errorf("%s: expected %d rows, got %d", table, want, counts[table])
		}
	}

	result, err := adapter.ExecuteQuery(ctx, `SELECT "status", "bonus_points" FROM "clients" WHERE "id" = ?`, 1)
	if err != nil {
		t.Fatalf("ExecuteQuery failed: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("Expected one client row, got %d", len(result.Rows))
	}
	if result.Rows[0]["status"] != nil {
		t.Errorf("Expected NULL status, got %v", result.Rows[0]["status"])
	}
	if result.Rows[0]["bonus_points"] != int64(0) {
		t.Errorf("Expected default bonus_points 0, got %v", result.Rows[0]["bonus_points"])
	}
}

func TestSQLiteRejectsEnumViolation(t *testing.T) {
	ctx := context.Background()
	adapter := openSQLite(t)
	r := schema.Default()
	createAll(t, adapter, r)

	clients, _ := r.Table(schema.Clients)
	_, err := adapter.InsertRow(ctx, clients, map[string]interface{}{"full_name": "Ivan", "status": "Gold"})
	if err == nil {
		t.Fatal("Expected CHECK constraint to reject status outside the set")
	}
}

func TestSQLiteEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	adapter := openSQLite(t)
	r := schema.Default()
	createAll(t, adapter, r)

	invoices, _ := r.Table(schema.Invoices)
	_, err := adapter.InsertRow(ctx, invoices, map[string]interface{}{
		"order_id": 99, "total_sum": decimal.NewFromInt(100),
	})
	if err == nil {
		t.Fatal("Expected foreign key violation for a missing order")
	}
}

func TestSQLiteDropTable(t *testing.T) {
	ctx := context.Background()
	adapter := openSQLite(t)
	r := schema.Default()
	createAll(t, adapter, r)

	order, _ := r.DeletionOrder()
	for _, name := range order {
		if err := adapter.DropTable(ctx, name); err != nil {
			t.Fatalf("DropTable %s failed: %v", name, err)
		}
	}
	if _, err := adapter.GetTableRowCount(ctx, schema.ServiceCenters); err == nil {
		t.Error("Expected counting a dropped table to fail")
	}
}
