package seeder

import (
	"fmt"
	"time"

	"github.com/Rana718/autoservice/internal/schema"
)

const (
	InvoiceRangeFull   = "full"
	InvoiceRangeLegacy = "legacy"
)

type SeedConfig struct {
	Count        int    // Base count N
	RecentDays   int    // Window for generated dates, 0 means 1000
	InvoiceRange string // "full" or "legacy" order_id sampling
	RandomSeed   int64  // 0 picks a random seed
	DropFirst    bool   // Drop all tables before declaring them
}

// Multipliers of the base count N per table.
var Multipliers = map[string]int{
	schema.ServiceCenters:     1,
	schema.Employees:          1,
	schema.Clients:            5,
	schema.Services:           1,
	schema.Parts:              1,
	schema.VehiclesRepairment: 2,
	schema.Orders:             5,
	schema.Invoices:           5,
}

// ExpectedCounts returns the number of rows one run inserts into each table.
func ExpectedCounts(n int) map[string]int {
	counts := make(map[string]int, len(Multipliers))
	for table, m := range Multipliers {
		counts[table] = m * n
	}
	return counts
}

type TableResult struct {
	Table    string
	Inserted int
	FirstID  int64
	LastID   int64
}

type Result struct {
	Tables   []TableResult
	Duration time.Duration
}

func (r *Result) Total() int {
	total := 0
	for _, t := range r.Tables {
		total += t.Inserted
	}
	return total
}

// SeedError reports the row whose generation, validation or insert aborted
// the run. Row is zero based.
type SeedError struct {
	Table string
	Row   int
	Err   error
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("seeding %s row %d: %v", e.Table, e.Row, e.Err)
}

func (e *SeedError) Unwrap() error {
	return e.Err
}
