package schema

import "github.com/Rana718/autoservice/internal/types"

// Table names of the service-center domain.
const (
	ServiceCenters     = "service_centers"
	Employees          = "employees"
	Clients            = "clients"
	Services           = "services"
	Parts              = "parts"
	VehiclesRepairment = "vehicles_repairment"
	Orders             = "orders"
	Invoices           = "invoices"
)

var (
	ClientStatuses = []string{"Regular", "Permanent", "Premium"}
	VehicleTypes   = []string{"Car", "Motorcycle"}
	OrderStatuses  = []string{"Pending", "Completed", "Cancelled"}
)

func idColumn() types.SchemaColumn {
	return types.SchemaColumn{Name: "id", Type: types.TypeInteger, IsPrimary: true, IsAutoIncrement: true}
}

func text(name string) types.SchemaColumn {
	return types.SchemaColumn{Name: name, Type: types.TypeText}
}

func integer(name string) types.SchemaColumn {
	return types.SchemaColumn{Name: name, Type: types.TypeInteger}
}

func money(name string) types.SchemaColumn {
	return types.SchemaColumn{Name: name, Type: types.TypeDecimal}
}

func timestamp(name string) types.SchemaColumn {
	return types.SchemaColumn{Name: name, Type: types.TypeTimestamp, Nullable: true}
}

func notNull(c types.SchemaColumn) types.SchemaColumn {
	c.Nullable = false
	return c
}

func nullable(c types.SchemaColumn) types.SchemaColumn {
	c.Nullable = true
	return c
}

func withDefault(c types.SchemaColumn, def string) types.SchemaColumn {
	c.Default = def
	return c
}

func oneOf(c types.SchemaColumn, values []string) types.SchemaColumn {
	c.Enum = append([]string(nil), values...)
	return c
}

func references(name, table, onDelete string) types.SchemaColumn {
	return types.SchemaColumn{
		Name:             name,
		Type:             types.TypeInteger,
		Nullable:         true,
		ForeignKeyTable:  table,
		ForeignKeyColumn: "id",
		OnDeleteAction:   onDelete,
	}
}

// Define declares the eight service-center entities on r in dependency order.
func Define(r *Registry) error {
	tables := []types.SchemaTable{
		{
			Name:   ServiceCenters,
			Entity: "ServiceCenter",
			Columns: []types.SchemaColumn{
				idColumn(),
				text("city"),
				text("address"),
				integer("postal_code"),
				text("phone_number"),
				withDefault(integer("staff"), "1"),
			},
		},
		{
			Name:   Employees,
			Entity: "Employee",
			Columns: []types.SchemaColumn{
				idColumn(),
				text("full_name"),
				integer("age"),
				text("position"),
				text("phone_number"),
				text("email"),
				integer("experience"),
				money("salary"),
				nullable(text("short_info")),
				references("service_center_id", ServiceCenters, types.OnDeleteSetNull),
			},
		},
		{
			Name:   Clients,
			Entity: "Client",
			Columns: []types.SchemaColumn{
				idColumn(),
				text("full_name"),
				nullable(text("contact_info")),
				nullable(oneOf(text("status"), ClientStatuses)),
				withDefault(integer("bonus_points"), "0"),
				timestamp("last_purchase_date"),
			},
		},
		{
			Name:   Services,
			Entity: "Service",
			Columns: []types.SchemaColumn{
				idColumn(),
				text("service_name"),
				money("price"),
				references("service_center_id", ServiceCenters, types.OnDeleteCascade),
			},
		},
		{
			Name:   Parts,
			Entity: "Part",
			Columns: []types.SchemaColumn{
				idColumn(),
				text("part_name"),
				integer("quantity"),
				money("price"),
				references("service_center_id", ServiceCenters, types.OnDeleteCascade),
			},
		},
		{
			Name:   VehiclesRepairment,
			Entity: "VehicleRepairment",
			Columns: []types.SchemaColumn{
				idColumn(),
				oneOf(text("vehicle_type"), VehicleTypes),
				notNull(references("service_id", Services, types.OnDeleteCascade)),
				references("part_id", Parts, types.OnDeleteCascade),
			},
		},
		{
			Name:   Orders,
			Entity: "Order",
			Columns: []types.SchemaColumn{
				idColumn(),
				references("client_id", Clients, types.OnDeleteCascade),
				references("service_id", Services, types.OnDeleteCascade),
				withDefault(timestamp("order_time"), types.DefaultNow),
				nullable(oneOf(text("status"), OrderStatuses)),
			},
		},
		{
			Name:   Invoices,
			Entity: "Invoice",
			Columns: []types.SchemaColumn{
				idColumn(),
				references("order_id", Orders, types.OnDeleteCascade),
				money("total_sum"),
				withDefault(timestamp("invoice_date"), types.DefaultNow),
			},
		},
	}

	for _, t := range tables {
		if err := r.Define(t); err != nil {
			return err
		}
	}
	return nil
}

// Default returns a registry holding the service-center schema.
func Default() *Registry {
	r := NewRegistry()
	if err := Define(r); err != nil {
		panic(err)
	}
	return r
}
