package seeder

import (
	"fmt"
	"time"

	"github.com/Rana718/autoservice/internal/schema"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

// DataGenerator produces column values for the service-center entities.
// A non-zero seed makes runs reproducible.
type DataGenerator struct {
	faker      *gofakeit.Faker
	recentDays int
	now        func() time.Time
}

func NewDataGenerator(seed int64, recentDays int) *DataGenerator {
	if recentDays <= 0 {
		recentDays = 1000
	}
	return &DataGenerator{
		faker:      gofakeit.New(seed),
		recentDays: recentDays,
		now:        time.Now,
	}
}

func (g *DataGenerator) phone() string {
	return g.faker.PhoneFormatted()
}

func (g *DataGenerator) address() string {
	return fmt.Sprintf("%s, %s, %s", g.faker.City(), g.faker.Street(), g.faker.StreetNumber())
}

// recent returns a moment within the last recentDays days.
func (g *DataGenerator) recent() time.Time {
	now := g.now()
	return g.faker.DateRange(now.AddDate(0, 0, -g.recentDays), now).Truncate(time.Second)
}

func (g *DataGenerator) wholeAmount(min, max int) decimal.Decimal {
	return decimal.NewFromInt(int64(g.faker.IntRange(min, max))).Round(2)
}

// amount returns a value in [min, max] with two fractional digits.
func (g *DataGenerator) amount(min, max int) decimal.Decimal {
	cents := g.faker.IntRange(min*100, max*100)
	return decimal.New(int64(cents), -2)
}

// pick returns a uniformly chosen element of ids.
func (g *DataGenerator) pick(ids []int64) int64 {
	return ids[g.faker.IntRange(0, len(ids)-1)]
}

func (g *DataGenerator) ServiceCenter() map[string]interface{} {
	return map[string]interface{}{
		"city":         g.faker.City(),
		"address":      g.address(),
		"postal_code":  g.faker.IntRange(100000, 999999),
		"phone_number": g.phone(),
		"staff":        g.faker.IntRange(5, 50),
	}
}

func (g *DataGenerator) Employee(serviceCenterID int64) map[string]interface{} {
	return map[string]interface{}{
		"full_name":         g.faker.Name(),
		"age":               g.faker.IntRange(18, 60),
		"position":          g.faker.JobTitle(),
		"phone_number":      g.phone(),
		"email":             g.faker.Email(),
		"experience":        g.faker.IntRange(5, 50),
		"salary":            g.wholeAmount(25000, 100000),
		"short_info":        g.faker.Paragraph(1, 3, 12, " "),
		"service_center_id": serviceCenterID,
	}
}

func (g *DataGenerator) Client() map[string]interface{} {
	contact := g.phone()
	if g.faker.Bool() {
		contact = g.faker.Email()
	}
	return map[string]interface{}{
		"full_name":          g.faker.Name(),
		"contact_info":       contact,
		"status":             g.faker.RandomString(schema.ClientStatuses),
		"bonus_points":       g.faker.IntRange(0, 100000),
		"last_purchase_date": g.recent(),
	}
}

func (g *DataGenerator) Service(serviceCenterID int64) map[string]interface{} {
	return map[string]interface{}{
		"service_name":      g.faker.Word(),
		"price":             g.wholeAmount(100, 100000),
		"service_center_id": serviceCenterID,
	}
}

func (g *DataGenerator) Part(serviceCenterID int64) map[string]interface{} {
	return map[string]interface{}{
		"part_name":         g.faker.Word(),
		"quantity":          g.faker.IntRange(0, 1000),
		"price":             g.wholeAmount(100, 100000),
		"service_center_id": serviceCenterID,
	}
}

func (g *DataGenerator) VehicleRepairment(serviceID, partID int64) map[string]interface{} {
	return map[string]interface{}{
		"vehicle_type": g.faker.RandomString(schema.VehicleTypes),
		"service_id":   serviceID,
		"part_id":      partID,
	}
}

func (g *DataGenerator) Order(clientID, serviceID int64) map[string]interface{} {
	return map[string]interface{}{
		"client_id":  clientID,
		"service_id": serviceID,
		"order_time": g.recent(),
		"status":     g.faker.RandomString(schema.OrderStatuses),
	}
}

func (g *DataGenerator) Invoice(orderID int64) map[string]interface{} {
	return map[string]interface{}{
		"order_id":     orderID,
		"total_sum":    g.amount(100, 1000),
		"invoice_date": g.recent(),
	}
}
