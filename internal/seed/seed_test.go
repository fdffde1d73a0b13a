package seed

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gogsia86/farmers-market-sub007/internal/migration"
	orderdomain "github.com/gogsia86/farmers-market-sub007/internal/order/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	if err := migration.RunMigrations(sqlDB); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

func TestEnsureDemoDataSeedsEmptyRoster(t *testing.T) {
	db := openTestDB(t)
	if err := EnsureDemoData(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if got := count(t, db, &orderdomain.Customer{}); got != 3 {
		t.Fatalf("expected 3 demo customers, got %d", got)
	}
	orders := count(t, db, &orderdomain.OrderFact{})
	if orders != 25 {
		t.Fatalf("expected 25 demo orders, got %d", orders)
	}
	if got := count(t, db, &orderdomain.OrderLineFact{}); got != orders {
		t.Fatalf("expected one line item per order, got %d for %d orders", got, orders)
	}
}

func TestEnsureDemoDataIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := EnsureDemoData(db); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	before := count(t, db, &orderdomain.Customer{})
	if err := EnsureDemoData(db); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if after := count(t, db, &orderdomain.Customer{}); after != before {
		t.Fatalf("expected reseeding to be a no-op, had %d now %d", before, after)
	}
}

func TestEnsureDemoDataSkipsPopulatedRoster(t *testing.T) {
	db := openTestDB(t)
	existing := orderdomain.Customer{
		ID:     1,
		Email:  "existing@example.com",
		Name:   "Existing",
		Role:   orderdomain.RoleConsumer,
		Status: orderdomain.CustomerStatusActive,
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("create existing customer: %v", err)
	}
	if err := EnsureDemoData(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := count(t, db, &orderdomain.Customer{}); got != 1 {
		t.Fatalf("expected populated roster untouched, got %d customers", got)
	}
}
