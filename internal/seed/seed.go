// Package seed bootstraps deterministic demo data for non-production
// environments: a small consumer roster with order histories spanning the
// segmentation spectrum.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/gogsia86/farmers-market-sub007/internal/order/domain"
	"gorm.io/gorm"
)

type demoOrder struct {
	daysAgo int
	total   float64
	items   []orderdomain.OrderLineFact
}

type demoCustomer struct {
	email      string
	name       string
	signupDays int
	orders     []demoOrder
}

// EnsureDemoData seeds demo customers and orders when the roster is empty.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).Model(&orderdomain.Customer{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return insertDemoData(ctx, tx, node)
	})
}

func insertDemoData(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	now := time.Now().UTC()
	farmGreenAcres := node.Generate()
	farmSunnyHill := node.Generate()

	customers := []demoCustomer{
		{
			email:      "maria@example.com",
			name:       "Maria Kovac",
			signupDays: 400,
			orders:     championOrders(farmGreenAcres, farmSunnyHill, node),
		},
		{
			email:      "petar@example.com",
			name:       "Petar Novak",
			signupDays: 20,
			orders: []demoOrder{
				{daysAgo: 2, total: 40, items: []orderdomain.OrderLineFact{
					lineItem(node, farmSunnyHill, "VEGETABLES", 2, 20, true, true, false),
				}},
			},
		},
		{
			email:      "ana@example.com",
			name:       "Ana Horvat",
			signupDays: 300,
			orders: []demoOrder{
				{daysAgo: 150, total: 60, items: []orderdomain.OrderLineFact{
					lineItem(node, farmGreenAcres, "DAIRY", 2, 30, false, true, false),
				}},
				{daysAgo: 120, total: 85, items: []orderdomain.OrderLineFact{
					lineItem(node, farmGreenAcres, "DAIRY", 1, 85, false, true, false),
				}},
			},
		},
	}

	for _, c := range customers {
		customerID := node.Generate()
		record := orderdomain.Customer{
			ID:        customerID,
			Email:     c.email,
			Name:      c.name,
			Role:      orderdomain.RoleConsumer,
			Status:    orderdomain.CustomerStatusActive,
			CreatedAt: now.AddDate(0, 0, -c.signupDays),
			UpdatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
			return err
		}

		for _, o := range c.orders {
			orderID := node.Generate()
			fact := orderdomain.OrderFact{
				ID:        orderID,
				UserID:    customerID,
				Status:    orderdomain.OrderStatusCompleted,
				Total:     o.total,
				CreatedAt: now.AddDate(0, 0, -o.daysAgo),
			}
			if err := tx.WithContext(ctx).Create(&fact).Error; err != nil {
				return err
			}
			for _, item := range o.items {
				item.OrderID = orderID
				if err := tx.WithContext(ctx).Create(&item).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// championOrders produces a frequent, high-spend history.
func championOrders(farmA, farmB snowflake.ID, node *snowflake.Node) []demoOrder {
	orders := make([]demoOrder, 0, 22)
	for i := 0; i < 22; i++ {
		farm := farmA
		category := "VEGETABLES"
		if i%3 == 0 {
			farm = farmB
			category = "FRUITS"
		}
		orders = append(orders, demoOrder{
			daysAgo: 3 + i*15,
			total:   75,
			items: []orderdomain.OrderLineFact{
				lineItem(node, farm, category, 3, 25, true, true, i%5 == 0),
			},
		})
	}
	return orders
}

func lineItem(node *snowflake.Node, farmID snowflake.ID, category string, quantity int, unitPrice float64, organic, local, biodynamic bool) orderdomain.OrderLineFact {
	return orderdomain.OrderLineFact{
		ID:         node.Generate(),
		ProductID:  node.Generate(),
		Category:   category,
		FarmID:     farmID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Organic:    organic,
		Local:      local,
		Biodynamic: biodynamic,
	}
}
