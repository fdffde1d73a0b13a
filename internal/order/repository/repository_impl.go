// Package repository implements the order-facts provider on gorm.
package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/gogsia86/farmers-market-sub007/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repository struct {
	db  *gorm.DB
	log *zap.Logger
}

type RepositoryParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

func NewRepository(p RepositoryParam) orderdomain.FactsProvider {
	return &Repository{
		db:  p.DB,
		log: p.Log.Named("order.repository"),
	}
}

func (r *Repository) CompletedOrders(ctx context.Context, userID snowflake.ID) ([]orderdomain.OrderFact, error) {
	if userID == 0 {
		return nil, orderdomain.ErrInvalidCustomer
	}

	var orders []orderdomain.OrderFact
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, orderdomain.CompletedStatuses).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	orderIDs := make([]snowflake.ID, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	var items []orderdomain.OrderLineFact
	err = r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	byOrder := make(map[snowflake.ID][]orderdomain.OrderLineFact, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, nil
}

func (r *Repository) ListActiveCustomers(ctx context.Context) ([]orderdomain.ActiveCustomer, error) {
	var customers []orderdomain.ActiveCustomer
	err := r.db.WithContext(ctx).
		Model(&orderdomain.Customer{}).
		Select("id", "created_at").
		Where("role = ? AND status = ?", orderdomain.RoleConsumer, orderdomain.CustomerStatusActive).
		Order("created_at ASC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
