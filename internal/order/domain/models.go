// Package domain contains the order-fact records consumed by the
// segmentation engine and the customer roster they belong to.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Order statuses. Only terminal fulfilled statuses count toward
// recency/frequency/monetary math.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
	OrderStatusRefunded  = "REFUNDED"
)

// CompletedStatuses are the terminal statuses that qualify an order for
// segmentation.
var CompletedStatuses = []string{OrderStatusDelivered, OrderStatusCompleted}

// Customer roles and statuses.
const (
	RoleConsumer = "CONSUMER"
	RoleFarmer   = "FARMER"
	RoleAdmin    = "ADMIN"

	CustomerStatusActive    = "ACTIVE"
	CustomerStatusSuspended = "SUSPENDED"
)

// Customer is a marketplace account.
type Customer struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Email     string       `gorm:"type:text;not null" json:"email"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Role      string       `gorm:"type:text;not null;default:CONSUMER" json:"role"`
	Status    string       `gorm:"type:text;not null;default:ACTIVE" json:"status"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"-"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// OrderFact is an immutable snapshot of one order.
type OrderFact struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID      `gorm:"not null" json:"user_id"`
	Status    string            `gorm:"type:text;not null" json:"status"`
	Total     float64           `gorm:"not null" json:"total"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null" json:"created_at"`

	Items []OrderLineFact `gorm:"-" json:"items,omitempty"`
}

// TableName sets the database table name.
func (OrderFact) TableName() string { return "orders" }

// OrderLineFact is one line item of an order, with the product metadata the
// profile builder aggregates over.
type OrderLineFact struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID   snowflake.ID `gorm:"not null" json:"order_id"`
	ProductID snowflake.ID `gorm:"not null" json:"product_id"`
	Category  string       `gorm:"type:text;not null" json:"category"`
	FarmID    snowflake.ID `gorm:"not null" json:"farm_id"`
	Quantity  int          `gorm:"not null" json:"quantity"`
	UnitPrice float64      `gorm:"not null" json:"unit_price"`

	// Attribute flags snapshotted from the product at purchase time.
	Organic    bool `gorm:"not null;default:false" json:"organic"`
	Local      bool `gorm:"not null;default:false" json:"local"`
	Biodynamic bool `gorm:"not null;default:false" json:"biodynamic"`
}

// TableName sets the database table name.
func (OrderLineFact) TableName() string { return "order_items" }

// ActiveCustomer is the roster projection used for fleet-wide sweeps.
type ActiveCustomer struct {
	ID        snowflake.ID `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
}
