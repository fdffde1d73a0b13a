package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// FactsProvider supplies completed-order snapshots and the active customer
// roster. The segmentation engine only ever reads through this interface, so
// it stays portable across storage engines.
type FactsProvider interface {
	// CompletedOrders returns the user's orders in a terminal fulfilled
	// status, ordered ascending by creation time, with line items attached.
	CompletedOrders(ctx context.Context, userID snowflake.ID) ([]OrderFact, error)

	// ListActiveCustomers returns every active consumer-role account with
	// its signup time.
	ListActiveCustomers(ctx context.Context) ([]ActiveCustomer, error)
}

var (
	ErrInvalidCustomer = errors.New("invalid_customer")
)
