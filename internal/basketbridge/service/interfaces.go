package service

import (
	"context"

	"basket-bridge/internal/basketbridge/data"
)

type TransactionManager interface {
	DoWithTransaction(ctx context.Context, f func(ctx context.Context) error) error
}

type OrderRepository interface {
	UpsertOrder(ctx context.Context, order *data.Order) error
	ReplaceOrderItems(ctx context.Context, orderID string, items []data.LineItem) error
	GetOrder(ctx context.Context, orderID string) (*data.Order, error)
	GetOrdersByStatus(ctx context.Context, status data.Status) ([]data.Order, error)
	SetOrderHandedOff(ctx context.Context, orderID string, basketID string) error
}
