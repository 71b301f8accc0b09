package service

import (
	"context"
	"fmt"

	"basket-bridge/internal/basketbridge/data"
	"basket-bridge/internal/basketbridge/feed"
	"basket-bridge/internal/common/clientprotocol"
)

// Orders ingests normalized orders into storage and serves them back in
// the presentation shape (totals rounded to two places on the wire,
// full precision kept in storage).
type Orders struct {
	transactionManager TransactionManager
	orderRepository    OrderRepository
}

func NewOrders(transactionManager TransactionManager, orderRepository OrderRepository) *Orders {
	return &Orders{
		transactionManager: transactionManager,
		orderRepository:    orderRepository,
	}
}

// Ingest normalizes a raw feed document and stores every order in it.
func (o *Orders) Ingest(ctx context.Context, raw []byte) (int, error) {
	orders, err := feed.Normalize(raw)
	if err != nil {
		return 0, fmt.Errorf("feed normalization failed: %w", err)
	}
	for i := range orders {
		if err := o.IngestOrder(ctx, orders[i]); err != nil {
			return i, fmt.Errorf("error ingesting order %s: %w", orders[i].ID, err)
		}
	}
	return len(orders), nil
}

func (o *Orders) IngestOrder(ctx context.Context, order data.Order) error {
	return o.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		if err := o.orderRepository.UpsertOrder(ctx, &order); err != nil {
			return fmt.Errorf("error upserting order: %w", err)
		}
		if err := o.orderRepository.ReplaceOrderItems(ctx, order.ID, order.Items); err != nil {
			return fmt.Errorf("error replacing order items: %w", err)
		}
		return nil
	})
}

func (o *Orders) GetPendingOrders(ctx context.Context) ([]clientprotocol.Order, error) {
	orders, err := o.orderRepository.GetOrdersByStatus(ctx, data.PendingStatus)
	if err != nil {
		return nil, fmt.Errorf("error getting pending orders: %w", err)
	}
	res := make([]clientprotocol.Order, len(orders))
	for i := range orders {
		res[i] = convertOrder(&orders[i], false)
	}
	return res, nil
}

func (o *Orders) GetOrder(ctx context.Context, orderID string) (clientprotocol.Order, error) {
	order, err := o.orderRepository.GetOrder(ctx, orderID)
	if err != nil {
		return clientprotocol.Order{}, fmt.Errorf("error getting order: %w", err)
	}
	return convertOrder(order, true), nil
}

func convertOrder(order *data.Order, withItems bool) clientprotocol.Order {
	total, _ := order.Total.Round(2).Float64()
	res := clientprotocol.Order{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Fulfillment:  string(order.Fulfillment),
		Timestamp:    order.Timestamp,
		Total:        total,
		ItemCount:    order.ItemCount(),
		Status:       convertStatus(order.Status),
	}
	if !withItems {
		return res
	}
	res.Items = make([]clientprotocol.Item, len(order.Items))
	for i, item := range order.Items {
		price, _ := item.Price.Round(2).Float64()
		res.Items[i] = clientprotocol.Item{
			ID:          item.ID,
			SKU:         item.SKU,
			ProductName: item.ProductName,
			Price:       price,
			Quantity:    item.Quantity,
			Thumbnail:   item.Thumbnail,
		}
	}
	return res
}

func convertStatus(status data.Status) clientprotocol.OrderStatus {
	switch status {
	case data.PendingStatus:
		return clientprotocol.Pending
	case data.HandedOffStatus:
		return clientprotocol.HandedOff
	}
	return clientprotocol.Null
}
