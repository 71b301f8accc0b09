package feed

import (
	"encoding/json"
	"fmt"
	"time"

	"basket-bridge/internal/basketbridge/data"
	"basket-bridge/internal/common/feedprotocol"
	"github.com/shopspring/decimal"
)

// Normalize converts a raw pending-orders document into canonical
// orders. Parsing is deliberately tolerant: upstream feeds are not
// schema-enforced, so missing blocks become defaults (empty items,
// IN_STORE fulfillment, zero time) and zero or negative prices and
// quantities pass through untouched.
func Normalize(raw []byte) ([]data.Order, error) {
	var doc feedprotocol.Feed
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("feed decoding failed: %w", err)
	}
	return NormalizeFeed(doc), nil
}

func NormalizeFeed(doc feedprotocol.Feed) []data.Order {
	orders := make([]data.Order, len(doc.Orders))
	for i, raw := range doc.Orders {
		orders[i] = normalizeOrder(raw)
	}
	return orders
}

func normalizeOrder(raw feedprotocol.Order) data.Order {
	items := make([]data.LineItem, len(raw.Items))
	total := decimal.Zero
	for i, rawItem := range raw.Items {
		items[i] = data.LineItem{
			ID:          rawItem.ID,
			SKU:         rawItem.SKU,
			ProductName: rawItem.ProductName,
			Price:       rawItem.Price,
			Quantity:    rawItem.Quantity,
			Thumbnail:   rawItem.Thumbnail,
		}
		total = total.Add(rawItem.Price.Mul(decimal.NewFromInt(int64(rawItem.Quantity))))
	}

	order := data.Order{
		ID:           raw.ID,
		CustomerName: raw.CustomerName,
		CustomerCode: raw.CustomerCode,
		Fulfillment:  normalizeFulfillment(raw.Fulfillment),
		Timestamp:    parseTimestamp(raw.Timestamp),
		Items:        items,
		Total:        total,
		Status:       data.PendingStatus,
	}
	if raw.DeliveryInfo != nil {
		order.DeliveryInfo = &data.DeliveryInfo{
			FirstName:    raw.DeliveryInfo.FirstName,
			LastName:     raw.DeliveryInfo.LastName,
			AddressLine1: raw.DeliveryInfo.AddressLine1,
			AddressLine2: raw.DeliveryInfo.AddressLine2,
			City:         raw.DeliveryInfo.City,
			PostalCode:   raw.DeliveryInfo.PostalCode,
			CountryCode:  raw.DeliveryInfo.CountryCode,
			Email:        raw.DeliveryInfo.Email,
			Phone:        raw.DeliveryInfo.Phone,
		}
	}
	if raw.PickupStore != nil {
		order.PickupStore = &data.PickupStore{
			StoreID:    raw.PickupStore.StoreID,
			Name:       raw.PickupStore.Name,
			City:       raw.PickupStore.City,
			PostalCode: raw.PickupStore.PostalCode,
			Country:    raw.PickupStore.Country,
			Email:      raw.PickupStore.Email,
			Phone:      raw.PickupStore.Phone,
		}
	}
	return order
}

func normalizeFulfillment(raw feedprotocol.Fulfillment) data.Fulfillment {
	switch raw {
	case feedprotocol.HomeDelivery:
		return data.HomeDelivery
	case feedprotocol.StoreReservation:
		return data.StoreReservation
	case feedprotocol.InStore:
		return data.InStore
	}
	return data.InStore
}

func parseTimestamp(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
