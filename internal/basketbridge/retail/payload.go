package retail

import (
	"strings"

	"basket-bridge/internal/basketbridge/data"
	"basket-bridge/internal/common/retailprotocol"
	"github.com/shopspring/decimal"
)

// CentralWarehouseID is the inventory origin for home-delivery lines.
// Home delivery ships from the central facility, never from the store's
// own warehouse.
const CentralWarehouseID = "CENTRAL01"

// Placeholder values substituted when the upstream feed leaves optional
// address fields empty. The feed is not schema-enforced, so the builder
// degrades gracefully instead of failing or omitting the field.
const (
	defaultFirstName   = "Guest"
	defaultLastName    = "Customer"
	defaultStoreName   = "Store"
	defaultAddressLine = "Not provided"
	defaultCity        = "London"
	defaultPostalCode  = "N/A"
	defaultCountry     = "GBR"
	defaultEmail       = "unknown@example.com"
	defaultPhone       = "00000000000"
)

// BuildPayload maps a canonical order onto the external-basket wire
// payload. Pure: no I/O, no mutation, identical inputs produce
// identical payloads. The three fulfillment variants share one basket
// shape and differ only in inventory origin, workflow marker and
// address blocks, so construction is a single discriminated switch.
func BuildPayload(order *data.Order, cfg Config) retailprotocol.BasketPayload {
	itemLines := make([]retailprotocol.ItemLine, len(order.Items))
	for i, item := range order.Items {
		line := retailprotocol.ItemLine{
			ItemLineID: i + 1,
			Item: retailprotocol.Item{
				ItemCode: item.SKU,
			},
			Quantity: item.Quantity,
			Price: retailprotocol.Price{
				BasePrice:    item.Price,
				CurrentPrice: item.Price,
			},
			LineAmount: retailprotocol.LineAmount{
				Currency: cfg.Currency,
				Value:    item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
			},
			InventoryOrigin: retailprotocol.InventoryOrigin{
				WarehouseID: cfg.WarehouseID,
			},
		}

		switch order.Fulfillment {
		case data.HomeDelivery:
			line.InventoryOrigin.WarehouseID = CentralWarehouseID
			line.Workflow = retailprotocol.WorkflowHomeDelivery
			line.DeliveryAddress = resolveCustomerAddress(order)
		case data.StoreReservation:
			line.Workflow = retailprotocol.WorkflowStorePickup
			line.DeliveryAddress = resolvePickupAddress(order.PickupStore)
			line.InvoiceAddress = resolveCustomerAddress(order)
		}

		itemLines[i] = line
	}

	payload := retailprotocol.BasketPayload{
		ExternalReference: order.ID,
		BasketType:        retailprotocol.BasketTypeReceipt,
		ItemLines:         itemLines,
		Store: retailprotocol.Store{
			StoreID: cfg.StoreID,
		},
	}
	if order.CustomerCode != "" {
		payload.Customer = &retailprotocol.CustomerRef{
			CustomerCode: order.CustomerCode,
		}
	}
	return payload
}

// resolveCustomerAddress builds an address block from the order's
// delivery info, falling back to the customer display name and the
// documented placeholders field by field.
func resolveCustomerAddress(order *data.Order) *retailprotocol.Address {
	info := order.DeliveryInfo
	if info == nil {
		info = &data.DeliveryInfo{}
	}
	firstName, lastName := splitCustomerName(order.CustomerName)
	return &retailprotocol.Address{
		FirstName:    fallback(info.FirstName, fallback(firstName, defaultFirstName)),
		LastName:     fallback(info.LastName, fallback(lastName, defaultLastName)),
		AddressLine1: fallback(info.AddressLine1, defaultAddressLine),
		AddressLine2: info.AddressLine2,
		City:         fallback(info.City, defaultCity),
		PostalCode:   fallback(info.PostalCode, defaultPostalCode),
		CountryCode:  fallback(info.CountryCode, defaultCountry),
		Email:        fallback(info.Email, defaultEmail),
		Phone:        fallback(info.Phone, defaultPhone),
	}
}

// resolvePickupAddress builds the delivery block of a store reservation
// from the pickup store's identity.
func resolvePickupAddress(store *data.PickupStore) *retailprotocol.Address {
	if store == nil {
		store = &data.PickupStore{}
	}
	return &retailprotocol.Address{
		FirstName:    defaultStoreName,
		LastName:     fallback(store.Name, fallback(store.StoreID, defaultStoreName)),
		AddressLine1: fallback(store.Name, defaultAddressLine),
		City:         fallback(store.City, defaultCity),
		PostalCode:   fallback(store.PostalCode, defaultPostalCode),
		CountryCode:  fallback(store.Country, defaultCountry),
		Email:        fallback(store.Email, defaultEmail),
		Phone:        fallback(store.Phone, defaultPhone),
	}
}

func fallback(value, substitute string) string {
	if value == "" {
		return substitute
	}
	return value
}

func splitCustomerName(name string) (firstName, lastName string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
