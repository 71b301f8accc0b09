package data

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	NullStatus      = Status("")
	PendingStatus   = Status("NEW")
	HandedOffStatus = Status("HANDED_OFF")
)

type Fulfillment string

const (
	InStore          = Fulfillment("IN_STORE")
	HomeDelivery     = Fulfillment("HOME_DELIVERY")
	StoreReservation = Fulfillment("STORE_RESERVATION")
)

// Order is the canonical order model. Identifiers are vendor-assigned
// opaque strings. Total keeps full decimal precision; rounding to two
// places happens only at the presentation edge.
type Order struct {
	ID           string
	CustomerName string
	CustomerCode string
	Fulfillment  Fulfillment
	Timestamp    time.Time
	Items        []LineItem
	Total        decimal.Decimal
	Status       Status
	BasketID     string
	DeliveryInfo *DeliveryInfo
	PickupStore  *PickupStore
}

func (o *Order) ItemCount() int {
	return len(o.Items)
}

type LineItem struct {
	ID          string
	SKU         string
	ProductName string
	Price       decimal.Decimal
	Quantity    int
	Thumbnail   string
}

type DeliveryInfo struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	CountryCode  string `json:"country"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

type PickupStore struct {
	StoreID    string `json:"store_id"`
	Name       string `json:"name"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}
