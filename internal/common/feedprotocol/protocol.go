package feedprotocol

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	InStore          Fulfillment = "IN_STORE"
	HomeDelivery     Fulfillment = "HOME_DELIVERY"
	StoreReservation Fulfillment = "STORE_RESERVATION"
)

type Fulfillment string

// Feed is the upstream pending-orders document. The vendor emits it
// either as an object with an "orders" field or as a bare array.
type Feed struct {
	Orders []Order
}

func (f *Feed) UnmarshalJSON(data []byte) error {
	wrapper := struct {
		Orders []Order `json:"orders"`
	}{}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Orders != nil {
		f.Orders = wrapper.Orders
		return nil
	}
	var bare []Order
	if err := json.Unmarshal(data, &bare); err != nil {
		return err
	}
	f.Orders = bare
	return nil
}

type Order struct {
	ID           string        `json:"id"`
	CustomerName string        `json:"customer_name"`
	CustomerCode string        `json:"customer_code"`
	Fulfillment  Fulfillment   `json:"fulfillment"`
	Timestamp    string        `json:"timestamp"`
	Items        []Item        `json:"items"`
	DeliveryInfo *DeliveryInfo `json:"delivery_info"`
	PickupStore  *PickupStore  `json:"pickup_store"`
}

type Item struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"qty"`
	Thumbnail   string          `json:"thumbnail"`
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
