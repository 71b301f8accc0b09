package clientprotocol

import "time"

const (
	Null      OrderStatus = ""
	Pending   OrderStatus = "PENDING"
	HandedOff OrderStatus = "HANDED_OFF"
)

type OrderStatus string

type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customer_name"`
	Fulfillment  string      `json:"fulfillment"`
	Timestamp    time.Time   `json:"timestamp"`
	Total        float64     `json:"total"`
	ItemCount    int         `json:"item_count"`
	Status       OrderStatus `json:"status"`
	Items        []Item      `json:"items,omitempty"`
}

type Item struct {
	ID          string  `json:"id"`
	SKU         string  `json:"sku"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"qty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
}
