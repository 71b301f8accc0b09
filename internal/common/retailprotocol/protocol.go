package retailprotocol

import "github.com/shopspring/decimal"

const (
	BasketTypeReceipt = "RECEIPT"

	WorkflowHomeDelivery = "HOME_DELIVERY"
	WorkflowStorePickup  = "PICK_UP_IN_STORE"

	Scope     = "RetailBackendApi offline_access"
	GrantType = "password"
)

// TokenRequest is the JSON body sent to the local relay in proxy mode.
// In direct mode the same fields go out form-encoded.
type TokenRequest struct {
	GrantType string `json:"grant_type"`
	ClientID  string `json:"client_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Scope     string `json:"scope"`
}

type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int64  `json:"expires_in"`
	TokenType        string `json:"token_type"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type BasketPayload struct {
	ExternalReference string       `json:"externalReference"`
	BasketType        string       `json:"basketType"`
	ItemLines         []ItemLine   `json:"itemLines"`
	Store             Store        `json:"store"`
	Customer          *CustomerRef `json:"customer,omitempty"`
}

type ItemLine struct {
	ItemLineID      int             `json:"itemLineId"`
	Item            Item            `json:"item"`
	Quantity        int             `json:"quantity"`
	Price           Price           `json:"price"`
	LineAmount      LineAmount      `json:"lineAmount"`
	InventoryOrigin InventoryOrigin `json:"inventoryOrigin"`
	Workflow        string          `json:"workflow,omitempty"`
	DeliveryAddress *Address        `json:"deliveryAddress,omitempty"`
	InvoiceAddress  *Address        `json:"invoiceAddress,omitempty"`
}

type Item struct {
	ItemCode string `json:"itemCode"`
}

type Price struct {
	BasePrice    decimal.Decimal `json:"basePrice"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
}

type LineAmount struct {
	Currency string          `json:"currency"`
	Value    decimal.Decimal `json:"value"`
}

type InventoryOrigin struct {
	WarehouseID string `json:"warehouseId"`
}

type Store struct {
	StoreID string `json:"storeId"`
}

type CustomerRef struct {
	CustomerCode string `json:"customerCode"`
}

type Address struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	CountryCode  string `json:"countryCode"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

// BasketResponse covers both response generations of the external-basket
// API: the bare identifier fields and the explicit id+url pair.
type BasketResponse struct {
	BasketUUID        string `json:"basketUUID"`
	ID                string `json:"id"`
	UUID              string `json:"uuid"`
	BasketID          string `json:"basketId"`
	ExternalBasketID  string `json:"externalBasketId"`
	ExternalBasketURL string `json:"externalBasketUrl"`
	Message           string `json:"message"`
}

// ProxyBasketRequest wraps a basket submission for the local relay:
// the relay forwards Payload to URL with Token as the bearer.
type ProxyBasketRequest struct {
	URL     string        `json:"url"`
	Token   string        `json:"token"`
	Payload BasketPayload `json:"payload"`
}
