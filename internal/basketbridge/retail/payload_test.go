package retail

import (
	"encoding/json"
	"testing"

	"basket-bridge/internal/basketbridge/data"
	"basket-bridge/internal/common/retailprotocol"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		TokenURL:       "https://vendor.example/as/connect/token",
		ClientID:       "CegidRetailResourceFlowClient",
		Username:       "operator",
		Password:       "secret",
		APIBaseURL:     "https://vendor.example/pos/external-basket/v1",
		StoreID:        "UK201",
		WarehouseID:    "UK201",
		Currency:       "GBP",
		POSRedirectURL: "https://vendor.example/pos/",
	}
}

func inStoreOrder() *data.Order {
	return &data.Order{
		ID:          "3901234567",
		Fulfillment: data.InStore,
		Items: []data.LineItem{
			{
				ID:       "1256347801",
				SKU:      "MW0MW10800C1Z",
				Price:    decimal.RequireFromString("40.00"),
				Quantity: 2,
			},
		},
	}
}

func TestBuildPayloadInStore(t *testing.T) {
	payload := BuildPayload(inStoreOrder(), testConfig())

	assert.Equal(t, "3901234567", payload.ExternalReference)
	assert.Equal(t, retailprotocol.BasketTypeReceipt, payload.BasketType)
	assert.Equal(t, "UK201", payload.Store.StoreID)
	assert.Nil(t, payload.Customer)

	require.Len(t, payload.ItemLines, 1)
	line := payload.ItemLines[0]
	assert.Equal(t, 1, line.ItemLineID)
	assert.Equal(t, "MW0MW10800C1Z", line.Item.ItemCode)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.Price.BasePrice.Equal(decimal.RequireFromString("40.00")))
	assert.True(t, line.Price.CurrentPrice.Equal(decimal.RequireFromString("40.00")))
	assert.Equal(t, "GBP", line.LineAmount.Currency)
	assert.True(t, line.LineAmount.Value.Equal(decimal.RequireFromString("80.00")), "line amount is %s", line.LineAmount.Value)
	assert.Equal(t, "UK201", line.InventoryOrigin.WarehouseID)
	assert.Empty(t, line.Workflow)
	assert.Nil(t, line.DeliveryAddress)
	assert.Nil(t, line.InvoiceAddress)
}

func TestBuildPayloadSequentialLineIDs(t *testing.T) {
	order := inStoreOrder()
	order.Items = append(order.Items, data.LineItem{
		SKU:      "DW0DW224541BK",
		Price:    decimal.RequireFromString("85.00"),
		Quantity: 1,
	})

	payload := BuildPayload(order, testConfig())

	require.Len(t, payload.ItemLines, 2)
	assert.Equal(t, 1, payload.ItemLines[0].ItemLineID)
	assert.Equal(t, 2, payload.ItemLines[1].ItemLineID)
}

func TestBuildPayloadCustomerCode(t *testing.T) {
	order := inStoreOrder()
	order.CustomerCode = "C-100"

	payload := BuildPayload(order, testConfig())

	require.NotNil(t, payload.Customer)
	assert.Equal(t, "C-100", payload.Customer.CustomerCode)
}

func TestBuildPayloadHomeDeliveryMissingInfo(t *testing.T) {
	order := inStoreOrder()
	order.Fulfillment = data.HomeDelivery
	order.CustomerName = "Alice Johnson"

	payload := BuildPayload(order, testConfig())

	require.Len(t, payload.ItemLines, 1)
	line := payload.ItemLines[0]
	assert.Equal(t, CentralWarehouseID, line.InventoryOrigin.WarehouseID)
	assert.Equal(t, retailprotocol.WorkflowHomeDelivery, line.Workflow)

	require.NotNil(t, line.DeliveryAddress)
	assert.Equal(t, "Alice", line.DeliveryAddress.FirstName)
	assert.Equal(t, "Johnson", line.DeliveryAddress.LastName)
	assert.Equal(t, "London", line.DeliveryAddress.City)
	assert.Equal(t, "GBR", line.DeliveryAddress.CountryCode)
	assert.NotEmpty(t, line.DeliveryAddress.Email)
	assert.NotEmpty(t, line.DeliveryAddress.Phone)
	assert.Nil(t, line.InvoiceAddress)
}

func TestBuildPayloadHomeDeliveryFullInfo(t *testing.T) {
	order := inStoreOrder()
	order.Fulfillment = data.HomeDelivery
	order.DeliveryInfo = &data.DeliveryInfo{
		FirstName:    "Brian",
		LastName:     "Smith",
		AddressLine1: "1 High Street",
		City:         "Leeds",
		PostalCode:   "LS1 1AA",
		CountryCode:  "GBR",
		Email:        "brian@example.com",
		Phone:        "07000000001",
	}

	payload := BuildPayload(order, testConfig())

	address := payload.ItemLines[0].DeliveryAddress
	require.NotNil(t, address)
	assert.Equal(t, "Brian", address.FirstName)
	assert.Equal(t, "1 High Street", address.AddressLine1)
	assert.Equal(t, "Leeds", address.City)
	assert.Equal(t, "brian@example.com", address.Email)
}

func TestBuildPayloadStoreReservation(t *testing.T) {
	order := inStoreOrder()
	order.Fulfillment = data.StoreReservation
	order.CustomerName = "Carla Reyes"
	order.PickupStore = &data.PickupStore{
		StoreID:    "UK202",
		Name:       "Leeds Flagship",
		City:       "Leeds",
		PostalCode: "LS1 1AA",
		Country:    "GBR",
	}

	payload := BuildPayload(order, testConfig())

	require.Len(t, payload.ItemLines, 1)
	line := payload.ItemLines[0]
	assert.Equal(t, "UK201", line.InventoryOrigin.WarehouseID, "reservations ship from the local warehouse")
	assert.Equal(t, retailprotocol.WorkflowStorePickup, line.Workflow)

	require.NotNil(t, line.DeliveryAddress)
	assert.Equal(t, "Leeds Flagship", line.DeliveryAddress.LastName)
	assert.Equal(t, "Leeds", line.DeliveryAddress.City)

	require.NotNil(t, line.InvoiceAddress)
	assert.Equal(t, "Carla", line.InvoiceAddress.FirstName)
	assert.Equal(t, "London", line.InvoiceAddress.City)
	assert.Equal(t, "GBR", line.InvoiceAddress.CountryCode)
}

func TestBuildPayloadStoreReservationMissingStore(t *testing.T) {
	order := inStoreOrder()
	order.Fulfillment = data.StoreReservation

	payload := BuildPayload(order, testConfig())

	address := payload.ItemLines[0].DeliveryAddress
	require.NotNil(t, address)
	assert.Equal(t, "London", address.City)
	assert.Equal(t, "GBR", address.CountryCode)
}

func TestBuildPayloadIsPure(t *testing.T) {
	order := inStoreOrder()
	order.Fulfillment = data.HomeDelivery
	order.CustomerName = "Alice Johnson"
	cfg := testConfig()

	first, err := json.Marshal(BuildPayload(order, cfg))
	require.NoError(t, err)
	second, err := json.Marshal(BuildPayload(order, cfg))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
