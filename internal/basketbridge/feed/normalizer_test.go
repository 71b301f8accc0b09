package feed

import (
	"testing"
	"time"

	"basket-bridge/internal/basketbridge/data"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wrappedFeed = `{
	"orders": [
		{
			"id": "3901234567",
			"customer_name": "Alice Johnson",
			"timestamp": "2025-01-15T10:24:30Z",
			"items": [
				{"id": "1256347801", "sku": "MW0MW10800C1Z", "product_name": "Slim Jersey Crew Neck T-Shirt", "price": 40.00, "qty": 2},
				{"id": "1256347802", "sku": "DW0DW224541BK", "product_name": "Sylvia High Rise Flared Jeans", "price": 85.00, "qty": 1}
			]
		}
	]
}`

const bareFeed = `[
	{
		"id": "3901234570",
		"customer_name": "Brian Smith",
		"timestamp": "2025-01-15T11:05:10Z",
		"items": [
			{"id": "1256347810", "sku": "MW0MW11599L6K", "product_name": "Logo Embroidery Flex Fleece Hoody", "price": 110.00, "qty": 1}
		]
	}
]`

func TestNormalizeWrappedFeed(t *testing.T) {
	orders, err := Normalize([]byte(wrappedFeed))
	require.NoError(t, err)
	require.Len(t, orders, 1)

	order := orders[0]
	assert.Equal(t, "3901234567", order.ID)
	assert.Equal(t, "Alice Johnson", order.CustomerName)
	assert.Equal(t, data.InStore, order.Fulfillment)
	assert.Equal(t, data.PendingStatus, order.Status)
	assert.Equal(t, time.Date(2025, 1, 15, 10, 24, 30, 0, time.UTC), order.Timestamp)
	assert.Equal(t, 2, order.ItemCount())
	assert.True(t, order.Total.Equal(decimal.RequireFromString("165")), "total is %s", order.Total)
}

func TestNormalizeBareFeed(t *testing.T) {
	orders, err := Normalize([]byte(bareFeed))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "3901234570", orders[0].ID)
	assert.True(t, orders[0].Total.Equal(decimal.RequireFromString("110")))
}

func TestNormalizeInvalidDocument(t *testing.T) {
	_, err := Normalize([]byte(`"not a feed"`))
	assert.Error(t, err)
}

func TestNormalizeMissingItems(t *testing.T) {
	orders, err := Normalize([]byte(`{"orders": [{"id": "1", "customer_name": "Carla Reyes"}]}`))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 0, orders[0].ItemCount())
	assert.True(t, orders[0].Total.IsZero())
}

func TestNormalizeFulfillmentVariants(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected data.Fulfillment
	}{
		{
			name:     "absent defaults to in-store",
			raw:      `[{"id": "1"}]`,
			expected: data.InStore,
		},
		{
			name:     "unknown defaults to in-store",
			raw:      `[{"id": "1", "fulfillment": "CARRIER_PIGEON"}]`,
			expected: data.InStore,
		},
		{
			name:     "home delivery",
			raw:      `[{"id": "1", "fulfillment": "HOME_DELIVERY"}]`,
			expected: data.HomeDelivery,
		},
		{
			name:     "store reservation",
			raw:      `[{"id": "1", "fulfillment": "STORE_RESERVATION"}]`,
			expected: data.StoreReservation,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			orders, err := Normalize([]byte(test.raw))
			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.Equal(t, test.expected, orders[0].Fulfillment)
		})
	}
}

func TestNormalizeOptionalBlocks(t *testing.T) {
	raw := `[{
		"id": "2",
		"customer_name": "Brian Smith",
		"customer_code": "C-100",
		"fulfillment": "HOME_DELIVERY",
		"delivery_info": {"first_name": "Brian", "city": "Leeds", "country": "GBR"},
		"pickup_store": {"store_id": "UK202", "name": "Leeds Flagship"}
	}]`
	orders, err := Normalize([]byte(raw))
	require.NoError(t, err)
	require.Len(t, orders, 1)

	order := orders[0]
	assert.Equal(t, "C-100", order.CustomerCode)
	require.NotNil(t, order.DeliveryInfo)
	assert.Equal(t, "Brian", order.DeliveryInfo.FirstName)
	assert.Equal(t, "Leeds", order.DeliveryInfo.City)
	require.NotNil(t, order.PickupStore)
	assert.Equal(t, "UK202", order.PickupStore.StoreID)
}

// Zero and negative quantities and prices are passed through on
// purpose: the upstream feed is not schema-enforced and rejecting
// entries here would drop orders an operator may still want to see.
func TestNormalizeToleratesDegenerateValues(t *testing.T) {
	raw := `[{
		"id": "3",
		"items": [
			{"sku": "A", "price": 40.00, "qty": 0},
			{"sku": "B", "price": -5.00, "qty": 2}
		]
	}]`
	orders, err := Normalize([]byte(raw))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].ItemCount())
	assert.True(t, orders[0].Total.Equal(decimal.RequireFromString("-10")), "total is %s", orders[0].Total)
}

func TestNormalizeBadTimestamp(t *testing.T) {
	orders, err := Normalize([]byte(`[{"id": "4", "timestamp": "yesterday-ish"}]`))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].Timestamp.IsZero())
}
