package config

import (
	"flag"
	"os"
	"time"

	"basket-bridge/internal/basketbridge"
	"basket-bridge/internal/basketbridge/data/database"
	"basket-bridge/internal/basketbridge/feedmonitor"
	"basket-bridge/internal/basketbridge/ordersfeed"
	"basket-bridge/internal/basketbridge/retail"
)

const (
	serverAddressFlag    = "a"
	serverAddressEnv     = "RUN_ADDRESS"
	serverAddressDefault = "localhost:8080"

	dbConnectionStringFlag    = "d"
	dbConnectionStringEnv     = "DATABASE_URI"
	dbConnectionStringDefault = ""

	feedURLFlag    = "f"
	feedURLEnv     = "ORDER_FEED_URL"
	feedURLDefault = ""
)

// Vendor configuration comes from the environment. Only client ID and
// currency carry defaults; everything else must be provisioned per
// deployment (or later through PUT /api/config).
const (
	tokenURLEnv       = "RETAIL_TOKEN_URL"
	clientIDEnv       = "RETAIL_CLIENT_ID"
	clientIDDefault   = "CegidRetailResourceFlowClient"
	usernameEnv       = "RETAIL_USERNAME"
	passwordEnv       = "RETAIL_PASSWORD"
	apiBaseURLEnv     = "RETAIL_BASKET_API_URL"
	proxyURLEnv       = "RETAIL_PROXY_URL"
	storeIDEnv        = "RETAIL_STORE_ID"
	warehouseIDEnv    = "RETAIL_WAREHOUSE_ID"
	currencyEnv       = "RETAIL_CURRENCY"
	currencyDefault   = "GBP"
	posRedirectURLEnv = "RETAIL_POS_REDIRECT_URL"

	jwtSecretEnv     = "JWT_SECRET"
	jwtSecretDefault = "secret"
)

type Config struct {
	Server          basketbridge.Config
	JWTConfig       JWTConfig
	DB              database.Config
	Retail          retail.Config
	Feed            ordersfeed.Config
	Monitor         feedmonitor.Config
	ShutdownTimeout time.Duration
}

type JWTConfig struct {
	Algorithm      string
	Secret         string
	ExpirationTime time.Duration
}

func Load() (*Config, error) {
	serverAddress := flag.String(
		serverAddressFlag,
		serverAddressDefault,
		"Server address host:port",
	)

	dbConnectionString := flag.String(
		dbConnectionStringFlag,
		dbConnectionStringDefault,
		"PostgreSQL connection string",
	)

	feedURL := flag.String(
		feedURLFlag,
		feedURLDefault,
		"Pending-order feed URL (empty disables polling)",
	)

	flag.Parse()

	if valStr, ok := os.LookupEnv(serverAddressEnv); ok {
		*serverAddress = valStr
	}

	if valStr, ok := os.LookupEnv(dbConnectionStringEnv); ok {
		*dbConnectionString = valStr
	}

	if valStr, ok := os.LookupEnv(feedURLEnv); ok {
		*feedURL = valStr
	}

	return &Config{
		Server: basketbridge.Config{
			ServerAddress:   *serverAddress,
			ShutdownTimeout: time.Second * 5,
		},
		JWTConfig: JWTConfig{
			Algorithm:      "HS256",
			Secret:         envOr(jwtSecretEnv, jwtSecretDefault),
			ExpirationTime: time.Hour,
		},
		DB: database.Config{
			ConnectionString: *dbConnectionString,
		},
		Retail: retail.Config{
			TokenURL:       envOr(tokenURLEnv, ""),
			ClientID:       envOr(clientIDEnv, clientIDDefault),
			Username:       envOr(usernameEnv, ""),
			Password:       envOr(passwordEnv, ""),
			APIBaseURL:     envOr(apiBaseURLEnv, ""),
			ProxyURL:       envOr(proxyURLEnv, ""),
			StoreID:        envOr(storeIDEnv, ""),
			WarehouseID:    envOr(warehouseIDEnv, ""),
			Currency:       envOr(currencyEnv, currencyDefault),
			POSRedirectURL: envOr(posRedirectURLEnv, ""),
		},
		Feed: ordersfeed.Config{
			FeedURL: *feedURL,
			RetryDelays: []time.Duration{
				time.Second,
				time.Second * 3,
				time.Second * 5,
			},
		},
		Monitor: feedmonitor.Config{
			TickPeriod:        time.Second * 15,
			WorkersCount:      3,
			TasksBufferLength: 64,
		},
		ShutdownTimeout: time.Second * 5,
	}, nil
}

func envOr(name, fallback string) string {
	if valStr, ok := os.LookupEnv(name); ok {
		return valStr
	}
	return fallback
}
