package dbrepository

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"basket-bridge/internal/basketbridge/data"
	"basket-bridge/pkg/logging"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	invalidOperatorID = -1
)

type DBStorage interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) (pgx.Row, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryValue(ctx context.Context, query string, args []any, dest []any) error
}

type DBRepository struct {
	storage DBStorage
	logger  *logging.ZapLogger
}

func New(storage DBStorage, logger *logging.ZapLogger) *DBRepository {
	return &DBRepository{
		storage: storage,
		logger:  logger,
	}
}

//go:embed sql/insert_operator.sql
var insertOperatorQuery string

func (db *DBRepository) InsertOperator(ctx context.Context, login, passwordHash string) (operatorID int, err error) {
	err = db.storage.QueryValue(ctx, insertOperatorQuery, []any{login, passwordHash}, []any{&operatorID})
	if err != nil {
		return invalidOperatorID, handleSQLError(err)
	}
	return operatorID, nil
}

//go:embed sql/select_operator.sql
var selectOperatorQuery string

func (db *DBRepository) GetOperatorCredentials(
	ctx context.Context,
	login string,
) (operatorID int, passwordHash string, err error) {
	err = db.storage.QueryValue(ctx, selectOperatorQuery, []any{login}, []any{&operatorID, &passwordHash})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return invalidOperatorID, "", data.ErrInvalidLogin
		default:
			return invalidOperatorID, "", fmt.Errorf("failed to get operator credentials: %w", err)
		}
	}
	return operatorID, passwordHash, nil
}

//go:embed sql/upsert_order.sql
var upsertOrderQuery string

func (db *DBRepository) UpsertOrder(ctx context.Context, order *data.Order) error {
	deliveryInfo, err := marshalOptional(order.DeliveryInfo)
	if err != nil {
		return fmt.Errorf("failed to encode delivery info: %w", err)
	}
	pickupStore, err := marshalOptional(order.PickupStore)
	if err != nil {
		return fmt.Errorf("failed to encode pickup store: %w", err)
	}
	_, err = db.storage.Exec(
		ctx,
		upsertOrderQuery,
		order.ID,
		order.CustomerName,
		order.CustomerCode,
		string(order.Fulfillment),
		nullableTime(order.Timestamp),
		order.Total,
		string(order.Status),
		deliveryInfo,
		pickupStore,
	)
	if err != nil {
		return handleSQLError(err)
	}
	return nil
}

//go:embed sql/delete_order_items.sql
var deleteOrderItemsQuery string

//go:embed sql/insert_order_item.sql
var insertOrderItemQuery string

func (db *DBRepository) ReplaceOrderItems(ctx context.Context, orderID string, items []data.LineItem) error {
	_, err := db.storage.Exec(ctx, deleteOrderItemsQuery, orderID)
	if err != nil {
		return handleSQLError(err)
	}
	for i, item := range items {
		_, err := db.storage.Exec(
			ctx,
			insertOrderItemQuery,
			orderID,
			i+1,
			item.ID,
			item.SKU,
			item.ProductName,
			item.Price,
			item.Quantity,
			item.Thumbnail,
		)
		if err != nil {
			return handleSQLError(err)
		}
	}
	return nil
}

//go:embed sql/select_order.sql
var selectOrderQuery string

func (db *DBRepository) GetOrder(ctx context.Context, orderID string) (*data.Order, error) {
	db.logger.DebugCtx(ctx, "getting order", zap.String("orderID", orderID))

	order := data.Order{
		ID: orderID,
	}
	var (
		orderTime    *time.Time
		basketID     *string
		deliveryInfo []byte
		pickupStore  []byte
	)
	err := db.storage.QueryValue(
		ctx,
		selectOrderQuery,
		[]any{orderID},
		[]any{
			&order.CustomerName,
			&order.CustomerCode,
			&order.Fulfillment,
			&orderTime,
			&order.Total,
			&order.Status,
			&basketID,
			&deliveryInfo,
			&pickupStore,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, data.ErrOrderNotFound
		default:
			return nil, handleSQLError(err)
		}
	}
	if orderTime != nil {
		order.Timestamp = *orderTime
	}
	if basketID != nil {
		order.BasketID = *basketID
	}
	if err := unmarshalOptional(deliveryInfo, &order.DeliveryInfo); err != nil {
		return nil, fmt.Errorf("failed to decode delivery info: %w", err)
	}
	if err := unmarshalOptional(pickupStore, &order.PickupStore); err != nil {
		return nil, fmt.Errorf("failed to decode pickup store: %w", err)
	}

	items, err := db.getOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

//go:embed sql/select_order_items.sql
var selectOrderItemsQuery string

func (db *DBRepository) getOrderItems(ctx context.Context, orderID string) ([]data.LineItem, error) {
	rows, err := db.storage.Query(ctx, selectOrderItemsQuery, orderID)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.LineItem, 0)
	for rows.Next() {
		var item data.LineItem
		err := rows.Scan(
			&item.ID,
			&item.SKU,
			&item.ProductName,
			&item.Price,
			&item.Quantity,
			&item.Thumbnail,
		)
		if err != nil {
			return nil, handleSQLError(err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	return result, nil
}

//go:embed sql/select_orders_by_status.sql
var selectOrdersByStatusQuery string

func (db *DBRepository) GetOrdersByStatus(ctx context.Context, status data.Status) ([]data.Order, error) {
	rows, err := db.storage.Query(ctx, selectOrdersByStatusQuery, string(status))
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.Order, 0)
	for rows.Next() {
		var order data.Order
		var (
			orderTime *time.Time
			basketID  *string
		)
		err := rows.Scan(
			&order.ID,
			&order.CustomerName,
			&order.CustomerCode,
			&order.Fulfillment,
			&orderTime,
			&order.Total,
			&order.Status,
			&basketID,
		)
		if err != nil {
			return nil, handleSQLError(err)
		}
		if orderTime != nil {
			order.Timestamp = *orderTime
		}
		if basketID != nil {
			order.BasketID = *basketID
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}

	for i := range result {
		items, err := db.getOrderItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

//go:embed sql/update_order_handed_off.sql
var updateOrderHandedOffQuery string

func (db *DBRepository) SetOrderHandedOff(ctx context.Context, orderID string, basketID string) error {
	tag, err := db.storage.Exec(ctx, updateOrderHandedOffQuery, orderID, basketID)
	if err != nil {
		return handleSQLError(err)
	}
	if tag.RowsAffected() == 0 {
		return data.ErrOrderNotFound
	}
	return nil
}

func handleSQLError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return data.ErrUniqueConstraintViolation
		}
	}
	return err
}

func marshalOptional[T any](value *T) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	return json.Marshal(value)
}

func unmarshalOptional[T any](raw []byte, dest **T) error {
	if len(raw) == 0 {
		return nil
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}
	*dest = out
	return nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
