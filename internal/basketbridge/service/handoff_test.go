package service

import (
	"context"
	"errors"
	"testing"

	"basket-bridge/internal/basketbridge/data"
	"basket-bridge/internal/basketbridge/retail"
	"basket-bridge/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepository struct {
	order        *data.Order
	getErr       error
	markErr      error
	markedID     string
	markedBasket string
}

func (f *fakeOrderRepository) UpsertOrder(_ context.Context, _ *data.Order) error {
	return nil
}

func (f *fakeOrderRepository) ReplaceOrderItems(_ context.Context, _ string, _ []data.LineItem) error {
	return nil
}

func (f *fakeOrderRepository) GetOrder(_ context.Context, _ string) (*data.Order, error) {
	return f.order, f.getErr
}

func (f *fakeOrderRepository) GetOrdersByStatus(_ context.Context, _ data.Status) ([]data.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepository) SetOrderHandedOff(_ context.Context, orderID string, basketID string) error {
	f.markedID = orderID
	f.markedBasket = basketID
	return f.markErr
}

type fakeSubmitter struct {
	result    retail.SubmissionResult
	err       error
	lastOrder *data.Order
	lastCfg   retail.Config
	calls     int
}

func (f *fakeSubmitter) Submit(_ context.Context, order *data.Order, cfg retail.Config) (retail.SubmissionResult, error) {
	f.calls++
	f.lastOrder = order
	f.lastCfg = cfg
	return f.result, f.err
}

type fakeSettings struct {
	cfg retail.Config
}

func (f *fakeSettings) Snapshot() retail.Config {
	return f.cfg
}

func TestHandOffSubmitsAndMarksOrder(t *testing.T) {
	repository := &fakeOrderRepository{
		order: &data.Order{ID: "3901234567", Status: data.PendingStatus},
	}
	submitter := &fakeSubmitter{
		result: retail.SubmissionResult{BasketID: "b-42", RedirectURL: "https://pos.example/?basketId=b-42"},
	}
	settings := &fakeSettings{cfg: retail.Config{StoreID: "UK201"}}
	handoff := NewHandoff(repository, submitter, settings, logging.NewNop())

	result, err := handoff.HandOff(context.Background(), "3901234567")
	require.NoError(t, err)

	assert.Equal(t, "b-42", result.BasketID)
	assert.Equal(t, "3901234567", submitter.lastOrder.ID)
	assert.Equal(t, "UK201", submitter.lastCfg.StoreID, "submission must use the current config snapshot")
	assert.Equal(t, "3901234567", repository.markedID)
	assert.Equal(t, "b-42", repository.markedBasket)
}

func TestHandOffUnknownOrder(t *testing.T) {
	repository := &fakeOrderRepository{getErr: data.ErrOrderNotFound}
	submitter := &fakeSubmitter{}
	handoff := NewHandoff(repository, submitter, &fakeSettings{}, logging.NewNop())

	_, err := handoff.HandOff(context.Background(), "missing")

	require.ErrorIs(t, err, data.ErrOrderNotFound)
	assert.Equal(t, 0, submitter.calls)
}

func TestHandOffAlreadyHandedOff(t *testing.T) {
	repository := &fakeOrderRepository{
		order: &data.Order{ID: "3901234567", Status: data.HandedOffStatus, BasketID: "b-1"},
	}
	submitter := &fakeSubmitter{}
	handoff := NewHandoff(repository, submitter, &fakeSettings{}, logging.NewNop())

	_, err := handoff.HandOff(context.Background(), "3901234567")

	require.ErrorIs(t, err, ErrOrderAlreadyHandedOff)
	assert.Equal(t, 0, submitter.calls, "a handed-off order must never be resubmitted")
}

func TestHandOffSubmissionFailureLeavesOrderPending(t *testing.T) {
	repository := &fakeOrderRepository{
		order: &data.Order{ID: "3901234567", Status: data.PendingStatus},
	}
	submitter := &fakeSubmitter{err: &retail.APIError{Status: 409, Message: "basket already exists"}}
	handoff := NewHandoff(repository, submitter, &fakeSettings{}, logging.NewNop())

	_, err := handoff.HandOff(context.Background(), "3901234567")

	apiErr := &retail.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, repository.markedID, "a failed submission must not mark the order")
}

func TestHandOffMarkFailureStillReturnsRedirect(t *testing.T) {
	repository := &fakeOrderRepository{
		order:   &data.Order{ID: "3901234567", Status: data.PendingStatus},
		markErr: errors.New("connection lost"),
	}
	submitter := &fakeSubmitter{
		result: retail.SubmissionResult{BasketID: "b-42", RedirectURL: "https://pos.example/?basketId=b-42"},
	}
	handoff := NewHandoff(repository, submitter, &fakeSettings{}, logging.NewNop())

	result, err := handoff.HandOff(context.Background(), "3901234567")

	require.NoError(t, err, "the basket exists upstream; the operator still gets the redirect")
	assert.Equal(t, "b-42", result.BasketID)
}
