package feedmonitor

import (
	"context"
	"sync"
	"time"

	"basket-bridge/internal/basketbridge/data"
	"basket-bridge/pkg/logging"
	"basket-bridge/pkg/threadsafe"
	"go.uber.org/zap"
)

type OrdersFeed interface {
	FetchOrders(ctx context.Context) ([]data.Order, error)
}

type OrderIngester interface {
	IngestOrder(ctx context.Context, order data.Order) error
}

type Config struct {
	TickPeriod        time.Duration
	WorkersCount      int
	TasksBufferLength int
}

// FeedMonitor periodically pulls the pending-order feed and ingests
// each order through a worker pool. Orders already in flight are
// skipped so a slow ingest never piles up duplicates.
type FeedMonitor struct {
	feed             OrdersFeed
	ingester         OrderIngester
	processingOrders *threadsafe.HashSet[string]
	config           Config
	logger           *logging.ZapLogger
	done             chan struct{}
}

func NewFeedMonitor(
	config Config,
	feed OrdersFeed,
	ingester OrderIngester,
	logger *logging.ZapLogger,
) *FeedMonitor {
	return &FeedMonitor{
		feed:             feed,
		ingester:         ingester,
		config:           config,
		processingOrders: threadsafe.NewHashSet[string](),
		logger:           logger,
		done:             make(chan struct{}),
	}
}

func (fm *FeedMonitor) Run() {
	ordersChan := make(chan data.Order, fm.config.TasksBufferLength)

	wg := &sync.WaitGroup{}

	for i := 0; i < fm.config.WorkersCount; i++ {
		wg.Add(1)
		go func(ordersChan <-chan data.Order) {
			defer wg.Done()
			fm.worker(ordersChan)
		}(ordersChan)
	}

	wg.Add(1)
	go func(ordersChan chan<- data.Order) {
		defer wg.Done()
		fm.scheduler(ordersChan)
	}(ordersChan)

	wg.Wait()
}

func (fm *FeedMonitor) Stop() {
	close(fm.done)
}

func (fm *FeedMonitor) scheduler(ordersChan chan<- data.Order) {
	defer close(ordersChan)

	ticker := time.NewTicker(fm.config.TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-fm.done:
			return
		case <-ticker.C:
			if err := fm.tick(ordersChan); err != nil {
				fm.logger.ErrorCtx(context.Background(), "error while scheduling feed orders", zap.Error(err))
			}
		}
	}
}

func (fm *FeedMonitor) tick(ordersChan chan<- data.Order) error {
	maxTasksToSchedule := fm.config.TasksBufferLength - len(ordersChan)
	if maxTasksToSchedule <= 0 {
		return nil
	}
	orders, err := fm.feed.FetchOrders(context.Background())
	if err != nil {
		return err
	}
	scheduled := 0
	for _, order := range orders {
		if scheduled >= maxTasksToSchedule {
			break
		}
		if !fm.processingOrders.Add(order.ID) {
			continue
		}
		fm.logger.DebugCtx(context.Background(), "scheduling order ingest", zap.String("orderID", order.ID))
		ordersChan <- order
		scheduled++
	}
	return nil
}

func (fm *FeedMonitor) worker(ordersChan <-chan data.Order) {
	for order := range ordersChan {
		err := fm.ingester.IngestOrder(context.Background(), order)
		fm.processingOrders.Remove(order.ID)
		if err != nil {
			fm.logger.ErrorCtx(context.Background(), "failed to ingest order",
				zap.String("orderID", order.ID),
				zap.Error(err),
			)
		}
	}
}
