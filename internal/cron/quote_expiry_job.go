package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/logger"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/metrics"
)

const defaultSweepBatchSize = 200

type quoteExpirer interface {
	ExpireQuotes(ctx context.Context, now time.Time, batchSize int) (int, error)
}

// QuoteExpiryJobParams configure the quote expiry sweep.
type QuoteExpiryJobParams struct {
	Logger    *logger.Logger
	Bookings  quoteExpirer
	Metrics   *metrics.CronJobMetrics
	BatchSize int
}

// NewQuoteExpiryJob sweeps bookings whose quote validity window closed back
// to quote_requested.
func NewQuoteExpiryJob(params QuoteExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Bookings == nil {
		return nil, fmt.Errorf("bookings service required")
	}
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = defaultSweepBatchSize
	}
	return &quoteExpiryJob{
		logg:      params.Logger,
		bookings:  params.Bookings,
		metrics:   params.Metrics,
		batchSize: batchSize,
		now:       time.Now,
	}, nil
}

type quoteExpiryJob struct {
	logg      *logger.Logger
	bookings  quoteExpirer
	metrics   *metrics.CronJobMetrics
	batchSize int
	now       func() time.Time
}

func (j *quoteExpiryJob) Name() string { return "quote-expiry" }

func (j *quoteExpiryJob) Run(ctx context.Context) error {
	swept, err := j.bookings.ExpireQuotes(ctx, j.now().UTC(), j.batchSize)
	if j.metrics != nil {
		j.metrics.AddSwept(j.Name(), swept)
	}
	if err != nil {
		return fmt.Errorf("quote expiry sweep: %w", err)
	}
	logCtx := j.logg.WithField(ctx, "quotes_expired", swept)
	j.logg.Info(logCtx, "quote expiry sweep complete")
	return nil
}
