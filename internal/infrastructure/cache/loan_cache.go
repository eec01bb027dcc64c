// Package cache provides a Redis read-through cache over assembled loan
// views. Loans are immutable once created, so a short TTL only has to cover
// bulk re-ingestion overwrites.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/creditdesk/credit-engine/internal/application/dto"
)

const loanTTL = 5 * time.Minute

// LoanCache implements usecase.LoanDetailCache over Redis. All failures are
// logged and treated as misses; the cache never fails a request.
type LoanCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewLoanCache creates a cache over the given Redis address.
func NewLoanCache(addr string, logger *slog.Logger) *LoanCache {
	return &LoanCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		logger: logger,
	}
}

// Get returns the cached loan view, if present.
func (c *LoanCache) Get(ctx context.Context, loanID int64) (dto.LoanDetailResponse, bool) {
	raw, err := c.client.Get(ctx, loanKey(loanID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "loan cache read failed", "loan_id", loanID, "error", err)
		}
		return dto.LoanDetailResponse{}, false
	}

	var detail dto.LoanDetailResponse
	if err := json.Unmarshal(raw, &detail); err != nil {
		c.logger.WarnContext(ctx, "loan cache entry corrupt", "loan_id", loanID, "error", err)
		return dto.LoanDetailResponse{}, false
	}
	return detail, true
}

// Set stores the loan view under a short TTL.
func (c *LoanCache) Set(ctx context.Context, loanID int64, detail dto.LoanDetailResponse) {
	raw, err := json.Marshal(detail)
	if err != nil {
		c.logger.WarnContext(ctx, "loan cache marshal failed", "loan_id", loanID, "error", err)
		return
	}
	if err := c.client.Set(ctx, loanKey(loanID), raw, loanTTL).Err(); err != nil {
		c.logger.WarnContext(ctx, "loan cache write failed", "loan_id", loanID, "error", err)
	}
}

// Close releases the underlying Redis connection.
func (c *LoanCache) Close() error {
	return c.client.Close()
}

func loanKey(id int64) string {
	return fmt.Sprintf("loan:%d", id)
}
