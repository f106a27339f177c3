package handlers

import (
	"context"
	"time"

	"returnsconsole/internal/metrics"
	"returnsconsole/internal/returns"
)

// Store supplies the already fetched snapshots the console reads.
type Store interface {
	Ping(ctx context.Context) error
	Products(ctx context.Context) ([]returns.Product, error)
	Catalog(ctx context.Context) (returns.Catalog, error)
	Orders(ctx context.Context) ([]returns.Order, error)
	Order(ctx context.Context, id returns.ID) (returns.Order, error)
	Customer(ctx context.Context, id returns.ID) (returns.Customer, error)
}

type Deps struct {
	Store          Store
	Metrics        *metrics.Registry
	RequestTimeout time.Duration
	Currency       string
}

func (d Deps) timeout() time.Duration {
	if d.RequestTimeout <= 0 {
		return 5 * time.Second
	}
	return d.RequestTimeout
}
