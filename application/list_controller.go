package application

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"flightadmin/domain/contracts"
	"flightadmin/domain/listing"
	"flightadmin/logging"
)

var errFetchAborted = errors.New("list fetch aborted")

// ListController drives one listing screen: it reads the URL into the store,
// fetches the page and applies the result unless a newer load superseded it.
type ListController[T listing.Identifiable] struct {
	resource string
	bridge   listing.Bridge
	fetcher  contracts.ListFetcher[T]
	store    *ListStore[T]
	logger   *logging.Logger
}

// NewListController creates a controller for screen backed by fetcher.
func NewListController[T listing.Identifiable](resource string, screen listing.Screen, fetcher contracts.ListFetcher[T]) *ListController[T] {
	return &ListController[T]{
		resource: resource,
		bridge:   listing.NewBridge(screen),
		fetcher:  fetcher,
		store:    NewListStore[T](screen.DefaultQuery()),
		logger:   logging.Default().WithComponent("list_controller"),
	}
}

// Bridge returns the URL bridge of the screen.
func (c *ListController[T]) Bridge() listing.Bridge {
	return c.bridge
}

// Store returns the screen's state store.
func (c *ListController[T]) Store() *ListStore[T] {
	return c.store
}

// Load parses values into the query, fetches the page and returns the state
// to render. The fetch error, if any, is returned for classification only:
// the store has already degraded to an empty page. A result that arrives
// after a newer Load began is discarded.
func (c *ListController[T]) Load(ctx context.Context, values url.Values) (ListSnapshot[T], error) {
	q := c.bridge.Read(values)
	gen := c.store.BeginFetch(q)
	applied, err := c.fetch(ctx, gen, q)
	if !applied {
		c.logger.WithContext(ctx).Debug("Discarded stale list response",
			"resource", c.resource, "generation", gen)
	}
	return c.store.Snapshot(), err
}

// fetch runs one fetch and always completes generation gen, even on panic.
func (c *ListController[T]) fetch(ctx context.Context, gen uint64, q listing.ListQuery) (applied bool, err error) {
	var res *listing.ListResult[T]
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c.store.CompleteFetch(gen, nil, errFetchAborted)
			panic(r)
		}
		applied = c.store.CompleteFetch(gen, res, err)
	}()

	res, err = c.fetcher.FetchList(ctx, q)

	shape := listing.ShapeUnknown
	if res != nil {
		shape = res.Shape
	}
	c.logger.Performance("list_fetch", time.Since(start),
		slog.String("resource", c.resource),
		slog.Int("page", q.Page),
		slog.Int("per_page", q.PerPage),
		slog.String("shape", shape.String()),
		slog.Bool("failed", err != nil))
	if err != nil {
		c.logger.WithContext(ctx).Warn("List fetch failed", "resource", c.resource, "error", err)
	}
	return applied, err
}
