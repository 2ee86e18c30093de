package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
)

// ConfigurationService reads and writes the global rates.
type ConfigurationService struct {
	config contracts.ConfigurationGateway
}

// NewConfigurationService creates a configuration service.
func NewConfigurationService(config contracts.ConfigurationGateway) *ConfigurationService {
	return &ConfigurationService{config: config}
}

// Rates loads every rate concurrently, in admin.RateKinds order.
func (s *ConfigurationService) Rates(ctx context.Context) ([]admin.Rate, error) {
	kinds := admin.RateKinds()
	rates := make([]admin.Rate, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			rate, err := s.config.GetRate(gctx, kind)
			if err != nil {
				return err
			}
			rates[i] = rate
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rates, nil
}

// SaveRate parses raw and saves it. Input that is not a number of 0 or more
// fails with admin.ErrInvalidRate before any request is made.
func (s *ConfigurationService) SaveRate(ctx context.Context, kind admin.RateKind, raw string) (float64, error) {
	if !kind.Valid() {
		return 0, admin.ErrInvalidRate
	}
	value, err := admin.ParseRate(raw)
	if err != nil {
		return 0, err
	}
	if err := s.config.SaveRate(ctx, kind, value); err != nil {
		return 0, err
	}
	return value, nil
}
