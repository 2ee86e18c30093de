package application

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"flightadmin/domain/admin"
	"flightadmin/domain/contracts"
	"flightadmin/domain/listing"
)

const countriesKey = "countries"

// countryPageSize is large enough to fetch every country in one request.
const countryPageSize = 300

// CountryService serves the country list used by form selects, cached.
type CountryService struct {
	gateway contracts.CountryGateway
	cache   *gocache.Cache
}

// NewCountryService caches the country list for ttl.
func NewCountryService(gateway contracts.CountryGateway, ttl time.Duration) *CountryService {
	return &CountryService{
		gateway: gateway,
		cache:   gocache.New(ttl, 2*ttl),
	}
}

// List returns every country sorted by name. Failures are not cached.
func (s *CountryService) List(ctx context.Context) ([]admin.Country, error) {
	if v, ok := s.cache.Get(countriesKey); ok {
		return v.([]admin.Country), nil
	}

	res, err := s.gateway.ListCountries(ctx, listing.ListQuery{
		Page:           1,
		PerPage:        countryPageSize,
		OrderBy:        "name",
		OrderDirection: listing.DirectionAsc,
	})
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(countriesKey, res.Items)
	return res.Items, nil
}

// Invalidate drops the cached list.
func (s *CountryService) Invalidate() {
	s.cache.Delete(countriesKey)
}
