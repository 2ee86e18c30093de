package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"flightadmin/domain/listing"
)

// BuildListParams turns q into query parameters, omitting empty values.
// Page and perPage are always sent since a normalized query keeps them positive.
func BuildListParams(q listing.ListQuery) url.Values {
	params := url.Values{}
	page, perPage := q.Page, q.PerPage
	if page < 1 {
		page = listing.DefaultPage
	}
	if perPage < 1 {
		perPage = listing.DefaultPerPage
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("perPage", strconv.Itoa(perPage))
	if q.Search != "" {
		params.Set(listing.ParamSearch, q.Search)
	}
	if q.OrderBy != "" {
		params.Set(listing.ParamOrderBy, q.OrderBy)
	}
	if q.OrderDirection != listing.DirectionNone {
		params.Set(listing.ParamOrderDirection, string(q.OrderDirection))
	}
	for k, v := range q.Extra {
		if v != "" {
			params.Set(k, v)
		}
	}
	return params
}

// DecodeList normalizes a listing response body into a ListResult. The shape
// is detected in order: _metadata.pagination, metadata.pagination, an object
// without pagination, a bare array.
func DecodeList[T any](body []byte, q listing.ListQuery) (*listing.ListResult[T], error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty response body")
	}

	if body[0] == '[' {
		items, err := decodeItems[T](body)
		if err != nil {
			return nil, err
		}
		return withoutPagination(items, listing.ShapeBareArray), nil
	}

	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	items, err := decodeItems[T](env.Data)
	if err != nil {
		return nil, err
	}

	var (
		pag   *paginationJSON
		shape listing.Shape
	)
	switch {
	case env.UnderscoreMetadata != nil && env.UnderscoreMetadata.Pagination != nil:
		pag, shape = env.UnderscoreMetadata.Pagination, listing.ShapeUnderscoreMetadata
	case env.Metadata != nil && env.Metadata.Pagination != nil:
		pag, shape = env.Metadata.Pagination, listing.ShapeMetadata
	default:
		return withoutPagination(items, listing.ShapeEnvelope), nil
	}

	perPage := pag.PerPage
	if perPage < 1 {
		perPage = q.PerPage
	}
	total := pag.Total
	if total < 0 {
		total = 0
	}
	totalPage := pag.TotalPage
	if totalPage < 1 {
		totalPage = listing.TotalPages(total, perPage)
	}

	direction, _ := listing.ParseDirection(pag.OrderDirection)
	return &listing.ListResult[T]{
		Items:     items,
		Total:     total,
		TotalPage: totalPage,
		Shape:     shape,
		Applied: &listing.AppliedQuery{
			Page:                    pag.Page,
			PerPage:                 pag.PerPage,
			OrderBy:                 pag.OrderBy,
			OrderDirection:          direction,
			AvailableSearch:         pag.AvailableSearch,
			AvailableOrderBy:        pag.AvailableOrderBy,
			AvailableOrderDirection: pag.AvailableOrderDirection,
		},
	}, nil
}

func decodeItems[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	items := []T{}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode list items: %w", err)
	}
	return items, nil
}

func withoutPagination[T any](items []T, shape listing.Shape) *listing.ListResult[T] {
	return &listing.ListResult[T]{
		Items:     items,
		Total:     len(items),
		TotalPage: 1,
		Shape:     shape,
	}
}

// FetchList fetches and normalizes one page of a listing endpoint. Any
// failure comes back as a *ListFetchError naming resource. There is no retry.
func FetchList[T any](ctx context.Context, c *Client, resource, path string, q listing.ListQuery) (*listing.ListResult[T], error) {
	body, err := c.do(ctx, http.MethodGet, path, BuildListParams(q), nil)
	if err != nil {
		return nil, &ListFetchError{Resource: resource, Err: err}
	}
	result, err := DecodeList[T](body, q)
	if err != nil {
		return nil, &ListFetchError{Resource: resource, Err: err}
	}
	return result, nil
}
