package listing

// Shape records which response layout the listing endpoint returned.
type Shape int

const (
	// ShapeUnknown is the zero value; no response has been decoded.
	ShapeUnknown Shape = iota
	// ShapeUnderscoreMetadata is {data, _metadata: {pagination}}.
	ShapeUnderscoreMetadata
	// ShapeMetadata is {data, metadata: {pagination}}.
	ShapeMetadata
	// ShapeEnvelope is {data} without pagination metadata.
	ShapeEnvelope
	// ShapeBareArray is a JSON array with no envelope at all.
	ShapeBareArray
)

func (s Shape) String() string {
	switch s {
	case ShapeUnderscoreMetadata:
		return "_metadata.pagination"
	case ShapeMetadata:
		return "metadata.pagination"
	case ShapeEnvelope:
		return "envelope"
	case ShapeBareArray:
		return "bare_array"
	default:
		return "unknown"
	}
}

// HasPagination reports whether the shape carried server pagination metadata.
func (s Shape) HasPagination() bool {
	return s == ShapeUnderscoreMetadata || s == ShapeMetadata
}

// AppliedQuery is the sort and paging the server says it actually used.
type AppliedQuery struct {
	Page                    int
	PerPage                 int
	OrderBy                 string
	OrderDirection          Direction
	AvailableSearch         []string
	AvailableOrderBy        []string
	AvailableOrderDirection []string
}

// ListResult is one normalized page of a listing endpoint.
type ListResult[T any] struct {
	Items     []T
	Total     int
	TotalPage int
	Applied   *AppliedQuery
	Shape     Shape
}

// EmptyResult is what a screen degrades to when a fetch fails.
func EmptyResult[T any]() *ListResult[T] {
	return &ListResult[T]{Items: []T{}, Total: 0, TotalPage: 1}
}

// TotalPages computes the page count for total rows at perPage, never below 1.
func TotalPages(total, perPage int) int {
	if perPage < 1 || total <= 0 {
		return 1
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		return 1
	}
	return pages
}
