package ui

// ListView is the view model of a listing screen's swappable region: the
// filter toolbar, the table, the selection footer and the pagination.
type ListView struct {
	ID         string // DOM id of the region, the HTMX swap target
	Path       string // screen route
	Current    string // encoded query string the region was rendered from
	Filters    FilterView
	Columns    []ColumnView
	Rows       []RowView
	Pagination PaginationView
	Selection  SelectionView
	Loading    bool
	Failed     bool
	EmptyText  string
	CreateLink string
	CreateText string
}

// ColumnView is one table header. SortLink is empty for unsortable columns.
type ColumnView struct {
	Label    string
	SortLink string
	SortDir  string
}

// RowView is one table row.
type RowView struct {
	ID       string
	Selected bool
	Cells    []CellView
	Actions  []ActionView
}

// CellView is one table cell. Badge, when set, renders the text as a badge
// with that color.
type CellView struct {
	Text  string
	Href  string
	Badge string
}

// ActionView is a row action: a link when Method is empty, a form otherwise.
type ActionView struct {
	Label   string
	Href    string
	Method  string
	Fields  map[string]string
	Confirm string
	Danger  bool
}

// PaginationView drives the pager under a table.
type PaginationView struct {
	Page           int
	TotalPage      int
	Total          int
	From           int
	To             int
	PrevLink       string
	NextLink       string
	Pages          []PageLinkView
	PerPageOptions []PageLinkView
}

// PageLinkView is one pager or page size link.
type PageLinkView struct {
	Label   string
	Link    string
	Current bool
}

// SelectionView is the selection footer.
type SelectionView struct {
	Enabled     bool
	Count       int
	AllSelected bool
}

// FilterView is the search box and filter controls above a table.
type FilterView struct {
	Search            string
	SearchPlaceholder string
	Groups            []FilterGroupView
}

// FilterGroupView is one filter. Multi renders checkboxes, otherwise a select.
type FilterGroupView struct {
	Key     string
	Label   string
	Multi   bool
	Choices []ChoiceView
}

// ChoiceView is one filter or form option.
type ChoiceView struct {
	Value   string
	Label   string
	Checked bool
}
