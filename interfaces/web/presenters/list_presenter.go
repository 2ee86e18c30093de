// Package presenters transforms domain data into UI-ready view models.
package presenters

import (
	"net/url"
	"strconv"

	"flightadmin/application"
	"flightadmin/domain/listing"
	"flightadmin/interfaces/web/templates/components/ui"
)

// PerPageOptions are the page sizes offered under every table.
var PerPageOptions = []int{10, 20, 50, 100}

// pageWindow is how many numbered page links the pager shows.
const pageWindow = 5

// ListContext is where a listing region lives and the URL it was rendered from.
type ListContext struct {
	ID      string
	Path    string
	Bridge  listing.Bridge
	Current url.Values
}

// link is the target of a navigation applying partial to the current URL.
func (lc ListContext) link(partial map[string]string) string {
	return lc.Bridge.Link(lc.Path, lc.Current, partial)
}

// Column maps a row of T to one table cell. Columns with a SortKey get a
// sort link.
type Column[T any] struct {
	Label   string
	SortKey string
	Cell    func(T) ui.CellView
}

// BuildList turns a store snapshot into the listing region view model.
func BuildList[T listing.Identifiable](lc ListContext, snap application.ListSnapshot[T], columns []Column[T], actions func(T) []ui.ActionView) ui.ListView {
	vm := ui.ListView{
		ID:         lc.ID,
		Path:       lc.Path,
		Current:    lc.Current.Encode(),
		Columns:    buildColumns(lc, snap, columns),
		Rows:       make([]ui.RowView, 0, len(snap.Items)),
		Pagination: BuildPagination(lc, snap.Query, snap.Total, snap.TotalPage),
		Selection: ui.SelectionView{
			Enabled:     true,
			Count:       len(snap.Selected),
			AllSelected: snap.AllSelected(),
		},
		Filters:   ui.FilterView{Search: snap.Query.Search, SearchPlaceholder: "Search…"},
		Loading:   snap.Loading,
		Failed:    snap.Failed,
		EmptyText: "No data found.",
	}

	for _, item := range snap.Items {
		id := item.Identity()
		row := ui.RowView{
			ID:       id,
			Selected: snap.IsSelected(id),
			Cells:    make([]ui.CellView, 0, len(columns)),
		}
		for _, c := range columns {
			row.Cells = append(row.Cells, c.Cell(item))
		}
		if actions != nil {
			row.Actions = actions(item)
		}
		vm.Rows = append(vm.Rows, row)
	}
	return vm
}

// buildColumns marks the column the rows are sorted by and links every
// sortable column to the next direction.
func buildColumns[T listing.Identifiable](lc ListContext, snap application.ListSnapshot[T], columns []Column[T]) []ui.ColumnView {
	orderBy, dir := snap.Sort()
	out := make([]ui.ColumnView, 0, len(columns))
	for _, c := range columns {
		col := ui.ColumnView{Label: c.Label}
		if c.SortKey != "" && snap.Sortable(c.SortKey) {
			next := listing.DirectionAsc
			if orderBy == c.SortKey {
				col.SortDir = string(dir)
				if dir == listing.DirectionAsc {
					next = listing.DirectionDesc
				}
			}
			col.SortLink = lc.link(map[string]string{
				listing.ParamOrderBy:        c.SortKey,
				listing.ParamOrderDirection: string(next),
			})
		}
		out = append(out, col)
	}
	return out
}

// BuildPagination builds the pager. Page links keep every other parameter;
// page size links change only the page size.
func BuildPagination(lc ListContext, q listing.ListQuery, total, totalPage int) ui.PaginationView {
	screen := lc.Bridge.Screen()
	if totalPage < 1 {
		totalPage = 1
	}
	pageLink := func(n int) string {
		return lc.link(map[string]string{screen.PageParam: strconv.Itoa(n)})
	}

	vm := ui.PaginationView{
		Page:      q.Page,
		TotalPage: totalPage,
		Total:     total,
	}
	// Pages past the end have no row range.
	if total > 0 && q.PerPage > 0 && q.Page <= totalPage && q.Offset() < total {
		vm.From = q.Offset() + 1
		vm.To = min(q.End(), total)
	}
	if q.Page > 1 {
		vm.PrevLink = pageLink(min(q.Page-1, totalPage))
	}
	if q.Page < totalPage {
		vm.NextLink = pageLink(q.Page + 1)
	}

	first, last := pageRange(q.Page, totalPage)
	for n := first; n <= last; n++ {
		vm.Pages = append(vm.Pages, ui.PageLinkView{
			Label:   strconv.Itoa(n),
			Link:    pageLink(n),
			Current: n == q.Page,
		})
	}
	for _, size := range PerPageOptions {
		vm.PerPageOptions = append(vm.PerPageOptions, ui.PageLinkView{
			Label:   strconv.Itoa(size),
			Link:    lc.link(map[string]string{screen.PerPageParam: strconv.Itoa(size)}),
			Current: size == q.PerPage,
		})
	}
	return vm
}

// pageRange returns the numbered pages around page, at most pageWindow wide.
func pageRange(page, totalPage int) (int, int) {
	page = max(1, min(page, totalPage))
	first := max(1, page-pageWindow/2)
	last := min(totalPage, first+pageWindow-1)
	first = max(1, last-pageWindow+1)
	return first, last
}

// MultiFilterGroup builds a checkbox filter over values.
func MultiFilterGroup[V ~string](key, label string, values []V, q listing.ListQuery) ui.FilterGroupView {
	checked := map[string]bool{}
	for _, v := range q.MultiFilter(key) {
		checked[v] = true
	}
	g := ui.FilterGroupView{Key: key, Label: label, Multi: true}
	for _, v := range values {
		g.Choices = append(g.Choices, ui.ChoiceView{Value: string(v), Label: Humanize(string(v)), Checked: checked[string(v)]})
	}
	return g
}

// SelectFilterGroup builds a single-choice filter over values.
func SelectFilterGroup[V ~string](key, label string, values []V, q listing.ListQuery) ui.FilterGroupView {
	current := q.Filter(key)
	g := ui.FilterGroupView{Key: key, Label: label}
	for _, v := range values {
		g.Choices = append(g.Choices, ui.ChoiceView{Value: string(v), Label: Humanize(string(v)), Checked: current == string(v)})
	}
	return g
}
