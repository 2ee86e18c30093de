package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func sampleList() ListView {
	return ListView{
		ID:      "users-list",
		Path:    "/users",
		Current: "pageIndex=1&pageSize=10",
		Columns: []ColumnView{
			{Label: "Name", SortLink: "/users?orderBy=name", SortDir: "asc"},
			{Label: "Email"},
		},
		Rows: []RowView{{
			ID:       "u1",
			Selected: true,
			Cells:    []CellView{{Text: "Ann <admin>", Href: "/users/u1"}, {Text: "Active", Badge: "green"}},
			Actions: []ActionView{
				{Label: "Edit", Href: "/users/u1/edit"},
				{Label: "Delete", Href: "/users/u1/delete", Method: "post", Confirm: `Delete "Ann"?`, Danger: true,
					Fields: map[string]string{"b": "2", "a": "1"}},
			},
		}},
		Selection:  SelectionView{Enabled: true, Count: 2},
		Pagination: PaginationView{Page: 1, TotalPage: 1, Total: 1, From: 1, To: 1},
	}
}

func TestListRegion_Markup(t *testing.T) {
	out := render(t, ListRegion(sampleList()))

	assert.True(t, strings.HasPrefix(out, `<section class="list" id="users-list">`))
	assert.Contains(t, out, `<div class="selection">2 selected</div>`)
	assert.Contains(t, out, "Showing 1–1 of 1")
	assert.Contains(t, out, "Name ▲</a>")
	assert.Contains(t, out, "Ann &lt;admin&gt;")
	assert.Contains(t, out, `<span class="badge badge-green">Active</span>`)
	assert.Contains(t, out, `hx-target="#users-list"`)
}

func TestListRegion_LoadingAndFailure(t *testing.T) {
	vm := ListView{ID: "users-list", Loading: true, Failed: true, EmptyText: "No users."}
	out := render(t, ListRegion(vm))

	assert.True(t, strings.HasPrefix(out, `<section class="list" id="users-list" aria-busy="true">`))
	assert.Contains(t, out, "Could not load data. Try again later.")
	assert.NotContains(t, out, "No users.")
	assert.NotContains(t, out, "selected</div>")
	assert.NotContains(t, out, "Showing")
}

func TestRowAction_ConfirmIsDataNotScript(t *testing.T) {
	out := render(t, ListRegion(sampleList()))

	assert.NotContains(t, out, "onsubmit")
	assert.Contains(t, out, `data-confirm="Delete &#34;Ann&#34;?"`)
	assert.Contains(t, out, `<button type="submit" class="link danger">Delete</button>`)
	a := strings.Index(out, `name="a" value="1"`)
	b := strings.Index(out, `name="b" value="2"`)
	require.True(t, a >= 0 && b >= 0)
	assert.Less(t, a, b)
}

func TestForm_Fields(t *testing.T) {
	out := render(t, Form(FormView{
		Title:  "Edit",
		Action: "/users/u1",
		Fields: []FieldView{
			{Name: "id", Type: FieldHidden, Value: "u1"},
			{Name: "name", Label: "Name", Value: "Ann", Required: true},
			{Name: "rate", Label: "Rate", Type: FieldNumber, Value: "12.5", Step: "0.01", ReadOnly: true},
			{Name: "role", Label: "Role", Type: FieldSelect, Value: "r2", Choices: []ChoiceView{{Value: "r1", Label: "One"}, {Value: "r2", Label: "Two"}}},
		},
		CancelLink: "/users",
	}))

	assert.Contains(t, out, `<input type="hidden" name="id" value="u1">`)
	assert.Contains(t, out, `<input type="text" name="name" value="Ann" required>`)
	assert.Contains(t, out, `value="12.5" readonly step="0.01" min="0">`)
	assert.Contains(t, out, `<option value="r2" selected>Two</option>`)
	assert.Contains(t, out, `<option value="r1">One</option>`)
	assert.Contains(t, out, `<button type="submit" class="btn">Save</button>`)
	assert.Contains(t, out, `href="/users">Cancel</a>`)
}

func TestDetail_Missing(t *testing.T) {
	out := render(t, Detail(DetailView{Title: "User", Missing: true, Rows: []DetailRowView{{Label: "Email", Value: "x"}}}))

	assert.Contains(t, out, `<p class="empty">Nothing found.</p>`)
	assert.NotContains(t, out, "<dl>")
}

func TestToastOOB(t *testing.T) {
	assert.Empty(t, render(t, ToastOOB()))

	out := render(t, ToastOOB(ToastNotificationView{Title: "Saved", Message: "Done", Type: ToastSuccess}))
	assert.Equal(t, `<div id="toasts" hx-swap-oob="beforeend"><div role="status" class="toast toast-success"><strong>Saved</strong><br>Done</div></div>`, out)
}
