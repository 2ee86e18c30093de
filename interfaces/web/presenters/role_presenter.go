package presenters

import (
	"strconv"

	"flightadmin/application"
	"flightadmin/domain/admin"
	"flightadmin/interfaces/web/templates/components/ui"
)

// RolePresenter builds the role views.
type RolePresenter struct{}

// NewRolePresenter creates a role presenter.
func NewRolePresenter() *RolePresenter {
	return &RolePresenter{}
}

func activeLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

// List builds the roles listing region.
func (p *RolePresenter) List(lc ListContext, snap application.ListSnapshot[admin.Role]) ui.ListView {
	columns := []Column[admin.Role]{
		{Label: "Name", SortKey: "name", Cell: func(r admin.Role) ui.CellView {
			return ui.CellView{Text: orDash(r.Name), Href: "/roles/" + r.ID + "/edit"}
		}},
		{Label: "Type", SortKey: "type", Cell: func(r admin.Role) ui.CellView {
			return ui.CellView{Text: Humanize(string(r.Type))}
		}},
		{Label: "Permissions", Cell: func(r admin.Role) ui.CellView {
			return ui.CellView{Text: strconv.Itoa(r.Permissions.Len())}
		}},
		{Label: "Status", Cell: func(r admin.Role) ui.CellView {
			label := activeLabel(r.IsActive)
			return ui.CellView{Text: label, Badge: statusBadge(label)}
		}},
		{Label: "Created", SortKey: "createdAt", Cell: func(r admin.Role) ui.CellView {
			return ui.CellView{Text: FormatDate(r.CreatedAt)}
		}},
	}
	returnTo := lc.link(nil)
	actions := func(r admin.Role) []ui.ActionView {
		toggle := "Activate"
		if r.IsActive {
			toggle = "Deactivate"
		}
		return []ui.ActionView{
			{Label: "Edit", Href: "/roles/" + r.ID + "/edit"},
			{
				Label:  toggle,
				Href:   "/roles/" + r.ID + "/active",
				Method: "post",
				Fields: map[string]string{"active": strconv.FormatBool(!r.IsActive), "returnTo": returnTo},
			},
			{
				Label:   "Delete",
				Href:    "/roles/" + r.ID + "/delete",
				Method:  "post",
				Fields:  map[string]string{"returnTo": returnTo},
				Confirm: "Delete role " + r.Name + "?",
				Danger:  true,
			},
		}
	}

	vm := BuildList(lc, snap, columns, actions)
	vm.Filters.SearchPlaceholder = "Search roles"
	vm.CreateLink, vm.CreateText = "/roles/new", "New role"
	return vm
}

// RoleFormInput is what the role form was last submitted with.
type RoleFormInput struct {
	Name        string
	Type        admin.RoleType
	Description string
	Subjects    []string
}

// InputFromRole prefills the edit form from the stored role.
func InputFromRole(r *admin.Role) RoleFormInput {
	if r == nil {
		return RoleFormInput{}
	}
	return RoleFormInput{
		Name:        r.Name,
		Type:        r.Type,
		Description: r.Description,
		Subjects:    r.Permissions.Subjects(),
	}
}

// Form builds the create form, or the edit form when role is set.
func (p *RolePresenter) Form(role *admin.Role, in RoleFormInput, toasts ...ui.ToastNotificationView) ui.FormView {
	vm := ui.FormView{Toasts: toasts, CancelLink: "/roles", Title: "New role", Action: "/roles/new"}
	if role != nil {
		vm.Title = "Edit " + orDash(role.Name)
		vm.Action = "/roles/" + role.ID + "/edit"
	}

	types := make([]ui.ChoiceView, 0, len(admin.RoleTypes()))
	for _, t := range admin.RoleTypes() {
		types = append(types, ui.ChoiceView{Value: string(t), Label: Humanize(string(t))})
	}
	granted := map[string]bool{}
	for _, s := range in.Subjects {
		granted[s] = true
	}
	subjects := make([]ui.ChoiceView, 0, len(admin.PermissionSubjects()))
	for _, s := range admin.PermissionSubjects() {
		subjects = append(subjects, ui.ChoiceView{Value: s, Label: Humanize(s), Checked: granted[s]})
	}

	vm.Fields = []ui.FieldView{
		{Name: "name", Label: "Name", Value: in.Name, Required: role == nil, Disabled: role != nil},
		{Name: "type", Label: "Type", Type: ui.FieldSelect, Value: string(in.Type), Choices: types, Required: true},
		{Name: "description", Label: "Description", Type: ui.FieldTextarea, Value: in.Description},
		{Name: "permissions", Label: "Manage permissions", Type: ui.FieldCheckboxes, Choices: subjects},
	}
	return vm
}
