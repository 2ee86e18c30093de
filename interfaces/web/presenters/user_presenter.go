package presenters

import (
	"strconv"

	"flightadmin/application"
	"flightadmin/domain/admin"
	"flightadmin/interfaces/web/templates/components/ui"
)

// UserPresenter builds the user, sales agent and profile views.
type UserPresenter struct{}

// NewUserPresenter creates a user presenter.
func NewUserPresenter() *UserPresenter {
	return &UserPresenter{}
}

func userColumns() []Column[admin.User] {
	return []Column[admin.User]{
		{Label: "Name", SortKey: "name", Cell: func(u admin.User) ui.CellView {
			return ui.CellView{Text: orDash(u.Name), Href: "/users/" + u.ID}
		}},
		{Label: "Email", SortKey: "email", Cell: func(u admin.User) ui.CellView {
			return ui.CellView{Text: orDash(u.Email)}
		}},
		{Label: "Role", Cell: func(u admin.User) ui.CellView {
			return ui.CellView{Text: orDash(u.Role.Name)}
		}},
		{Label: "Country", Cell: func(u admin.User) ui.CellView {
			return ui.CellView{Text: orDash(u.Country.Name)}
		}},
		{Label: "Status", Cell: func(u admin.User) ui.CellView {
			return ui.CellView{Text: Humanize(string(u.Status)), Badge: statusBadge(string(u.Status))}
		}},
		{Label: "Created", SortKey: "createdAt", Cell: func(u admin.User) ui.CellView {
			return ui.CellView{Text: FormatDate(u.CreatedAt)}
		}},
	}
}

func userActions(returnTo string) func(admin.User) []ui.ActionView {
	return func(u admin.User) []ui.ActionView {
		next := u.Status.Toggled()
		label := "Activate"
		if next == admin.UserStatusInactive {
			label = "Deactivate"
		}
		return []ui.ActionView{
			{Label: "Edit", Href: "/users/" + u.ID + "/edit"},
			{
				Label:  label,
				Href:   "/users/" + u.ID + "/status",
				Method: "post",
				Fields: map[string]string{"status": string(next), "returnTo": returnTo},
			},
		}
	}
}

// List builds the users listing region.
func (p *UserPresenter) List(lc ListContext, snap application.ListSnapshot[admin.User]) ui.ListView {
	vm := BuildList(lc, snap, userColumns(), userActions(lc.link(nil)))
	vm.Filters.SearchPlaceholder = "Search name, email or username"
	vm.Filters.Groups = []ui.FilterGroupView{
		MultiFilterGroup("roleType", "Role type", admin.RoleTypes(), snap.Query),
	}
	vm.CreateLink, vm.CreateText = "/users/new", "New user"
	return vm
}

// SalesAgentList builds the sales agents listing region.
func (p *UserPresenter) SalesAgentList(lc ListContext, snap application.ListSnapshot[admin.User]) ui.ListView {
	columns := append(userColumns(),
		Column[admin.User]{Label: "Commission", Cell: func(u admin.User) ui.CellView {
			return ui.CellView{Text: FormatNumber(u.CommissionAmount)}
		}},
		Column[admin.User]{Label: "Monthly goal", Cell: func(u admin.User) ui.CellView {
			return ui.CellView{Text: FormatNumber(u.MonthlySalesGoal)}
		}},
	)
	vm := BuildList(lc, snap, columns, userActions(lc.link(nil)))
	vm.Filters.SearchPlaceholder = "Search sales agents"
	vm.CreateLink, vm.CreateText = "/users/sales-agents/new", "New sales agent"
	return vm
}

// Detail builds the user record view. A nil user renders the empty state.
func (p *UserPresenter) Detail(u *admin.User) ui.DetailView {
	if u == nil {
		return ui.DetailView{Title: "User", Missing: true, EmptyText: "This user does not exist.", BackLink: "/users"}
	}
	vm := ui.DetailView{
		Title:    orDash(u.Name),
		BackLink: "/users",
		Rows: []ui.DetailRowView{
			{Label: "Username", Value: orDash(u.Username)},
			{Label: "Email", Value: orDash(u.Email)},
			{Label: "Role", Value: orDash(u.Role.Name)},
			{Label: "Role type", Value: Humanize(string(u.Role.Type))},
			{Label: "Status", Value: Humanize(string(u.Status)), Badge: statusBadge(string(u.Status))},
			{Label: "Country", Value: orDash(u.Country.Name)},
			{Label: "Gender", Value: orDash(Humanize(string(u.Gender)))},
			{Label: "Signed up", Value: FormatDate(u.SignUpDate)},
			{Label: "Created", Value: FormatDate(u.CreatedAt)},
		},
		Actions: userActions("/users/" + u.ID)(*u),
	}
	if u.Verification != nil {
		vm.Rows = append(vm.Rows,
			ui.DetailRowView{Label: "Email verified", Value: yesNo(u.Verification.Email)},
			ui.DetailRowView{Label: "Phone verified", Value: yesNo(u.Verification.MobileNumber)},
		)
	}
	if u.IsSalesAgent() {
		vm.Sections = append(vm.Sections, ui.DetailSectionView{
			Title: "Sales agent",
			Rows: []ui.DetailRowView{
				{Label: "Commission", Value: FormatNumber(u.CommissionAmount)},
				{Label: "Monthly sales goal", Value: FormatNumber(u.MonthlySalesGoal)},
			},
		})
	}
	return vm
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// UserFormInput is what the user forms were last submitted with.
type UserFormInput = admin.SalesAgentPayload

// InputFromUser prefills the edit form from the stored user.
func InputFromUser(u *admin.User) UserFormInput {
	if u == nil {
		return UserFormInput{}
	}
	in := UserFormInput{CreateUserPayload: admin.CreateUserPayload{
		Email:   u.Email,
		Role:    u.Role.ID,
		Name:    u.Name,
		Country: u.Country.ID,
		Gender:  u.Gender,
	}}
	if u.CommissionAmount != nil {
		in.CommissionAmount = *u.CommissionAmount
	}
	if u.MonthlySalesGoal != nil {
		in.MonthlySalesGoal = *u.MonthlySalesGoal
	}
	return in
}

// Form builds the create or edit form for a user or sales agent.
func (p *UserPresenter) Form(data *application.UserFormData, in UserFormInput, salesAgent bool, toasts ...ui.ToastNotificationView) ui.FormView {
	editing := data != nil && data.User != nil
	vm := ui.FormView{Toasts: toasts, SubmitText: "Save"}

	switch {
	case editing:
		vm.Title = "Edit " + orDash(data.User.Name)
		vm.Action = "/users/" + data.User.ID + "/edit"
		vm.CancelLink = "/users/" + data.User.ID
	case salesAgent:
		vm.Title, vm.Action, vm.CancelLink = "New sales agent", "/users/sales-agents/new", "/users/sales-agents"
	default:
		vm.Title, vm.Action, vm.CancelLink = "New user", "/users/new", "/users"
	}

	var roles []admin.Role
	var countries []admin.Country
	if data != nil {
		roles, countries = data.Roles, data.Countries
	}

	vm.Fields = []ui.FieldView{
		{Name: "name", Label: "Full name", Value: in.Name, Required: !editing},
		{Name: "email", Label: "Email", Type: ui.FieldEmail, Value: in.Email, Required: !editing, ReadOnly: editing},
		{Name: "role", Label: "Role", Type: ui.FieldSelect, Value: in.Role, Choices: roleChoices(roles), Required: !editing},
		{Name: "country", Label: "Country", Type: ui.FieldSelect, Value: in.Country, Choices: countryChoices(countries), Required: !editing},
		{Name: "gender", Label: "Gender", Type: ui.FieldSelect, Value: string(in.Gender), Choices: genderChoices(), Required: !editing},
	}
	if salesAgent {
		if editing {
			vm.Fields = append(vm.Fields, ui.FieldView{Name: "agent", Type: ui.FieldHidden, Value: "true"})
		}
		vm.Fields = append(vm.Fields,
			ui.FieldView{Name: "commissionAmount", Label: "Commission amount", Type: ui.FieldNumber, Step: "0.01", Value: formatFloat(in.CommissionAmount)},
			ui.FieldView{Name: "monthlySalesGoal", Label: "Monthly sales goal", Type: ui.FieldNumber, Step: "0.01", Value: formatFloat(in.MonthlySalesGoal)},
		)
	}
	return vm
}

// ProfileForm builds the signed-in user's profile form.
func (p *UserPresenter) ProfileForm(u *admin.User, countries []admin.Country, toasts ...ui.ToastNotificationView) ui.FormView {
	in := InputFromUser(u)
	return ui.FormView{
		Title:      "My profile",
		Action:     "/profile",
		Toasts:     toasts,
		SubmitText: "Update profile",
		Fields: []ui.FieldView{
			{Name: "email", Label: "Email", Type: ui.FieldEmail, Value: in.Email, Disabled: true},
			{Name: "name", Label: "Full name", Value: in.Name},
			{Name: "country", Label: "Country", Type: ui.FieldSelect, Value: in.Country, Choices: countryChoices(countries)},
			{Name: "gender", Label: "Gender", Type: ui.FieldSelect, Value: string(in.Gender), Choices: genderChoices()},
		},
	}
}

func roleChoices(roles []admin.Role) []ui.ChoiceView {
	out := make([]ui.ChoiceView, 0, len(roles))
	for _, r := range roles {
		out = append(out, ui.ChoiceView{Value: r.ID, Label: r.Name})
	}
	return out
}

func countryChoices(countries []admin.Country) []ui.ChoiceView {
	out := make([]ui.ChoiceView, 0, len(countries))
	for _, c := range countries {
		out = append(out, ui.ChoiceView{Value: c.ID, Label: c.Name})
	}
	return out
}

func genderChoices() []ui.ChoiceView {
	out := make([]ui.ChoiceView, 0, 3)
	for _, g := range admin.Genders() {
		out = append(out, ui.ChoiceView{Value: string(g), Label: Humanize(string(g))})
	}
	return out
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
