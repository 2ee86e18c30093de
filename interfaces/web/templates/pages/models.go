// Package pages composes the layout and ui components into full pages.
package pages

import "flightadmin/interfaces/web/templates/components/ui"

// ErrorView is shown when a screen cannot be rendered at all.
type ErrorView struct {
	BackLink string
	Toasts   []ui.ToastNotificationView
}

// HomeView is the landing page after sign-in.
type HomeView struct {
	RoleType string
	Cards    []HomeCard
}

// HomeCard links to one section.
type HomeCard struct {
	Title       string
	Description string
	Href        string
}

// RateView is one editable rate on the configuration page.
type RateView struct {
	Kind   string
	Title  string
	Value  string
	Set    bool
	Action string
}

// ConfigurationView is the configuration page.
type ConfigurationView struct {
	Rates  []RateView
	Toasts []ui.ToastNotificationView
}

// SignInView is the sign-in form.
type SignInView struct {
	Email       string
	RedirectURL string
	Toasts      []ui.ToastNotificationView
}

func signInForm(vm SignInView) ui.FormView {
	return ui.FormView{
		Title:      "Sign in",
		Action:     "/sign-in",
		SubmitText: "Sign in",
		Toasts:     vm.Toasts,
		Fields: []ui.FieldView{
			{Name: "redirectUrl", Type: ui.FieldHidden, Value: vm.RedirectURL},
			{Name: "email", Label: "Email", Type: ui.FieldEmail, Value: vm.Email, Required: true},
			{Name: "password", Label: "Password", Type: ui.FieldPassword, Required: true},
		},
	}
}
