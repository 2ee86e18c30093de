package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"flightadmin/application"
	"flightadmin/domain/admin"
	"flightadmin/infrastructure/apiclient"
	"flightadmin/interfaces/web/presenters"
	"flightadmin/interfaces/web/templates/components/ui"
	"flightadmin/interfaces/web/templates/pages"
)

// AuthHandlers serves sign-in, sign-out, the home page and the profile.
type AuthHandlers struct {
	Base
	auth      *application.AuthService
	users     *application.UserService
	presenter *presenters.UserPresenter
}

// NewAuthHandlers creates the auth handlers.
func NewAuthHandlers(base Base, auth *application.AuthService, users *application.UserService, presenter *presenters.UserPresenter) *AuthHandlers {
	return &AuthHandlers{Base: base, auth: auth, users: users, presenter: presenter}
}

// MountPublic registers the routes that need no session.
func (h *AuthHandlers) MountPublic(r chi.Router) {
	r.Get("/sign-in", h.SignInPage)
	r.Post("/sign-in", h.SignIn)
}

// Mount registers the routes that need a session.
func (h *AuthHandlers) Mount(r chi.Router) {
	r.Post("/sign-out", h.SignOut)
	r.Get("/home", h.Home)
	r.Get("/profile", h.Profile)
	r.Post("/profile", h.UpdateProfile)
}

// SignInPage shows the sign-in form.
func (h *AuthHandlers) SignInPage(w http.ResponseWriter, r *http.Request) {
	RenderResponse(r.Context(), w, r, pages.SignInPage(pages.SignInView{
		RedirectURL: localTarget(r.URL.Query().Get("redirectUrl"), ""),
	}))
}

// SignIn checks the credentials, starts the session and returns the user to
// the page they were sent away from.
func (h *AuthHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	vm := pages.SignInView{
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		RedirectURL: localTarget(r.PostFormValue("redirectUrl"), ""),
	}

	session, err := h.auth.SignIn(r.Context(), admin.Credentials{
		Email:    vm.Email,
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		vm.Toasts = []ui.ToastNotificationView{h.signInToast(err)}
		RenderStatus(r.Context(), w, r, signInStatus(err), pages.SignInPage(vm))
		return
	}

	h.sessions.Start(w, session)
	Redirect(w, r, localTarget(vm.RedirectURL, "/home"))
}

func (h *AuthHandlers) signInToast(err error) ui.ToastNotificationView {
	toast := h.toasts.Error(err)
	switch {
	case errors.Is(err, application.ErrCredentialsRequired):
		toast.Title, toast.Message = "Please check your input", "Email and password are required."
	case apiclient.IsAuth(err):
		toast.Title, toast.Message = "Sign-in failed", "Invalid email or password."
	}
	return toast
}

func signInStatus(err error) int {
	switch {
	case errors.Is(err, application.ErrCredentialsRequired):
		return http.StatusBadRequest
	case apiclient.IsAuth(err):
		return http.StatusUnauthorized
	default:
		return http.StatusOK
	}
}

// SignOut ends the session.
func (h *AuthHandlers) SignOut(w http.ResponseWriter, r *http.Request) {
	h.sessions.End(w, r)
	Redirect(w, r, "/sign-in")
}

// Home is the landing page. Sales agents only see the sections they can use.
func (h *AuthHandlers) Home(w http.ResponseWriter, r *http.Request) {
	vm := pages.HomeView{}
	roleType := ""
	if s := CurrentSession(r.Context()); s != nil {
		roleType = s.RoleType
		vm.RoleType = presenters.Humanize(s.RoleType)
	}

	if admin.RoleType(roleType) != admin.RoleTypeSalesAgent {
		vm.Cards = append(vm.Cards,
			pages.HomeCard{Title: "Users", Description: "Manage staff and customer accounts.", Href: "/users"},
			pages.HomeCard{Title: "Sales Agents", Description: "Commission and sales goals of agents.", Href: "/users/sales-agents"},
			pages.HomeCard{Title: "Roles", Description: "Role types and their permissions.", Href: "/roles"},
		)
	}
	vm.Cards = append(vm.Cards, pages.HomeCard{Title: "Bookings", Description: "Flight bookings and payments.", Href: "/booking"})
	if admin.RoleType(roleType) != admin.RoleTypeSalesAgent {
		vm.Cards = append(vm.Cards, pages.HomeCard{Title: "Configuration", Description: "Markup and tax rates.", Href: "/configuration"})
	}

	RenderResponse(r.Context(), w, r, pages.HomePage(h.layout(r, "Home", "home"), vm))
}

// Profile shows the signed-in user's profile.
func (h *AuthHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	h.renderProfile(w, r)
}

func (h *AuthHandlers) renderProfile(w http.ResponseWriter, r *http.Request, toasts ...ui.ToastNotificationView) {
	user, countries, err := h.users.Profile(r.Context())
	if err != nil {
		h.fail(w, r, "Load profile", err, func(toast ui.ToastNotificationView) {
			h.errorPage(w, r, "My profile", "/home", toast)
		})
		return
	}
	form := h.presenter.ProfileForm(user, countries, toasts...)
	RenderResponse(r.Context(), w, r, pages.FormPage(h.layout(r, form.Title, "profile"), form))
}

// UpdateProfile saves name, country and gender.
func (h *AuthHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	err := h.users.UpdateProfile(r.Context(), admin.UpdateProfilePayload{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Country: r.PostFormValue("country"),
		Gender:  admin.Gender(r.PostFormValue("gender")),
	})
	if err != nil {
		h.fail(w, r, "Update profile", err, func(toast ui.ToastNotificationView) {
			h.renderProfile(w, r, toast)
		})
		return
	}
	h.renderProfile(w, r, h.toasts.Success("Profile updated."))
}
