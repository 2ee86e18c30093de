package handlers

import (
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

// UserHandlers serves the user and sales agent screens.
type UserHandlers struct {
	Base
	users     *application.UserService
	presenter *presenters.UserPresenter

	Users       *ListScreen[admin.User]
	SalesAgents *ListScreen[admin.User]
}

// NewUserHandlers creates the user handlers.
func NewUserHandlers(base Base, users *application.UserService, presenter *presenters.UserPresenter) *UserHandlers {
	return &UserHandlers{
		Base:      base,
		users:     users,
		presenter: presenter,
		Users: NewListScreen(base, "users-list", "/users", "Users", "users",
			func(s *application.ScreenSet) *application.ListController[admin.User] { return s.Users },
			presenter.List),
		SalesAgents: NewListScreen(base, "sales-agents-list", "/users/sales-agents", "Sales Agents", "sales-agents",
			func(s *application.ScreenSet) *application.ListController[admin.User] { return s.SalesAgents },
			presenter.SalesAgentList),
	}
}

// Mount registers the user routes on r.
func (h *UserHandlers) Mount(r chi.Router) {
	h.Users.Mount(r)
	h.SalesAgents.Mount(r)
	r.Get("/users/sales-agents/new", h.NewSalesAgent)
	r.Post("/users/sales-agents/new", h.CreateSalesAgent)
	r.Get("/users/new", h.New)
	r.Post("/users/new", h.Create)
	r.Get("/users/{id}", h.Detail)
	r.Get("/users/{id}/edit", h.Edit)
	r.Post("/users/{id}/edit", h.Update)
	r.Post("/users/{id}/status", h.SetStatus)
}

// Detail shows one user. A missing user renders the empty state.
func (h *UserHandlers) Detail(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if apiclient.IsNotFound(err) {
			RenderStatus(r.Context(), w, r, http.StatusNotFound,
				pages.DetailPage(h.layout(r, "User", "users"), h.presenter.Detail(nil)))
			return
		}
		h.fail(w, r, "Load user", err, func(toast ui.ToastNotificationView) {
			h.errorPage(w, r, "User", "/users", toast)
		})
		return
	}
	RenderResponse(r.Context(), w, r, pages.DetailPage(h.layout(r, user.Name, "users"), h.presenter.Detail(user)))
}

// New shows the create user form.
func (h *UserHandlers) New(w http.ResponseWriter, r *http.Request) {
	h.showForm(w, r, false, presenters.UserFormInput{})
}

// NewSalesAgent shows the create sales agent form.
func (h *UserHandlers) NewSalesAgent(w http.ResponseWriter, r *http.Request) {
	h.showForm(w, r, true, presenters.UserFormInput{})
}

func (h *UserHandlers) showForm(w http.ResponseWriter, r *http.Request, salesAgent bool, in presenters.UserFormInput, toasts ...ui.ToastNotificationView) {
	data, err := h.users.NewForm(r.Context())
	if err != nil {
		h.fail(w, r, "Load user form", err, func(toast ui.ToastNotificationView) {
			h.renderForm(w, r, nil, in, salesAgent, append(toasts, toast)...)
		})
		return
	}
	h.renderForm(w, r, data, in, salesAgent, toasts...)
}

func (h *UserHandlers) renderForm(w http.ResponseWriter, r *http.Request, data *application.UserFormData, in presenters.UserFormInput, salesAgent bool, toasts ...ui.ToastNotificationView) {
	form := h.presenter.Form(data, in, salesAgent, toasts...)
	active := "users"
	if salesAgent {
		active = "sales-agents"
	}
	RenderResponse(r.Context(), w, r, pages.FormPage(h.layout(r, form.Title, active), form))
}

// readUserForm parses the user form. ok is false when an amount is not a number.
func readUserForm(r *http.Request) (presenters.UserFormInput, bool) {
	in := presenters.UserFormInput{CreateUserPayload: admin.CreateUserPayload{
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Role:    r.PostFormValue("role"),
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Country: r.PostFormValue("country"),
		Gender:  admin.Gender(r.PostFormValue("gender")),
	}}
	commission, ok1 := formFloat(r, "commissionAmount")
	goal, ok2 := formFloat(r, "monthlySalesGoal")
	in.CommissionAmount, in.MonthlySalesGoal = commission, goal
	return in, ok1 && ok2
}

// Create submits the create user form.
func (h *UserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, false)
}

// CreateSalesAgent submits the create sales agent form.
func (h *UserHandlers) CreateSalesAgent(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, true)
}

func (h *UserHandlers) create(w http.ResponseWriter, r *http.Request, salesAgent bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in, ok := readUserForm(r)
	if !ok {
		h.showForm(w, r, salesAgent, in, h.toasts.Error(admin.ErrNegativeAmount))
		return
	}

	var (
		id  string
		err error
	)
	if salesAgent {
		id, err = h.users.CreateSalesAgent(r.Context(), in)
	} else {
		id, err = h.users.CreateUser(r.Context(), in.CreateUserPayload)
	}
	if err != nil {
		h.fail(w, r, "Create user", err, func(toast ui.ToastNotificationView) {
			h.showForm(w, r, salesAgent, in, toast)
		})
		return
	}

	switch {
	case id != "":
		Redirect(w, r, "/users/"+id)
	case salesAgent:
		Redirect(w, r, "/users/sales-agents")
	default:
		Redirect(w, r, "/users")
	}
}

// Edit shows the edit form of a user or sales agent.
func (h *UserHandlers) Edit(w http.ResponseWriter, r *http.Request) {
	data, err := h.users.EditForm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if apiclient.IsNotFound(err) {
			RenderStatus(r.Context(), w, r, http.StatusNotFound,
				pages.DetailPage(h.layout(r, "User", "users"), h.presenter.Detail(nil)))
			return
		}
		h.fail(w, r, "Load user form", err, func(toast ui.ToastNotificationView) {
			h.errorPage(w, r, "Edit user", "/users", toast)
		})
		return
	}
	h.renderForm(w, r, data, presenters.InputFromUser(data.User), data.User.IsSalesAgent())
}

// Update submits the edit form. Sales agents go to their own endpoint.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	in, ok := readUserForm(r)

	rerender := func(toast ui.ToastNotificationView) {
		data, err := h.users.EditForm(r.Context(), id)
		if err != nil {
			h.errorPage(w, r, "Edit user", "/users/"+id, toast)
			return
		}
		h.renderForm(w, r, data, in, data.User.IsSalesAgent(), toast)
	}
	if !ok {
		rerender(h.toasts.Error(admin.ErrNegativeAmount))
		return
	}

	var err error
	if r.PostFormValue("agent") == "true" {
		err = h.users.UpdateSalesAgent(r.Context(), id, in)
	} else {
		err = h.users.UpdateUser(r.Context(), id, admin.UpdateUserPayload{
			Role:    in.Role,
			Name:    in.Name,
			Country: in.Country,
			Gender:  in.Gender,
		})
	}
	if err != nil {
		h.fail(w, r, "Update user", err, rerender)
		return
	}
	Redirect(w, r, "/users/"+id)
}

// SetStatus activates or deactivates a user and returns to where the action
// was taken.
func (h *UserHandlers) SetStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	back := localTarget(r.PostFormValue("returnTo"), "/users/"+id)

	if err := h.users.SetStatus(r.Context(), id, admin.UserStatus(r.PostFormValue("status"))); err != nil {
		h.fail(w, r, "Update user status", err, func(toast ui.ToastNotificationView) {
			h.errorPage(w, r, "Update status", back, toast)
		})
		return
	}
	Redirect(w, r, back)
}
