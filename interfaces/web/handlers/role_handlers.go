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

// RoleHandlers serves the role screens.
type RoleHandlers struct {
	Base
	roles     *application.RoleService
	presenter *presenters.RolePresenter

	Roles *ListScreen[admin.Role]
}

// NewRoleHandlers creates the role handlers.
func NewRoleHandlers(base Base, roles *application.RoleService, presenter *presenters.RolePresenter) *RoleHandlers {
	return &RoleHandlers{
		Base:      base,
		roles:     roles,
		presenter: presenter,
		Roles: NewListScreen(base, "roles-list", "/roles", "Roles", "roles",
			func(s *application.ScreenSet) *application.ListController[admin.Role] { return s.Roles },
			presenter.List),
	}
}

// Mount registers the role routes on r.
func (h *RoleHandlers) Mount(r chi.Router) {
	h.Roles.Mount(r)
	r.Get("/roles/new", h.New)
	r.Post("/roles/new", h.Create)
	r.Get("/roles/{id}/edit", h.Edit)
	r.Post("/roles/{id}/edit", h.Update)
	r.Post("/roles/{id}/active", h.SetActive)
	r.Post("/roles/{id}/delete", h.Delete)
}

func (h *RoleHandlers) renderForm(w http.ResponseWriter, r *http.Request, role *admin.Role, in presenters.RoleFormInput, toasts ...ui.ToastNotificationView) {
	form := h.presenter.Form(role, in, toasts...)
	RenderResponse(r.Context(), w, r, pages.FormPage(h.layout(r, form.Title, "roles"), form))
}

func readRoleForm(r *http.Request) presenters.RoleFormInput {
	return presenters.RoleFormInput{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Type:        admin.RoleType(r.PostFormValue("type")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Subjects:    r.PostForm["permissions"],
	}
}

// New shows the create role form.
func (h *RoleHandlers) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, presenters.RoleFormInput{})
}

// Create submits the create role form.
func (h *RoleHandlers) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := readRoleForm(r)
	_, err := h.roles.CreateRole(r.Context(), admin.CreateRolePayload{
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		Permissions: admin.ManageGrants(in.Subjects),
	})
	if err != nil {
		h.fail(w, r, "Create role", err, func(toast ui.ToastNotificationView) {
			h.renderForm(w, r, nil, in, toast)
		})
		return
	}
	Redirect(w, r, "/roles")
}

// Edit shows the edit form of a role.
func (h *RoleHandlers) Edit(w http.ResponseWriter, r *http.Request) {
	role, err := h.roles.GetRole(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if apiclient.IsNotFound(err) {
			RenderStatus(r.Context(), w, r, http.StatusNotFound, pages.DetailPage(h.layout(r, "Role", "roles"),
				ui.DetailView{Title: "Role", Missing: true, EmptyText: "This role does not exist.", BackLink: "/roles"}))
			return
		}
		h.fail(w, r, "Load role", err, func(toast ui.ToastNotificationView) {
			h.errorPage(w, r, "Edit role", "/roles", toast)
		})
		return
	}
	h.renderForm(w, r, role, presenters.InputFromRole(role))
}

// Update submits the edit role form. The name cannot change.
func (h *RoleHandlers) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	in := readRoleForm(r)

	err := h.roles.UpdateRole(r.Context(), id, admin.UpdateRolePayload{
		Type:        in.Type,
		Description: in.Description,
		Permissions: admin.ManageGrants(in.Subjects),
	})
	if err != nil {
		h.fail(w, r, "Update role", err, func(toast ui.ToastNotificationView) {
			role, gerr := h.roles.GetRole(r.Context(), id)
			if gerr != nil {
				h.errorPage(w, r, "Edit role", "/roles", toast)
				return
			}
			in.Name = role.Name
			h.renderForm(w, r, role, in, toast)
		})
		return
	}
	Redirect(w, r, "/roles")
}

// SetActive activates or deactivates a role.
func (h *RoleHandlers) SetActive(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	back := localTarget(r.PostFormValue("returnTo"), "/roles")
	active := r.PostFormValue("active") == "true"

	if err := h.roles.SetActive(r.Context(), chi.URLParam(r, "id"), active); err != nil {
		h.fail(w, r, "Update role status", err, func(toast ui.ToastNotificationView) {
			h.errorPage(w, r, "Update role", back, toast)
		})
		return
	}
	Redirect(w, r, back)
}

// Delete removes a role.
func (h *RoleHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	back := localTarget(r.PostFormValue("returnTo"), "/roles")

	if err := h.roles.DeleteRole(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "Delete role", err, func(toast ui.ToastNotificationView) {
			h.errorPage(w, r, "Delete role", back, toast)
		})
		return
	}
	Redirect(w, r, back)
}
