package handlers

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"flightadmin/application"
	"flightadmin/domain/listing"
	"flightadmin/interfaces/web/presenters"
	"flightadmin/interfaces/web/templates/components/core"
	"flightadmin/interfaces/web/templates/components/ui"
	"flightadmin/interfaces/web/templates/pages"
)

// Base holds what every handler group shares.
type Base struct {
	sessions *SessionManager
	toasts   *presenters.ToastPresenter
}

// NewBase creates the shared handler dependencies.
func NewBase(sessions *SessionManager, toasts *presenters.ToastPresenter) Base {
	return Base{sessions: sessions, toasts: toasts}
}

// layout is the page chrome for the request's session.
func (b Base) layout(r *http.Request, title, active string) core.LayoutView {
	vm := core.LayoutView{Title: title, Active: active}
	if s := CurrentSession(r.Context()); s != nil {
		vm.SignedIn = true
		vm.RoleType = presenters.Humanize(s.RoleType)
	}
	return vm
}

// fail reports a failed operation. Auth failures sign the user out; anything
// else is handed to render as a toast.
func (b Base) fail(w http.ResponseWriter, r *http.Request, op string, err error, render func(toast ui.ToastNotificationView)) {
	if b.sessions.HandleAuthFailure(w, r, err) {
		return
	}
	webLogger().WithContext(r.Context()).Error(op+" failed", "path", r.URL.Path, "error", err)
	render(b.toasts.Error(err))
}

// errorPage renders a toast on an otherwise empty page, for failed actions
// that have no form to return to.
func (b Base) errorPage(w http.ResponseWriter, r *http.Request, title, back string, toast ui.ToastNotificationView) {
	if IsHTMXRequest(r) {
		RenderResponse(r.Context(), w, r, ui.ToastOOB(toast))
		return
	}
	page := pages.ErrorPage(b.layout(r, title, ""), pages.ErrorView{BackLink: back, Toasts: []ui.ToastNotificationView{toast}})
	RenderStatus(r.Context(), w, r, http.StatusOK, page)
}

// ListScreen serves one listing screen: the page, its partial reloads, the
// query form and row selection.
type ListScreen[T listing.Identifiable] struct {
	Base
	id      string
	path    string
	title   string
	active  string
	pick    func(*application.ScreenSet) *application.ListController[T]
	present func(presenters.ListContext, application.ListSnapshot[T]) ui.ListView
}

// NewListScreen creates the handlers of one listing screen. The region with
// DOM id id is what partial requests re-render.
func NewListScreen[T listing.Identifiable](
	base Base,
	id, path, title, active string,
	pick func(*application.ScreenSet) *application.ListController[T],
	present func(presenters.ListContext, application.ListSnapshot[T]) ui.ListView,
) *ListScreen[T] {
	return &ListScreen[T]{Base: base, id: id, path: path, title: title, active: active, pick: pick, present: present}
}

// Path is the screen's route.
func (s *ListScreen[T]) Path() string {
	return s.path
}

func (s *ListScreen[T]) controller(r *http.Request) *application.ListController[T] {
	return s.pick(s.sessions.Screens(r))
}

func (s *ListScreen[T]) context(ctrl *application.ListController[T], values url.Values) presenters.ListContext {
	return presenters.ListContext{ID: s.id, Path: s.path, Bridge: ctrl.Bridge(), Current: values}
}

// List renders the screen for the URL's query string.
func (s *ListScreen[T]) List(w http.ResponseWriter, r *http.Request) {
	s.load(w, r, r.URL.Query())
}

func (s *ListScreen[T]) load(w http.ResponseWriter, r *http.Request, values url.Values) {
	ctrl := s.controller(r)
	snap, err := ctrl.Load(r.Context(), values)
	if err != nil && s.sessions.HandleAuthFailure(w, r, err) {
		return
	}
	s.render(w, r, s.present(s.context(ctrl, values), snap))
}

func (s *ListScreen[T]) render(w http.ResponseWriter, r *http.Request, vm ui.ListView, toasts ...ui.ToastNotificationView) {
	if IsHTMXPartialRequest(r) && GetHTMXTarget(r) == s.id {
		RenderResponse(r.Context(), w, r, templ.Join(ui.ListRegion(vm), ui.ToastOOB(toasts...)))
		return
	}
	RenderResponse(r.Context(), w, r, pages.ListPage(s.layout(r, s.title, s.active), vm))
}

// Query applies the toolbar form to the current URL and navigates there.
func (s *ListScreen[T]) Query(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ctrl := s.controller(r)
	nav := &responseNavigator{w: w, r: r}
	next := ctrl.Bridge().Navigate(nav, s.path, currentValues(r), s.partial(ctrl.Bridge().Screen(), r))
	if nav.finish() {
		return
	}
	s.load(w, r, next)
}

// partial collects the screen parameters present in the posted form.
func (s *ListScreen[T]) partial(screen listing.Screen, r *http.Request) map[string]string {
	keys := []string{listing.ParamSearch, listing.ParamOrderBy, listing.ParamOrderDirection, screen.PageParam, screen.PerPageParam}
	keys = append(keys, screen.FilterParams...)

	partial := map[string]string{}
	for _, key := range keys {
		if _, posted := r.PostForm[key]; !posted {
			continue
		}
		if _, fixed := screen.FixedFilters[key]; fixed {
			continue
		}
		if screen.IsMultiValueParam(key) {
			partial[key] = formMulti(r, key)
			continue
		}
		partial[key] = r.PostFormValue(key)
	}
	return partial
}

// Select toggles one row of the current page.
func (s *ListScreen[T]) Select(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ctrl := s.controller(r)
	checked := r.PostFormValue("checked") == "true"

	var toasts []ui.ToastNotificationView
	if err := ctrl.Store().ToggleSelectionByID(checked, r.PostFormValue("id")); err != nil {
		toasts = append(toasts, s.toasts.Error(err))
	}
	s.renderStored(w, r, ctrl, toasts...)
}

// SelectAll selects the whole current page, or clears the selection.
func (s *ListScreen[T]) SelectAll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ctrl := s.controller(r)
	if r.PostFormValue("checked") == "true" {
		ctrl.Store().SelectPage()
	} else {
		ctrl.Store().ClearAll()
	}
	s.renderStored(w, r, ctrl)
}

// renderStored re-renders the region from the store without fetching.
func (s *ListScreen[T]) renderStored(w http.ResponseWriter, r *http.Request, ctrl *application.ListController[T], toasts ...ui.ToastNotificationView) {
	vm := s.present(s.context(ctrl, currentValues(r)), ctrl.Store().Snapshot())
	s.render(w, r, vm, toasts...)
}

// Mount registers the screen's routes on r.
func (s *ListScreen[T]) Mount(r chi.Router) {
	r.Get(s.path, s.List)
	r.Post(s.path+"/query", s.Query)
	r.Post(s.path+"/select", s.Select)
	r.Post(s.path+"/select-all", s.SelectAll)
}

