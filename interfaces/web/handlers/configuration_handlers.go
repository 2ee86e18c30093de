package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"flightadmin/application"
	"flightadmin/domain/admin"
	"flightadmin/interfaces/web/presenters"
	"flightadmin/interfaces/web/templates/components/ui"
	"flightadmin/interfaces/web/templates/pages"
)

// ConfigurationHandlers serves the rate editor.
type ConfigurationHandlers struct {
	Base
	config    *application.ConfigurationService
	presenter *presenters.ConfigurationPresenter
}

// NewConfigurationHandlers creates the configuration handlers.
func NewConfigurationHandlers(base Base, config *application.ConfigurationService, presenter *presenters.ConfigurationPresenter) *ConfigurationHandlers {
	return &ConfigurationHandlers{Base: base, config: config, presenter: presenter}
}

// Mount registers the configuration routes on r.
func (h *ConfigurationHandlers) Mount(r chi.Router) {
	r.Get("/configuration", h.Page)
	r.Post("/configuration/{kind}", h.Save)
}

func (h *ConfigurationHandlers) renderPage(w http.ResponseWriter, r *http.Request, vm pages.ConfigurationView) {
	RenderResponse(r.Context(), w, r, pages.ConfigurationPage(h.layout(r, "Configuration", "configuration"), vm))
}

// Page shows every rate.
func (h *ConfigurationHandlers) Page(w http.ResponseWriter, r *http.Request) {
	rates, err := h.config.Rates(r.Context())
	if err != nil {
		h.fail(w, r, "Load rates", err, func(toast ui.ToastNotificationView) {
			h.renderPage(w, r, h.presenter.Page(nil, toast))
		})
		return
	}
	h.renderPage(w, r, h.presenter.Page(rates))
}

// Save stores one rate. HTMX requests get the rate's card back with a toast;
// plain form posts go back to the page.
func (h *ConfigurationHandlers) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	kind := admin.RateKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		http.NotFound(w, r)
		return
	}
	raw := r.PostFormValue("value")

	value, err := h.config.SaveRate(r.Context(), kind, raw)
	if err != nil {
		h.fail(w, r, "Save "+string(kind), err, func(toast ui.ToastNotificationView) {
			card := h.presenter.Rate(admin.Rate{Kind: kind}, raw)
			h.respondRate(w, r, card, toast)
		})
		return
	}

	webLogger().WithContext(r.Context()).Info("Rate saved", "kind", kind, "value", value)
	card := h.presenter.Rate(admin.Rate{Kind: kind, Value: value, Set: true}, "")
	h.respondRate(w, r, card, h.toasts.Success(kind.Title()+" saved."))
}

func (h *ConfigurationHandlers) respondRate(w http.ResponseWriter, r *http.Request, card pages.RateView, toast ui.ToastNotificationView) {
	if IsHTMXRequest(r) {
		RenderResponse(r.Context(), w, r, templ.Join(pages.RateForm(card), ui.ToastOOB(toast)))
		return
	}

	rates, err := h.config.Rates(r.Context())
	if err != nil {
		h.fail(w, r, "Load rates", err, func(loadToast ui.ToastNotificationView) {
			h.renderPage(w, r, pages.ConfigurationView{Rates: []pages.RateView{card}, Toasts: []ui.ToastNotificationView{toast, loadToast}})
		})
		return
	}
	vm := h.presenter.Page(rates, toast)
	for i := range vm.Rates {
		if vm.Rates[i].Kind == card.Kind {
			vm.Rates[i] = card
		}
	}
	h.renderPage(w, r, vm)
}
