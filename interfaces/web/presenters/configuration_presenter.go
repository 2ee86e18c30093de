package presenters

import (
	"strconv"

	"flightadmin/domain/admin"
	"flightadmin/interfaces/web/templates/components/ui"
	"flightadmin/interfaces/web/templates/pages"
)

// ConfigurationPresenter builds the rate editor.
type ConfigurationPresenter struct{}

// NewConfigurationPresenter creates a configuration presenter.
func NewConfigurationPresenter() *ConfigurationPresenter {
	return &ConfigurationPresenter{}
}

// Rate builds one rate card. raw, when not empty, is shown instead of the
// stored value so a rejected entry stays in the form.
func (p *ConfigurationPresenter) Rate(rate admin.Rate, raw string) pages.RateView {
	value := raw
	if value == "" && rate.Set {
		value = strconv.FormatFloat(rate.Value, 'f', -1, 64)
	}
	return pages.RateView{
		Kind:   string(rate.Kind),
		Title:  rate.Kind.Title(),
		Value:  value,
		Set:    rate.Set || raw != "",
		Action: "/configuration/" + string(rate.Kind),
	}
}

// Page builds the configuration page.
func (p *ConfigurationPresenter) Page(rates []admin.Rate, toasts ...ui.ToastNotificationView) pages.ConfigurationView {
	vm := pages.ConfigurationView{Toasts: toasts}
	for _, r := range rates {
		vm.Rates = append(vm.Rates, p.Rate(r, ""))
	}
	return vm
}
