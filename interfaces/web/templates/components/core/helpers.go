package core

// NavClass styles a navigation entry, highlighting the active section.
func NavClass(active, name string) string {
	if active == name {
		return "bg-blue-50 text-blue-700 border-b-2 border-blue-600 font-medium"
	}
	return "text-slate-600 hover:text-slate-900"
}

// AriaCurrent marks the active navigation entry for assistive technology.
func AriaCurrent(active, name string) string {
	if active == name {
		return "page"
	}
	return "false"
}
