package core

// LayoutView is what the page chrome needs to know about the request.
type LayoutView struct {
	Title    string
	Active   string // navigation section
	SignedIn bool
	RoleType string
}

type navEntry struct {
	name  string
	label string
	href  string
}

var navEntries = []navEntry{
	{"home", "Home", "/home"},
	{"users", "Users", "/users"},
	{"sales-agents", "Sales Agents", "/users/sales-agents"},
	{"roles", "Roles", "/roles"},
	{"bookings", "Bookings", "/booking"},
	{"configuration", "Configuration", "/configuration"},
	{"profile", "Profile", "/profile"},
}
