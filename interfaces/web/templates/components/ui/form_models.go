package ui

// Field types understood by Form.
const (
	FieldText       = "text"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldNumber     = "number"
	FieldSelect     = "select"
	FieldTextarea   = "textarea"
	FieldCheckboxes = "checkboxes"
	FieldHidden     = "hidden"
)

// FormView is a generic form.
type FormView struct {
	Title      string
	Action     string
	Fields     []FieldView
	SubmitText string
	CancelLink string
	Toasts     []ToastNotificationView
}

// FieldView is one form control.
type FieldView struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Choices  []ChoiceView
	Required bool
	Disabled bool
	ReadOnly bool
	Step     string
}

// DetailView is a read-only record page. Missing renders the empty state.
type DetailView struct {
	Title     string
	Missing   bool
	EmptyText string
	Rows      []DetailRowView
	Actions   []ActionView
	BackLink  string
	Sections  []DetailSectionView
}

// DetailRowView is one label/value pair.
type DetailRowView struct {
	Label string
	Value string
	Badge string
}

// DetailSectionView groups rows under a heading.
type DetailSectionView struct {
	Title string
	Rows  []DetailRowView
}
