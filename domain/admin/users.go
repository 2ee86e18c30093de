package admin

import (
	"errors"
	"strings"
)

// UserStatus is the account state of a user.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// Valid reports whether s is a status the API accepts.
func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// Toggled returns the opposite status.
func (s UserStatus) Toggled() UserStatus {
	if s == UserStatusActive {
		return UserStatusInactive
	}
	return UserStatusActive
}

// Gender values accepted by the user endpoints.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Genders lists the accepted genders in display order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// Valid reports whether g is an accepted gender.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Verification flags of a user's contact points.
type Verification struct {
	Email        bool `json:"email"`
	MobileNumber bool `json:"mobileNumber"`
}

// User is a staff member, customer or sales agent account.
type User struct {
	ID               string        `json:"_id"`
	Deleted          bool          `json:"deleted,omitempty"`
	CreatedAt        Timestamp     `json:"createdAt,omitempty"`
	UpdatedAt        Timestamp     `json:"updatedAt,omitempty"`
	Name             string        `json:"name"`
	Username         string        `json:"username"`
	Email            string        `json:"email"`
	Role             Role          `json:"role"`
	Status           UserStatus    `json:"status"`
	Country          Country       `json:"country"`
	Verification     *Verification `json:"verification,omitempty"`
	PasswordExpired  Timestamp     `json:"passwordExpired,omitempty"`
	PasswordCreated  Timestamp     `json:"passwordCreated,omitempty"`
	SignUpDate       Timestamp     `json:"signUpDate,omitempty"`
	SignUpFrom       string        `json:"signUpFrom,omitempty"`
	Gender           Gender        `json:"gender,omitempty"`
	CommissionAmount *float64      `json:"commissionAmount,omitempty"`
	MonthlySalesGoal *float64      `json:"monthlySalesGoal,omitempty"`
}

func (u User) Identity() string { return u.ID }

// IsSalesAgent reports whether the user holds the sales agent role.
func (u User) IsSalesAgent() bool {
	return u.Role.Type == RoleTypeSalesAgent
}

var (
	ErrEmailRequired   = errors.New("email is required")
	ErrNameRequired    = errors.New("name is required")
	ErrRoleRequired    = errors.New("role is required")
	ErrCountryRequired = errors.New("country is required")
	ErrInvalidGender   = errors.New("gender must be MALE, FEMALE or OTHER")
	ErrNegativeAmount  = errors.New("commission and sales goal must not be negative")
	ErrInvalidStatus   = errors.New("status must be ACTIVE or INACTIVE")
)

// CreateUserPayload is the body of POST /admin/user/create.
type CreateUserPayload struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Gender  Gender `json:"gender"`
}

// Validate checks the fields the backend requires.
func (p CreateUserPayload) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Email) == "" {
		errs = append(errs, ErrEmailRequired)
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if p.Role == "" {
		errs = append(errs, ErrRoleRequired)
	}
	if p.Country == "" {
		errs = append(errs, ErrCountryRequired)
	}
	if !p.Gender.Valid() {
		errs = append(errs, ErrInvalidGender)
	}
	return errors.Join(errs...)
}

// UpdateUserPayload is the body of PUT /admin/user/update/{id}.
type UpdateUserPayload struct {
	Role    string `json:"role,omitempty"`
	Name    string `json:"name,omitempty"`
	Country string `json:"country,omitempty"`
	Gender  Gender `json:"gender,omitempty"`
}

// Validate rejects an unknown gender; every field is optional.
func (p UpdateUserPayload) Validate() error {
	if p.Gender != "" && !p.Gender.Valid() {
		return ErrInvalidGender
	}
	return nil
}

// SalesAgentPayload is the body of the sales agent create and update endpoints.
type SalesAgentPayload struct {
	CreateUserPayload
	CommissionAmount float64 `json:"commissionAmount"`
	MonthlySalesGoal float64 `json:"monthlySalesGoal"`
}

// Validate checks the user fields and the agent's amounts.
func (p SalesAgentPayload) Validate() error {
	err := p.CreateUserPayload.Validate()
	if p.CommissionAmount < 0 || p.MonthlySalesGoal < 0 {
		err = errors.Join(err, ErrNegativeAmount)
	}
	return err
}

// UpdateStatusPayload is the body of PATCH /admin/user/update/{id}/status.
type UpdateStatusPayload struct {
	Status UserStatus `json:"status"`
}

// UpdateProfilePayload is the body of PUT /shared/user/profile/update.
type UpdateProfilePayload struct {
	Name    string `json:"name,omitempty"`
	Country string `json:"country,omitempty"`
	Gender  Gender `json:"gender,omitempty"`
}

// Validate rejects an unknown gender.
func (p UpdateProfilePayload) Validate() error {
	if p.Gender != "" && !p.Gender.Valid() {
		return ErrInvalidGender
	}
	return nil
}
