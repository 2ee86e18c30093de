package admin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// RoleType is the backend's role classification.
type RoleType string

const (
	RoleTypeAdmin      RoleType = "ADMIN"
	RoleTypeSuperAdmin RoleType = "SUPER_ADMIN"
	RoleTypeSubAdmin   RoleType = "SUB_ADMIN"
	RoleTypeSalesAgent RoleType = "SALES_AGENT"
	RoleTypeUser       RoleType = "USER"
)

// RoleTypes lists every role type in display order.
func RoleTypes() []RoleType {
	return []RoleType{RoleTypeAdmin, RoleTypeSalesAgent, RoleTypeSuperAdmin, RoleTypeSubAdmin, RoleTypeUser}
}

// Valid reports whether t is a known role type.
func (t RoleType) Valid() bool {
	for _, rt := range RoleTypes() {
		if rt == t {
			return true
		}
	}
	return false
}

// Permission grants actions on a subject.
type Permission struct {
	Subject string   `json:"subject"`
	Action  []string `json:"action"`
}

// Permissions is either a list of grants or, in list responses, just a count.
type Permissions struct {
	Items []Permission
	count int
}

// Len is the number of permissions regardless of which form the API sent.
func (p Permissions) Len() int {
	if p.Items != nil {
		return len(p.Items)
	}
	return p.count
}

func (p *Permissions) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*p = Permissions{}
		return nil
	case len(b) > 0 && b[0] == '[':
		var items []Permission
		if err := json.Unmarshal(b, &items); err == nil {
			*p = Permissions{Items: items}
			return nil
		}
		// Some endpoints return permission ids instead of grants.
		var ids []json.Number
		if err := json.Unmarshal(b, &ids); err != nil {
			return fmt.Errorf("decode permissions: %w", err)
		}
		*p = Permissions{count: len(ids)}
		return nil
	default:
		var n int
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("decode permission count: %w", err)
		}
		*p = Permissions{count: n}
		return nil
	}
}

func (p Permissions) MarshalJSON() ([]byte, error) {
	if p.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.Items)
}

// Role is an access role.
type Role struct {
	ID          string      `json:"_id"`
	Deleted     bool        `json:"deleted,omitempty"`
	CreatedAt   Timestamp   `json:"createdAt,omitempty"`
	UpdatedAt   Timestamp   `json:"updatedAt,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	IsActive    bool        `json:"isActive"`
	Type        RoleType    `json:"type"`
	Permissions Permissions `json:"permissions"`
}

func (r Role) Identity() string { return r.ID }

// CreateRolePayload is the body of POST /admin/role/create.
type CreateRolePayload struct {
	Name        string       `json:"name"`
	Type        RoleType     `json:"type"`
	Permissions []Permission `json:"permissions"`
	Description string       `json:"description,omitempty"`
}

// UpdateRolePayload is the body of PUT /admin/role/update/{id}.
type UpdateRolePayload struct {
	Type        RoleType     `json:"type,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
	Description string       `json:"description,omitempty"`
}

// SubjectAll grants every subject; it supersedes any other grant.
const SubjectAll = "ALL"

// PermissionSubjects lists the subjects a role can be granted, in display order.
func PermissionSubjects() []string {
	return []string{SubjectAll, "AUTH", "API_KEY", "SETTING", "COUNTRY", "ROLE", "USER", "SESSION", "ACTIVITY"}
}

// ManageGrants builds a manage grant per subject. ALL collapses the set to a
// single ALL grant; unknown subjects are dropped.
func ManageGrants(subjects []string) []Permission {
	known := make(map[string]bool)
	for _, s := range PermissionSubjects() {
		known[s] = true
	}
	seen := make(map[string]bool)
	grants := []Permission{}
	for _, s := range subjects {
		if s == SubjectAll {
			return []Permission{{Subject: SubjectAll, Action: []string{"manage"}}}
		}
		if !known[s] || seen[s] {
			continue
		}
		seen[s] = true
		grants = append(grants, Permission{Subject: s, Action: []string{"manage"}})
	}
	return grants
}

// Subjects returns the granted subjects.
func (p Permissions) Subjects() []string {
	out := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, item.Subject)
	}
	return out
}

var (
	ErrRoleNameRequired = errors.New("role name is required")
	ErrInvalidRoleType  = errors.New("role type is not valid")
)

// Validate checks the fields the backend requires.
func (p CreateRolePayload) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrRoleNameRequired)
	}
	if !p.Type.Valid() {
		errs = append(errs, ErrInvalidRoleType)
	}
	return errors.Join(errs...)
}

// Validate rejects an unknown role type; every field is optional.
func (p UpdateRolePayload) Validate() error {
	if p.Type != "" && !p.Type.Valid() {
		return ErrInvalidRoleType
	}
	return nil
}
