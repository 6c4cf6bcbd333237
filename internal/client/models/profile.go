// Package models defines the admin profile and the backend data shapes
// consumed by the admin client.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Profile is the canonical admin profile cached in the credential store.
// Backend naming drift is resolved by AdminPayload.Normalize before a
// Profile is built.
type Profile struct {
	ID              string `json:"id"`
	Name            string `json:"name,omitempty"`
	Email           string `json:"email"`
	EmailVerifiedAt string `json:"email_verified_at,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
	IsActive        *bool  `json:"isActive,omitempty"`
	LastLoginAt     string `json:"lastLoginAt,omitempty"`
}

// ProfilePatch carries the fields an admin may change. Nil fields are left
// untouched.
type ProfilePatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Email == nil
}

// Apply returns a copy of p with the patch applied.
func (p Profile) Apply(patch ProfilePatch) Profile {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	return p
}

// DisplayName falls back to the email when no name is known.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}

// FlexID accepts both numeric and string identifiers.
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

// Int returns the identifier as an integer, if it is one.
func (id FlexID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}

// AdminPayload mirrors the admin object as returned by the backend, which
// mixes snake_case and camelCase names across versions.
type AdminPayload struct {
	ID                   FlexID `json:"id"`
	Name                 string `json:"name"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	EmailVerifiedAtSnake string `json:"email_verified_at"`
	EmailVerifiedAtCamel string `json:"emailVerifiedAt"`
	CreatedAtSnake       string `json:"created_at"`
	CreatedAtCamel       string `json:"createdAt"`
	UpdatedAtSnake       string `json:"updated_at"`
	UpdatedAtCamel       string `json:"updatedAt"`
	IsActive             *bool  `json:"isActive"`
	LastLoginAt          string `json:"lastLoginAt"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Normalize maps the payload onto the canonical Profile. username wins over
// name, snake_case wins over camelCase.
func (a AdminPayload) Normalize() Profile {
	return Profile{
		ID:              string(a.ID),
		Name:            firstNonEmpty(a.Username, a.Name),
		Email:           strings.TrimSpace(a.Email),
		EmailVerifiedAt: firstNonEmpty(a.EmailVerifiedAtSnake, a.EmailVerifiedAtCamel),
		CreatedAt:       firstNonEmpty(a.CreatedAtSnake, a.CreatedAtCamel),
		UpdatedAt:       firstNonEmpty(a.UpdatedAtSnake, a.UpdatedAtCamel),
		IsActive:        a.IsActive,
		LastLoginAt:     a.LastLoginAt,
	}
}

var ErrEmptyProfile = errors.New("profile is empty")

// ParseProfile decodes a persisted profile. Records written by older
// clients in the backend's shape are accepted too.
func ParseProfile(data []byte) (*Profile, error) {
	var raw *AdminPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrEmptyProfile
	}
	p := raw.Normalize()
	if p.ID == "" && p.Email == "" {
		return nil, ErrEmptyProfile
	}
	return &p, nil
}

// NormalizeAdmins maps a list of backend admin objects.
func NormalizeAdmins(in []AdminPayload) []Profile {
	out := make([]Profile, 0, len(in))
	for _, a := range in {
		out = append(out, a.Normalize())
	}
	return out
}
