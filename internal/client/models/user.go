package models

import "strings"

const VerificationStatusVerified = "verified"

// User is a platform (non-admin) user.
type User struct {
	ID                 int64  `json:"id"`
	Username           string `json:"username"`
	PhoneNumber        string `json:"phone_number"`
	WalletAddress      string `json:"wallet_address"`
	Pin                string `json:"pin,omitempty"`
	VerificationStatus string `json:"verification_status,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
	UpdatedAt          string `json:"updated_at,omitempty"`
}

func (u User) Verified() bool {
	return u.VerificationStatus == VerificationStatusVerified
}

func (u User) HasWallet() bool {
	return strings.TrimSpace(u.WalletAddress) != ""
}

// NewUser is the payload for creating a platform user.
type NewUser struct {
	Username           string `json:"username" validate:"required"`
	PhoneNumber        string `json:"phone_number" validate:"required"`
	WalletAddress      string `json:"wallet_address"`
	Pin                string `json:"pin" validate:"required,numeric,len=4"`
	VerificationStatus string `json:"verification_status,omitempty"`
}

// VerificationUpdate sets the verification status of a user.
type VerificationUpdate struct {
	ID                 int64  `json:"id" validate:"required"`
	VerificationStatus string `json:"verification_status" validate:"required,oneof=verified pending rejected"`
}

// NewAdmin is the payload for inviting another admin.
type NewAdmin struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}
