package models

// WaitlistUser is an entry of the public waitlist.
type WaitlistUser struct {
	ID            int64  `json:"id"`
	EmailAddress  string `json:"email_address"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Country       string `json:"country"`
	WalletAddress string `json:"wallet_address"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// NewWaitlistUser is the payload for adding someone to the waitlist.
type NewWaitlistUser struct {
	EmailAddress  string `json:"email_address" validate:"required,email"`
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Country       string `json:"country" validate:"required"`
	WalletAddress string `json:"wallet_address"`
}
