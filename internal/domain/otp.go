package domain

import "time"

// OtpPurpose names the flow an OTP check is performed for. Only the
// registration purpose consumes the challenge on verification.
type OtpPurpose string

const (
	OtpPurposeRegistration  OtpPurpose = "registration"
	OtpPurposeResetPassword OtpPurpose = "reset_password"
)

func (p OtpPurpose) Valid() bool {
	return p == OtpPurposeRegistration || p == OtpPurposeResetPassword
}

// OtpChallenge is the single live one-time code for an email address.
// Email is the natural key: issuing a new code replaces any prior row.
type OtpChallenge struct {
	Email     string    `db:"email" json:"email"`
	Code      int       `db:"code" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
