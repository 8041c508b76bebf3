package domain

import "time"

type OTPPurpose string

const (
	OTPPurposeSignup         OTPPurpose = "SIGNUP"
	OTPPurposeReset          OTPPurpose = "RESET"
	OTPPurposeChangePassword OTPPurpose = "CHANGE_PASSWORD"
)

// OTP is a single-use numeric passcode proving email ownership. One live
// code per (email, purpose); a new request overwrites the previous one.
type OTP struct {
	Email     string     `json:"email"`
	Purpose   OTPPurpose `json:"purpose"`
	Code      string     `json:"-"`
	ExpiresOn time.Time  `json:"expires_on"`
	CreatedOn time.Time  `json:"created_on"`
}

func (o *OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresOn)
}
