package models

import "time"

// OTPValidity is how long a stored code can be used after creation.
const OTPValidity = 10 * time.Minute

// Otp holds a one-time verification code. At most one row per email is
// active at a time; issuing a new code replaces the previous one.
type Otp struct {
	OtpID     int       `gorm:"primaryKey;column:otp_id" json:"otp_id"`
	Email     string    `gorm:"column:email;index" json:"email"`
	Code      string    `gorm:"column:code" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Otp) TableName() string {
	return "otps"
}

// Expired reports whether the code is past its validity window.
func (o *Otp) Expired(now time.Time) bool {
	return now.Sub(o.CreatedAt) > OTPValidity
}
