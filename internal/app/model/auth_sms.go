package model

import "time"

// AuthSms holds the single live verification code for a phone number.
type AuthSms struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PhoneNumber string    `gorm:"size:11;uniqueIndex;not null" json:"phone_number"`
	AuthNumber  string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt   time.Time `gorm:"index" json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (AuthSms) TableName() string {
	return "auth_sms"
}

func (a AuthSms) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && now.After(a.ExpiresAt)
}
