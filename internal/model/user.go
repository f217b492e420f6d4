package model

import (
	"strings"
	"time"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User represents a registered blog account.
//
// A non-empty ActivationToken means the account has not been activated yet;
// an empty or absent one means it has.
type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Email           string    `json:"email" gorm:"uniqueIndex;size:180;not null"`
	PasswordHash    string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Roles           []string  `json:"roles" gorm:"serializer:json;type:json"`
	ActivationToken *string   `json:"-" gorm:"size:64;index"`
	OTP             *int      `json:"-" gorm:"column:otp"`
	OTPAttempts     int       `json:"-" gorm:"column:otp_attempts;not null;default:0"`
	Firstname       string    `json:"firstname" gorm:"size:100"`
	Lastname        string    `json:"lastname" gorm:"size:100"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Posts     []Post     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Comments  []Comment  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Todolines []Todoline `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

// IsActivated reports whether the activation token has been cleared.
func (u *User) IsActivated() bool {
	return u.ActivationToken == nil || *u.ActivationToken == ""
}

// ClearActivation moves the account to the activated state.
func (u *User) ClearActivation() {
	u.ActivationToken = nil
	u.OTP = nil
	u.OTPAttempts = 0
}

// RoleList returns the stored roles, always including ROLE_USER.
func (u *User) RoleList() []string {
	roles := make([]string, 0, len(u.Roles)+1)
	seen := make(map[string]struct{}, len(u.Roles)+1)
	for _, r := range append(append([]string{}, u.Roles...), RoleUser) {
		if _, ok := seen[r]; ok || r == "" {
			continue
		}
		seen[r] = struct{}{}
		roles = append(roles, r)
	}
	return roles
}

// HasRole reports whether role is part of RoleList.
func (u *User) HasRole(role string) bool {
	for _, r := range u.RoleList() {
		if r == role {
			return true
		}
	}
	return false
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.Firstname + " " + u.Lastname)
}
