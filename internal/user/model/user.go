package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of privilege levels. RoleUser is the default and
// lowest-privileged.
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name         string    `json:"name" gorm:"type:varchar(50);not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Photo        *string   `json:"photo,omitempty" gorm:"type:varchar(255)"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:user"`
	PasswordHash string    `json:"-" gorm:"type:varchar(100);not null"`

	// PasswordChangedAt stays nil until the first password mutation after
	// signup; every bearer token issued before it is considered stale.
	PasswordChangedAt *time.Time `json:"-" gorm:"type:timestamptz"`

	// PasswordResetToken holds the SHA-256 hex of the outstanding reset
	// token. It and PasswordResetExpires are either both set or both nil.
	PasswordResetToken   *string    `json:"-" gorm:"type:varchar(64);index"`
	PasswordResetExpires *time.Time `json:"-" gorm:"type:timestamptz"`

	Active    bool      `json:"-" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// PasswordChangedAfter reports whether the password was mutated at or after
// the given token issuance time. Both sides are compared at second
// precision because JWT iat claims carry no sub-second component.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() >= issuedAt.Unix()
}

// HasActiveResetToken reports whether an unexpired reset token is
// outstanding. Expiry is only ever checked lazily, at consumption time.
func (u *User) HasActiveResetToken(now time.Time) bool {
	return u.PasswordResetToken != nil &&
		u.PasswordResetExpires != nil &&
		u.PasswordResetExpires.After(now)
}
