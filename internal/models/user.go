package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleHost   UserRole = "host"
	RoleRenter UserRole = "renter"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	gorm.Model
	Email        string `json:"email" gorm:"column:email;unique;not null"`
	Password     string `json:"-" gorm:"-"` // Temporary field for password handling
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	FirstName    string `json:"firstName" gorm:"column:first_name;not null"`
	LastName     string `json:"lastName" gorm:"column:last_name;not null"`
	Phone        string `json:"phone" gorm:"column:phone"`
	Role         string `json:"role" gorm:"column:role;not null;default:'renter'"`
	Avatar       string `json:"avatar" gorm:"column:avatar"`

	Verified         bool `json:"verified" gorm:"column:verified;not null;default:false"`
	IdentityVerified bool `json:"identityVerified" gorm:"column:identity_verified;not null;default:false"`

	LicenseVerified             bool       `json:"licenseVerified" gorm:"column:license_verified;not null;default:false"`
	LicenseDocFront             string     `json:"licenseDocFront,omitempty" gorm:"column:license_doc_front"`
	LicenseDocBack              string     `json:"licenseDocBack,omitempty" gorm:"column:license_doc_back"`
	LicenseExpiryDate           *time.Time `json:"licenseExpiryDate,omitempty" gorm:"column:license_expiry_date"`
	LicenseExpiryReminderSentAt *time.Time `json:"-" gorm:"column:license_expiry_reminder_sent_at"`

	Banned       bool       `json:"banned" gorm:"column:banned;not null;default:false"`
	BannedAt     *time.Time `json:"bannedAt,omitempty" gorm:"column:banned_at"`
	BannedReason string     `json:"bannedReason,omitempty" gorm:"column:banned_reason"`
	BannedBy     uint       `json:"-" gorm:"column:banned_by"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// LicenseExpired reports whether a verified licence has passed its expiry date.
func (u *User) LicenseExpired(now time.Time) bool {
	return u.LicenseExpiryDate != nil && !u.LicenseExpiryDate.After(now)
}

// CanBook reports whether the user holds a verified, unexpired driver's licence.
func (u *User) CanBook(now time.Time) bool {
	return u.LicenseVerified && u.LicenseExpiryDate != nil && u.LicenseExpiryDate.After(now)
}
