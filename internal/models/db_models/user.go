package db_models

import (
	"time"

	"github.com/shopspring/decimal"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return true
	}
	return false
}

type User struct {
	BaseModel
	FirstName  string     `json:"first_name"`
	MiddleName string     `json:"middle_name"`
	LastName   string     `json:"last_name"`
	Email      *string    `gorm:"uniqueIndex" json:"email"`
	DOB        *time.Time `json:"dob"`
	Gender     string     `gorm:"size:16" json:"gender"`
	Address    string     `json:"address"`
	Phone      string     `gorm:"uniqueIndex;not null" json:"phone"`

	AadharNumber     string `gorm:"size:20" json:"aadhar_number"`
	AadharFrontImage string `json:"aadhar_front_image"`
	AadharBackImage  string `json:"aadhar_back_image"`
	PanNumber        string `gorm:"size:20" json:"pan_number"`
	PanFrontImage    string `json:"pan_front_image"`
	PanBackImage     string `json:"pan_back_image"`
	ProfileImage     string `json:"profile_image"`

	IsVerified    bool               `gorm:"default:false" json:"is_verified"`
	Role          string             `gorm:"size:16;default:user" json:"role"`
	AdminVerified VerificationStatus `gorm:"size:16;default:pending;index" json:"admin_verified"`
	DeviceToken   string             `json:"-"`

	Wallet decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"wallet"`
}

// IsRegistered reports whether the KYC registration form was completed.
func (u *User) IsRegistered() bool {
	return u.FirstName != ""
}

func (u *User) FullName() string {
	name := u.FirstName
	if u.MiddleName != "" {
		name += " " + u.MiddleName
	}
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}

type Admin struct {
	BaseModel
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
}
