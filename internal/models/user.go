package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleRestorer     = "restorer"
	RoleOrganization = "organization"
)

// Principal is the authenticated caller as extracted from the identity
// layer. Core services take it explicitly on every call.
type Principal struct {
	ID   uuid.UUID
	Role string
}

func (p Principal) IsRestorer() bool     { return p.Role == RoleRestorer }
func (p Principal) IsOrganization() bool { return p.Role == RoleOrganization }

type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email    string    `json:"email" gorm:"uniqueIndex;not null"`
	Password string    `json:"-"`
	Role     string    `json:"role" gorm:"not null"` // restorer, organization

	// Restorer fields
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	CountyID    *uint  `json:"county"`
	SubcountyID *uint  `json:"subcounty"`

	// Organization fields
	OrganizationName string `json:"organizationName"`

	TermsAccepted   bool       `json:"termsAccepted" gorm:"default:false"`
	TermsAcceptedAt *time.Time `json:"termsAcceptedAt"`

	FCMToken string `json:"-" gorm:"column:fcm_token"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	County           *County           `json:"countyDetail,omitempty" gorm:"foreignKey:CountyID"`
	Subcounty        *Subcounty        `json:"subcountyDetail,omitempty" gorm:"foreignKey:SubcountyID"`
	RestorationTypes []RestorationType `json:"restorationTypes,omitempty" gorm:"many2many:user_restoration_types"`
}

func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Role: u.Role}
}

// DisplayName is the restorer's full name or the organization's name.
func (u *User) DisplayName() string {
	if u.Role == RoleRestorer {
		return u.FirstName + " " + u.LastName
	}
	return u.OrganizationName
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Auth DTOs
type RegisterRequest struct {
	Email              string `json:"email"`
	Password           string `json:"password"`
	ConfirmPassword    string `json:"confirmPassword"`
	Role               string `json:"role"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Phone              string `json:"phone"`
	CountyID           *uint  `json:"county"`
	SubcountyID        *uint  `json:"subcounty"`
	OrganizationName   string `json:"organizationName"`
	RestorationTypeIDs []uint `json:"restorationTypeIds"`
	TermsAccepted      bool   `json:"termsAccepted"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateProfileRequest struct {
	FirstName          *string `json:"firstName"`
	LastName           *string `json:"lastName"`
	Phone              *string `json:"phone"`
	Email              *string `json:"email"`
	CountyID           *uint   `json:"county"`
	SubcountyID        *uint   `json:"subcounty"`
	OrganizationName   *string `json:"organizationName"`
	RestorationTypeIDs []uint  `json:"restorationTypeIds"`
}
