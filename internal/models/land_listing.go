package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AvailabilityAvailable   = "available"
	AvailabilityUnavailable = "unavailable"
)

const (
	UnitAcres    = "acres"
	UnitHectares = "hectares"
)

// AcresToHectares is the fixed conversion factor: 1 acre = 0.404686 ha.
const AcresToHectares = 0.404686

type LandListing struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Title        string    `json:"title" gorm:"not null"`
	SizeAcres    float64   `json:"sizeAcres" gorm:"not null"`
	SizeHectares float64   `json:"sizeHectares" gorm:"not null"`
	CountyID     uint      `json:"county" gorm:"not null"`
	SubcountyID  uint      `json:"subcounty" gorm:"not null"`
	Availability string    `json:"availability" gorm:"default:available"`
	ImageURL     *string   `json:"imageUrl"`

	// Soft delete is explicit so the owner keeps visibility rules in hand;
	// deleted rows are never purged.
	IsDeleted bool       `json:"-" gorm:"default:false;index"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User             *User             `json:"owner,omitempty" gorm:"foreignKey:UserID"`
	County           *County           `json:"countyDetail,omitempty" gorm:"foreignKey:CountyID"`
	Subcounty        *Subcounty        `json:"subcountyDetail,omitempty" gorm:"foreignKey:SubcountyID"`
	RestorationTypes []RestorationType `json:"restorationTypes,omitempty" gorm:"many2many:land_restoration_types"`
}

func (l *LandListing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ConvertSize derives the missing size from the authoritative input.
// Rounds to 2 decimals, half away from zero.
func ConvertSize(size float64, unit string) (acres, hectares float64) {
	if unit == UnitAcres {
		return size, round2(size * AcresToHectares)
	}
	return round2(size / AcresToHectares), size
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Listing DTOs
type CreateListingRequest struct {
	Title              string  `json:"title"`
	Size               float64 `json:"size"`
	Unit               string  `json:"unit"` // acres, hectares
	CountyID           uint    `json:"county"`
	SubcountyID        uint    `json:"subcounty"`
	RestorationTypeIDs []uint  `json:"restorationTypeIds"`
	ImageURL           *string `json:"imageUrl"`
}

type UpdateListingRequest struct {
	Title              *string  `json:"title"`
	Size               *float64 `json:"size"`
	Unit               *string  `json:"unit"`
	CountyID           *uint    `json:"county"`
	SubcountyID        *uint    `json:"subcounty"`
	RestorationTypeIDs []uint   `json:"restorationTypeIds"`
	ImageURL           *string  `json:"imageUrl"`
}

// ListingFilters narrows the organization-facing listing query. A nil/empty
// filter set yields a bounded random sample instead of the full table.
type ListingFilters struct {
	CountyID        *uint
	RestorationType string // catalog name, e.g. "forest"
	MinSizeAcres    *float64
	MaxSizeAcres    *float64
}

func (f ListingFilters) Empty() bool {
	return f.CountyID == nil && f.RestorationType == "" &&
		f.MinSizeAcres == nil && f.MaxSizeAcres == nil
}
