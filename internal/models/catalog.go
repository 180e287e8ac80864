package models

// Static reference data, seeded at startup and never mutated by the API.

type County struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

type Subcounty struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"not null"`
	CountyID uint   `json:"county" gorm:"index;not null"`

	County *County `json:"-" gorm:"foreignKey:CountyID"`
}

type RestorationType struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"` // e.g. "forest"
	DisplayName string `json:"displayName" gorm:"not null"`      // e.g. "Forest Restoration"
}
