package services

import (
	"github.com/ardhilink/ardhilink-api/internal/apperr"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"gorm.io/gorm"
)

// CatalogService is the read-only lookup over the reference catalogs:
// counties, subcounties and restoration types.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) Counties() ([]models.County, error) {
	var counties []models.County
	err := s.db.Order("name ASC").Find(&counties).Error
	return counties, err
}

func (s *CatalogService) Subcounties(countyID uint) ([]models.Subcounty, error) {
	var subcounties []models.Subcounty
	err := s.db.Where("county_id = ?", countyID).Order("name ASC").Find(&subcounties).Error
	return subcounties, err
}

func (s *CatalogService) RestorationTypes() ([]models.RestorationType, error) {
	var types []models.RestorationType
	err := s.db.Order("name ASC").Find(&types).Error
	return types, err
}

// ValidateLocation checks that the county exists and the subcounty belongs
// to it.
func (s *CatalogService) ValidateLocation(countyID, subcountyID uint) error {
	var county models.County
	if err := s.db.First(&county, countyID).Error; err != nil {
		return apperr.Validation("unknown county")
	}
	var subcounty models.Subcounty
	if err := s.db.Where("id = ? AND county_id = ?", subcountyID, countyID).
		First(&subcounty).Error; err != nil {
		return apperr.Validation("subcounty does not belong to the selected county")
	}
	return nil
}

// RestorationTypesByID resolves the given catalog IDs, failing if any is
// unknown.
func (s *CatalogService) RestorationTypesByID(ids []uint) ([]models.RestorationType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var types []models.RestorationType
	if err := s.db.Where("id IN ?", ids).Find(&types).Error; err != nil {
		return nil, err
	}
	if len(types) != len(uniqueIDs(ids)) {
		return nil, apperr.Validation("unknown restoration type")
	}
	return types, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
