package services

import (
	"time"

	"github.com/ardhilink/ardhilink-api/internal/apperr"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListingService owns land listing records: creation, updates, soft delete
// and the role-aware visibility rules.
type ListingService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewListingService(db *gorm.DB, catalog *CatalogService) *ListingService {
	return &ListingService{db: db, catalog: catalog}
}

func (s *ListingService) Create(principal models.Principal, req models.CreateListingRequest) (*models.LandListing, error) {
	if !principal.IsRestorer() {
		return nil, apperr.Forbidden("only restorers can create land listings")
	}
	if req.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if req.Size <= 0 {
		return nil, apperr.Validation("size must be positive")
	}
	if req.Unit != models.UnitAcres && req.Unit != models.UnitHectares {
		return nil, apperr.Validation("unit must be %q or %q", models.UnitAcres, models.UnitHectares)
	}
	if len(req.RestorationTypeIDs) == 0 {
		return nil, apperr.Validation("at least one restoration type is required")
	}

	if err := s.catalog.ValidateLocation(req.CountyID, req.SubcountyID); err != nil {
		return nil, err
	}
	types, err := s.catalog.RestorationTypesByID(req.RestorationTypeIDs)
	if err != nil {
		return nil, err
	}
	if err := s.checkCapabilities(principal.ID, req.RestorationTypeIDs); err != nil {
		return nil, err
	}

	acres, hectares := models.ConvertSize(req.Size, req.Unit)
	listing := models.LandListing{
		UserID:           principal.ID,
		Title:            req.Title,
		SizeAcres:        acres,
		SizeHectares:     hectares,
		CountyID:         req.CountyID,
		SubcountyID:      req.SubcountyID,
		Availability:     models.AvailabilityAvailable,
		ImageURL:         req.ImageURL,
		RestorationTypes: types,
	}

	if err := s.db.Create(&listing).Error; err != nil {
		return nil, err
	}
	return s.reload(listing.ID)
}

func (s *ListingService) Update(principal models.Principal, id uuid.UUID, req models.UpdateListingRequest) (*models.LandListing, error) {
	listing, err := s.ownedListing(principal, id)
	if err != nil {
		return nil, err
	}

	if req.Size != nil || req.Unit != nil {
		if req.Size == nil || req.Unit == nil {
			return nil, apperr.Validation("size and unit must be provided together")
		}
		if *req.Size <= 0 {
			return nil, apperr.Validation("size must be positive")
		}
		if *req.Unit != models.UnitAcres && *req.Unit != models.UnitHectares {
			return nil, apperr.Validation("unit must be %q or %q", models.UnitAcres, models.UnitHectares)
		}
		listing.SizeAcres, listing.SizeHectares = models.ConvertSize(*req.Size, *req.Unit)
	}

	if req.CountyID != nil || req.SubcountyID != nil {
		countyID, subcountyID := listing.CountyID, listing.SubcountyID
		if req.CountyID != nil {
			countyID = *req.CountyID
		}
		if req.SubcountyID != nil {
			subcountyID = *req.SubcountyID
		}
		if err := s.catalog.ValidateLocation(countyID, subcountyID); err != nil {
			return nil, err
		}
		listing.CountyID, listing.SubcountyID = countyID, subcountyID
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.ImageURL != nil {
		listing.ImageURL = req.ImageURL
	}

	var types []models.RestorationType
	if req.RestorationTypeIDs != nil {
		if len(req.RestorationTypeIDs) == 0 {
			return nil, apperr.Validation("at least one restoration type is required")
		}
		types, err = s.catalog.RestorationTypesByID(req.RestorationTypeIDs)
		if err != nil {
			return nil, err
		}
		if err := s.checkCapabilities(principal.ID, req.RestorationTypeIDs); err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(listing).Error; err != nil {
			return err
		}
		if types != nil {
			return tx.Model(listing).Association("RestorationTypes").Replace(types)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reload(listing.ID)
}

// SoftDelete marks a listing deleted. Blocked while any match request on it
// is still pending or accepted.
func (s *ListingService) SoftDelete(principal models.Principal, id uuid.UUID) error {
	listing, err := s.ownedListing(principal, id)
	if err != nil {
		return err
	}

	var active int64
	if err := s.db.Model(&models.MatchRequest{}).
		Where("land_listing_id = ? AND status IN ?", listing.ID,
			[]string{models.StatusPending, models.StatusAccepted}).
		Count(&active).Error; err != nil {
		return err
	}
	if active > 0 {
		return apperr.Conflict("cannot delete: this land has pending or accepted match requests")
	}

	now := time.Now()
	listing.IsDeleted = true
	listing.DeletedAt = &now
	return s.db.Save(listing).Error
}

// List applies the role-aware visibility rules. Organizations browse active
// available listings; with no filters they get a random sample of 20 so the
// feed varies between calls. Restorers see their own non-deleted listings.
func (s *ListingService) List(principal models.Principal, filters models.ListingFilters) ([]models.LandListing, error) {
	var listings []models.LandListing

	if principal.IsOrganization() {
		q := s.withDetails(s.db).
			Where("land_listings.is_deleted = ? AND land_listings.availability = ?",
				false, models.AvailabilityAvailable)

		if filters.CountyID != nil {
			q = q.Where("land_listings.county_id = ?", *filters.CountyID)
		}
		if filters.RestorationType != "" {
			q = q.Joins("JOIN land_restoration_types lrt ON lrt.land_listing_id = land_listings.id").
				Joins("JOIN restoration_types rt ON rt.id = lrt.restoration_type_id").
				Where("rt.name = ?", filters.RestorationType).
				Distinct("land_listings.*")
		}
		if filters.MinSizeAcres != nil {
			q = q.Where("land_listings.size_acres >= ?", *filters.MinSizeAcres)
		}
		if filters.MaxSizeAcres != nil {
			q = q.Where("land_listings.size_acres <= ?", *filters.MaxSizeAcres)
		}

		if filters.Empty() {
			q = q.Order("RANDOM()").Limit(20)
		} else {
			q = q.Order("land_listings.created_at DESC")
		}

		err := q.Find(&listings).Error
		return listings, err
	}

	// Restorers see their own listings, minus the soft-deleted ones.
	err := s.withDetails(s.db).
		Where("land_listings.user_id = ? AND land_listings.is_deleted = ?", principal.ID, false).
		Order("land_listings.created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (s *ListingService) Get(principal models.Principal, id uuid.UUID) (*models.LandListing, error) {
	var listing models.LandListing
	q := s.withDetails(s.db)
	if principal.IsOrganization() {
		q = q.Where("land_listings.id = ? AND land_listings.is_deleted = ?", id, false)
	} else {
		q = q.Where("land_listings.id = ? AND land_listings.user_id = ?", id, principal.ID)
	}
	if err := q.First(&listing).Error; err != nil {
		return nil, apperr.NotFound("land listing not found")
	}
	return &listing, nil
}

// checkCapabilities enforces that the requested restoration types are a
// subset of the restorer's capability set.
func (s *ListingService) checkCapabilities(userID uuid.UUID, typeIDs []uint) error {
	capabilities, err := capabilityIDs(s.db, userID)
	if err != nil {
		return err
	}
	for _, id := range typeIDs {
		if !capabilities[id] {
			return apperr.Validation("you can only select restoration types that you support in your profile")
		}
	}
	return nil
}

func (s *ListingService) ownedListing(principal models.Principal, id uuid.UUID) (*models.LandListing, error) {
	var listing models.LandListing
	if err := s.db.Where("id = ? AND user_id = ? AND is_deleted = ?", id, principal.ID, false).
		First(&listing).Error; err != nil {
		// Absent and not-owned are indistinguishable on purpose.
		return nil, apperr.NotFound("land listing not found")
	}
	return &listing, nil
}

func (s *ListingService) reload(id uuid.UUID) (*models.LandListing, error) {
	var listing models.LandListing
	if err := s.withDetails(s.db).First(&listing, "land_listings.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *ListingService) withDetails(db *gorm.DB) *gorm.DB {
	return db.Model(&models.LandListing{}).
		Preload("County").
		Preload("Subcounty").
		Preload("RestorationTypes").
		Preload("User")
}

// capabilityIDs returns the restorer's capability set as an ID lookup.
func capabilityIDs(db *gorm.DB, userID uuid.UUID) (map[uint]bool, error) {
	var ids []uint
	if err := db.Table("user_restoration_types").
		Where("user_id = ?", userID).
		Pluck("restoration_type_id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
