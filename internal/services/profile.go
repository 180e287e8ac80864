package services

import (
	"sort"
	"strings"
	"time"

	"github.com/ardhilink/ardhilink-api/internal/apperr"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"gorm.io/gorm"
)

// ProfileService manages user profiles and the restorer capability set.
type ProfileService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewProfileService(db *gorm.DB, catalog *CatalogService) *ProfileService {
	return &ProfileService{db: db, catalog: catalog}
}

func (s *ProfileService) Get(principal models.Principal) (*models.User, error) {
	var user models.User
	err := s.db.Preload("County").Preload("Subcounty").Preload("RestorationTypes").
		First(&user, "id = ?", principal.ID).Error
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}
	return &user, nil
}

// Update patches profile fields and, for restorers, replaces the capability
// set. Removing a capability still referenced by a non-deleted listing is
// rejected so every active listing's tags stay inside the owner's set.
func (s *ProfileService) Update(principal models.Principal, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Get(principal)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		var count int64
		if err := s.db.Model(&models.User{}).
			Where("email = ? AND id != ?", *req.Email, user.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Conflict("email already registered")
		}
		user.Email = *req.Email
	}

	if req.CountyID != nil || req.SubcountyID != nil {
		countyID, subcountyID := req.CountyID, req.SubcountyID
		if countyID == nil {
			countyID = user.CountyID
		}
		if subcountyID == nil {
			subcountyID = user.SubcountyID
		}
		if countyID == nil || subcountyID == nil {
			return nil, apperr.Validation("county and subcounty must be provided together")
		}
		if err := s.catalog.ValidateLocation(*countyID, *subcountyID); err != nil {
			return nil, err
		}
		user.CountyID, user.SubcountyID = countyID, subcountyID
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.OrganizationName != nil {
		user.OrganizationName = *req.OrganizationName
	}

	var newTypes []models.RestorationType
	if req.RestorationTypeIDs != nil && user.Role == models.RoleRestorer {
		newTypes, err = s.catalog.RestorationTypesByID(req.RestorationTypeIDs)
		if err != nil {
			return nil, err
		}
		if err := s.checkRemovals(user, req.RestorationTypeIDs); err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		user.County, user.Subcounty, user.RestorationTypes = nil, nil, nil
		if err := tx.Omit("RestorationTypes").Save(user).Error; err != nil {
			return err
		}
		if newTypes != nil {
			return tx.Model(user).Association("RestorationTypes").Replace(newTypes)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(principal)
}

// checkRemovals fails when a capability being dropped is still used by a
// non-deleted listing, naming the conflicting types and listings.
func (s *ProfileService) checkRemovals(user *models.User, newIDs []uint) error {
	current, err := capabilityIDs(s.db, user.ID)
	if err != nil {
		return err
	}

	keep := make(map[uint]bool, len(newIDs))
	for _, id := range newIDs {
		keep[id] = true
	}
	var removed []uint
	for id := range current {
		if !keep[id] {
			removed = append(removed, id)
		}
	}
	if len(removed) == 0 {
		return nil
	}

	var listings []models.LandListing
	if err := s.db.Preload("RestorationTypes").
		Where("user_id = ? AND is_deleted = ?", user.ID, false).
		Find(&listings).Error; err != nil {
		return err
	}

	conflictTypes := make(map[string]bool)
	var conflictListings []string
	removedSet := make(map[uint]bool, len(removed))
	for _, id := range removed {
		removedSet[id] = true
	}
	for _, listing := range listings {
		hit := false
		for _, rt := range listing.RestorationTypes {
			if removedSet[rt.ID] {
				conflictTypes[rt.DisplayName] = true
				hit = true
			}
		}
		if hit {
			conflictListings = append(conflictListings, listing.Title)
		}
	}
	if len(conflictListings) == 0 {
		return nil
	}

	var names []string
	for name := range conflictTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return apperr.Validation("cannot remove restoration types: %s; used by listings: %s",
		strings.Join(names, ", "), strings.Join(conflictListings, ", "))
}

// RegisterDeviceToken saves the FCM token used for push delivery.
func (s *ProfileService) RegisterDeviceToken(principal models.Principal, token string) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", principal.ID).
		Updates(map[string]interface{}{"fcm_token": token, "updated_at": time.Now()}).Error
}
