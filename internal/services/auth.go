package services

import (
	"time"

	"github.com/ardhilink/ardhilink-api/internal/apperr"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService registers and authenticates users. The core services never
// touch credentials; they only consume the Principal the token carries.
type AuthService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewAuthService(db *gorm.DB, catalog *CatalogService) *AuthService {
	return &AuthService{db: db, catalog: catalog}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.User, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	var existing int64
	if err := s.db.Model(&models.User{}).
		Where("email = ?", req.Email).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperr.Conflict("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:            req.Email,
		Password:         string(hashed),
		Role:             req.Role,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		CountyID:         req.CountyID,
		SubcountyID:      req.SubcountyID,
		OrganizationName: req.OrganizationName,
		TermsAccepted:    req.TermsAccepted,
	}
	if req.TermsAccepted {
		now := time.Now()
		user.TermsAcceptedAt = &now
	}

	var types []models.RestorationType
	if req.Role == models.RoleRestorer {
		types, err = s.catalog.RestorationTypesByID(req.RestorationTypeIDs)
		if err != nil {
			return nil, err
		}
		user.RestorationTypes = types
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	var created models.User
	if err := s.db.Preload("County").Preload("Subcounty").Preload("RestorationTypes").
		First(&created, "id = ?", user.ID).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *AuthService) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("County").Preload("Subcounty").Preload("RestorationTypes").
		Where("email = ?", email).First(&user).Error; err != nil {
		return nil, apperr.Forbidden("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Forbidden("invalid email or password")
	}
	return &user, nil
}

func (s *AuthService) validateRegistration(req models.RegisterRequest) error {
	if req.Email == "" {
		return apperr.Validation("email is required")
	}
	if len(req.Password) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}
	if req.Password != req.ConfirmPassword {
		return apperr.Validation("passwords must match")
	}

	switch req.Role {
	case models.RoleRestorer:
		if req.FirstName == "" || req.LastName == "" {
			return apperr.Validation("first and last name are required for restorers")
		}
		if req.CountyID == nil || req.SubcountyID == nil {
			return apperr.Validation("county and subcounty are required for restorers")
		}
		if err := s.catalog.ValidateLocation(*req.CountyID, *req.SubcountyID); err != nil {
			return err
		}
		if len(req.RestorationTypeIDs) == 0 {
			return apperr.Validation("at least one restoration type is required")
		}
	case models.RoleOrganization:
		if req.OrganizationName == "" {
			return apperr.Validation("organization name is required")
		}
	default:
		return apperr.Validation("role must be %q or %q", models.RoleRestorer, models.RoleOrganization)
	}
	return nil
}
