package services

import (
	"errors"
	"sync"

	"github.com/ardhilink/ardhilink-api/internal/apperr"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MatchService runs the match-request state machine:
//
//	pending -> accepted | declined
//	pending -> land_no_longer_available   (cascade on a sibling accept)
//
// Accepting touches one listing, its sibling requests and their
// notifications as a single unit, so accepts are serialized per listing.
type MatchService struct {
	db            *gorm.DB
	notifications *NotificationService
	mailer        *Mailer
	log           *zap.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewMatchService(db *gorm.DB, notifications *NotificationService, mailer *Mailer, log *zap.Logger) *MatchService {
	return &MatchService{
		db:            db,
		notifications: notifications,
		mailer:        mailer,
		log:           log,
		locks:         make(map[uuid.UUID]*sync.Mutex),
	}
}

// Create registers an organization's interest in a listing. Availability is
// not checked here: a listing may hold any number of pending requests, but
// each organization may request a given listing at most once, ever.
func (s *MatchService) Create(principal models.Principal, listingID uuid.UUID) (*models.MatchRequest, error) {
	if !principal.IsOrganization() {
		return nil, apperr.Forbidden("only organizations can create match requests")
	}

	var listing models.LandListing
	if err := s.db.Where("id = ? AND is_deleted = ?", listingID, false).
		First(&listing).Error; err != nil {
		return nil, apperr.NotFound("land listing not found")
	}

	var existing int64
	if err := s.db.Model(&models.MatchRequest{}).
		Where("organization_id = ? AND land_listing_id = ?", principal.ID, listingID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperr.Conflict("you have already requested this land listing")
	}

	request := models.MatchRequest{
		OrganizationID: principal.ID,
		RestorerID:     listing.UserID,
		LandListingID:  listingID,
		Status:         models.StatusPending,
	}

	var notif *models.Notification
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			// Two concurrent creates can both pass the count above;
			// the (organization, listing) unique index decides.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("you have already requested this land listing")
			}
			return err
		}
		var err error
		notif, err = s.notifications.Record(tx, listing.UserID,
			models.NotificationNewRequest, "A new request has been made", &request.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Deliver(notif)
	s.sendRequestEmail(request.ID)

	return s.reload(request.ID)
}

// UpdateStatus is the restorer's accept/decline transition. Resolved
// requests cannot be re-processed.
func (s *MatchService) UpdateStatus(principal models.Principal, requestID uuid.UUID, action string) (*models.MatchRequest, error) {
	if !principal.IsRestorer() {
		return nil, apperr.Forbidden("only restorers can update match request status")
	}
	if action != models.ActionAccept && action != models.ActionDecline {
		return nil, apperr.Validation("invalid action: use %q or %q", models.ActionAccept, models.ActionDecline)
	}

	var request models.MatchRequest
	if err := s.db.Where("id = ? AND restorer_id = ?", requestID, principal.ID).
		First(&request).Error; err != nil {
		return nil, apperr.NotFound("match request not found")
	}

	if action == models.ActionDecline {
		return s.decline(&request)
	}
	return s.accept(&request)
}

// decline resolves a pending request. The status write is conditional on the
// row still being pending: a sibling accept may cascade this request to
// land_no_longer_available at any moment, and terminal states are never
// overwritten.
func (s *MatchService) decline(request *models.MatchRequest) (*models.MatchRequest, error) {
	var notif *models.Notification
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.MatchRequest{}).
			Where("id = ? AND status = ?", request.ID, models.StatusPending).
			Update("status", models.StatusDeclined)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("this request has already been processed")
		}
		var err error
		notif, err = s.notifications.Record(tx, request.OrganizationID,
			models.NotificationRequestDeclined, "Your request has been declined", &request.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Deliver(notif)

	return s.reload(request.ID)
}

// accept applies the cascading transition as one unit: this request becomes
// accepted, the listing becomes unavailable, and every sibling pending
// request becomes land_no_longer_available with a notification to its
// organization. Serialized per listing so two accepts can never both win.
func (s *MatchService) accept(request *models.MatchRequest) (*models.MatchRequest, error) {
	unlock := s.lockListing(request.LandListingID)
	defer unlock()

	// Re-read under the lock: a concurrent accept on a sibling may have
	// cascaded this request out of pending.
	if err := s.db.First(request, "id = ?", request.ID).Error; err != nil {
		return nil, apperr.NotFound("match request not found")
	}
	if request.Status != models.StatusPending {
		return nil, apperr.Conflict("this request has already been processed")
	}

	var accepted int64
	if err := s.db.Model(&models.MatchRequest{}).
		Where("land_listing_id = ? AND status = ?", request.LandListingID, models.StatusAccepted).
		Count(&accepted).Error; err != nil {
		return nil, err
	}
	if accepted > 0 {
		return nil, apperr.Conflict("this land already has an accepted collaboration")
	}

	var notifs []*models.Notification
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Conditional on pending: a decline does not take the listing
		// lock, so it may resolve this request between the re-read
		// above and this write.
		res := tx.Model(&models.MatchRequest{}).
			Where("id = ? AND status = ?", request.ID, models.StatusPending).
			Update("status", models.StatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("this request has already been processed")
		}

		if err := tx.Model(&models.LandListing{}).
			Where("id = ?", request.LandListingID).
			Update("availability", models.AvailabilityUnavailable).Error; err != nil {
			return err
		}

		var siblings []models.MatchRequest
		if err := tx.Where("land_listing_id = ? AND status = ? AND id != ?",
			request.LandListingID, models.StatusPending, request.ID).
			Find(&siblings).Error; err != nil {
			return err
		}
		for i := range siblings {
			sibling := &siblings[i]
			res := tx.Model(&models.MatchRequest{}).
				Where("id = ? AND status = ?", sibling.ID, models.StatusPending).
				Update("status", models.StatusLandNoLongerAvail)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Resolved concurrently; its own transition sent
				// the notification.
				continue
			}
			notif, err := s.notifications.Record(tx, sibling.OrganizationID,
				models.NotificationRequestDeclined,
				"A land listing you requested is no longer available", &sibling.ID)
			if err != nil {
				return err
			}
			notifs = append(notifs, notif)
		}

		notif, err := s.notifications.Record(tx, request.OrganizationID,
			models.NotificationRequestAccepted, "Your request has been accepted", &request.ID)
		if err != nil {
			return err
		}
		notifs = append(notifs, notif)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, notif := range notifs {
		s.notifications.Deliver(notif)
	}
	s.sendAcceptedEmail(request.ID)

	return s.reload(request.ID)
}

// Get returns a request visible only to its organization or restorer.
func (s *MatchService) Get(principal models.Principal, requestID uuid.UUID) (*models.MatchRequest, error) {
	var request models.MatchRequest
	err := s.withDetails(s.db).
		Where("match_requests.id = ? AND (match_requests.organization_id = ? OR match_requests.restorer_id = ?)",
			requestID, principal.ID, principal.ID).
		First(&request).Error
	if err != nil {
		return nil, apperr.NotFound("match request not found")
	}
	return &request, nil
}

// ListForUser returns received requests for restorers and sent requests for
// organizations.
func (s *MatchService) ListForUser(principal models.Principal) ([]models.MatchRequest, error) {
	var requests []models.MatchRequest
	q := s.withDetails(s.db)
	if principal.IsRestorer() {
		q = q.Where("match_requests.restorer_id = ?", principal.ID)
	} else {
		q = q.Where("match_requests.organization_id = ?", principal.ID)
	}
	err := q.Order("match_requests.created_at DESC").Find(&requests).Error
	return requests, err
}

// lockListing serializes the accept transition per listing.
func (s *MatchService) lockListing(listingID uuid.UUID) func() {
	s.mu.Lock()
	lock, ok := s.locks[listingID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[listingID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (s *MatchService) reload(id uuid.UUID) (*models.MatchRequest, error) {
	var request models.MatchRequest
	if err := s.withDetails(s.db).First(&request, "match_requests.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *MatchService) withDetails(db *gorm.DB) *gorm.DB {
	return db.Model(&models.MatchRequest{}).
		Preload("Organization").
		Preload("Restorer").
		Preload("LandListing").
		Preload("LandListing.County").
		Preload("LandListing.Subcounty").
		Preload("LandListing.RestorationTypes")
}
