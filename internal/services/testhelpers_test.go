package services

import (
	"fmt"
	"testing"

	"github.com/ardhilink/ardhilink-api/internal/database"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type testEnv struct {
	db            *gorm.DB
	catalog       *CatalogService
	auth          *AuthService
	listings      *ListingService
	matches       *MatchService
	notifications *NotificationService
	profile       *ProfileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// A named shared-cache in-memory database so gorm's pooled connections
	// all see the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	log := zaptest.NewLogger(t)
	catalog := NewCatalogService(db)
	notifications := NewNotificationService(db, nil, log)

	return &testEnv{
		db:            db,
		catalog:       catalog,
		auth:          NewAuthService(db, catalog),
		listings:      NewListingService(db, catalog),
		matches:       NewMatchService(db, notifications, NewMailer("", "", log), log),
		notifications: notifications,
		profile:       NewProfileService(db, catalog),
	}
}

// nairobiWestlands returns the seeded Nairobi county and its Westlands
// subcounty.
func (e *testEnv) nairobiWestlands(t *testing.T) (uint, uint) {
	t.Helper()
	var county models.County
	require.NoError(t, e.db.Where("name = ?", "Nairobi").First(&county).Error)
	var subcounty models.Subcounty
	require.NoError(t, e.db.Where("name = ? AND county_id = ?", "Westlands", county.ID).
		First(&subcounty).Error)
	return county.ID, subcounty.ID
}

func (e *testEnv) typeIDs(t *testing.T, names ...string) []uint {
	t.Helper()
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		var rt models.RestorationType
		require.NoError(t, e.db.Where("name = ?", name).First(&rt).Error)
		ids = append(ids, rt.ID)
	}
	return ids
}

func (e *testEnv) createRestorer(t *testing.T, email string, capabilities ...string) models.Principal {
	t.Helper()
	countyID, subcountyID := e.nairobiWestlands(t)
	if len(capabilities) == 0 {
		capabilities = []string{"forest"}
	}
	user, err := e.auth.Register(models.RegisterRequest{
		Email:              email,
		Password:           "password123",
		ConfirmPassword:    "password123",
		Role:               models.RoleRestorer,
		FirstName:          "Wanjiku",
		LastName:           "Kamau",
		CountyID:           &countyID,
		SubcountyID:        &subcountyID,
		RestorationTypeIDs: e.typeIDs(t, capabilities...),
		TermsAccepted:      true,
	})
	require.NoError(t, err)
	return user.Principal()
}

func (e *testEnv) createOrganization(t *testing.T, email string) models.Principal {
	t.Helper()
	user, err := e.auth.Register(models.RegisterRequest{
		Email:            email,
		Password:         "password123",
		ConfirmPassword:  "password123",
		Role:             models.RoleOrganization,
		OrganizationName: "Green Futures",
		TermsAccepted:    true,
	})
	require.NoError(t, err)
	return user.Principal()
}

func (e *testEnv) createListing(t *testing.T, owner models.Principal, title string, types ...string) *models.LandListing {
	t.Helper()
	countyID, subcountyID := e.nairobiWestlands(t)
	if len(types) == 0 {
		types = []string{"forest"}
	}
	listing, err := e.listings.Create(owner, models.CreateListingRequest{
		Title:              title,
		Size:               10,
		Unit:               models.UnitAcres,
		CountyID:           countyID,
		SubcountyID:        subcountyID,
		RestorationTypeIDs: e.typeIDs(t, types...),
	})
	require.NoError(t, err)
	return listing
}
