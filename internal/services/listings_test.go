package services

import (
	"fmt"
	"testing"

	"github.com/ardhilink/ardhilink-api/internal/apperr"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateListing_OnlyRestorers(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrganization(t, "org@example.com")
	countyID, subcountyID := env.nairobiWestlands(t)

	_, err := env.listings.Create(org, models.CreateListingRequest{
		Title:              "Riverside plot",
		Size:               5,
		Unit:               models.UnitAcres,
		CountyID:           countyID,
		SubcountyID:        subcountyID,
		RestorationTypeIDs: env.typeIDs(t, "forest"),
	})
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))
}

func TestCreateListing_CapabilityMismatch(t *testing.T) {
	env := newTestEnv(t)
	restorer := env.createRestorer(t, "forest-only@example.com", "forest")
	countyID, subcountyID := env.nairobiWestlands(t)

	_, err := env.listings.Create(restorer, models.CreateListingRequest{
		Title:              "Swamp edge",
		Size:               3,
		Unit:               models.UnitHectares,
		CountyID:           countyID,
		SubcountyID:        subcountyID,
		RestorationTypeIDs: env.typeIDs(t, "wetlands"),
	})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestCreateListing_ConvertsSize(t *testing.T) {
	env := newTestEnv(t)
	restorer := env.createRestorer(t, "restorer@example.com", "forest")
	countyID, subcountyID := env.nairobiWestlands(t)

	tests := []struct {
		name         string
		size         float64
		unit         string
		wantAcres    float64
		wantHectares float64
	}{
		{"acres input", 10, models.UnitAcres, 10, 4.05},
		{"hectares input", 4.05, models.UnitHectares, 10.01, 4.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing, err := env.listings.Create(restorer, models.CreateListingRequest{
				Title:              "Plot " + tt.name,
				Size:               tt.size,
				Unit:               tt.unit,
				CountyID:           countyID,
				SubcountyID:        subcountyID,
				RestorationTypeIDs: env.typeIDs(t, "forest"),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantAcres, listing.SizeAcres)
			assert.Equal(t, tt.wantHectares, listing.SizeHectares)
			assert.Equal(t, models.AvailabilityAvailable, listing.Availability)
		})
	}
}

func TestUpdateListing_OwnershipHidesExistence(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createRestorer(t, "owner@example.com")
	other := env.createRestorer(t, "other@example.com")
	listing := env.createListing(t, owner, "Hilltop")

	title := "Stolen"
	_, err := env.listings.Update(other, listing.ID, models.UpdateListingRequest{Title: &title})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	_, err = env.listings.Update(owner, uuid.New(), models.UpdateListingRequest{Title: &title})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestUpdateListing_ReconvertsSize(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createRestorer(t, "owner@example.com")
	listing := env.createListing(t, owner, "Hilltop")

	size := 2.0
	unit := models.UnitHectares
	updated, err := env.listings.Update(owner, listing.ID, models.UpdateListingRequest{
		Size: &size,
		Unit: &unit,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, updated.SizeHectares)
	assert.Equal(t, 4.94, updated.SizeAcres)

	// size without unit is rejected
	_, err = env.listings.Update(owner, listing.ID, models.UpdateListingRequest{Size: &size})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestSoftDelete_BlockedByActiveRequests(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createRestorer(t, "owner@example.com")
	org := env.createOrganization(t, "org@example.com")
	listing := env.createListing(t, owner, "Contested plot")

	request, err := env.matches.Create(org, listing.ID)
	require.NoError(t, err)

	err = env.listings.SoftDelete(owner, listing.ID)
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	_, err = env.matches.UpdateStatus(owner, request.ID, models.ActionDecline)
	require.NoError(t, err)

	require.NoError(t, env.listings.SoftDelete(owner, listing.ID))

	var reloaded models.LandListing
	require.NoError(t, env.db.First(&reloaded, "id = ?", listing.ID).Error)
	assert.True(t, reloaded.IsDeleted)
	require.NotNil(t, reloaded.DeletedAt)
}

func TestListListings_RoleViews(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createRestorer(t, "owner@example.com", "forest", "wetlands")
	org := env.createOrganization(t, "org@example.com")

	active := env.createListing(t, owner, "Active", "forest")
	deleted := env.createListing(t, owner, "Deleted", "forest")
	require.NoError(t, env.listings.SoftDelete(owner, deleted.ID))

	unavailable := env.createListing(t, owner, "Taken", "wetlands")
	require.NoError(t, env.db.Model(&models.LandListing{}).
		Where("id = ?", unavailable.ID).
		Update("availability", models.AvailabilityUnavailable).Error)

	countyID, _ := env.nairobiWestlands(t)
	orgView, err := env.listings.List(org, models.ListingFilters{CountyID: &countyID})
	require.NoError(t, err)
	require.Len(t, orgView, 1)
	assert.Equal(t, active.ID, orgView[0].ID)

	restorerView, err := env.listings.List(owner, models.ListingFilters{})
	require.NoError(t, err)
	require.Len(t, restorerView, 2) // active + unavailable, not the deleted one
	for _, l := range restorerView {
		assert.NotEqual(t, deleted.ID, l.ID)
	}
}

func TestListListings_Filters(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createRestorer(t, "owner@example.com", "forest", "mangroves")
	org := env.createOrganization(t, "org@example.com")
	countyID, subcountyID := env.nairobiWestlands(t)

	_, err := env.listings.Create(owner, models.CreateListingRequest{
		Title:              "Small forest",
		Size:               2,
		Unit:               models.UnitAcres,
		CountyID:           countyID,
		SubcountyID:        subcountyID,
		RestorationTypeIDs: env.typeIDs(t, "forest"),
	})
	require.NoError(t, err)
	big, err := env.listings.Create(owner, models.CreateListingRequest{
		Title:              "Big mangroves",
		Size:               50,
		Unit:               models.UnitAcres,
		CountyID:           countyID,
		SubcountyID:        subcountyID,
		RestorationTypeIDs: env.typeIDs(t, "mangroves"),
	})
	require.NoError(t, err)

	byType, err := env.listings.List(org, models.ListingFilters{RestorationType: "mangroves"})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, big.ID, byType[0].ID)

	min := 10.0
	bySize, err := env.listings.List(org, models.ListingFilters{MinSizeAcres: &min})
	require.NoError(t, err)
	require.Len(t, bySize, 1)
	assert.Equal(t, big.ID, bySize[0].ID)

	max := 1.0
	none, err := env.listings.List(org, models.ListingFilters{MaxSizeAcres: &max})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListListings_NoFilterSampleIsBounded(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createRestorer(t, "owner@example.com")
	org := env.createOrganization(t, "org@example.com")

	for i := 0; i < 25; i++ {
		env.createListing(t, owner, "Plot "+string(rune('A'+i)))
	}

	sample, err := env.listings.List(org, models.ListingFilters{})
	require.NoError(t, err)
	assert.Len(t, sample, 20)
}

func TestListListings_NoFilterSampleVaries(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createRestorer(t, "owner@example.com")
	org := env.createOrganization(t, "org@example.com")

	for i := 0; i < 30; i++ {
		env.createListing(t, owner, fmt.Sprintf("Plot %d", i))
	}

	ids := func(listings []models.LandListing) []string {
		out := make([]string, len(listings))
		for i, l := range listings {
			out[i] = l.ID.String()
		}
		return out
	}

	// The sample is random, so two draws agreeing once is possible;
	// ten identical draws from 30 listings is not.
	first, err := env.listings.List(org, models.ListingFilters{})
	require.NoError(t, err)
	varied := false
	for i := 0; i < 10 && !varied; i++ {
		next, err := env.listings.List(org, models.ListingFilters{})
		require.NoError(t, err)
		varied = !assert.ObjectsAreEqual(ids(first), ids(next))
	}
	assert.True(t, varied, "repeated unfiltered listings never reshuffled")
}

func TestGetListing_Visibility(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createRestorer(t, "owner@example.com")
	org := env.createOrganization(t, "org@example.com")
	listing := env.createListing(t, owner, "Plot")

	got, err := env.listings.Get(org, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.ID, got.ID)

	require.NoError(t, env.listings.SoftDelete(owner, listing.ID))

	_, err = env.listings.Get(org, listing.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	// The owner still sees the soft-deleted listing.
	got, err = env.listings.Get(owner, listing.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
}
