package services

import (
	"testing"

	"github.com/ardhilink/ardhilink-api/internal/apperr"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capabilityNames(t *testing.T, env *testEnv, p models.Principal) []string {
	t.Helper()
	user, err := env.profile.Get(p)
	require.NoError(t, err)
	names := make([]string, 0, len(user.RestorationTypes))
	for _, rt := range user.RestorationTypes {
		names = append(names, rt.Name)
	}
	return names
}

func TestUpdateCapabilities_RemovalBlockedByListing(t *testing.T) {
	env := newTestEnv(t)
	restorer := env.createRestorer(t, "restorer@example.com", "forest", "wetlands")
	env.createListing(t, restorer, "Swamp", "wetlands")

	// Dropping wetlands while the swamp listing uses it must fail.
	_, err := env.profile.Update(restorer, models.UpdateProfileRequest{
		RestorationTypeIDs: env.typeIDs(t, "forest"),
	})
	require.True(t, apperr.Is(err, apperr.CodeValidation))
	assert.Contains(t, err.Error(), "Wetlands")
	assert.Contains(t, err.Error(), "Swamp")

	// The capability set is untouched after the failed update.
	assert.ElementsMatch(t, []string{"forest", "wetlands"}, capabilityNames(t, env, restorer))
}

func TestUpdateCapabilities_RemovalAllowedAfterDelete(t *testing.T) {
	env := newTestEnv(t)
	restorer := env.createRestorer(t, "restorer@example.com", "forest", "wetlands")
	listing := env.createListing(t, restorer, "Swamp", "wetlands")

	require.NoError(t, env.listings.SoftDelete(restorer, listing.ID))

	user, err := env.profile.Update(restorer, models.UpdateProfileRequest{
		RestorationTypeIDs: env.typeIDs(t, "forest"),
	})
	require.NoError(t, err)
	require.Len(t, user.RestorationTypes, 1)
	assert.Equal(t, "forest", user.RestorationTypes[0].Name)
}

func TestUpdateCapabilities_Additive(t *testing.T) {
	env := newTestEnv(t)
	restorer := env.createRestorer(t, "restorer@example.com", "forest")
	env.createListing(t, restorer, "Woods", "forest")

	// Growing the set never conflicts.
	user, err := env.profile.Update(restorer, models.UpdateProfileRequest{
		RestorationTypeIDs: env.typeIDs(t, "forest", "mangroves"),
	})
	require.NoError(t, err)
	assert.Len(t, user.RestorationTypes, 2)
}

func TestUpdateProfile_Fields(t *testing.T) {
	env := newTestEnv(t)
	restorer := env.createRestorer(t, "restorer@example.com")

	phone := "+254700000000"
	firstName := "Achieng"
	user, err := env.profile.Update(restorer, models.UpdateProfileRequest{
		Phone:     &phone,
		FirstName: &firstName,
	})
	require.NoError(t, err)
	assert.Equal(t, phone, user.Phone)
	assert.Equal(t, firstName, user.FirstName)
	// Untouched fields survive a partial patch.
	assert.Equal(t, "Kamau", user.LastName)
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	env := newTestEnv(t)
	restorer := env.createRestorer(t, "restorer@example.com")
	env.createOrganization(t, "taken@example.com")

	email := "taken@example.com"
	_, err := env.profile.Update(restorer, models.UpdateProfileRequest{Email: &email})
	assert.True(t, apperr.Is(err, apperr.CodeConflict))
}

func TestRegisterDeviceToken(t *testing.T) {
	env := newTestEnv(t)
	restorer := env.createRestorer(t, "restorer@example.com")

	require.NoError(t, env.profile.RegisterDeviceToken(restorer, "fcm-token-123"))

	var user models.User
	require.NoError(t, env.db.First(&user, "id = ?", restorer.ID).Error)
	assert.Equal(t, "fcm-token-123", user.FCMToken)
}
