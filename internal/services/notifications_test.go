package services

import (
	"testing"

	"github.com/ardhilink/ardhilink-api/internal/apperr"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications_ListUnreadOnly(t *testing.T) {
	env := newTestEnv(t)
	restorer := env.createRestorer(t, "restorer@example.com")

	first, err := env.notifications.Create(restorer.ID, models.NotificationNewRequest, "first", nil)
	require.NoError(t, err)
	_, err = env.notifications.Create(restorer.ID, models.NotificationNewRequest, "second", nil)
	require.NoError(t, err)

	require.NoError(t, env.notifications.MarkRead(restorer, first.ID))

	unread, err := env.notifications.List(restorer)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "second", unread[0].Message)
}

func TestMarkRead_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	restorer := env.createRestorer(t, "restorer@example.com")

	notif, err := env.notifications.Create(restorer.ID, models.NotificationRequestAccepted, "accepted", nil)
	require.NoError(t, err)

	require.NoError(t, env.notifications.MarkRead(restorer, notif.ID))
	require.NoError(t, env.notifications.MarkRead(restorer, notif.ID))

	var reloaded models.Notification
	require.NoError(t, env.db.First(&reloaded, "id = ?", notif.ID).Error)
	assert.True(t, reloaded.IsRead)
}

func TestMarkRead_OwnershipHidesExistence(t *testing.T) {
	env := newTestEnv(t)
	restorer := env.createRestorer(t, "restorer@example.com")
	org := env.createOrganization(t, "org@example.com")

	notif, err := env.notifications.Create(restorer.ID, models.NotificationNewRequest, "for restorer", nil)
	require.NoError(t, err)

	err = env.notifications.MarkRead(org, notif.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
