package botconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaroniusdersiebte/DBM/core"
	"github.com/aaroniusdersiebte/DBM/models"
	"github.com/aaroniusdersiebte/DBM/store"
)

func newTestService(t *testing.T) *BotConfigService {
	t.Helper()
	cipher, err := store.NewTokenCipher("test-secret")
	require.NoError(t, err)
	return NewBotConfigService(store.NewBotConfigRepository(t.TempDir(), cipher))
}

func TestAddTrigger_AssignsIDAndPersists(t *testing.T) {
	service := newTestService(t)

	created, err := service.AddTrigger(models.Trigger{
		Type:    models.TriggerTypeMessagePattern,
		Name:    "greeting",
		Pattern: "hallo",
	})
	require.NoError(t, err)

	assert.True(t, core.IsValidID(created.ID))
	assert.False(t, created.CreatedAt.IsZero())

	loaded := service.LoadConfig()
	require.Len(t, loaded.Triggers, 1)
	assert.Equal(t, created.ID, loaded.Triggers[0].ID)
}

func TestUpdateTrigger_PreservesIDAndCreatedAt(t *testing.T) {
	service := newTestService(t)

	created, err := service.AddTrigger(models.Trigger{
		Type: models.TriggerTypeSlashCommand,
		Name: "greet",
	})
	require.NoError(t, err)

	updated, err := service.UpdateTrigger(created.ID, models.Trigger{
		Type: models.TriggerTypeSlashCommand,
		Name: "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
	assert.Equal(t, "hello", updated.Name)
}

func TestUpdateTrigger_UnknownID(t *testing.T) {
	service := newTestService(t)

	_, err := service.UpdateTrigger("trg_unknown", models.Trigger{})
	require.Error(t, err)
	assert.True(t, core.IsNotFoundError(err))
}

func TestAddAction_ClampsDelaySeconds(t *testing.T) {
	service := newTestService(t)

	tests := []struct {
		name    string
		seconds int
		want    int
	}{
		{name: "zero clamps to minimum", seconds: 0, want: 1},
		{name: "negative clamps to minimum", seconds: -5, want: 1},
		{name: "in range is kept", seconds: 30, want: 30},
		{name: "excessive clamps to maximum", seconds: 999999, want: 3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := service.AddAction(models.Action{
				Type:    models.ActionTypeDelay,
				Name:    "wait",
				Seconds: tt.seconds,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, created.Seconds)
		})
	}
}

func TestAddAction_RejectsMalformedRoleID(t *testing.T) {
	service := newTestService(t)

	_, err := service.AddAction(models.Action{
		Type:   models.ActionTypeAddRole,
		Name:   "promote",
		RoleID: "not-a-snowflake",
	})
	require.Error(t, err)
	assert.Empty(t, service.LoadConfig().Actions)

	created, err := service.AddAction(models.Action{
		Type:   models.ActionTypeRemoveRole,
		Name:   "demote",
		RoleID: "123456789012345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678", created.RoleID)
}

func TestUpdateAction_RejectsMalformedRoleID(t *testing.T) {
	service := newTestService(t)

	created, err := service.AddAction(models.Action{
		Type:   models.ActionTypeAddRole,
		Name:   "promote",
		RoleID: "123456789012345678",
	})
	require.NoError(t, err)

	_, err = service.UpdateAction(created.ID, models.Action{
		Type:   models.ActionTypeAddRole,
		Name:   "promote",
		RoleID: "abc",
	})
	require.Error(t, err)

	loaded := service.LoadConfig()
	require.Len(t, loaded.Actions, 1)
	assert.Equal(t, "123456789012345678", loaded.Actions[0].RoleID)
}

func TestAddAction_NonDelaySecondsUntouched(t *testing.T) {
	service := newTestService(t)

	created, err := service.AddAction(models.Action{
		Type:    models.ActionTypeSendMessage,
		Name:    "greet",
		Content: "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created.Seconds)
}

func TestDeleteAction_LeavesTriggerReferencesDangling(t *testing.T) {
	service := newTestService(t)

	action, err := service.AddAction(models.Action{
		Type: models.ActionTypeSendMessage,
		Name: "greet",
	})
	require.NoError(t, err)

	trigger, err := service.AddTrigger(models.Trigger{
		Type:    models.TriggerTypeMessagePattern,
		Name:    "greeting",
		Pattern: "hallo",
		Actions: []string{action.ID},
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteAction(action.ID))

	loaded := service.LoadConfig()
	assert.Empty(t, loaded.Actions)
	// The trigger keeps its reference; the executor reports it at runtime.
	require.Len(t, loaded.Triggers, 1)
	assert.Equal(t, []string{action.ID}, loaded.Triggers[0].Actions)
	assert.Equal(t, trigger.ID, loaded.Triggers[0].ID)
}
