package policy

import (
	"testing"

	"alcyxob/pt-crm/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	trainerID = primitive.NewObjectID()
	clientID  = primitive.NewObjectID()
	otherID   = primitive.NewObjectID()

	trainer     = domain.NewActor(trainerID, domain.RoleTrainer)
	client      = domain.NewActor(clientID, domain.RoleClient)
	otherClient = domain.NewActor(otherID, domain.RoleClient)
)

func TestAuthorizeNilActor(t *testing.T) {
	err := Authorize(nil, ActionReadClient, OwnedBy(clientID))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorizeMissingResourcePrecedesRole(t *testing.T) {
	// A missing target yields NotFound for every authenticated actor,
	// before any role rule runs. Existence is never leaked through a 403.
	for _, actor := range []*domain.Actor{trainer, client, otherClient} {
		err := Authorize(actor, ActionUpdateWorkout, Missing())
		assert.ErrorIs(t, err, ErrNotFound)
	}

	// Unauthenticated still wins over missing.
	err := Authorize(nil, ActionUpdateWorkout, Missing())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorizeTrainerOnlyActions(t *testing.T) {
	actions := []Action{
		ActionListClients, ActionCreateClient,
		ActionCreateWorkout, ActionUpdateWorkout, ActionDeleteWorkout,
		ActionUpdateClientProfile,
	}
	for _, action := range actions {
		assert.NoError(t, Authorize(trainer, action, OwnedBy(clientID)), string(action))
		assert.ErrorIs(t, Authorize(client, action, OwnedBy(clientID)), ErrForbidden, string(action))
	}
}

func TestAuthorizeTrainerOrOwnerActions(t *testing.T) {
	actions := []Action{
		ActionReadClient, ActionReadWorkout, ActionReadSessions,
		ActionCreateMeasurement, ActionReadMeasurement,
		ActionUpdateMeasurement, ActionDeleteMeasurement,
	}
	for _, action := range actions {
		assert.NoError(t, Authorize(trainer, action, OwnedBy(clientID)), string(action))
		assert.NoError(t, Authorize(client, action, OwnedBy(clientID)), string(action))
		assert.ErrorIs(t, Authorize(otherClient, action, OwnedBy(clientID)), ErrForbidden, string(action))
	}
}

func TestAuthorizeOwnerOnlyActions(t *testing.T) {
	// Session creation and feedback are the client's alone; the trainer
	// cannot perform them even for their own clients.
	actions := []Action{ActionCreateSession, ActionEditSessionFeedback}
	for _, action := range actions {
		assert.NoError(t, Authorize(client, action, OwnedBy(clientID)), string(action))
		assert.ErrorIs(t, Authorize(trainer, action, OwnedBy(clientID)), ErrForbidden, string(action))
		assert.ErrorIs(t, Authorize(otherClient, action, OwnedBy(clientID)), ErrForbidden, string(action))
	}
}

func TestAuthorizeNotificationActionsRecipientOnly(t *testing.T) {
	for _, action := range []Action{ActionReadNotifications, ActionMarkNotification} {
		// Recipient check is by id, regardless of role.
		assert.NoError(t, Authorize(trainer, action, OwnedBy(trainerID)), string(action))
		assert.NoError(t, Authorize(client, action, OwnedBy(clientID)), string(action))
		assert.ErrorIs(t, Authorize(trainer, action, OwnedBy(clientID)), ErrForbidden, string(action))
		assert.ErrorIs(t, Authorize(client, action, OwnedBy(trainerID)), ErrForbidden, string(action))
	}
}

func TestAuthorizeUnknownActionDenied(t *testing.T) {
	err := Authorize(trainer, Action("bogus.action"), Global())
	assert.ErrorIs(t, err, ErrForbidden)
}
