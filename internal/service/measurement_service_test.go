package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type measurementFixture struct {
	repo     *fakeMeasurementRepo
	storage  *fakeFileStorage
	notifier *fakeNotifier
	svc      MeasurementService

	clientID primitive.ObjectID
	client   *domain.Actor
	trainer  *domain.Actor
}

func newMeasurementFixture(t *testing.T) *measurementFixture {
	t.Helper()
	f := &measurementFixture{
		repo:     newFakeMeasurementRepo(),
		storage:  &fakeFileStorage{},
		notifier: &fakeNotifier{},
		clientID: primitive.NewObjectID(),
	}
	f.svc = NewMeasurementService(f.repo, f.storage, f.notifier)
	f.client = domain.NewActor(f.clientID, domain.RoleClient)
	f.trainer = domain.NewActor(primitive.NewObjectID(), domain.RoleTrainer)
	return f
}

func floatPtr(v float64) *float64 { return &v }

func (f *measurementFixture) newMeasurement() *domain.Measurement {
	return &domain.Measurement{
		ClientID: f.clientID,
		WeightKg: floatPtr(82.5),
		WaistCm:  floatPtr(88),
	}
}

func TestCreateMeasurementDefaultsDate(t *testing.T) {
	f := newMeasurementFixture(t)

	created, err := f.svc.Create(context.Background(), f.client, f.newMeasurement())
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.WithinDuration(t, time.Now(), created.Date, time.Minute)
}

func TestCreateMeasurementNotification(t *testing.T) {
	f := newMeasurementFixture(t)
	ctx := context.Background()

	// A client-logged measurement notifies the trainer.
	_, err := f.svc.Create(ctx, f.client, f.newMeasurement())
	require.NoError(t, err)
	require.Len(t, f.notifier.kinds, 1)
	assert.Equal(t, domain.NotificationMeasurementAdded, f.notifier.kinds[0])

	// A trainer-logged one does not notify the trainer about themself.
	_, err = f.svc.Create(ctx, f.trainer, f.newMeasurement())
	require.NoError(t, err)
	assert.Len(t, f.notifier.kinds, 1)
}

func TestMeasurementAccessMatrix(t *testing.T) {
	f := newMeasurementFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.client, f.newMeasurement())
	require.NoError(t, err)
	stranger := domain.NewActor(primitive.NewObjectID(), domain.RoleClient)

	// Trainer and owner can read and write; another client cannot.
	_, err = f.svc.Get(ctx, f.trainer, created.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, f.client, created.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, stranger, created.ID)
	assert.ErrorIs(t, err, policy.ErrForbidden)

	_, err = f.svc.ListForClient(ctx, stranger, f.clientID)
	assert.ErrorIs(t, err, policy.ErrForbidden)

	stranger2 := f.newMeasurement()
	stranger2.ID = created.ID
	_, err = f.svc.Update(ctx, stranger, stranger2)
	assert.ErrorIs(t, err, policy.ErrForbidden)

	assert.ErrorIs(t, f.svc.Delete(ctx, stranger, created.ID), policy.ErrForbidden)

	// Unknown ids are not found for everyone, owner or not.
	_, err = f.svc.Get(ctx, stranger, primitive.NewObjectID())
	assert.ErrorIs(t, err, policy.ErrNotFound)
	_, err = f.svc.Get(ctx, nil, created.ID)
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)
}

func TestUpdateMeasurementPreservesOwnershipAndPhoto(t *testing.T) {
	f := newMeasurementFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.client, f.newMeasurement())
	require.NoError(t, err)

	// Attach a photo first.
	confirmed, err := f.svc.ConfirmPhotoUpload(ctx, f.client, created.ID, "photos/abc/1.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "photos/abc/1.jpg", confirmed.PhotoObjectKey)

	// An update carrying neither ClientID nor photo fields keeps both.
	edit := &domain.Measurement{
		ID:       created.ID,
		ClientID: primitive.NewObjectID(), // attempted reassignment is ignored
		WeightKg: floatPtr(81.0),
	}
	updated, err := f.svc.Update(ctx, f.trainer, edit)
	require.NoError(t, err)
	assert.Equal(t, f.clientID, updated.ClientID)
	assert.Equal(t, "photos/abc/1.jpg", updated.PhotoObjectKey)
	assert.Equal(t, 81.0, *updated.WeightKg)
}

func TestDeleteMeasurementRemovesPhoto(t *testing.T) {
	f := newMeasurementFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.client, f.newMeasurement())
	require.NoError(t, err)
	_, err = f.svc.ConfirmPhotoUpload(ctx, f.client, created.ID, "photos/abc/1.jpg", "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, f.client, created.ID))
	assert.Contains(t, f.storage.deleted, "photos/abc/1.jpg")

	_, err = f.svc.Get(ctx, f.client, created.ID)
	assert.ErrorIs(t, err, policy.ErrNotFound)
}

func TestRequestPhotoUploadURL(t *testing.T) {
	f := newMeasurementFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.client, f.newMeasurement())
	require.NoError(t, err)

	upload, err := f.svc.RequestPhotoUploadURL(ctx, f.client, created.ID, "image/png")
	require.NoError(t, err)
	assert.Contains(t, upload.UploadURL, upload.ObjectKey)
	assert.Contains(t, upload.ObjectKey, created.ID.Hex())
	assert.Contains(t, upload.ObjectKey, f.clientID.Hex())

	_, err = f.svc.RequestPhotoUploadURL(ctx, f.client, created.ID, "application/pdf")
	assert.ErrorIs(t, err, ErrInvalidPhotoType)

	_, err = f.svc.RequestPhotoUploadURL(ctx, f.client, created.ID, "")
	assert.ErrorIs(t, err, ErrInvalidPhotoType)
}

func TestConfirmPhotoUploadReplacesPrevious(t *testing.T) {
	f := newMeasurementFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.client, f.newMeasurement())
	require.NoError(t, err)

	_, err = f.svc.ConfirmPhotoUpload(ctx, f.client, created.ID, "photos/old.jpg", "image/jpeg")
	require.NoError(t, err)
	_, err = f.svc.ConfirmPhotoUpload(ctx, f.client, created.ID, "photos/new.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.Contains(t, f.storage.deleted, "photos/old.jpg")
	assert.NotContains(t, f.storage.deleted, "photos/new.jpg")
}

func TestGetPhotoDownloadURL(t *testing.T) {
	f := newMeasurementFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.client, f.newMeasurement())
	require.NoError(t, err)

	_, err = f.svc.GetPhotoDownloadURL(ctx, f.client, created.ID)
	assert.ErrorIs(t, err, ErrPhotoNotUploaded)

	_, err = f.svc.ConfirmPhotoUpload(ctx, f.client, created.ID, "photos/abc.jpg", "image/jpeg")
	require.NoError(t, err)

	url, err := f.svc.GetPhotoDownloadURL(ctx, f.trainer, created.ID)
	require.NoError(t, err)
	assert.Contains(t, url, "photos/abc.jpg")
}
