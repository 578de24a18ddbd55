package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/policy"
	"alcyxob/pt-crm/internal/repository"
	"alcyxob/pt-crm/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMeasurementNotFound = errors.New("measurement not found")
	ErrPhotoNotUploaded    = errors.New("measurement has no progress photo")
	ErrInvalidPhotoType    = errors.New("invalid or missing image content type")
	ErrUploadURLError      = errors.New("failed to generate upload URL")
	ErrDownloadURLError    = errors.New("failed to generate download URL")
)

// PhotoUploadURL is handed to the client for a direct PUT to object storage.
type PhotoUploadURL struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // Reported back on confirm
}

// MeasurementService covers body measurement snapshots. Every operation is
// allowed to the trainer or the owning client (the one asymmetric rule in
// the product: trainers manage measurements on a client's behalf, but never
// sessions).
type MeasurementService interface {
	Create(ctx context.Context, actor *domain.Actor, m *domain.Measurement) (*domain.Measurement, error)
	Get(ctx context.Context, actor *domain.Actor, id primitive.ObjectID) (*domain.Measurement, error)
	ListForClient(ctx context.Context, actor *domain.Actor, clientID primitive.ObjectID) ([]domain.Measurement, error)
	Update(ctx context.Context, actor *domain.Actor, m *domain.Measurement) (*domain.Measurement, error)
	Delete(ctx context.Context, actor *domain.Actor, id primitive.ObjectID) error

	RequestPhotoUploadURL(ctx context.Context, actor *domain.Actor, id primitive.ObjectID, contentType string) (*PhotoUploadURL, error)
	ConfirmPhotoUpload(ctx context.Context, actor *domain.Actor, id primitive.ObjectID, objectKey, contentType string) (*domain.Measurement, error)
	GetPhotoDownloadURL(ctx context.Context, actor *domain.Actor, id primitive.ObjectID) (string, error)
}

// measurementService implements the MeasurementService interface.
type measurementService struct {
	measurementRepo repository.MeasurementRepository
	fileStorage     storage.FileStorage
	notifier        TrainerNotifier
}

// NewMeasurementService creates a new instance of measurementService.
func NewMeasurementService(
	measurementRepo repository.MeasurementRepository,
	fileStorage storage.FileStorage,
	notifier TrainerNotifier,
) MeasurementService {
	return &measurementService{
		measurementRepo: measurementRepo,
		fileStorage:     fileStorage,
		notifier:        notifier,
	}
}

// Create records a new measurement. A missing date defaults to now. The
// trainer is notified only when the client logged it themself.
func (s *measurementService) Create(ctx context.Context, actor *domain.Actor, m *domain.Measurement) (*domain.Measurement, error) {
	if err := policy.Authorize(actor, policy.ActionCreateMeasurement, policy.OwnedBy(m.ClientID)); err != nil {
		return nil, err
	}
	if m.ClientID == primitive.NilObjectID {
		return nil, errors.New("measurement clientId is required")
	}
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}

	id, err := s.measurementRepo.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id

	if !actor.IsTrainer() {
		s.notifier.NotifyTrainer(ctx, domain.NotificationMeasurementAdded,
			fmt.Sprintf("A new measurement was logged for %s", m.Date.Format("2006-01-02")))
	}
	return m, nil
}

// Get retrieves one measurement.
func (s *measurementService) Get(ctx context.Context, actor *domain.Actor, id primitive.ObjectID) (*domain.Measurement, error) {
	return s.authorizedGet(ctx, actor, id, policy.ActionReadMeasurement)
}

// ListForClient returns a client's measurements, most recent first.
func (s *measurementService) ListForClient(ctx context.Context, actor *domain.Actor, clientID primitive.ObjectID) ([]domain.Measurement, error) {
	if err := policy.Authorize(actor, policy.ActionReadMeasurement, policy.OwnedBy(clientID)); err != nil {
		return nil, err
	}
	return s.measurementRepo.GetByClientID(ctx, clientID)
}

// Update edits a measurement's fields. Ownership cannot be moved between
// clients.
func (s *measurementService) Update(ctx context.Context, actor *domain.Actor, m *domain.Measurement) (*domain.Measurement, error) {
	existing, err := s.authorizedGet(ctx, actor, m.ID, policy.ActionUpdateMeasurement)
	if err != nil {
		return nil, err
	}

	m.ClientID = existing.ClientID
	m.PhotoObjectKey = existing.PhotoObjectKey
	m.PhotoContentType = existing.PhotoContentType
	if m.Date.IsZero() {
		m.Date = existing.Date
	}

	if err := s.measurementRepo.Update(ctx, m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMeasurementNotFound
		}
		return nil, err
	}
	return m, nil
}

// Delete removes a measurement and its progress photo, if any.
func (s *measurementService) Delete(ctx context.Context, actor *domain.Actor, id primitive.ObjectID) error {
	existing, err := s.authorizedGet(ctx, actor, id, policy.ActionDeleteMeasurement)
	if err != nil {
		return err
	}

	if err := s.measurementRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMeasurementNotFound
		}
		return err
	}

	// Best effort: a dangling photo object costs storage, not correctness.
	if existing.PhotoObjectKey != "" {
		_ = s.fileStorage.DeleteObject(ctx, existing.PhotoObjectKey)
	}
	return nil
}

// RequestPhotoUploadURL returns a presigned PUT URL for a progress photo.
func (s *measurementService) RequestPhotoUploadURL(ctx context.Context, actor *domain.Actor, id primitive.ObjectID, contentType string) (*PhotoUploadURL, error) {
	measurement, err := s.authorizedGet(ctx, actor, id, policy.ActionUpdateMeasurement)
	if err != nil {
		return nil, err
	}
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidPhotoType
	}

	ext := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		ext = parts[1]
	}
	objectKey := path.Join("photos", measurement.ClientID.Hex(), id.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), ext))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}
	return &PhotoUploadURL{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmPhotoUpload records the uploaded object on the measurement. Called
// after the client has PUT the photo to the presigned URL. A previous photo
// is deleted from storage.
func (s *measurementService) ConfirmPhotoUpload(ctx context.Context, actor *domain.Actor, id primitive.ObjectID, objectKey, contentType string) (*domain.Measurement, error) {
	measurement, err := s.authorizedGet(ctx, actor, id, policy.ActionUpdateMeasurement)
	if err != nil {
		return nil, err
	}
	if objectKey == "" {
		return nil, errors.New("object key is required")
	}

	previousKey := measurement.PhotoObjectKey
	measurement.PhotoObjectKey = objectKey
	measurement.PhotoContentType = contentType

	if err := s.measurementRepo.Update(ctx, measurement); err != nil {
		return nil, err
	}
	if previousKey != "" && previousKey != objectKey {
		_ = s.fileStorage.DeleteObject(ctx, previousKey)
	}
	return measurement, nil
}

// GetPhotoDownloadURL returns a presigned GET URL for the progress photo.
func (s *measurementService) GetPhotoDownloadURL(ctx context.Context, actor *domain.Actor, id primitive.ObjectID) (string, error) {
	measurement, err := s.authorizedGet(ctx, actor, id, policy.ActionReadMeasurement)
	if err != nil {
		return "", err
	}
	if measurement.PhotoObjectKey == "" {
		return "", ErrPhotoNotUploaded
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, measurement.PhotoObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return downloadURL, nil
}

// authorizedGet fetches a measurement and applies the NotFound-first
// authorization ordering shared by every targeted operation.
func (s *measurementService) authorizedGet(ctx context.Context, actor *domain.Actor, id primitive.ObjectID, action policy.Action) (*domain.Measurement, error) {
	measurement, err := s.measurementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, policy.Authorize(actor, action, policy.Missing())
		}
		return nil, err
	}
	if err := policy.Authorize(actor, action, policy.OwnedBy(measurement.ClientID)); err != nil {
		return nil, err
	}
	return measurement, nil
}
