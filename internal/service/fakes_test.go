package service

import (
	"context"
	"time"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mirror the Mongo repositories' observable
// behavior, including the single-active-workout write rule, so service tests
// exercise real sequences instead of canned expectations.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func (r *fakeUserRepo) add(user *domain.User) *domain.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetClients(_ context.Context) ([]domain.User, error) {
	var clients []domain.User
	for _, user := range r.users {
		if user.Role == domain.RoleClient {
			clients = append(clients, *user)
		}
	}
	return clients, nil
}

func (r *fakeUserRepo) GetFirstByRole(_ context.Context, role domain.Role) (*domain.User, error) {
	for _, user := range r.users {
		if user.Role == role {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeProfileRepo struct {
	profiles map[primitive.ObjectID]*domain.ClientProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[primitive.ObjectID]*domain.ClientProfile{}}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.ClientProfile) (primitive.ObjectID, error) {
	for _, existing := range r.profiles {
		if existing.UserID == profile.UserID {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	profile.ID = primitive.NewObjectID()
	r.profiles[profile.ID] = profile
	return profile.ID, nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ClientProfile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.ClientProfile, error) {
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *domain.ClientProfile) error {
	if _, ok := r.profiles[profile.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *profile
	r.profiles[profile.ID] = &copied
	return nil
}

type fakeWorkoutRepo struct {
	workouts map[primitive.ObjectID]*domain.Workout
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: map[primitive.ObjectID]*domain.Workout{}}
}

// deactivateSiblings mirrors the transactional write: an activating create or
// update flips the client's other active workouts off.
func (r *fakeWorkoutRepo) deactivateSiblings(clientID, keep primitive.ObjectID) {
	for _, w := range r.workouts {
		if w.ClientID == clientID && w.ID != keep {
			w.IsActive = false
		}
	}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	workout.ID = primitive.NewObjectID()
	copied := *workout
	r.workouts[workout.ID] = &copied
	if workout.IsActive {
		r.deactivateSiblings(workout.ClientID, workout.ID)
	}
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	workout, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *workout
	return &copied, nil
}

func (r *fakeWorkoutRepo) GetByClientID(_ context.Context, clientID primitive.ObjectID) ([]domain.Workout, error) {
	var result []domain.Workout
	for _, w := range r.workouts {
		if w.ClientID == clientID {
			result = append(result, *w)
		}
	}
	return result, nil
}

func (r *fakeWorkoutRepo) GetActiveByClientID(_ context.Context, clientID primitive.ObjectID) (*domain.Workout, error) {
	for _, w := range r.workouts {
		if w.ClientID == clientID && w.IsActive {
			copied := *w
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	if _, ok := r.workouts[workout.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *workout
	r.workouts[workout.ID] = &copied
	if workout.IsActive {
		r.deactivateSiblings(workout.ClientID, workout.ID)
	}
	return nil
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.workouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

func (r *fakeWorkoutRepo) activeCount(clientID primitive.ObjectID) int {
	count := 0
	for _, w := range r.workouts {
		if w.ClientID == clientID && w.IsActive {
			count++
		}
	}
	return count
}

type fakeSessionRepo struct {
	sessions map[primitive.ObjectID]*domain.WorkoutSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[primitive.ObjectID]*domain.WorkoutSession{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	session.ID = primitive.NewObjectID()
	copied := *session
	r.sessions[session.ID] = &copied
	return session.ID, nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) GetByClientID(_ context.Context, clientID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error) {
	var result []domain.WorkoutSession
	for _, s := range r.sessions {
		if s.ClientID == clientID {
			result = append(result, *s)
		}
	}
	if limit > 0 && int64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeSessionRepo) UpdateFeedback(_ context.Context, id primitive.ObjectID, rating int, feedback string) error {
	session, ok := r.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	session.Rating = rating
	session.Feedback = feedback
	return nil
}

type fakeMeasurementRepo struct {
	measurements map[primitive.ObjectID]*domain.Measurement
}

func newFakeMeasurementRepo() *fakeMeasurementRepo {
	return &fakeMeasurementRepo{measurements: map[primitive.ObjectID]*domain.Measurement{}}
}

func (r *fakeMeasurementRepo) Create(_ context.Context, m *domain.Measurement) (primitive.ObjectID, error) {
	m.ID = primitive.NewObjectID()
	copied := *m
	r.measurements[m.ID] = &copied
	return m.ID, nil
}

func (r *fakeMeasurementRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Measurement, error) {
	m, ok := r.measurements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMeasurementRepo) GetByClientID(_ context.Context, clientID primitive.ObjectID) ([]domain.Measurement, error) {
	var result []domain.Measurement
	for _, m := range r.measurements {
		if m.ClientID == clientID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *fakeMeasurementRepo) Update(_ context.Context, m *domain.Measurement) error {
	if _, ok := r.measurements[m.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *m
	r.measurements[m.ID] = &copied
	return nil
}

func (r *fakeMeasurementRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.measurements[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.measurements, id)
	return nil
}

type fakeNotificationRepo struct {
	notifications map[primitive.ObjectID]*domain.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[primitive.ObjectID]*domain.Notification{}}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) (primitive.ObjectID, error) {
	n.ID = primitive.NewObjectID()
	copied := *n
	r.notifications[n.ID] = &copied
	return n.ID, nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *n
	return &copied, nil
}

func (r *fakeNotificationRepo) GetByUserID(_ context.Context, userID primitive.ObjectID, unreadOnly bool) ([]domain.Notification, error) {
	var result []domain.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		result = append(result, *n)
	}
	return result, nil
}

func (r *fakeNotificationRepo) SetRead(_ context.Context, id primitive.ObjectID, read bool) error {
	n, ok := r.notifications[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.Read = read
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID primitive.ObjectID) error {
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

// fakeFileStorage records presign and delete calls.
type fakeFileStorage struct {
	uploadErr   error
	downloadErr error
	deleted     []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return "https://storage.test/upload/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	return "https://storage.test/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

// fakeNotifier records trainer notifications raised by other services.
type fakeNotifier struct {
	kinds    []domain.NotificationType
	messages []string
}

func (f *fakeNotifier) NotifyTrainer(_ context.Context, kind domain.NotificationType, message string) {
	f.kinds = append(f.kinds, kind)
	f.messages = append(f.messages, message)
}
