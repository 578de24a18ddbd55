// Package recording implements the session recording workflow: the ordered
// per-exercise data entry steps a client walks through while performing a
// workout, ending in a persisted WorkoutSession.
package recording

import (
	"context"
	"errors"
	"time"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/policy"
	"alcyxob/pt-crm/internal/timer"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNoExercises     = errors.New("workout has no exercises to record")
	ErrNotRecording    = errors.New("workflow is not in the recording step")
	ErrNotOnSummary    = errors.New("workflow is not on the summary step")
	ErrAlreadySaved    = errors.New("session has already been saved")
	ErrAtFirstExercise = errors.New("already at the first exercise")
	ErrRatingRequired  = errors.New("a star rating is required before saving")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// State of the workflow.
type State int

const (
	StateRecording State = iota
	StateSummary
	StateSaved
)

// SessionSaver persists the finished session. The service implementation
// also raises the trainer notification as part of the save.
type SessionSaver interface {
	SaveSession(ctx context.Context, actor *domain.Actor, session *domain.WorkoutSession) (primitive.ObjectID, error)
}

// Workflow drives one recording pass over a workout's exercises. It is owned
// by a single UI loop and is not safe for concurrent use.
type Workflow struct {
	actor     *domain.Actor
	workout   *domain.Workout
	saver     SessionSaver
	restTimer *timer.Timer

	state     State
	index     int
	collected []domain.ExerciseResult
	current   domain.ExerciseResult
	rating    int
	feedback  string
	startedAt time.Time
	sessionID primitive.ObjectID
}

// New starts a recording pass at the first exercise. Workouts without
// exercises cannot be recorded; that is an upstream empty state, not a
// workflow state.
func New(actor *domain.Actor, workout *domain.Workout, saver SessionSaver) (*Workflow, error) {
	if workout == nil || len(workout.Exercises) == 0 {
		return nil, ErrNoExercises
	}
	w := &Workflow{
		actor:     actor,
		workout:   workout,
		saver:     saver,
		restTimer: timer.New(workout.Exercises[0].Rest),
		state:     StateRecording,
		startedAt: time.Now(),
	}
	w.current = defaultEntry(workout.Exercises[0])
	return w, nil
}

// defaultEntry pre-populates the editable entry for an exercise from its
// plan: one set row per planned set, planned weight carried over.
func defaultEntry(ex domain.Exercise) domain.ExerciseResult {
	sets := make([]domain.SetEntry, 0, ex.Sets)
	for i := 0; i < ex.Sets; i++ {
		sets = append(sets, domain.SetEntry{Reps: ex.Reps, Weight: ex.Weight})
	}
	return domain.ExerciseResult{
		ExerciseID: ex.ID,
		Name:       ex.Name,
		Sets:       sets,
		Notes:      "",
	}
}

func (w *Workflow) State() State { return w.state }

// ExerciseIndex returns the 0-based index of the exercise being recorded.
func (w *Workflow) ExerciseIndex() int { return w.index }

// CurrentExercise returns the exercise the client is on.
func (w *Workflow) CurrentExercise() domain.Exercise {
	return w.workout.Exercises[w.index]
}

// CurrentEntry returns the editable, pre-populated entry for the current
// exercise.
func (w *Workflow) CurrentEntry() domain.ExerciseResult { return w.current }

// RestTimer exposes the countdown for the current exercise. It is
// re-initialized on every exercise change, so remaining time never leaks
// from one exercise to the next.
func (w *Workflow) RestTimer() *timer.Timer { return w.restTimer }

// Collected returns the entries recorded so far, in exercise order.
func (w *Workflow) Collected() []domain.ExerciseResult { return w.collected }

func (w *Workflow) Rating() int      { return w.rating }
func (w *Workflow) Feedback() string { return w.feedback }

// SubmitCurrent records entry for the current exercise and advances. After
// the last exercise the workflow moves to the summary step with rating 0 and
// empty feedback.
func (w *Workflow) SubmitCurrent(entry domain.ExerciseResult) error {
	if w.state != StateRecording {
		return ErrNotRecording
	}
	entry.ExerciseID = w.workout.Exercises[w.index].ID
	w.collected = append(w.collected, entry)

	if w.index == len(w.workout.Exercises)-1 {
		w.state = StateSummary
		w.rating = 0
		w.feedback = ""
		return nil
	}

	w.index++
	next := w.workout.Exercises[w.index]
	w.current = defaultEntry(next)
	w.restTimer.SetExercise(next.Rest)
	return nil
}

// Previous steps back one exercise, restoring the most recently collected
// entry as the editable current one. Invalid at the first exercise.
func (w *Workflow) Previous() error {
	if w.state != StateRecording {
		return ErrNotRecording
	}
	if w.index == 0 {
		return ErrAtFirstExercise
	}
	w.index--
	last := len(w.collected) - 1
	w.current = w.collected[last]
	w.collected = w.collected[:last]
	w.restTimer.SetExercise(w.workout.Exercises[w.index].Rest)
	return nil
}

// EditAgain discards everything collected and restarts recording from the
// first exercise. A full restart, not a resume.
func (w *Workflow) EditAgain() error {
	if w.state != StateSummary {
		return ErrNotOnSummary
	}
	w.state = StateRecording
	w.index = 0
	w.collected = nil
	w.rating = 0
	w.feedback = ""
	first := w.workout.Exercises[0]
	w.current = defaultEntry(first)
	w.restTimer.SetExercise(first.Rest)
	return nil
}

// SetRating records the star rating chosen on the summary step.
func (w *Workflow) SetRating(rating int) error {
	if w.state != StateSummary {
		return ErrNotOnSummary
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	w.rating = rating
	return nil
}

// SetFeedback records the free-text feedback on the summary step.
func (w *Workflow) SetFeedback(feedback string) error {
	if w.state != StateSummary {
		return ErrNotOnSummary
	}
	w.feedback = feedback
	return nil
}

// Finalize authorizes and persists the completed session. A rating of at
// least one star is required; the UI keeps the save button disabled until
// one is chosen. On any error the workflow stays on the summary step so the
// client can retry; only a successful save reaches the terminal saved state.
func (w *Workflow) Finalize(ctx context.Context) (*domain.WorkoutSession, error) {
	switch w.state {
	case StateSaved:
		return nil, ErrAlreadySaved
	case StateSummary:
	default:
		return nil, ErrNotOnSummary
	}
	if w.rating < 1 {
		return nil, ErrRatingRequired
	}

	// The session is always logged for the workout's owning client; the
	// policy rejects anyone else, trainers included.
	if err := policy.Authorize(w.actor, policy.ActionCreateSession, policy.OwnedBy(w.workout.ClientID)); err != nil {
		return nil, err
	}

	minutes := int(time.Since(w.startedAt).Round(time.Minute) / time.Minute)
	session := &domain.WorkoutSession{
		ClientID:        w.workout.ClientID,
		WorkoutID:       w.workout.ID,
		Date:            w.startedAt,
		DurationMinutes: &minutes,
		Completed:       true,
		Rating:          w.rating,
		Feedback:        w.feedback,
		ExerciseData:    w.collected,
	}

	id, err := w.saver.SaveSession(ctx, w.actor, session)
	if err != nil {
		return nil, err
	}
	session.ID = id
	w.sessionID = id
	w.state = StateSaved
	return session, nil
}

// SessionID returns the persisted session id once saved.
func (w *Workflow) SessionID() primitive.ObjectID { return w.sessionID }
