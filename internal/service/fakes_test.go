package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/notify"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// memStore is an in-memory backend shared by all fake repositories, so cascades
// and mode switches behave like the real ones.
type memStore struct {
	mu         sync.Mutex
	seq        int
	workouts   map[string]domain.Workout
	dates      map[string]domain.ScheduledWorkoutDate
	alerts     map[string]domain.RecurringWorkoutAlert
	plans      map[string]domain.ExercisePlan
	comments   map[string]domain.WorkoutComment
	categories map[string]domain.ExerciseCategory
	exercises  map[string]domain.Exercise

	switchCalls int
}

func newMemStore() *memStore {
	return &memStore{
		workouts:   map[string]domain.Workout{},
		dates:      map[string]domain.ScheduledWorkoutDate{},
		alerts:     map[string]domain.RecurringWorkoutAlert{},
		plans:      map[string]domain.ExercisePlan{},
		comments:   map[string]domain.WorkoutComment{},
		categories: map[string]domain.ExerciseCategory{},
		exercises:  map[string]domain.Exercise{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) repos() repository.Repositories {
	return repository.Repositories{
		Workouts:           &fakeWorkoutRepo{m},
		ScheduledDates:     &fakeDateRepo{m},
		RecurringAlerts:    &fakeAlertRepo{m},
		ExercisePlans:      &fakePlanRepo{m},
		Comments:           &fakeCommentRepo{m},
		ExerciseCategories: &fakeCategoryRepo{m},
		Exercises:          &fakeExerciseRepo{m},
	}
}

func pageOf[T any](items []T, page repository.Page) []T {
	if page.Offset >= len(items) {
		return []T{}
	}
	items = items[page.Offset:]
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}

type fakeWorkoutRepo struct{ m *memStore }

func (r *fakeWorkoutRepo) Create(_ context.Context, w *domain.Workout) (string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	w.ID = r.m.nextID("workout")
	w.CreatedAt = time.Now().UTC()
	w.UpdatedAt = w.CreatedAt
	r.m.workouts[w.ID] = *w
	return w.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id string) (*domain.Workout, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	w, ok := r.m.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (r *fakeWorkoutRepo) GetByIDForOwner(ctx context.Context, id, ownerID string) (*domain.Workout, error) {
	w, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	return w, nil
}

func (r *fakeWorkoutRepo) ListByOwner(_ context.Context, ownerID string, page repository.Page) ([]domain.Workout, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.Workout
	for _, w := range r.m.workouts {
		if w.OwnerID == ownerID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return pageOf(out, page), int64(len(out)), nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, w *domain.Workout) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stored, ok := r.m.workouts[w.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name, stored.Description = w.Name, w.Description
	r.m.workouts[w.ID] = stored
	return nil
}

func (r *fakeWorkoutRepo) SwitchType(_ context.Context, id string, t domain.WorkoutType) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.switchCalls++
	w, ok := r.m.workouts[id]
	if !ok {
		return repository.ErrNotFound
	}
	w.Type = t
	r.m.workouts[id] = w
	if t != domain.WorkoutTypeScheduled {
		for k, d := range r.m.dates {
			if d.WorkoutID == id {
				delete(r.m.dates, k)
			}
		}
	}
	if t != domain.WorkoutTypeRecurrent {
		for k, a := range r.m.alerts {
			if a.WorkoutID == id {
				delete(r.m.alerts, k)
			}
		}
	}
	return nil
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, id, ownerID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	w, ok := r.m.workouts[id]
	if !ok || w.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.m.workouts, id)
	for k, d := range r.m.dates {
		if d.WorkoutID == id {
			delete(r.m.dates, k)
		}
	}
	for k, a := range r.m.alerts {
		if a.WorkoutID == id {
			delete(r.m.alerts, k)
		}
	}
	for k, p := range r.m.plans {
		if p.WorkoutID == id {
			delete(r.m.plans, k)
		}
	}
	for k, c := range r.m.comments {
		if c.WorkoutID == id {
			delete(r.m.comments, k)
		}
	}
	return nil
}

type fakeDateRepo struct{ m *memStore }

func (r *fakeDateRepo) Create(_ context.Context, d *domain.ScheduledWorkoutDate) (string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d.ID = r.m.nextID("date")
	d.ScheduledAt = domain.NormalizeInstant(d.ScheduledAt)
	r.m.dates[d.ID] = *d
	return d.ID, nil
}

func (r *fakeDateRepo) GetByID(_ context.Context, id, workoutID string) (*domain.ScheduledWorkoutDate, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.dates[id]
	if !ok || d.WorkoutID != workoutID {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *fakeDateRepo) byWorkout(workoutID string) []domain.ScheduledWorkoutDate {
	var out []domain.ScheduledWorkoutDate
	for _, d := range r.m.dates {
		if d.WorkoutID == workoutID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out
}

func (r *fakeDateRepo) ListByWorkout(_ context.Context, workoutID string, page repository.Page) ([]domain.ScheduledWorkoutDate, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	all := r.byWorkout(workoutID)
	return pageOf(all, page), int64(len(all)), nil
}

func (r *fakeDateRepo) HasAfter(_ context.Context, workoutID string, t time.Time) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, d := range r.byWorkout(workoutID) {
		if d.ScheduledAt.After(t) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDateRepo) Update(_ context.Context, id, workoutID string, mutate func(*domain.ScheduledWorkoutDate) error) (*domain.ScheduledWorkoutDate, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.dates[id]
	if !ok || d.WorkoutID != workoutID {
		return nil, repository.ErrNotFound
	}
	if err := mutate(&d); err != nil {
		return nil, err
	}
	r.m.dates[id] = d
	return &d, nil
}

func (r *fakeDateRepo) Delete(_ context.Context, id, workoutID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.dates[id]
	if !ok || d.WorkoutID != workoutID {
		return repository.ErrNotFound
	}
	delete(r.m.dates, id)
	return nil
}

func (r *fakeDateRepo) FindInWindow(_ context.Context, from, to time.Time) ([]domain.ScheduledWorkoutDate, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.ScheduledWorkoutDate
	for _, d := range r.m.dates {
		if d.DueWithin(from, to) {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeAlertRepo struct{ m *memStore }

func (r *fakeAlertRepo) Create(_ context.Context, a *domain.RecurringWorkoutAlert) (string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a.ID = r.m.nextID("alert")
	r.m.alerts[a.ID] = *a
	return a.ID, nil
}

func (r *fakeAlertRepo) GetByID(_ context.Context, id, workoutID string) (*domain.RecurringWorkoutAlert, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.alerts[id]
	if !ok || a.WorkoutID != workoutID {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *fakeAlertRepo) ListByWorkout(_ context.Context, workoutID string, page repository.Page) ([]domain.RecurringWorkoutAlert, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.RecurringWorkoutAlert
	for _, a := range r.m.alerts {
		if a.WorkoutID == workoutID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.String() < out[j].Time.String() })
	return pageOf(out, page), int64(len(out)), nil
}

func (r *fakeAlertRepo) Update(_ context.Context, id, workoutID string, mutate func(*domain.RecurringWorkoutAlert) error) (*domain.RecurringWorkoutAlert, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.alerts[id]
	if !ok || a.WorkoutID != workoutID {
		return nil, repository.ErrNotFound
	}
	if err := mutate(&a); err != nil {
		return nil, err
	}
	r.m.alerts[id] = a
	return &a, nil
}

func (r *fakeAlertRepo) Delete(_ context.Context, id, workoutID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.alerts[id]
	if !ok || a.WorkoutID != workoutID {
		return repository.ErrNotFound
	}
	delete(r.m.alerts, id)
	return nil
}

func (r *fakeAlertRepo) FindDueAt(_ context.Context, day domain.Weekday, hour, minute int) ([]domain.RecurringWorkoutAlert, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.RecurringWorkoutAlert
	for _, a := range r.m.alerts {
		if a.FiresOn(day, hour, minute) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePlanRepo struct{ m *memStore }

func (r *fakePlanRepo) Create(_ context.Context, p *domain.ExercisePlan) (string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p.ID = r.m.nextID("plan")
	r.m.plans[p.ID] = *p
	return p.ID, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id, workoutID string) (*domain.ExercisePlan, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.plans[id]
	if !ok || p.WorkoutID != workoutID {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakePlanRepo) ListByWorkout(_ context.Context, workoutID string, page repository.Page) ([]domain.ExercisePlan, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.ExercisePlan
	for _, p := range r.m.plans {
		if p.WorkoutID == workoutID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return pageOf(out, page), int64(len(out)), nil
}

func (r *fakePlanRepo) Update(_ context.Context, p *domain.ExercisePlan) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.plans[p.ID]; !ok {
		return repository.ErrNotFound
	}
	r.m.plans[p.ID] = *p
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id, workoutID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.plans[id]
	if !ok || p.WorkoutID != workoutID {
		return repository.ErrNotFound
	}
	delete(r.m.plans, id)
	return nil
}

type fakeCommentRepo struct{ m *memStore }

func (r *fakeCommentRepo) Create(_ context.Context, c *domain.WorkoutComment) (string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c.ID = r.m.nextID("comment")
	r.m.comments[c.ID] = *c
	return c.ID, nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id, workoutID string) (*domain.WorkoutComment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.comments[id]
	if !ok || c.WorkoutID != workoutID {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCommentRepo) ListByWorkout(_ context.Context, workoutID string, page repository.Page) ([]domain.WorkoutComment, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.WorkoutComment
	for _, c := range r.m.comments {
		if c.WorkoutID == workoutID {
			out = append(out, c)
		}
	}
	return pageOf(out, page), int64(len(out)), nil
}

func (r *fakeCommentRepo) Update(_ context.Context, c *domain.WorkoutComment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.comments[c.ID]; !ok {
		return repository.ErrNotFound
	}
	r.m.comments[c.ID] = *c
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id, workoutID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.comments[id]
	if !ok || c.WorkoutID != workoutID {
		return repository.ErrNotFound
	}
	delete(r.m.comments, id)
	return nil
}

type fakeCategoryRepo struct{ m *memStore }

func (r *fakeCategoryRepo) CreateMany(_ context.Context, cats []domain.ExerciseCategory) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range cats {
		cats[i].ID = r.m.nextID("category")
		r.m.categories[cats[i].ID] = cats[i]
	}
	return len(cats), nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.ExerciseCategory, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) FindByNames(_ context.Context, names []string) ([]domain.ExerciseCategory, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}
	out := []domain.ExerciseCategory{}
	for _, c := range r.m.categories {
		if want[c.Name] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) List(_ context.Context, page repository.Page) ([]domain.ExerciseCategory, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.ExerciseCategory
	for _, c := range r.m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return pageOf(out, page), int64(len(out)), nil
}

type fakeExerciseRepo struct{ m *memStore }

func (r *fakeExerciseRepo) CreateMany(_ context.Context, exercises []domain.Exercise) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range exercises {
		exercises[i].ID = r.m.nextID("exercise")
		r.m.exercises[exercises[i].ID] = exercises[i]
	}
	return len(exercises), nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id string) (*domain.Exercise, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e, ok := r.m.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *fakeExerciseRepo) ListByCategory(_ context.Context, categoryID string, page repository.Page) ([]domain.Exercise, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.Exercise
	for _, e := range r.m.exercises {
		if e.CategoryID == categoryID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return pageOf(out, page), int64(len(out)), nil
}

// recordingSender remembers every notification. It fails for schedule IDs in failFor
// and panics for those in panicFor.
type recordingSender struct {
	mu       sync.Mutex
	sent     []notify.Notification
	failFor  map[string]bool
	panicFor map[string]bool
}

func (s *recordingSender) Send(_ context.Context, n notify.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[n.ScheduleID] {
		return errors.New("delivery failed")
	}
	if s.panicFor[n.ScheduleID] {
		panic("delivery exploded")
	}
	s.sent = append(s.sent, n)
	return nil
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// testEnv wires every service against one memStore.
type testEnv struct {
	store    *memStore
	repos    repository.Repositories
	workouts WorkoutService
	dates    ScheduledDateService
	alerts   RecurringAlertService
	plans    ExercisePlanService
	comments CommentService
	catalog  ExerciseCatalogService
}

func newTestEnv(now time.Time) *testEnv {
	store := newMemStore()
	repos := store.repos()
	clock := fixedClock(now)
	workouts := NewWorkoutService(repos.Workouts, repos.ScheduledDates, clock)
	return &testEnv{
		store:    store,
		repos:    repos,
		workouts: workouts,
		dates:    NewScheduledDateService(repos.Workouts, repos.ScheduledDates, workouts, clock),
		alerts:   NewRecurringAlertService(repos.Workouts, repos.RecurringAlerts, workouts),
		plans:    NewExercisePlanService(repos.Workouts, repos.ExercisePlans, repos.Exercises),
		comments: NewCommentService(repos.Workouts, repos.Comments),
		catalog:  NewExerciseCatalogService(repos.ExerciseCategories, repos.Exercises),
	}
}
