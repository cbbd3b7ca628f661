package relational

import (
	"context"
	"errors"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newWorkout(t *testing.T, repos repository.Repositories, owner string, typ domain.WorkoutType) *domain.Workout {
	t.Helper()
	w := &domain.Workout{OwnerID: owner, Name: "Leg day", Type: typ}
	if _, err := repos.Workouts.Create(context.Background(), w); err != nil {
		t.Fatalf("create workout: %v", err)
	}
	return w
}

func TestWorkoutOwnershipAndListing(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))

	first := newWorkout(t, repos, "alice", domain.WorkoutTypeUnset)
	newWorkout(t, repos, "alice", domain.WorkoutTypeUnset)
	newWorkout(t, repos, "bob", domain.WorkoutTypeUnset)

	if _, err := repos.Workouts.GetByIDForOwner(ctx, first.ID, "bob"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("foreign owner lookup: got %v, want ErrNotFound", err)
	}
	got, err := repos.Workouts.GetByIDForOwner(ctx, first.ID, "alice")
	if err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if got.Type != domain.WorkoutTypeUnset || got.Name != "Leg day" {
		t.Fatalf("unexpected workout %+v", got)
	}

	list, total, err := repos.Workouts.ListByOwner(ctx, "alice", repository.Page{Limit: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(list) != 1 {
		t.Fatalf("total=%d len=%d, want 2 and 1", total, len(list))
	}
}

func TestSwitchTypePurgesOppositeCollection(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))
	w := newWorkout(t, repos, "alice", domain.WorkoutTypeScheduled)

	at := time.Now().Add(24 * time.Hour)
	for i := 0; i < 2; i++ {
		if _, err := repos.ScheduledDates.Create(ctx, &domain.ScheduledWorkoutDate{WorkoutID: w.ID, ScheduledAt: at.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("create date: %v", err)
		}
	}

	if err := repos.Workouts.SwitchType(ctx, w.ID, domain.WorkoutTypeRecurrent); err != nil {
		t.Fatalf("switch: %v", err)
	}
	dates, total, err := repos.ScheduledDates.ListByWorkout(ctx, w.ID, repository.Page{})
	if err != nil {
		t.Fatalf("list dates: %v", err)
	}
	if total != 0 || len(dates) != 0 {
		t.Fatalf("scheduled dates survived the switch: %d", total)
	}
	stored, _ := repos.Workouts.GetByID(ctx, w.ID)
	if stored.Type != domain.WorkoutTypeRecurrent {
		t.Fatalf("type = %q", stored.Type)
	}

	if err := repos.Workouts.SwitchType(ctx, "missing", domain.WorkoutTypeScheduled); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("switch on missing workout: %v", err)
	}
}

func TestDeleteWorkoutCascades(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))
	w := newWorkout(t, repos, "alice", domain.WorkoutTypeRecurrent)

	if _, err := repos.RecurringAlerts.Create(ctx, &domain.RecurringWorkoutAlert{WorkoutID: w.ID, Time: domain.TimeOfDay{Hour: 7}, WeekDays: []int{0}}); err != nil {
		t.Fatal(err)
	}
	if _, err := repos.Comments.Create(ctx, &domain.WorkoutComment{WorkoutID: w.ID, Comment: "felt good"}); err != nil {
		t.Fatal(err)
	}

	if err := repos.Workouts.Delete(ctx, w.ID, "bob"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("delete by non-owner: %v", err)
	}
	if err := repos.Workouts.Delete(ctx, w.ID, "alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, n, _ := repos.RecurringAlerts.ListByWorkout(ctx, w.ID, repository.Page{}); n != 0 {
		t.Fatalf("%d alerts left after delete", n)
	}
	if _, n, _ := repos.Comments.ListByWorkout(ctx, w.ID, repository.Page{}); n != 0 {
		t.Fatalf("%d comments left after delete", n)
	}
}

func TestScheduledDateUpdateSeesStoredValues(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))
	w := newWorkout(t, repos, "alice", domain.WorkoutTypeScheduled)

	at := time.Date(2030, 3, 12, 19, 30, 0, 0, time.UTC)
	d := &domain.ScheduledWorkoutDate{WorkoutID: w.ID, ScheduledAt: at, Activated: true}
	if _, err := repos.ScheduledDates.Create(ctx, d); err != nil {
		t.Fatal(err)
	}

	later := at.Add(time.Hour)
	updated, err := repos.ScheduledDates.Update(ctx, d.ID, w.ID, func(cur *domain.ScheduledWorkoutDate) error {
		if !cur.ScheduledAt.Equal(at) || !cur.Activated {
			t.Errorf("mutate saw %+v", cur)
		}
		cur.Apply(domain.ScheduledDatePatch{ScheduledAt: &later})
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Activated || !updated.ScheduledAt.Equal(later) {
		t.Fatalf("updated = %+v", updated)
	}

	reloaded, _ := repos.ScheduledDates.GetByID(ctx, d.ID, w.ID)
	if reloaded.Activated || !reloaded.ScheduledAt.Equal(later) {
		t.Fatalf("reloaded = %+v", reloaded)
	}

	boom := errors.New("boom")
	if _, err := repos.ScheduledDates.Update(ctx, d.ID, w.ID, func(*domain.ScheduledWorkoutDate) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("mutate error not propagated: %v", err)
	}
	if _, err := repos.ScheduledDates.Update(ctx, "missing", w.ID, func(*domain.ScheduledWorkoutDate) error { return nil }); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("update on missing row: %v", err)
	}
}

func TestFindInWindowBoundaries(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))
	w := newWorkout(t, repos, "alice", domain.WorkoutTypeScheduled)

	minute := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	offsets := []time.Duration{
		-time.Millisecond,
		0,
		30 * time.Second,
		59*time.Second + 999*time.Millisecond,
		time.Minute,
	}
	for _, off := range offsets {
		if _, err := repos.ScheduledDates.Create(ctx, &domain.ScheduledWorkoutDate{WorkoutID: w.ID, ScheduledAt: minute.Add(off)}); err != nil {
			t.Fatal(err)
		}
	}

	from, to := domain.MinuteWindow(minute.Add(12 * time.Second))
	due, err := repos.ScheduledDates.FindInWindow(ctx, from, to)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(due) != 3 {
		t.Fatalf("got %d due dates, want 3: %+v", len(due), due)
	}
	for _, d := range due {
		if !d.DueWithin(from, to) {
			t.Errorf("%s outside window", d.ScheduledAt)
		}
	}

	upcoming, err := repos.ScheduledDates.HasAfter(ctx, w.ID, minute.Add(time.Minute))
	if err != nil || upcoming {
		t.Fatalf("HasAfter(last) = %v, %v", upcoming, err)
	}
	upcoming, err = repos.ScheduledDates.HasAfter(ctx, w.ID, minute)
	if err != nil || !upcoming {
		t.Fatalf("HasAfter(first) = %v, %v", upcoming, err)
	}
}

func TestFindDueAtMatchesWeekDayMask(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))
	w := newWorkout(t, repos, "alice", domain.WorkoutTypeRecurrent)

	alerts := []domain.RecurringWorkoutAlert{
		{WorkoutID: w.ID, Time: domain.TimeOfDay{Hour: 9, Second: 30}, WeekDays: []int{0, 1}},
		{WorkoutID: w.ID, Time: domain.TimeOfDay{Hour: 9}, WeekDays: []int{}},
		{WorkoutID: w.ID, Time: domain.TimeOfDay{Hour: 9}, WeekDays: []int{0}},
		{WorkoutID: w.ID, Time: domain.TimeOfDay{Hour: 9, Minute: 1}, WeekDays: []int{1}},
	}
	for i := range alerts {
		if _, err := repos.RecurringAlerts.Create(ctx, &alerts[i]); err != nil {
			t.Fatal(err)
		}
	}

	due, err := repos.RecurringAlerts.FindDueAt(ctx, domain.Tuesday, 9, 0)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(due) != 1 || due[0].ID != alerts[0].ID {
		t.Fatalf("due = %+v, want only %s", due, alerts[0].ID)
	}
	if got := due[0].WeekDays; len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("week days round trip = %v", got)
	}
}

func TestRecurringAlertUpdateKeepsActivation(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))
	w := newWorkout(t, repos, "alice", domain.WorkoutTypeRecurrent)

	a := &domain.RecurringWorkoutAlert{WorkoutID: w.ID, Time: domain.TimeOfDay{Hour: 6}, WeekDays: []int{4}, Activated: true}
	if _, err := repos.RecurringAlerts.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	days := []int{6, 2}
	updated, err := repos.RecurringAlerts.Update(ctx, a.ID, w.ID, func(cur *domain.RecurringWorkoutAlert) error {
		cur.Apply(domain.RecurringAlertPatch{WeekDays: &days})
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Activated || updated.WeekDaysDisplay() != "Wednesday, Sunday" {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestExercisePlanOrdering(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))
	w := newWorkout(t, repos, "alice", domain.WorkoutTypeUnset)

	for _, name := range []string{"squat", "Bench press", "deadlift"} {
		if _, err := repos.ExercisePlans.Create(ctx, &domain.ExercisePlan{WorkoutID: w.ID, ExerciseID: "e1", Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	plans, total, err := repos.ExercisePlans.ListByWorkout(ctx, w.ID, repository.Page{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d", total)
	}
	want := []string{"Bench press", "deadlift", "squat"}
	for i, p := range plans {
		if p.Name != want[i] {
			t.Errorf("plans[%d] = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))

	cats := []domain.ExerciseCategory{{Name: "strength"}, {Name: "Cardio"}}
	if n, err := repos.ExerciseCategories.CreateMany(ctx, cats); err != nil || n != 2 {
		t.Fatalf("create categories: n=%d err=%v", n, err)
	}
	listed, _, err := repos.ExerciseCategories.List(ctx, repository.Page{})
	if err != nil || len(listed) != 2 || listed[0].Name != "Cardio" {
		t.Fatalf("list categories = %+v, %v", listed, err)
	}
	found, err := repos.ExerciseCategories.FindByNames(ctx, []string{"Cardio", "Yoga"})
	if err != nil || len(found) != 1 || found[0].ID != cats[1].ID {
		t.Fatalf("find by names = %+v, %v", found, err)
	}

	exercises := []domain.Exercise{{Name: "Rowing", CategoryID: cats[1].ID}, {Name: "cycling", CategoryID: cats[1].ID}}
	if _, err := repos.Exercises.CreateMany(ctx, exercises); err != nil {
		t.Fatal(err)
	}
	byCat, total, err := repos.Exercises.ListByCategory(ctx, cats[1].ID, repository.Page{Limit: 10})
	if err != nil || total != 2 || byCat[0].Name != "cycling" {
		t.Fatalf("list exercises = %+v (%d), %v", byCat, total, err)
	}
	if _, err := repos.Exercises.GetByID(ctx, "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("GetByID(nope) = %v", err)
	}
}

func TestWeekDayMaskRoundTrip(t *testing.T) {
	if got := weekDaysFromMask(weekDayMask([]int{6, 0, 3})); len(got) != 3 || got[0] != 0 || got[1] != 3 || got[2] != 6 {
		t.Fatalf("round trip = %v", got)
	}
	if got := weekDaysFromMask(0); got == nil || len(got) != 0 {
		t.Fatalf("empty mask = %#v, want empty non-nil slice", got)
	}
}
