package relational

import (
	"alcyxob/workout-tracker/internal/domain"
	"time"
)

type workoutRow struct {
	ID          string    `gorm:"primaryKey;size:36"`
	OwnerID     string    `gorm:"size:128;not null;index:idx_workouts_owner_created,priority:1"`
	Name        string    `gorm:"size:150;not null"`
	Description string    `gorm:"type:text"`
	Type        string    `gorm:"size:16;not null;default:''"`
	CreatedAt   time.Time `gorm:"index:idx_workouts_owner_created,priority:2"`
	UpdatedAt   time.Time
}

func (workoutRow) TableName() string { return "workouts" }

func workoutToRow(w *domain.Workout) workoutRow {
	return workoutRow{
		ID:          w.ID,
		OwnerID:     w.OwnerID,
		Name:        w.Name,
		Description: w.Description,
		Type:        string(w.Type),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func (r workoutRow) toDomain() domain.Workout {
	return domain.Workout{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		Type:        domain.WorkoutType(r.Type),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type scheduledDateRow struct {
	ID          string    `gorm:"primaryKey;size:36"`
	WorkoutID   string    `gorm:"size:36;not null;index:idx_scheduled_dates_workout_at,priority:1"`
	ScheduledAt time.Time `gorm:"not null;index:idx_scheduled_dates_workout_at,priority:2;index:idx_scheduled_dates_at"`
	Activated   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (scheduledDateRow) TableName() string { return "scheduled_workout_dates" }

func scheduledDateToRow(d *domain.ScheduledWorkoutDate) scheduledDateRow {
	return scheduledDateRow{
		ID:          d.ID,
		WorkoutID:   d.WorkoutID,
		ScheduledAt: domain.NormalizeInstant(d.ScheduledAt),
		Activated:   d.Activated,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r scheduledDateRow) toDomain() domain.ScheduledWorkoutDate {
	return domain.ScheduledWorkoutDate{
		ID:          r.ID,
		WorkoutID:   r.WorkoutID,
		ScheduledAt: r.ScheduledAt.UTC(),
		Activated:   r.Activated,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

// recurringAlertRow keeps the week days as a bitmask (bit d set for day d) so that
// "contains day" is a portable `week_day_mask & ? <> 0` on both Postgres and SQLite.
type recurringAlertRow struct {
	ID          string `gorm:"primaryKey;size:36"`
	WorkoutID   string `gorm:"size:36;not null;index"`
	Hour        int    `gorm:"not null;index:idx_recurring_alerts_hm,priority:1"`
	Minute      int    `gorm:"not null;index:idx_recurring_alerts_hm,priority:2"`
	Second      int    `gorm:"not null"`
	WeekDayMask int    `gorm:"not null;default:0"`
	Activated   bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (recurringAlertRow) TableName() string { return "recurring_workout_alerts" }

func weekDayMask(days []int) int {
	mask := 0
	for _, d := range days {
		mask |= 1 << d
	}
	return mask
}

// weekDaysFromMask returns the days in Monday..Sunday order.
func weekDaysFromMask(mask int) []int {
	days := make([]int, 0, 7)
	for d := int(domain.Monday); d <= int(domain.Sunday); d++ {
		if mask&(1<<d) != 0 {
			days = append(days, d)
		}
	}
	return days
}

func recurringAlertToRow(a *domain.RecurringWorkoutAlert) recurringAlertRow {
	return recurringAlertRow{
		ID:          a.ID,
		WorkoutID:   a.WorkoutID,
		Hour:        a.Time.Hour,
		Minute:      a.Time.Minute,
		Second:      a.Time.Second,
		WeekDayMask: weekDayMask(a.WeekDays),
		Activated:   a.Activated,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (r recurringAlertRow) toDomain() domain.RecurringWorkoutAlert {
	return domain.RecurringWorkoutAlert{
		ID:        r.ID,
		WorkoutID: r.WorkoutID,
		Time:      domain.TimeOfDay{Hour: r.Hour, Minute: r.Minute, Second: r.Second},
		WeekDays:  weekDaysFromMask(r.WeekDayMask),
		Activated: r.Activated,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

type exercisePlanRow struct {
	ID                string `gorm:"primaryKey;size:36"`
	WorkoutID         string `gorm:"size:36;not null;index"`
	ExerciseID        string `gorm:"size:36;not null;index"`
	Name              string `gorm:"size:150;not null"`
	Description       string `gorm:"type:text"`
	Sets              *int
	Reps              *int
	Weight            *int
	WeightMeasureUnit string `gorm:"size:50"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (exercisePlanRow) TableName() string { return "exercise_plans" }

func exercisePlanToRow(p *domain.ExercisePlan) exercisePlanRow {
	return exercisePlanRow{
		ID:                p.ID,
		WorkoutID:         p.WorkoutID,
		ExerciseID:        p.ExerciseID,
		Name:              p.Name,
		Description:       p.Description,
		Sets:              p.Sets,
		Reps:              p.Reps,
		Weight:            p.Weight,
		WeightMeasureUnit: p.WeightMeasureUnit,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (r exercisePlanRow) toDomain() domain.ExercisePlan {
	return domain.ExercisePlan{
		ID:                r.ID,
		WorkoutID:         r.WorkoutID,
		ExerciseID:        r.ExerciseID,
		Name:              r.Name,
		Description:       r.Description,
		Sets:              r.Sets,
		Reps:              r.Reps,
		Weight:            r.Weight,
		WeightMeasureUnit: r.WeightMeasureUnit,
		CreatedAt:         r.CreatedAt.UTC(),
		UpdatedAt:         r.UpdatedAt.UTC(),
	}
}

type commentRow struct {
	ID        string    `gorm:"primaryKey;size:36"`
	WorkoutID string    `gorm:"size:36;not null;index:idx_comments_workout_created,priority:1"`
	Comment   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index:idx_comments_workout_created,priority:2"`
	UpdatedAt time.Time
}

func (commentRow) TableName() string { return "workout_comments" }

func (r commentRow) toDomain() domain.WorkoutComment {
	return domain.WorkoutComment{
		ID:        r.ID,
		WorkoutID: r.WorkoutID,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

type exerciseCategoryRow struct {
	ID   string `gorm:"primaryKey;size:36"`
	Name string `gorm:"size:100;not null;uniqueIndex"`
}

func (exerciseCategoryRow) TableName() string { return "exercise_categories" }

type exerciseRow struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"size:150;not null;uniqueIndex:idx_exercises_category_name,priority:2"`
	Description string `gorm:"type:text"`
	CategoryID  string `gorm:"size:36;not null;uniqueIndex:idx_exercises_category_name,priority:1"`
}

func (exerciseRow) TableName() string { return "exercises" }

func toDomainSlice[R interface{ toDomain() D }, D any](rows []R) []D {
	out := make([]D, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}
