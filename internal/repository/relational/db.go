package relational

import (
	"alcyxob/workout-tracker/internal/repository"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"
)

// Open connects to PostgreSQL or SQLite. driver is "postgres" or "sqlite".
// All timestamps gorm writes are UTC with millisecond precision so that
// SQLite's text comparison and Postgres' timestamptz agree.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported relational driver %q", driver)
	}

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormLog,
		NowFunc: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	return db, nil
}

// AutoMigrate creates or updates every table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&workoutRow{},
		&scheduledDateRow{},
		&recurringAlertRow{},
		&exercisePlanRow{},
		&commentRow{},
		&exerciseCategoryRow{},
		&exerciseRow{},
	)
}

// NewRepositories wires every gorm-backed repository against db.
func NewRepositories(db *gorm.DB) repository.Repositories {
	return repository.Repositories{
		Workouts:           NewWorkoutRepository(db),
		ScheduledDates:     NewScheduledDateRepository(db),
		RecurringAlerts:    NewRecurringAlertRepository(db),
		ExercisePlans:      NewExercisePlanRepository(db),
		Comments:           NewCommentRepository(db),
		ExerciseCategories: NewExerciseCategoryRepository(db),
		Exercises:          NewExerciseRepository(db),
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// paginate counts the rows q selects and loads the requested page into dest.
// q must already carry Model and Where clauses.
func paginate(q *gorm.DB, page repository.Page, order string, dest interface{}) (int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	q = q.Order(order)
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}
	if page.Offset > 0 {
		q = q.Offset(page.Offset)
	}
	if err := q.Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}

// lockForUpdate adds SELECT ... FOR UPDATE where the database supports it.
// SQLite serialises writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
