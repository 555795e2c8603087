package migrations

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Rakhulsr/go-catalog/app/logger"
	"gorm.io/gorm"
)

// Migration is one versioned, idempotent schema or data change.
type Migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
}

type SchemaMigration struct {
	Version   int    `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"size:255;not null"`
	AppliedAt time.Time
}

type Status struct {
	Version   int
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

type Runner struct {
	db         *gorm.DB
	migrations []Migration
}

func NewRunner(db *gorm.DB, migrations []Migration) *Runner {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })
	return &Runner{db: db, migrations: sorted}
}

func (r *Runner) applied(ctx context.Context) (map[int]SchemaMigration, error) {
	if err := r.db.WithContext(ctx).AutoMigrate(&SchemaMigration{}); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	var rows []SchemaMigration
	if err := r.db.WithContext(ctx).Order("version").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	out := make(map[int]SchemaMigration, len(rows))
	for _, row := range rows {
		out[row.Version] = row
	}
	return out, nil
}

// Up applies every pending migration in version order, each in its own
// transaction. It returns the number of migrations applied.
func (r *Runner) Up(ctx context.Context) (int, error) {
	done, err := r.applied(ctx)
	if err != nil {
		return 0, err
	}

	log := logger.WithContext(ctx)
	count := 0
	for _, m := range r.migrations {
		if _, ok := done[m.Version]; ok {
			continue
		}
		start := time.Now()
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{Version: m.Version, Name: m.Name, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return count, fmt.Errorf("migration %03d_%s: %w", m.Version, m.Name, err)
		}
		log.WithField("version", m.Version).WithField("took", time.Since(start)).Infof("applied migration %s", m.Name)
		count++
	}
	return count, nil
}

func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	done, err := r.applied(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(r.migrations))
	for _, m := range r.migrations {
		st := Status{Version: m.Version, Name: m.Name}
		if row, ok := done[m.Version]; ok {
			at := row.AppliedAt
			st.Applied = true
			st.AppliedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

// AutoMigrate runs all registered migrations with the given options.
func AutoMigrate(ctx context.Context, db *gorm.DB, opts Options) (int, error) {
	return NewRunner(db, All(opts)).Up(ctx)
}
