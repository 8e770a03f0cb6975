package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mindsprint_backend/internals/features/homework/assignments/model"
	"mindsprint_backend/internals/helpers/apperr"
)

// AssignmentRow is the `assignments` table.
type AssignmentRow struct {
	AssignmentID          uuid.UUID       `gorm:"type:uuid;primaryKey;column:assignment_id"`
	AssignmentTitle       string          `gorm:"type:text;not null;column:assignment_title"`
	AssignmentDescription string          `gorm:"type:text;not null;default:'';column:assignment_description"`
	AssignmentAssignedTo  string          `gorm:"type:text;not null;index:idx_assignments_assigned_to;column:assignment_assigned_to"`
	AssignmentAssignedBy  string          `gorm:"type:text;not null;column:assignment_assigned_by"`
	AssignmentDueDate     *datatypes.Date `gorm:"type:date;column:assignment_due_date"`
	AssignmentCategory    string          `gorm:"type:varchar(20);not null;default:'general';column:assignment_category"`
	AssignmentStatus      string          `gorm:"type:varchar(20);not null;default:'pending';column:assignment_status"`
	AssignmentCompletedAt *time.Time      `gorm:"type:timestamptz;column:assignment_completed_at"`
	AssignmentClientNotes *string         `gorm:"type:text;column:assignment_client_notes"`
	AssignmentCreatedAt   time.Time       `gorm:"type:timestamptz;not null;index:idx_assignments_created_at,sort:desc;column:assignment_created_at"`
	AssignmentUpdatedAt   time.Time       `gorm:"type:timestamptz;not null;column:assignment_updated_at"`
}

func (AssignmentRow) TableName() string { return "assignments" }

// BeforeSave mirrors the enumeration constraints so no free-text value
// reaches the table.
func (r *AssignmentRow) BeforeSave(tx *gorm.DB) error {
	if !model.Category(r.AssignmentCategory).Valid() {
		return fmt.Errorf("invalid assignment_category %q", r.AssignmentCategory)
	}
	if !model.Status(r.AssignmentStatus).Valid() {
		return fmt.Errorf("invalid assignment_status %q", r.AssignmentStatus)
	}
	if (r.AssignmentStatus == string(model.StatusCompleted)) != (r.AssignmentCompletedAt != nil) {
		return errors.New("assignment_completed_at must be set exactly when status is completed")
	}
	return nil
}

func rowFromModel(a model.Assignment) (AssignmentRow, error) {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		return AssignmentRow{}, err
	}
	row := AssignmentRow{
		AssignmentID:          id,
		AssignmentTitle:       a.Title,
		AssignmentDescription: a.Description,
		AssignmentAssignedTo:  a.AssignedTo,
		AssignmentAssignedBy:  a.AssignedBy,
		AssignmentCategory:    string(a.Category),
		AssignmentStatus:      string(a.Status),
		AssignmentCompletedAt: a.CompletedAt,
		AssignmentClientNotes: a.ClientNotes,
		AssignmentCreatedAt:   a.CreatedAt,
		AssignmentUpdatedAt:   a.UpdatedAt,
	}
	if a.DueDate != nil {
		d := datatypes.Date(*a.DueDate)
		row.AssignmentDueDate = &d
	}
	return row, nil
}

func (r AssignmentRow) toModel() model.Assignment {
	a := model.Assignment{
		ID:          r.AssignmentID.String(),
		Title:       r.AssignmentTitle,
		Description: r.AssignmentDescription,
		AssignedTo:  r.AssignmentAssignedTo,
		AssignedBy:  r.AssignmentAssignedBy,
		Category:    model.Category(r.AssignmentCategory),
		Status:      model.Status(r.AssignmentStatus),
		ClientNotes: r.AssignmentClientNotes,
		CreatedAt:   r.AssignmentCreatedAt.UTC(),
		UpdatedAt:   r.AssignmentUpdatedAt.UTC(),
	}
	if r.AssignmentDueDate != nil {
		y, m, d := time.Time(*r.AssignmentDueDate).Date()
		due := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		a.DueDate = &due
	}
	if r.AssignmentCompletedAt != nil {
		c := r.AssignmentCompletedAt.UTC()
		a.CompletedAt = &c
	}
	return a
}

// PostgresStore persists assignments with GORM.
type PostgresStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
		// timestamptz keeps microseconds
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Migrate creates or updates the assignments table.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return apperr.Store("migrate", s.db.WithContext(ctx).AutoMigrate(&AssignmentRow{}))
}

func (s *PostgresStore) Insert(ctx context.Context, a *model.Assignment) (string, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}
	now := s.now()

	next := a.Clone()
	next.ID = id
	next.CreatedAt = now
	next.UpdatedAt = now
	if next.CompletedAt != nil {
		c := next.CompletedAt.UTC().Truncate(time.Microsecond)
		next.CompletedAt = &c
	}
	row, err := rowFromModel(next)
	if err != nil {
		return "", apperr.Store("insert", err)
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", apperr.Store("insert", err)
	}
	*a = next
	return id, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, notFound(id)
	}
	var row AssignmentRow
	if err := s.db.WithContext(ctx).Where("assignment_id = ?", uid).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, apperr.Store("find by id", err)
	}
	out := row.toModel()
	return &out, nil
}

func (s *PostgresStore) FindByAssignee(ctx context.Context, assignee string) ([]model.Assignment, error) {
	return s.list(ctx, "find by assignee", s.db.WithContext(ctx).Where("assignment_assigned_to = ?", assignee))
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]model.Assignment, error) {
	return s.list(ctx, "find all", s.db.WithContext(ctx))
}

func (s *PostgresStore) list(_ context.Context, op string, q *gorm.DB) ([]model.Assignment, error) {
	var rows []AssignmentRow
	if err := q.
		Order("assignment_created_at DESC").
		Order("assignment_id DESC").
		Find(&rows).Error; err != nil {
		return nil, apperr.Store(op, err)
	}
	out := make([]model.Assignment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, mutate Mutator) (*model.Assignment, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, notFound(id)
	}

	var out model.Assignment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row AssignmentRow
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("assignment_id = ?", uid).
			First(&row).Error; err != nil {
			return err
		}

		next, err := applyMutation(row.toModel(), mutate)
		if err != nil {
			return err
		}
		next.UpdatedAt = s.now()
		if next.CompletedAt != nil {
			c := next.CompletedAt.UTC().Truncate(time.Microsecond)
			next.CompletedAt = &c
		}

		updated, err := rowFromModel(next)
		if err != nil {
			return err
		}
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		var me mutatorError
		switch {
		case errors.As(err, &me):
			return nil, me.err
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, notFound(id)
		default:
			return nil, apperr.Store("update", err)
		}
	}
	return &out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return notFound(id)
	}
	res := s.db.WithContext(ctx).Where("assignment_id = ?", uid).Delete(&AssignmentRow{})
	if res.Error != nil {
		return apperr.Store("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(id)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperr.Store("ping", err)
	}
	return apperr.Store("ping", sqlDB.PingContext(ctx))
}

func (s *PostgresStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
