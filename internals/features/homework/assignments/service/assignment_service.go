// Package service enforces creation validation, the completion transition
// and query semantics on top of a store.Store.
package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mindsprint_backend/internals/constants"
	"mindsprint_backend/internals/features/homework/assignments/model"
	"mindsprint_backend/internals/features/homework/assignments/store"
	"mindsprint_backend/internals/helpers/apperr"
	"mindsprint_backend/internals/identity"
)

const DueDateLayout = "2006-01-02"

// CreateInput is what a therapist may supply for a new assignment.
// There is no assignedBy: it always comes from the caller.
type CreateInput struct {
	Title       string  `json:"title"       validate:"required"`
	Description *string `json:"description"`
	AssignedTo  string  `json:"assignedTo"  validate:"required"`
	DueDate     *string `json:"dueDate"`
	Category    *string `json:"category"    validate:"omitempty,oneof=mindfulness journaling exercise social learning general"`
}

type AssignmentService struct {
	store    store.Store
	validate *validator.Validate
	log      logrus.FieldLogger
	now      func() time.Time
}

type Option func(*AssignmentService)

// WithClock overrides the time source used for completedAt.
func WithClock(now func() time.Time) Option {
	return func(s *AssignmentService) { s.now = now }
}

func New(st store.Store, log logrus.FieldLogger, opts ...Option) *AssignmentService {
	s := &AssignmentService{
		store: st,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validate = validator.New()
	s.validate.RegisterTagNameFunc(jsonFieldName)
	return s
}

func (s *AssignmentService) Create(ctx context.Context, caller identity.Identity, in CreateInput) (*model.Assignment, error) {
	if caller.IsZero() {
		return nil, fmt.Errorf("create: %w", apperr.ErrUnauthenticated)
	}

	in.Title = strings.TrimSpace(in.Title)
	in.AssignedTo = strings.TrimSpace(in.AssignedTo)
	if in.Category != nil {
		// blank means "use the default"
		if c := strings.TrimSpace(*in.Category); c != "" {
			in.Category = &c
		} else {
			in.Category = nil
		}
	}

	fields := map[string]string{}
	if err := s.validate.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return nil, err
		}
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
	}

	due, err := parseDueDate(in.DueDate)
	if err != nil {
		fields["dueDate"] = "date"
	}
	if len(fields) > 0 {
		return nil, apperr.NewValidation(fields)
	}

	a := &model.Assignment{
		Title:      in.Title,
		AssignedTo: in.AssignedTo,
		AssignedBy: caller.ID,
		DueDate:    due,
		Category:   model.CategoryGeneral,
		Status:     model.StatusPending,
	}
	if in.Description != nil {
		a.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		a.Category = model.Category(*in.Category)
	}

	if _, err := s.store.Insert(ctx, a); err != nil {
		return nil, s.storeFailure("create", err)
	}
	s.log.WithFields(logrus.Fields{
		"op":            "create",
		"assignment_id": a.ID,
		"assigned_to":   a.AssignedTo,
		"assigned_by":   a.AssignedBy,
	}).Info("assignment created")
	return a, nil
}

func (s *AssignmentService) ListForUser(ctx context.Context, userID string) ([]model.Assignment, error) {
	list, err := s.store.FindByAssignee(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, s.storeFailure("list for user", err)
	}
	if list == nil {
		list = []model.Assignment{}
	}
	return list, nil
}

func (s *AssignmentService) ListAll(ctx context.Context) ([]model.Assignment, error) {
	list, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, s.storeFailure("list all", err)
	}
	if list == nil {
		list = []model.Assignment{}
	}
	return list, nil
}

// Complete marks the assignment completed and stamps completedAt with the
// current time, on every call. A client may only complete their own
// assignments.
func (s *AssignmentService) Complete(ctx context.Context, caller identity.Identity, taskID string, notes *string) (*model.Assignment, error) {
	if caller.IsZero() {
		return nil, fmt.Errorf("complete: %w", apperr.ErrUnauthenticated)
	}
	taskID = strings.TrimSpace(taskID)
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, fmt.Errorf("assignment %s: %w", taskID, apperr.ErrNotFound)
	}

	updated, err := s.store.Update(ctx, taskID, func(a *model.Assignment) error {
		if caller.Role == constants.RoleClient && a.AssignedTo != caller.ID {
			return fmt.Errorf("assignment %s belongs to another client: %w", taskID, apperr.ErrUnauthorized)
		}
		a.MarkCompleted(s.now(), notes)
		return nil
	})
	if err != nil {
		return nil, s.storeFailure("complete", err)
	}
	s.log.WithFields(logrus.Fields{
		"op":            "complete",
		"assignment_id": updated.ID,
		"assigned_to":   updated.AssignedTo,
	}).Info("assignment completed")
	return updated, nil
}

func (s *AssignmentService) Delete(ctx context.Context, taskID string) error {
	taskID = strings.TrimSpace(taskID)
	if _, err := uuid.Parse(taskID); err != nil {
		return fmt.Errorf("assignment %s: %w", taskID, apperr.ErrNotFound)
	}
	if err := s.store.Delete(ctx, taskID); err != nil {
		return s.storeFailure("delete", err)
	}
	s.log.WithFields(logrus.Fields{"op": "delete", "assignment_id": taskID}).Info("assignment deleted")
	return nil
}

// storeFailure keeps not-found and ownership errors as they are and
// classifies anything else as a store failure.
func (s *AssignmentService) storeFailure(op string, err error) error {
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrUnauthorized) {
		return err
	}
	if !errors.Is(err, apperr.ErrStore) {
		err = apperr.Store(op, err)
	}
	s.log.WithError(err).WithField("op", op).Error("assignment store failure")
	return err
}

// parseDueDate accepts YYYY-MM-DD or an RFC 3339 timestamp and keeps the
// calendar date only.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(DueDateLayout, v)
	if err != nil {
		ts, err2 := time.Parse(time.RFC3339, v)
		if err2 != nil {
			return nil, err
		}
		// the calendar day is the sender's, in the sender's offset
		t = ts
	}
	y, m, d := t.Date()
	due := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &due, nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}
