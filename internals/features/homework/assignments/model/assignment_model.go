// file: internals/features/homework/assignments/model/assignment_model.go
package model

import "time"

type Category string

const (
	CategoryMindfulness Category = "mindfulness"
	CategoryJournaling  Category = "journaling"
	CategoryExercise    Category = "exercise"
	CategorySocial      Category = "social"
	CategoryLearning    Category = "learning"
	CategoryGeneral     Category = "general"
)

// Categories lists every accepted category, in display order.
var Categories = []Category{
	CategoryMindfulness,
	CategoryJournaling,
	CategoryExercise,
	CategorySocial,
	CategoryLearning,
	CategoryGeneral,
}

func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	// StatusOverdue is accepted and persisted but nothing assigns it yet.
	StatusOverdue Status = "overdue"
)

var Statuses = []Status{StatusPending, StatusCompleted, StatusOverdue}

func (s Status) Valid() bool {
	for _, k := range Statuses {
		if s == k {
			return true
		}
	}
	return false
}

// Assignment is a unit of homework a therapist gives to a client.
type Assignment struct {
	ID          string
	Title       string
	Description string
	AssignedTo  string
	AssignedBy  string
	DueDate     *time.Time // date only, UTC midnight
	Category    Category
	Status      Status
	CompletedAt *time.Time
	ClientNotes *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MarkCompleted moves a to completed at the given instant. It is
// unconditional: an already completed assignment is re-stamped.
func (a *Assignment) MarkCompleted(at time.Time, notes *string) {
	t := at.UTC()
	a.Status = StatusCompleted
	a.CompletedAt = &t
	if notes != nil {
		n := *notes
		a.ClientNotes = &n
	}
}

// Clone returns a deep copy so callers cannot alias store-owned pointers.
func (a Assignment) Clone() Assignment {
	out := a
	if a.DueDate != nil {
		d := *a.DueDate
		out.DueDate = &d
	}
	if a.CompletedAt != nil {
		c := *a.CompletedAt
		out.CompletedAt = &c
	}
	if a.ClientNotes != nil {
		n := *a.ClientNotes
		out.ClientNotes = &n
	}
	return out
}
