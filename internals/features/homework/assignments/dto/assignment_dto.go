// file: internals/features/homework/assignments/dto/assignment_dto.go
package dto

import (
	"time"

	"mindsprint_backend/internals/features/homework/assignments/model"
	"mindsprint_backend/internals/features/homework/assignments/service"
)

// =======================
// Request DTO
// =======================

// CreateAssignmentDTO has no assignedBy: any such field in the body is ignored.
type CreateAssignmentDTO struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	AssignedTo  string  `json:"assignedTo"`
	DueDate     *string `json:"dueDate,omitempty"`
	Category    *string `json:"category,omitempty"`
}

func (p CreateAssignmentDTO) ToInput() service.CreateInput {
	return service.CreateInput{
		Title:       p.Title,
		Description: p.Description,
		AssignedTo:  p.AssignedTo,
		DueDate:     p.DueDate,
		Category:    p.Category,
	}
}

type CompleteAssignmentDTO struct {
	Notes *string `json:"notes,omitempty"`
}

// =======================
// Response DTO
// =======================

type AssignmentResponseDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  string     `json:"assignedTo"`
	AssignedBy  string     `json:"assignedBy"`
	DueDate     *string    `json:"dueDate"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt"`
	ClientNotes *string    `json:"clientNotes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Mapper entity -> response
func FromModel(a model.Assignment) AssignmentResponseDTO {
	out := AssignmentResponseDTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		AssignedTo:  a.AssignedTo,
		AssignedBy:  a.AssignedBy,
		Category:    string(a.Category),
		Status:      string(a.Status),
		CompletedAt: a.CompletedAt,
		ClientNotes: a.ClientNotes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.DueDate != nil {
		d := a.DueDate.Format(service.DueDateLayout)
		out.DueDate = &d
	}
	return out
}

func FromModels(list []model.Assignment) []AssignmentResponseDTO {
	out := make([]AssignmentResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
