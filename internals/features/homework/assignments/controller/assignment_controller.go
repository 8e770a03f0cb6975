// file: internals/features/homework/assignments/controller/assignment_controller.go
package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mindsprint_backend/internals/constants"
	"mindsprint_backend/internals/features/homework/assignments/dto"
	"mindsprint_backend/internals/features/homework/assignments/model"
	"mindsprint_backend/internals/features/homework/assignments/service"
	helper "mindsprint_backend/internals/helpers"
	"mindsprint_backend/internals/helpers/apperr"
	"mindsprint_backend/internals/identity"
)

// AssignmentService is what the controller needs from the service layer.
type AssignmentService interface {
	Create(ctx context.Context, caller identity.Identity, in service.CreateInput) (*model.Assignment, error)
	ListForUser(ctx context.Context, userID string) ([]model.Assignment, error)
	ListAll(ctx context.Context) ([]model.Assignment, error)
	Complete(ctx context.Context, caller identity.Identity, taskID string, notes *string) (*model.Assignment, error)
	Delete(ctx context.Context, taskID string) error
}

type AssignmentController struct {
	Svc AssignmentService
}

func NewAssignmentController(svc AssignmentService) *AssignmentController {
	return &AssignmentController{Svc: svc}
}

// =========================
// POST /tasks
// =========================
func (ctrl *AssignmentController) Create(c *fiber.Ctx) error {
	var body dto.CreateAssignmentDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonFromError(c, invalidBody(err))
	}

	caller, err := helper.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	a, err := ctrl.Svc.Create(c.UserContext(), caller, body.ToInput())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "homework assigned successfully", dto.FromModel(*a))
}

// invalidBody reports an unparseable or mistyped body as a validation
// failure on the "body" field.
func invalidBody(err error) error {
	return fmt.Errorf("%w: %v", apperr.NewValidation(map[string]string{"body": "invalid JSON"}), err)
}

// =========================
// GET /tasks
// =========================
func (ctrl *AssignmentController) ListAll(c *fiber.Ctx) error {
	list, err := ctrl.Svc.ListAll(c.UserContext())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "homework retrieved", dto.FromModels(list), "total", len(list))
}

// =========================
// GET /tasks/:userId
// =========================
func (ctrl *AssignmentController) ListForUser(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Params("userId"))

	caller, err := helper.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	// Clients only see their own list.
	if caller.Role == constants.RoleClient && caller.ID != userID {
		return helper.JsonFromError(c, fmt.Errorf("%w: clients may only list their own homework", apperr.ErrUnauthorized))
	}

	list, err := ctrl.Svc.ListForUser(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "homework retrieved", dto.FromModels(list), "count", len(list))
}

// =========================
// PUT /tasks/:taskId/complete
// =========================
func (ctrl *AssignmentController) Complete(c *fiber.Ctx) error {
	taskID := strings.TrimSpace(c.Params("taskId"))

	var body dto.CompleteAssignmentDTO
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return helper.JsonFromError(c, invalidBody(err))
		}
	}

	caller, err := helper.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	a, err := ctrl.Svc.Complete(c.UserContext(), caller, taskID, body.Notes)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "homework marked as completed", dto.FromModel(*a))
}

// =========================
// DELETE /tasks/:taskId
// =========================
func (ctrl *AssignmentController) Delete(c *fiber.Ctx) error {
	taskID := strings.TrimSpace(c.Params("taskId"))

	if err := ctrl.Svc.Delete(c.UserContext(), taskID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "homework deleted", fiber.Map{"id": taskID})
}
