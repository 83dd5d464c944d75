// file: internals/features/finance/fees/controller/transport_assignment_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolfee_backend/internals/features/finance/fees/dto"
	"schoolfee_backend/internals/features/finance/fees/model"
	helper "schoolfee_backend/internals/helpers"
)

// GET /transport-assignments?student_id=
func (h *Handler) ListTransportAssignments(c *fiber.Ctx) error {
	studentID, err := parseOptionalUUIDQuery(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}
	list, err := h.Store.ListTransportAssignments(c.UserContext(), studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToTransportAssignmentResponses(list))
}

// PUT /transport-assignments/:student_id
// Update assignment aktif siswa; belum ada → buat baru.
func (h *Handler) UpsertTransportAssignment(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}
	var in dto.TransportAssignmentUpsertDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	ctx := c.UserContext()
	m, err := h.Store.FindActiveTransportAssignment(ctx, studentID)
	created := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		m = model.TransportAssignment{}
		created = true
	}

	dto.ApplyTransportAssignmentUpsert(&m, studentID, in)
	if err := h.Store.SaveTransportAssignment(ctx, &m); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if created {
		return helper.JsonCreated(c, "created", dto.ToTransportAssignmentResponse(m))
	}
	return helper.JsonUpdated(c, "updated", dto.ToTransportAssignmentResponse(m))
}
