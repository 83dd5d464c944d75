// file: internals/features/finance/fees/controller/class_fee_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolfee_backend/internals/features/finance/fees/dto"
	"schoolfee_backend/internals/features/finance/fees/repository"
	helper "schoolfee_backend/internals/helpers"
)

// -----------------------------------------
// List (GET /class-fees?class=&fee_type=)
// -----------------------------------------
func (h *Handler) ListClassFees(c *fiber.Ctx) error {
	list, err := h.Store.ListClassFees(c.UserContext(), repository.ClassFeeFilter{
		Class:   c.Query("class"),
		FeeType: c.Query("fee_type"),
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToClassFeeResponses(list))
}

// -----------------------------------------
// Create (POST /class-fees)
// -----------------------------------------
func (h *Handler) CreateClassFee(c *fiber.Ctx) error {
	var in dto.ClassFeeCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	ctx := c.UserContext()
	m := dto.ClassFeeCreateDTOToModel(in)

	if _, err := h.Store.FindClassFee(ctx, m.ClassFeeClass, m.ClassFeeFeeType); err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "class fee for this class and fee type already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := h.Store.CreateClassFee(ctx, &m); err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "class fee for this class and fee type already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	log.Printf("[INFO] class fee created: %s / %s = %s", m.ClassFeeClass, m.ClassFeeFeeType, m.ClassFeeAmount)
	return helper.JsonCreated(c, "created", dto.ToClassFeeResponse(m))
}

// -----------------------------------------
// Update (PATCH /class-fees/:id)
// -----------------------------------------
func (h *Handler) UpdateClassFee(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.ClassFeeUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	ctx := c.UserContext()
	m, err := h.Store.GetClassFee(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "class fee not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if fe := dto.ApplyClassFeeUpdate(&m, in); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	if err := h.Store.UpdateClassFee(ctx, &m); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "updated", dto.ToClassFeeResponse(m))
}

// -----------------------------------------
// Delete (DELETE /class-fees/:id) - soft delete
// -----------------------------------------
func (h *Handler) DeleteClassFee(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Store.DeleteClassFee(c.UserContext(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "class fee not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "deleted", fiber.Map{"class_fee_id": id})
}
