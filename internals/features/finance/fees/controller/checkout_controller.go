// file: internals/features/finance/fees/controller/checkout_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"schoolfee_backend/internals/features/finance/fees/dto"
	"schoolfee_backend/internals/features/finance/fees/service"
	helper "schoolfee_backend/internals/helpers"
)

// POST /api/u/fees/checkout
func (h *Handler) CreateCheckout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	if err := helper.EnsureStudentAccess(c, in.StudentID); err != nil {
		return helper.FromError(c, err)
	}

	res, err := h.Checkout.CreateCheckout(c.UserContext(), service.CheckoutInput{
		StudentID: in.StudentID,
		FeeTypes:  in.FeeTypes,
		Customer: service.CustomerInput{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			Phone:     in.Phone,
		},
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "checkout created", res)
}

// POST /api/public/fees/midtrans/notification
// Midtrans retry sampai dapat 2xx; duplikat dijawab 200.
func (h *Handler) MidtransNotification(c *fiber.Ctx) error {
	var n service.MidtransNotification
	if err := c.BodyParser(&n); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	raw := append([]byte(nil), c.Body()...)
	res, err := h.Checkout.HandleNotification(c.UserContext(), n, raw)
	if err != nil {
		log.Printf("[WARN] midtrans notification order=%s: %v", n.OrderID, err)
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, res.Action, res)
}
