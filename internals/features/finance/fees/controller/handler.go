// file: internals/features/finance/fees/controller/handler.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolfee_backend/internals/features/finance/fees/repository"
	"schoolfee_backend/internals/features/finance/fees/service"
	helper "schoolfee_backend/internals/helpers"
)

type Handler struct {
	Store     repository.Store
	Ledger    *service.LedgerService
	Checkout  *service.CheckoutService
	Validator *validator.Validate
}

func NewHandler(store repository.Store, ledger *service.LedgerService, checkout *service.CheckoutService) *Handler {
	return &Handler{
		Store:     store,
		Ledger:    ledger,
		Checkout:  checkout,
		Validator: helper.NewValidator(),
	}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}

// parseOptionalUUIDQuery: kosong → nil; invalid → error.
func parseOptionalUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
