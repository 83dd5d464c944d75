// file: internals/features/finance/fees/route/public_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	feeController "schoolfee_backend/internals/features/finance/fees/controller"
)

// Webhook tanpa JWT; keaslian dicek lewat signature_key.
func FeesPublicRoutes(r fiber.Router, h *feeController.Handler) {
	r.Post("/fees/midtrans/notification", h.MidtransNotification)
}
