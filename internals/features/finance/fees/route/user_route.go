// file: internals/features/finance/fees/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolfee_backend/internals/constants"
	feeController "schoolfee_backend/internals/features/finance/fees/controller"
	"schoolfee_backend/internals/middlewares"
	authMiddleware "schoolfee_backend/internals/middlewares/auth"
)

// Orang tua / siswa (login). Mount: FeesUserRoutes(app.Group("/api/u"), h)
func FeesUserRoutes(r fiber.Router, h *feeController.Handler) {
	g := r.Group("/fees",
		authMiddleware.OnlyRoles("role tidak dikenali", constants.AllRoles...),
	)

	g.Get("/students/:student_id/breakdown", h.StudentBreakdown)
	g.Post("/fee-submissions", middlewares.PaymentSubmitRateLimiter(), h.CreateFeeSubmission)
	g.Post("/checkout", middlewares.PaymentSubmitRateLimiter(), h.CreateCheckout)
}
