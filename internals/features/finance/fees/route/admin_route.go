// file: internals/features/finance/fees/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolfee_backend/internals/constants"
	feeController "schoolfee_backend/internals/features/finance/fees/controller"
	authMiddleware "schoolfee_backend/internals/middlewares/auth"
)

/*
Admin routes (finance staff). Mount: FeesAdminRoutes(app.Group("/api/a"), h)
*/
func FeesAdminRoutes(r fiber.Router, h *feeController.Handler) {
	g := r.Group("/fees",
		authMiddleware.OnlyRoles(constants.RoleErrorFinance("fees"), constants.FinanceRoles...),
	)

	// standar biaya per kelas
	classFees := g.Group("/class-fees")
	classFees.Get("/", h.ListClassFees)        // GET    /api/a/fees/class-fees?class=
	classFees.Post("/", h.CreateClassFee)      // POST   /api/a/fees/class-fees
	classFees.Patch("/:id", h.UpdateClassFee)  // PATCH  /api/a/fees/class-fees/:id
	classFees.Delete("/:id", h.DeleteClassFee) // DELETE /api/a/fees/class-fees/:id (soft delete)

	// catatan pembayaran
	studentFees := g.Group("/student-fees")
	studentFees.Get("/", h.ListStudentFees)
	studentFees.Get("/expected-amount", h.ExpectedAmount) // auto-fill form
	studentFees.Get("/:id", h.GetStudentFee)
	studentFees.Post("/", h.CreateStudentFee)
	studentFees.Patch("/:id", h.UpdateStudentFee)
	studentFees.Delete("/:id", h.DeleteStudentFee)

	// ledger
	ledger := g.Group("/ledger")
	ledger.Get("/", h.ListLedger)
	ledger.Get("/students/:student_id/breakdown", h.StudentBreakdown)

	// transport
	transport := g.Group("/transport-assignments")
	transport.Get("/", h.ListTransportAssignments)
	transport.Put("/:student_id", h.UpsertTransportAssignment)

	// verifikasi pembayaran
	subs := g.Group("/fee-submissions")
	subs.Get("/", h.ListPendingFeeSubmissions)
	subs.Post("/:id/approve", h.ApproveFeeSubmission)
	subs.Post("/:id/reject", h.RejectFeeSubmission)
}
