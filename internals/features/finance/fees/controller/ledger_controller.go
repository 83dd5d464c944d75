// file: internals/features/finance/fees/controller/ledger_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"schoolfee_backend/internals/features/finance/fees/service"
	helper "schoolfee_backend/internals/helpers"
)

// GET /ledger?class=&section=&q=&status=&page=&per_page=
// Ringkasan per siswa. Totals (footer) dihitung dari semua baris yang lolos filter,
// bukan hanya halaman ini.
func (h *Handler) ListLedger(c *fiber.Ctx) error {
	f := service.LedgerFilter{
		Class:   c.Query("class"),
		Section: c.Query("section"),
		Search:  c.Query("q"),
		Status:  strings.ToUpper(strings.TrimSpace(c.Query("status"))),
	}
	if f.Status != "" && f.Status != service.StatusFullyPaid && f.Status != service.StatusPending {
		return helper.JsonError(c, fiber.StatusBadRequest, "status harus FULLY PAID atau PENDING")
	}

	list, totals, err := h.Ledger.ListStudentLedger(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, err)
	}

	p := helper.ParseFiber(c, "", "asc", helper.AdminOpts)
	page := helper.PageSlice(list, p)

	return helper.JsonListEx(c, "ok", page, helper.BuildPagination(int64(len(list)), p), fiber.Map{
		"totals": totals,
	})
}

// GET /ledger/students/:student_id/breakdown
func (h *Handler) StudentBreakdown(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}
	if err := helper.EnsureStudentAccess(c, id); err != nil {
		return helper.FromError(c, err)
	}
	out, err := h.Ledger.GetStudentBreakdown(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
