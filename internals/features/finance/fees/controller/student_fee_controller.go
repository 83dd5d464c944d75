// file: internals/features/finance/fees/controller/student_fee_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"schoolfee_backend/internals/features/finance/fees/dto"
	"schoolfee_backend/internals/features/finance/fees/model"
	"schoolfee_backend/internals/features/finance/fees/repository"
	"schoolfee_backend/internals/features/finance/fees/service"
	helper "schoolfee_backend/internals/helpers"
	"schoolfee_backend/internals/helpers/dbtime"
)

// whitelist sort_by → kolom fisik
var studentFeeSortColumns = map[string]string{
	"created_at":   "student_fee_created_at",
	"paid_amount":  "student_fee_paid_amount",
	"fee_type":     "student_fee_fee_type",
	"student_name": "student_fee_student_name",
}

// GET /student-fees?student_id=&class=&fee_type=&utr_number=&date_from=&date_to=&page=&per_page=&sort_by=&order=
func (h *Handler) ListStudentFees(c *fiber.Ctx) error {
	studentID, err := parseOptionalUUIDQuery(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}

	f := repository.StudentFeeFilter{
		StudentID: studentID,
		Class:     strings.TrimSpace(c.Query("class")),
		FeeType:   strings.TrimSpace(c.Query("fee_type")),
		UTRNumber: strings.TrimSpace(c.Query("utr_number")),
	}

	// date range (inklusif, per hari, timezone sekolah)
	from, to, field, err := dbtime.ParseDayRange(c.Query("date_from"), c.Query("date_to"), dbtime.GetSchoolLocation(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, field+" harus YYYY-MM-DD")
	}
	f.DateFrom, f.DateTo = from, to

	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	f.OrderBy, f.OrderDesc = p.OrderColumn(studentFeeSortColumns, "created_at")

	ctx := c.UserContext()
	total, err := h.Store.CountStudentFees(ctx, f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	f.Limit, f.Offset = p.Limit(), p.Offset()
	rows, err := h.Store.ListStudentFees(ctx, f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToStudentFeeResponses(rows), helper.BuildPagination(total, p))
}

// GET /student-fees/:id
func (h *Handler) GetStudentFee(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	m, err := h.Store.GetStudentFee(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student fee not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToStudentFeeResponse(m))
}

// POST /student-fees - input manual (cash dll.)
func (h *Handler) CreateStudentFee(c *fiber.Ctx) error {
	var in dto.StudentFeeCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	m := dto.StudentFeeCreateDTOToModel(in)
	rows := []model.StudentFee{m}
	if err := h.Store.CreateStudentFees(c.UserContext(), rows); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "created", dto.ToStudentFeeResponse(rows[0]))
}

// PATCH /student-fees/:id
func (h *Handler) UpdateStudentFee(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.StudentFeeUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	ctx := c.UserContext()
	m, err := h.Store.GetStudentFee(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student fee not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if fe := dto.ApplyStudentFeeUpdate(&m, in); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	if err := h.Store.UpdateStudentFee(ctx, &m); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "updated", dto.ToStudentFeeResponse(m))
}

// DELETE /student-fees/:id
func (h *Handler) DeleteStudentFee(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Store.DeleteStudentFee(c.UserContext(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student fee not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "deleted", fiber.Map{"student_fee_id": id})
}

// GET /student-fees/expected-amount?fee_type=&class=&student_id=&current=
// Dipanggil form input saat fee_type / class / siswa berubah.
func (h *Handler) ExpectedAmount(c *fiber.Ctx) error {
	studentID, err := parseOptionalUUIDQuery(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}

	current := decimal.Zero
	if s := strings.TrimSpace(c.Query("current")); s != "" {
		if current, err = decimal.NewFromString(s); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "current harus angka")
		}
	}

	out, err := h.Ledger.ResolveExpectedAmount(c.UserContext(), service.ExpectedAmountQuery{
		FeeType:   c.Query("fee_type"),
		Class:     strings.TrimSpace(c.Query("class")),
		StudentID: studentID,
		Current:   current,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
