// file: internals/features/finance/fees/controller/fee_submission_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolfee_backend/internals/features/finance/fees/dto"
	"schoolfee_backend/internals/features/finance/fees/model"
	"schoolfee_backend/internals/features/finance/fees/repository"
	helper "schoolfee_backend/internals/helpers"
)

/* =========================================================
   Submit (orang tua / scanner)
========================================================= */

// POST /fee-submissions
func (h *Handler) CreateFeeSubmission(c *fiber.Ctx) error {
	var in dto.FeeSubmissionCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	if err := helper.EnsureStudentAccess(c, in.FeeSubmissionStudentID); err != nil {
		return helper.FromError(c, err)
	}

	types := model.SplitFeeTypes(in.FeeSubmissionFeeTypes)
	if len(types) == 0 {
		return helper.JsonValidationError(c, map[string][]string{
			"fee_submission_fee_types": {"must contain at least one fee type"},
		})
	}

	ctx := c.UserContext()
	m := dto.FeeSubmissionCreateDTOToModel(in, types)

	// satu UTR hanya boleh satu submission pending
	if _, err := h.Store.FindFeeSubmissionByUTR(ctx, m.FeeSubmissionUTRNumber); err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "utr number already submitted")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	// submission yang sudah di-approve dihapus; UTR-nya tinggal di ledger
	if n, err := h.Store.CountStudentFees(ctx, repository.StudentFeeFilter{UTRNumber: m.FeeSubmissionUTRNumber}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	} else if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "utr number already recorded in ledger")
	}

	if err := h.Store.CreateFeeSubmission(ctx, &m); err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "utr number already submitted")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	log.Printf("[INFO] fee submission %s created (student=%s, types=%d, utr=%s)",
		m.FeeSubmissionID, m.FeeSubmissionStudentID, len(types), m.FeeSubmissionUTRNumber)
	return helper.JsonCreated(c, "created", dto.ToFeeSubmissionResponse(m))
}

/* =========================================================
   Verifikasi (admin)
========================================================= */

// GET /fee-submissions?student_id=
func (h *Handler) ListPendingFeeSubmissions(c *fiber.Ctx) error {
	studentID, err := parseOptionalUUIDQuery(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}
	list, err := h.Store.ListFeeSubmissions(c.UserContext(), repository.FeeSubmissionFilter{
		StudentID: studentID,
		Status:    model.FeeSubmissionStatusPending,
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToFeeSubmissionResponses(list))
}

// POST /fee-submissions/:id/approve
func (h *Handler) ApproveFeeSubmission(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	res, err := h.Ledger.ApprovePendingSubmission(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	log.Printf("[AUDIT] approve fee submission %s by %s", id, helper.ActorLabel(c))
	return helper.JsonOK(c, "approved", fiber.Map{
		"submission_id": res.SubmissionID,
		"student_id":    res.StudentID,
		"utr_number":    res.UTRNumber,
		"student_fees":  dto.ToStudentFeeResponses(res.Rows),
	})
}

// POST /fee-submissions/:id/reject
func (h *Handler) RejectFeeSubmission(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Ledger.RejectPendingSubmission(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	log.Printf("[AUDIT] reject fee submission %s by %s", id, helper.ActorLabel(c))
	return helper.JsonOK(c, "rejected", fiber.Map{"submission_id": id})
}
