// file: internals/features/finance/fees/service/ledger_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"schoolfee_backend/internals/features/finance/fees/model"
	"schoolfee_backend/internals/features/finance/fees/repository"
)

// TransportFeeType: fee type yang harganya per siswa (transport_assignments).
const TransportFeeType = "Transport Fee"

type LedgerService struct {
	Store    repository.Store
	PaidMode PaidMode
}

func NewLedgerService(store repository.Store, mode PaidMode) *LedgerService {
	if mode == "" {
		mode = PaidModeSum
	}
	return &LedgerService{Store: store, PaidMode: mode}
}

// =====================================================================
// List ledger (agregasi per siswa)
// =====================================================================

func (s *LedgerService) ListStudentLedger(ctx context.Context, f LedgerFilter) ([]StudentSummary, LedgerTotals, error) {
	payments, err := s.Store.ListStudentFees(ctx, repository.StudentFeeFilter{})
	if err != nil {
		return nil, LedgerTotals{}, fmt.Errorf("list student fees: %w", err)
	}
	standards, err := s.Store.ListClassFees(ctx, repository.ClassFeeFilter{})
	if err != nil {
		return nil, LedgerTotals{}, fmt.Errorf("list class fees: %w", err)
	}
	list := AggregateStudentLedger(payments, standards, f)
	return list, SumLedger(list), nil
}

// =====================================================================
// Breakdown per fee type
// =====================================================================

type StudentBreakdownResult struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	StudentBreakdown
}

func (s *LedgerService) GetStudentBreakdown(ctx context.Context, studentID uuid.UUID) (StudentBreakdownResult, error) {
	payments, err := s.Store.ListStudentFees(ctx, repository.StudentFeeFilter{StudentID: &studentID})
	if err != nil {
		return StudentBreakdownResult{}, fmt.Errorf("list student fees: %w", err)
	}

	profile, err := s.resolveProfile(ctx, studentID, payments)
	if err != nil {
		return StudentBreakdownResult{}, err
	}
	if profile.Class == "" && len(payments) == 0 {
		return StudentBreakdownResult{}, fiber.NewError(fiber.StatusNotFound, "student not found")
	}

	standards, err := s.Store.ListClassFees(ctx, repository.ClassFeeFilter{Class: profile.Class})
	if err != nil {
		return StudentBreakdownResult{}, fmt.Errorf("list class fees: %w", err)
	}

	return StudentBreakdownResult{
		StudentID:        studentID,
		StudentName:      profile.Name,
		StudentBreakdown: BuildStudentBreakdown(profile.Class, standards, payments, s.PaidMode),
	}, nil
}

// resolveProfile: direktori students dulu, fallback ke baris ledger terbaru.
func (s *LedgerService) resolveProfile(ctx context.Context, studentID uuid.UUID, payments []model.StudentFee) (StudentProfile, error) {
	st, err := s.Store.GetStudent(ctx, studentID)
	switch {
	case err == nil:
		return StudentProfile{
			Name:    st.StudentName,
			RollNo:  st.StudentRollNo,
			Class:   strings.TrimSpace(st.StudentClass),
			Section: st.StudentSection,
		}, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return StudentProfile{}, fmt.Errorf("get student: %w", err)
	}

	if len(payments) == 0 {
		payments, err = s.Store.ListStudentFees(ctx, repository.StudentFeeFilter{StudentID: &studentID})
		if err != nil {
			return StudentProfile{}, fmt.Errorf("list student fees: %w", err)
		}
	}
	if len(payments) == 0 {
		return StudentProfile{}, nil
	}
	last := payments[len(payments)-1]
	return StudentProfile{
		Name:    last.StudentFeeStudentName,
		RollNo:  last.StudentFeeRollNo,
		Class:   strings.TrimSpace(last.StudentFeeClass),
		Section: last.StudentFeeSection,
	}, nil
}

// =====================================================================
// Auto-fill expected amount
// =====================================================================

const (
	ExpectedSourceTransport = "transport"
	ExpectedSourceClassFee  = "class_fee"
	ExpectedSourceUnchanged = "unchanged"
)

type ExpectedAmountQuery struct {
	FeeType   string
	Class     string
	StudentID *uuid.UUID
	Current   decimal.Decimal // nilai form saat ini
}

type ExpectedAmount struct {
	Amount  decimal.Decimal `json:"amount"`
	Source  string          `json:"source"`
	Matched bool            `json:"matched"`
}

// ResolveExpectedAmount: Transport Fee + student_id → monthly_fare assignment aktif (0 kalau tidak ada);
// selain itu class_fees(class, fee_type); tidak ketemu → nilai sekarang tidak diubah.
func (s *LedgerService) ResolveExpectedAmount(ctx context.Context, q ExpectedAmountQuery) (ExpectedAmount, error) {
	feeType := strings.TrimSpace(q.FeeType)
	if feeType == "" {
		return ExpectedAmount{}, fiber.NewError(fiber.StatusUnprocessableEntity, "fee_type is required")
	}

	if feeType == TransportFeeType && q.StudentID != nil && *q.StudentID != uuid.Nil {
		ta, err := s.Store.FindActiveTransportAssignment(ctx, *q.StudentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ExpectedAmount{Amount: decimal.Zero, Source: ExpectedSourceTransport, Matched: false}, nil
			}
			return ExpectedAmount{}, fmt.Errorf("find transport assignment: %w", err)
		}
		return ExpectedAmount{Amount: ta.TransportAssignmentMonthlyFare, Source: ExpectedSourceTransport, Matched: true}, nil
	}

	cf, err := s.Store.FindClassFee(ctx, q.Class, feeType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExpectedAmount{Amount: q.Current, Source: ExpectedSourceUnchanged, Matched: false}, nil
		}
		return ExpectedAmount{}, fmt.Errorf("find class fee: %w", err)
	}
	return ExpectedAmount{Amount: cf.ClassFeeAmount, Source: ExpectedSourceClassFee, Matched: true}, nil
}

// =====================================================================
// Verifikasi pembayaran: approve (fan-out) / reject
// =====================================================================

type ApprovalResult struct {
	SubmissionID uuid.UUID          `json:"submission_id"`
	StudentID    uuid.UUID          `json:"student_id"`
	UTRNumber    string             `json:"utr_number"`
	Rows         []model.StudentFee `json:"rows"`
}

// ApprovePendingSubmission memecah satu submission ke N baris student_fees
// lalu menghapus submission-nya, dalam satu transaksi.
func (s *LedgerService) ApprovePendingSubmission(ctx context.Context, submissionID uuid.UUID) (ApprovalResult, error) {
	var result ApprovalResult

	err := s.Store.Transaction(ctx, func(tx repository.Store) error {
		sub, err := tx.GetFeeSubmission(ctx, submissionID, true)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "fee submission not found")
			}
			return fmt.Errorf("get fee submission: %w", err)
		}
		if !sub.IsPending() {
			return fiber.NewError(fiber.StatusConflict, "fee submission is not pending")
		}
		if len(sub.FeeTypeList()) == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "fee submission has no fee types")
		}
		if !sub.FeeSubmissionAmount.IsPositive() {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "fee submission amount must be greater than 0")
		}
		// UTR yang sudah masuk ledger tidak boleh dicatat dua kali
		if utr := strings.TrimSpace(sub.FeeSubmissionUTRNumber); utr != "" {
			n, err := tx.CountStudentFees(ctx, repository.StudentFeeFilter{UTRNumber: utr})
			if err != nil {
				return fmt.Errorf("count student fees: %w", err)
			}
			if n > 0 {
				return fiber.NewError(fiber.StatusConflict, "utr number already recorded in ledger")
			}
		}

		profile, err := (&LedgerService{Store: tx}).resolveProfile(ctx, sub.FeeSubmissionStudentID, nil)
		if err != nil {
			return err
		}
		if profile.Class == "" {
			log.Printf("[WARN] fan-out submission=%s: profil siswa %s tidak ditemukan", sub.FeeSubmissionID, sub.FeeSubmissionStudentID)
		}

		rows := BuildFanOutRows(sub, profile)
		if err := tx.CreateStudentFees(ctx, rows); err != nil {
			return fmt.Errorf("insert student fees: %w", err)
		}
		if err := tx.DeleteFeeSubmission(ctx, sub.FeeSubmissionID); err != nil {
			return fmt.Errorf("delete fee submission: %w", err)
		}

		result = ApprovalResult{
			SubmissionID: sub.FeeSubmissionID,
			StudentID:    sub.FeeSubmissionStudentID,
			UTRNumber:    sub.FeeSubmissionUTRNumber,
			Rows:         rows,
		}
		return nil
	})
	if err != nil {
		return ApprovalResult{}, err
	}

	log.Printf("[INFO] fee submission %s approved: %d ledger rows (utr=%s)", result.SubmissionID, len(result.Rows), result.UTRNumber)
	return result, nil
}

// RejectPendingSubmission: hapus submission, tanpa menulis ledger.
func (s *LedgerService) RejectPendingSubmission(ctx context.Context, submissionID uuid.UUID) error {
	return s.Store.Transaction(ctx, func(tx repository.Store) error {
		sub, err := tx.GetFeeSubmission(ctx, submissionID, true)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "fee submission not found")
			}
			return fmt.Errorf("get fee submission: %w", err)
		}
		if !sub.IsPending() {
			return fiber.NewError(fiber.StatusConflict, "fee submission is not pending")
		}
		if err := tx.DeleteFeeSubmission(ctx, sub.FeeSubmissionID); err != nil {
			return fmt.Errorf("delete fee submission: %w", err)
		}
		log.Printf("[INFO] fee submission %s rejected (utr=%s)", sub.FeeSubmissionID, sub.FeeSubmissionUTRNumber)
		return nil
	})
}
