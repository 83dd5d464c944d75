// file: internals/features/finance/fees/dto/student_fee_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolfee_backend/internals/features/finance/fees/model"
)

////////////////////////////////////////////////////////////////////////////////
// STUDENT FEES - DTO
////////////////////////////////////////////////////////////////////////////////

// Create (input manual satu pembayaran)
type StudentFeeCreateDTO struct {
	StudentFeeStudentID     *uuid.UUID      `json:"student_fee_student_id,omitempty"`
	StudentFeeStudentName   string          `json:"student_fee_student_name" validate:"required,max=120"`
	StudentFeeRollNo        *string         `json:"student_fee_roll_no,omitempty" validate:"omitempty,max=40"`
	StudentFeeClass         string          `json:"student_fee_class" validate:"required,max=60"`
	StudentFeeSection       *string         `json:"student_fee_section,omitempty" validate:"omitempty,max=20"`
	StudentFeeFeeType       string          `json:"student_fee_fee_type" validate:"required,max=80"`
	StudentFeeTotalAmount   decimal.Decimal `json:"student_fee_total_amount" validate:"gte=0"`
	StudentFeePaidAmount    decimal.Decimal `json:"student_fee_paid_amount" validate:"gte=0"`
	StudentFeePaymentMethod string          `json:"student_fee_payment_method" validate:"omitempty,max=40"`
	StudentFeeUTRNumber     *string         `json:"student_fee_utr_number,omitempty" validate:"omitempty,max=80"`
	StudentFeeRemarks       *string         `json:"student_fee_remarks,omitempty"`
}

// Update (partial) - jalur edit record
type StudentFeeUpdateDTO struct {
	StudentFeeStudentName   *string          `json:"student_fee_student_name,omitempty"`
	StudentFeeRollNo        *string          `json:"student_fee_roll_no,omitempty"`
	StudentFeeClass         *string          `json:"student_fee_class,omitempty"`
	StudentFeeSection       *string          `json:"student_fee_section,omitempty"`
	StudentFeeFeeType       *string          `json:"student_fee_fee_type,omitempty"`
	StudentFeeTotalAmount   *decimal.Decimal `json:"student_fee_total_amount,omitempty"`
	StudentFeePaidAmount    *decimal.Decimal `json:"student_fee_paid_amount,omitempty"`
	StudentFeePaymentMethod *string          `json:"student_fee_payment_method,omitempty"`
	StudentFeeUTRNumber     *string          `json:"student_fee_utr_number,omitempty"`
	StudentFeeRemarks       *string          `json:"student_fee_remarks,omitempty"`
}

type StudentFeeResponse struct {
	StudentFeeID            uuid.UUID       `json:"student_fee_id"`
	StudentFeeStudentID     *uuid.UUID      `json:"student_fee_student_id,omitempty"`
	StudentFeeStudentName   string          `json:"student_fee_student_name"`
	StudentFeeRollNo        *string         `json:"student_fee_roll_no,omitempty"`
	StudentFeeClass         string          `json:"student_fee_class"`
	StudentFeeSection       *string         `json:"student_fee_section,omitempty"`
	StudentFeeFeeType       string          `json:"student_fee_fee_type"`
	StudentFeeTotalAmount   decimal.Decimal `json:"student_fee_total_amount"`
	StudentFeePaidAmount    decimal.Decimal `json:"student_fee_paid_amount"`
	StudentFeePaymentMethod string          `json:"student_fee_payment_method"`
	StudentFeeUTRNumber     *string         `json:"student_fee_utr_number,omitempty"`
	StudentFeeRemarks       *string         `json:"student_fee_remarks,omitempty"`
	StudentFeeSubmissionID  *uuid.UUID      `json:"student_fee_submission_id,omitempty"`
	StudentFeeCreatedAt     time.Time       `json:"student_fee_created_at"`
	StudentFeeUpdatedAt     time.Time       `json:"student_fee_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToStudentFeeResponse(m model.StudentFee) StudentFeeResponse {
	return StudentFeeResponse{
		StudentFeeID:            m.StudentFeeID,
		StudentFeeStudentID:     m.StudentFeeStudentID,
		StudentFeeStudentName:   m.StudentFeeStudentName,
		StudentFeeRollNo:        m.StudentFeeRollNo,
		StudentFeeClass:         m.StudentFeeClass,
		StudentFeeSection:       m.StudentFeeSection,
		StudentFeeFeeType:       m.StudentFeeFeeType,
		StudentFeeTotalAmount:   m.StudentFeeTotalAmount,
		StudentFeePaidAmount:    m.StudentFeePaidAmount,
		StudentFeePaymentMethod: m.StudentFeePaymentMethod,
		StudentFeeUTRNumber:     m.StudentFeeUTRNumber,
		StudentFeeRemarks:       m.StudentFeeRemarks,
		StudentFeeSubmissionID:  m.StudentFeeSubmissionID,
		StudentFeeCreatedAt:     m.StudentFeeCreatedAt,
		StudentFeeUpdatedAt:     m.StudentFeeUpdatedAt,
	}
}

func ToStudentFeeResponses(list []model.StudentFee) []StudentFeeResponse {
	out := make([]StudentFeeResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToStudentFeeResponse(v))
	}
	return out
}

func StudentFeeCreateDTOToModel(d StudentFeeCreateDTO) model.StudentFee {
	method := strings.TrimSpace(d.StudentFeePaymentMethod)
	if method == "" {
		method = model.PaymentMethodCash
	}
	return model.StudentFee{
		StudentFeeStudentID:     d.StudentFeeStudentID,
		StudentFeeStudentName:   strings.TrimSpace(d.StudentFeeStudentName),
		StudentFeeRollNo:        trimPtr(d.StudentFeeRollNo),
		StudentFeeClass:         strings.TrimSpace(d.StudentFeeClass),
		StudentFeeSection:       trimPtr(d.StudentFeeSection),
		StudentFeeFeeType:       strings.TrimSpace(d.StudentFeeFeeType),
		StudentFeeTotalAmount:   d.StudentFeeTotalAmount,
		StudentFeePaidAmount:    d.StudentFeePaidAmount,
		StudentFeePaymentMethod: method,
		StudentFeeUTRNumber:     trimPtr(d.StudentFeeUTRNumber),
		StudentFeeRemarks:       d.StudentFeeRemarks,
	}
}

// ApplyStudentFeeUpdate: partial update; return field errors (nil = ok).
func ApplyStudentFeeUpdate(m *model.StudentFee, d StudentFeeUpdateDTO) map[string][]string {
	errs := map[string][]string{}

	if d.StudentFeeTotalAmount != nil && d.StudentFeeTotalAmount.IsNegative() {
		errs["student_fee_total_amount"] = []string{"must be greater than or equal to 0"}
	}
	if d.StudentFeePaidAmount != nil && d.StudentFeePaidAmount.IsNegative() {
		errs["student_fee_paid_amount"] = []string{"must be greater than or equal to 0"}
	}
	if d.StudentFeeStudentName != nil && strings.TrimSpace(*d.StudentFeeStudentName) == "" {
		errs["student_fee_student_name"] = []string{"is required"}
	}
	if d.StudentFeeClass != nil && strings.TrimSpace(*d.StudentFeeClass) == "" {
		errs["student_fee_class"] = []string{"is required"}
	}
	if d.StudentFeeFeeType != nil && strings.TrimSpace(*d.StudentFeeFeeType) == "" {
		errs["student_fee_fee_type"] = []string{"is required"}
	}
	if len(errs) > 0 {
		return errs
	}

	if d.StudentFeeStudentName != nil {
		m.StudentFeeStudentName = strings.TrimSpace(*d.StudentFeeStudentName)
	}
	if d.StudentFeeRollNo != nil {
		m.StudentFeeRollNo = trimPtr(d.StudentFeeRollNo)
	}
	if d.StudentFeeClass != nil {
		m.StudentFeeClass = strings.TrimSpace(*d.StudentFeeClass)
	}
	if d.StudentFeeSection != nil {
		m.StudentFeeSection = trimPtr(d.StudentFeeSection)
	}
	if d.StudentFeeFeeType != nil {
		m.StudentFeeFeeType = strings.TrimSpace(*d.StudentFeeFeeType)
	}
	if d.StudentFeeTotalAmount != nil {
		m.StudentFeeTotalAmount = *d.StudentFeeTotalAmount
	}
	if d.StudentFeePaidAmount != nil {
		m.StudentFeePaidAmount = *d.StudentFeePaidAmount
	}
	if d.StudentFeePaymentMethod != nil {
		m.StudentFeePaymentMethod = strings.TrimSpace(*d.StudentFeePaymentMethod)
	}
	if d.StudentFeeUTRNumber != nil {
		m.StudentFeeUTRNumber = trimPtr(d.StudentFeeUTRNumber)
	}
	if d.StudentFeeRemarks != nil {
		m.StudentFeeRemarks = d.StudentFeeRemarks
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// SMALL UTILS
////////////////////////////////////////////////////////////////////////////////

// trimPtr: "" setelah trim → nil
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
