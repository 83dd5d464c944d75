package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolfee_backend/internals/features/finance/fees/model"
)

// Create (scanner / orang tua)
type FeeSubmissionCreateDTO struct {
	FeeSubmissionStudentID uuid.UUID       `json:"fee_submission_student_id" validate:"required"`
	FeeSubmissionFeeTypes  string          `json:"fee_submission_fee_types" validate:"required"`
	FeeSubmissionAmount    decimal.Decimal `json:"fee_submission_amount_paid" validate:"gt=0"`
	FeeSubmissionUTRNumber string          `json:"fee_submission_utr_number" validate:"required,max=80"`
	FeeSubmissionProofURL  *string         `json:"fee_submission_proof_url,omitempty" validate:"omitempty,url"`
}

type FeeSubmissionResponse struct {
	FeeSubmissionID        uuid.UUID       `json:"fee_submission_id"`
	FeeSubmissionStudentID uuid.UUID       `json:"fee_submission_student_id"`
	FeeSubmissionFeeTypes  []string        `json:"fee_submission_fee_types"`
	FeeSubmissionAmount    decimal.Decimal `json:"fee_submission_amount_paid"`
	FeeSubmissionUTRNumber string          `json:"fee_submission_utr_number"`
	FeeSubmissionProofURL  *string         `json:"fee_submission_proof_url,omitempty"`
	FeeSubmissionStatus    string          `json:"fee_submission_status"`
	FeeSubmissionSource    string          `json:"fee_submission_source"`
	FeeSubmissionCreatedAt time.Time       `json:"fee_submission_created_at"`

	// nominal per fee type (midtrans); kosong = dibagi rata
	FeeSubmissionItemAmounts []string `json:"fee_submission_item_amounts,omitempty"`
}

func ToFeeSubmissionResponse(m model.FeeSubmission) FeeSubmissionResponse {
	return FeeSubmissionResponse{
		FeeSubmissionID:          m.FeeSubmissionID,
		FeeSubmissionStudentID:   m.FeeSubmissionStudentID,
		FeeSubmissionFeeTypes:    m.FeeTypeList(),
		FeeSubmissionAmount:      m.FeeSubmissionAmount,
		FeeSubmissionUTRNumber:   m.FeeSubmissionUTRNumber,
		FeeSubmissionProofURL:    m.FeeSubmissionProofURL,
		FeeSubmissionStatus:      m.FeeSubmissionStatus,
		FeeSubmissionSource:      m.FeeSubmissionSource,
		FeeSubmissionCreatedAt:   m.FeeSubmissionCreatedAt,
		FeeSubmissionItemAmounts: m.FeeSubmissionItemAmounts,
	}
}

func ToFeeSubmissionResponses(list []model.FeeSubmission) []FeeSubmissionResponse {
	out := make([]FeeSubmissionResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToFeeSubmissionResponse(v))
	}
	return out
}

// feeTypes sudah dinormalisasi (split + trim) oleh pemanggil.
func FeeSubmissionCreateDTOToModel(d FeeSubmissionCreateDTO, feeTypes []string) model.FeeSubmission {
	return model.FeeSubmission{
		FeeSubmissionStudentID: d.FeeSubmissionStudentID,
		FeeSubmissionFeeTypes:  strings.Join(feeTypes, ", "),
		FeeSubmissionAmount:    d.FeeSubmissionAmount,
		FeeSubmissionUTRNumber: strings.TrimSpace(d.FeeSubmissionUTRNumber),
		FeeSubmissionProofURL:  trimPtr(d.FeeSubmissionProofURL),
		FeeSubmissionStatus:    model.FeeSubmissionStatusPending,
		FeeSubmissionSource:    model.FeeSubmissionSourceScanner,
	}
}
