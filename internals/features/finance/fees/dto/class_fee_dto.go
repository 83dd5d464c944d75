// file: internals/features/finance/fees/dto/class_fee_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolfee_backend/internals/features/finance/fees/model"
)

////////////////////////////////////////////////////////////////////////////////
// CLASS FEES - DTO
////////////////////////////////////////////////////////////////////////////////

type ClassFeeCreateDTO struct {
	ClassFeeClass   string          `json:"class_fee_class" validate:"required,max=60"`
	ClassFeeFeeType string          `json:"class_fee_fee_type" validate:"required,max=80"`
	ClassFeeAmount  decimal.Decimal `json:"class_fee_amount" validate:"gte=0"`
}

// Update (partial) - hanya nominal; (class, fee_type) adalah kunci.
type ClassFeeUpdateDTO struct {
	ClassFeeAmount *decimal.Decimal `json:"class_fee_amount,omitempty"`
}

type ClassFeeResponse struct {
	ClassFeeID        uuid.UUID       `json:"class_fee_id"`
	ClassFeeClass     string          `json:"class_fee_class"`
	ClassFeeFeeType   string          `json:"class_fee_fee_type"`
	ClassFeeAmount    decimal.Decimal `json:"class_fee_amount"`
	ClassFeeCreatedAt time.Time       `json:"class_fee_created_at"`
	ClassFeeUpdatedAt time.Time       `json:"class_fee_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToClassFeeResponse(m model.ClassFee) ClassFeeResponse {
	return ClassFeeResponse{
		ClassFeeID:        m.ClassFeeID,
		ClassFeeClass:     m.ClassFeeClass,
		ClassFeeFeeType:   m.ClassFeeFeeType,
		ClassFeeAmount:    m.ClassFeeAmount,
		ClassFeeCreatedAt: m.ClassFeeCreatedAt,
		ClassFeeUpdatedAt: m.ClassFeeUpdatedAt,
	}
}

func ToClassFeeResponses(list []model.ClassFee) []ClassFeeResponse {
	out := make([]ClassFeeResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToClassFeeResponse(v))
	}
	return out
}

func ClassFeeCreateDTOToModel(d ClassFeeCreateDTO) model.ClassFee {
	return model.ClassFee{
		ClassFeeClass:   strings.TrimSpace(d.ClassFeeClass),
		ClassFeeFeeType: strings.TrimSpace(d.ClassFeeFeeType),
		ClassFeeAmount:  d.ClassFeeAmount,
	}
}

// ApplyClassFeeUpdate: return field errors kalau nominal negatif.
func ApplyClassFeeUpdate(m *model.ClassFee, d ClassFeeUpdateDTO) map[string][]string {
	if d.ClassFeeAmount != nil {
		if d.ClassFeeAmount.IsNegative() {
			return map[string][]string{"class_fee_amount": {"must be greater than or equal to 0"}}
		}
		m.ClassFeeAmount = *d.ClassFeeAmount
	}
	return nil
}
