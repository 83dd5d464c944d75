// file: internals/features/finance/fees/model/class_fee_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- MODEL class_fees --------------------------------------------------------
// Standard amount per (class, fee_type). Berlaku untuk semua siswa di kelas tsb.
type ClassFee struct {
	ClassFeeID uuid.UUID `json:"class_fee_id" gorm:"column:class_fee_id;type:uuid;default:gen_random_uuid();primaryKey"`

	ClassFeeClass   string          `json:"class_fee_class" gorm:"column:class_fee_class;type:varchar(60);not null;uniqueIndex:uq_class_fees_class_type,where:class_fee_deleted_at IS NULL"`
	ClassFeeFeeType string          `json:"class_fee_fee_type" gorm:"column:class_fee_fee_type;type:varchar(80);not null;uniqueIndex:uq_class_fees_class_type,where:class_fee_deleted_at IS NULL"`
	ClassFeeAmount  decimal.Decimal `json:"class_fee_amount" gorm:"column:class_fee_amount;type:numeric(14,2);not null;default:0"`

	// Timestamps
	ClassFeeCreatedAt time.Time      `json:"class_fee_created_at" gorm:"column:class_fee_created_at;type:timestamptz;not null;autoCreateTime"`
	ClassFeeUpdatedAt time.Time      `json:"class_fee_updated_at" gorm:"column:class_fee_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ClassFeeDeletedAt gorm.DeletedAt `json:"class_fee_deleted_at,omitempty" gorm:"column:class_fee_deleted_at;type:timestamptz;index"`
}

func (ClassFee) TableName() string { return "class_fees" }

func (m *ClassFee) BeforeCreate(tx *gorm.DB) error {
	if m.ClassFeeID == uuid.Nil {
		m.ClassFeeID = uuid.New()
	}
	return nil
}
