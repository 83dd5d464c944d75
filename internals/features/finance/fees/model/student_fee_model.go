// file: internals/features/finance/fees/model/student_fee_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment method yang dipakai backend sendiri (input manual bebas diisi).
const (
	PaymentMethodCash     = "Cash"
	PaymentMethodScanner  = "QR Scanner"
	PaymentMethodMidtrans = "Midtrans"
)

// --- MODEL student_fees ------------------------------------------------------
// Satu baris = satu transaksi pembayaran siswa untuk satu fee type.
// Baris untuk (student, fee_type) yang sama menumpuk, tidak di-merge.
type StudentFee struct {
	StudentFeeID uuid.UUID `json:"student_fee_id" gorm:"column:student_fee_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// Identitas siswa (student_id bisa kosong untuk data lama / input manual)
	StudentFeeStudentID   *uuid.UUID `json:"student_fee_student_id,omitempty" gorm:"column:student_fee_student_id;type:uuid;index:idx_student_fees_student"`
	StudentFeeStudentName string     `json:"student_fee_student_name" gorm:"column:student_fee_student_name;type:varchar(120);not null"`
	StudentFeeRollNo      *string    `json:"student_fee_roll_no,omitempty" gorm:"column:student_fee_roll_no;type:varchar(40)"`
	StudentFeeClass       string     `json:"student_fee_class" gorm:"column:student_fee_class;type:varchar(60);not null;index:idx_student_fees_class"`
	StudentFeeSection     *string    `json:"student_fee_section,omitempty" gorm:"column:student_fee_section;type:varchar(20)"`

	// Nominal
	StudentFeeFeeType     string          `json:"student_fee_fee_type" gorm:"column:student_fee_fee_type;type:varchar(80);not null;index:idx_student_fees_type"`
	StudentFeeTotalAmount decimal.Decimal `json:"student_fee_total_amount" gorm:"column:student_fee_total_amount;type:numeric(14,2);not null;default:0"`
	StudentFeePaidAmount  decimal.Decimal `json:"student_fee_paid_amount" gorm:"column:student_fee_paid_amount;type:numeric(14,2);not null;default:0;check:chk_student_fees_paid_nonneg,student_fee_paid_amount >= 0"`

	StudentFeePaymentMethod string  `json:"student_fee_payment_method" gorm:"column:student_fee_payment_method;type:varchar(40);not null;default:'Cash'"`
	StudentFeeUTRNumber     *string `json:"student_fee_utr_number,omitempty" gorm:"column:student_fee_utr_number;type:varchar(80);index:idx_student_fees_utr"`
	StudentFeeRemarks       *string `json:"student_fee_remarks,omitempty" gorm:"column:student_fee_remarks;type:text"`

	// Asal baris hasil fan-out verifikasi (kosong untuk input manual)
	StudentFeeSubmissionID *uuid.UUID `json:"student_fee_submission_id,omitempty" gorm:"column:student_fee_submission_id;type:uuid"`

	// Timestamps
	StudentFeeCreatedAt time.Time      `json:"student_fee_created_at" gorm:"column:student_fee_created_at;type:timestamptz;not null;autoCreateTime;index:idx_student_fees_created"`
	StudentFeeUpdatedAt time.Time      `json:"student_fee_updated_at" gorm:"column:student_fee_updated_at;type:timestamptz;not null;autoUpdateTime"`
	StudentFeeDeletedAt gorm.DeletedAt `json:"student_fee_deleted_at,omitempty" gorm:"column:student_fee_deleted_at;type:timestamptz;index"`
}

func (StudentFee) TableName() string { return "student_fees" }

func (m *StudentFee) BeforeCreate(tx *gorm.DB) error {
	if m.StudentFeeID == uuid.Nil {
		m.StudentFeeID = uuid.New()
	}
	return nil
}

// LedgerKey: identitas grup ledger. student_id kalau ada, fallback ke nama.
func (m StudentFee) LedgerKey() string {
	if m.StudentFeeStudentID != nil && *m.StudentFeeStudentID != uuid.Nil {
		return "id:" + m.StudentFeeStudentID.String()
	}
	return "name:" + strings.TrimSpace(m.StudentFeeStudentName)
}
