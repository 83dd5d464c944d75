// file: internals/features/finance/fees/model/fee_submission_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	FeeSubmissionStatusPending = "pending"

	FeeSubmissionSourceScanner  = "scanner"
	FeeSubmissionSourceMidtrans = "midtrans"
)

// --- MODEL fee_submissions ---------------------------------------------------
// Pembayaran dari orang tua (satu UTR, bisa beberapa fee type) yang menunggu verifikasi.
// Dihapus permanen saat di-approve (setelah fan-out) atau di-reject.
type FeeSubmission struct {
	FeeSubmissionID        uuid.UUID       `json:"fee_submission_id" gorm:"column:fee_submission_id;type:uuid;default:gen_random_uuid();primaryKey"`
	FeeSubmissionStudentID uuid.UUID       `json:"fee_submission_student_id" gorm:"column:fee_submission_student_id;type:uuid;not null;index:idx_fee_submissions_student"`
	FeeSubmissionFeeTypes  string          `json:"fee_submission_fee_types" gorm:"column:fee_submission_fee_types;type:text;not null"`
	FeeSubmissionAmount    decimal.Decimal `json:"fee_submission_amount_paid" gorm:"column:fee_submission_amount_paid;type:numeric(14,2);not null"`
	FeeSubmissionUTRNumber string          `json:"fee_submission_utr_number" gorm:"column:fee_submission_utr_number;type:varchar(80);not null;uniqueIndex:uq_fee_submissions_utr"`
	FeeSubmissionProofURL  *string         `json:"fee_submission_proof_url,omitempty" gorm:"column:fee_submission_proof_url;type:text"`
	FeeSubmissionStatus    string          `json:"fee_submission_status" gorm:"column:fee_submission_status;type:varchar(20);not null;default:'pending';index:idx_fee_submissions_status"`
	FeeSubmissionSource    string          `json:"fee_submission_source" gorm:"column:fee_submission_source;type:varchar(20);not null;default:'scanner'"`

	// Nominal per fee type (urut sama dengan fee_types); diisi dari checkout midtrans.
	// Kosong = dibagi rata saat approve.
	FeeSubmissionItemAmounts pq.StringArray `json:"fee_submission_item_amounts,omitempty" gorm:"column:fee_submission_item_amounts;type:text[]"`

	// Payload mentah (mis. notifikasi midtrans)
	FeeSubmissionMeta datatypes.JSON `json:"fee_submission_meta,omitempty" gorm:"column:fee_submission_meta;type:jsonb"`

	FeeSubmissionCreatedAt time.Time `json:"fee_submission_created_at" gorm:"column:fee_submission_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (FeeSubmission) TableName() string { return "fee_submissions" }

func (m *FeeSubmission) BeforeCreate(tx *gorm.DB) error {
	if m.FeeSubmissionID == uuid.Nil {
		m.FeeSubmissionID = uuid.New()
	}
	if m.FeeSubmissionStatus == "" {
		m.FeeSubmissionStatus = FeeSubmissionStatusPending
	}
	return nil
}

func (m FeeSubmission) IsPending() bool {
	return m.FeeSubmissionStatus == FeeSubmissionStatusPending
}

func (m FeeSubmission) FeeTypeList() []string {
	return SplitFeeTypes(m.FeeSubmissionFeeTypes)
}

// SplitFeeTypes: "Tuition Fee, Exam Fee" → ["Tuition Fee", "Exam Fee"].
// Bagian kosong dibuang.
func SplitFeeTypes(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ItemAmounts mengembalikan nominal per fee type kalau lengkap dan
// jumlahnya sama dengan amount; selain itu ok=false.
func (m FeeSubmission) ItemAmounts() (amounts []decimal.Decimal, ok bool) {
	types := m.FeeTypeList()
	if len(m.FeeSubmissionItemAmounts) == 0 || len(m.FeeSubmissionItemAmounts) != len(types) {
		return nil, false
	}
	sum := decimal.Zero
	amounts = make([]decimal.Decimal, 0, len(types))
	for _, raw := range m.FeeSubmissionItemAmounts {
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil || d.IsNegative() {
			return nil, false
		}
		amounts = append(amounts, d)
		sum = sum.Add(d)
	}
	if !sum.Equal(m.FeeSubmissionAmount) {
		return nil, false
	}
	return amounts, true
}
