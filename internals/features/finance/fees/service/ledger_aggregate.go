// file: internals/features/finance/fees/service/ledger_aggregate.go
package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolfee_backend/internals/features/finance/fees/model"
)

const (
	StatusFullyPaid = "FULLY PAID"
	StatusPending   = "PENDING"
)

// StudentSummary: satu baris per siswa di list ledger.
type StudentSummary struct {
	StudentID   *uuid.UUID      `json:"student_id,omitempty"`
	StudentName string          `json:"student_name"`
	RollNo      *string         `json:"roll_no,omitempty"`
	Class       string          `json:"class"`
	Section     *string         `json:"section,omitempty"`
	Paid        decimal.Decimal `json:"paid"`
	Required    decimal.Decimal `json:"required"`
	Due         decimal.Decimal `json:"due"`
	Status      string          `json:"status"`
	Payments    int             `json:"payments"`
}

// LedgerFilter: predicate setelah agregasi (semua opsional).
type LedgerFilter struct {
	Class   string
	Section string
	Search  string // substring nama, case-insensitive
	Status  string // FULLY PAID | PENDING
}

type LedgerTotals struct {
	Students int             `json:"students"`
	Paid     decimal.Decimal `json:"total_paid"`
	Required decimal.Decimal `json:"total_required"`
	Due      decimal.Decimal `json:"total_due"`
}

// DueOf: max(0, required - paid)
func DueOf(required, paid decimal.Decimal) decimal.Decimal {
	d := required.Sub(paid)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// StatusOf: FULLY PAID hanya kalau ada kewajiban dan sudah tertutup.
func StatusOf(required, paid decimal.Decimal) string {
	if required.IsPositive() && paid.GreaterThanOrEqual(required) {
		return StatusFullyPaid
	}
	return StatusPending
}

// RequiredByClass: Σ amount class_fees per kelas.
func RequiredByClass(standards []model.ClassFee) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(standards))
	for _, s := range standards {
		class := strings.TrimSpace(s.ClassFeeClass)
		out[class] = out[class].Add(s.ClassFeeAmount)
	}
	return out
}

// AggregateStudentLedger mengelompokkan baris pembayaran per siswa
// (student_id, fallback nama) dan menghitung paid/required/due/status.
// Urutan output = urutan kemunculan pertama di input.
func AggregateStudentLedger(payments []model.StudentFee, standards []model.ClassFee, f LedgerFilter) []StudentSummary {
	required := RequiredByClass(standards)

	index := make(map[string]int, len(payments))
	out := make([]StudentSummary, 0)

	for _, p := range payments {
		key := p.LedgerKey()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, StudentSummary{
				StudentID:   p.StudentFeeStudentID,
				StudentName: strings.TrimSpace(p.StudentFeeStudentName),
				RollNo:      p.StudentFeeRollNo,
				Class:       strings.TrimSpace(p.StudentFeeClass),
				Section:     p.StudentFeeSection,
			})
		}
		s := &out[i]
		s.Paid = s.Paid.Add(p.StudentFeePaidAmount)
		s.Payments++
		if s.StudentName == "" {
			s.StudentName = strings.TrimSpace(p.StudentFeeStudentName)
		}
		if s.RollNo == nil {
			s.RollNo = p.StudentFeeRollNo
		}
		if s.Section == nil {
			s.Section = p.StudentFeeSection
		}
	}

	filtered := out[:0]
	for _, s := range out {
		s.Required = required[s.Class]
		s.Due = DueOf(s.Required, s.Paid)
		s.Status = StatusOf(s.Required, s.Paid)
		if f.match(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func (f LedgerFilter) match(s StudentSummary) bool {
	if v := strings.TrimSpace(f.Class); v != "" && !strings.EqualFold(s.Class, v) {
		return false
	}
	if v := strings.TrimSpace(f.Section); v != "" {
		if s.Section == nil || !strings.EqualFold(strings.TrimSpace(*s.Section), v) {
			return false
		}
	}
	if v := strings.ToLower(strings.TrimSpace(f.Search)); v != "" && !strings.Contains(strings.ToLower(s.StudentName), v) {
		return false
	}
	if v := strings.TrimSpace(f.Status); v != "" && !strings.EqualFold(s.Status, v) {
		return false
	}
	return true
}

// SumLedger: footer total untuk list view.
func SumLedger(list []StudentSummary) LedgerTotals {
	t := LedgerTotals{Students: len(list)}
	for _, s := range list {
		t.Paid = t.Paid.Add(s.Paid)
		t.Required = t.Required.Add(s.Required)
		t.Due = t.Due.Add(s.Due)
	}
	return t
}
