// file: internals/features/finance/fees/service/ledger_breakdown.go
package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"schoolfee_backend/internals/features/finance/fees/model"
)

// PaidMode: cara menghitung "paid" per fee type di detail view.
type PaidMode string

const (
	// PaidModeSum: Σ paid_amount per fee type (konsisten dengan list view).
	PaidModeSum PaidMode = "sum"
	// PaidModeLastRow: baris terakhir menimpa (perilaku lama).
	PaidModeLastRow PaidMode = "last_row"
)

func ParsePaidMode(s string) (PaidMode, error) {
	switch PaidMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PaidModeSum:
		return PaidModeSum, nil
	case PaidModeLastRow:
		return PaidModeLastRow, nil
	default:
		return "", fmt.Errorf("unknown paid mode %q (sum|last_row)", s)
	}
}

type BreakdownRow struct {
	FeeType  string          `json:"fee_type"`
	Standard decimal.Decimal `json:"standard"`
	Paid     decimal.Decimal `json:"paid"`
	Due      decimal.Decimal `json:"due"`
	Settled  bool            `json:"settled"`
	// true kalau standard berasal dari class_fees, false kalau dari baris pembayaran
	ClassStandard bool `json:"class_standard"`
}

type StudentBreakdown struct {
	Class        string          `json:"class"`
	Rows         []BreakdownRow  `json:"rows"`
	TotalPayable decimal.Decimal `json:"total_payable"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalDue     decimal.Decimal `json:"total_due"`
	PaidMode     PaidMode        `json:"paid_mode"`
}

// BuildStudentBreakdown merekonsiliasi class_fees (standard kelas) dengan
// baris pembayaran siswa. Fee type tanpa standard kelas (mis. Transport Fee)
// memakai total_amount barisnya sendiri sebagai standard.
// payments diharapkan urut created_at ASC.
func BuildStudentBreakdown(class string, standards []model.ClassFee, payments []model.StudentFee, mode PaidMode) StudentBreakdown {
	if mode == "" {
		mode = PaidModeSum
	}
	class = strings.TrimSpace(class)

	index := map[string]int{}
	rows := make([]BreakdownRow, 0, len(standards))

	for _, s := range standards {
		if strings.TrimSpace(s.ClassFeeClass) != class {
			continue
		}
		ft := strings.TrimSpace(s.ClassFeeFeeType)
		if i, ok := index[ft]; ok {
			rows[i].Standard = s.ClassFeeAmount
			continue
		}
		index[ft] = len(rows)
		rows = append(rows, BreakdownRow{FeeType: ft, Standard: s.ClassFeeAmount, ClassStandard: true})
	}

	for _, p := range payments {
		ft := strings.TrimSpace(p.StudentFeeFeeType)
		i, ok := index[ft]
		if !ok {
			index[ft] = len(rows)
			rows = append(rows, BreakdownRow{
				FeeType:  ft,
				Standard: p.StudentFeeTotalAmount,
				Paid:     p.StudentFeePaidAmount,
			})
			continue
		}
		r := &rows[i]
		if !r.ClassStandard {
			r.Standard = p.StudentFeeTotalAmount
		}
		switch mode {
		case PaidModeLastRow:
			r.Paid = p.StudentFeePaidAmount
		default:
			r.Paid = r.Paid.Add(p.StudentFeePaidAmount)
		}
	}

	out := StudentBreakdown{Class: class, Rows: rows, PaidMode: mode}
	for i := range out.Rows {
		r := &out.Rows[i]
		r.Due = DueOf(r.Standard, r.Paid)
		r.Settled = r.Due.Sign() <= 0
		out.TotalPayable = out.TotalPayable.Add(r.Standard)
		out.TotalPaid = out.TotalPaid.Add(r.Paid)
		out.TotalDue = out.TotalDue.Add(r.Due)
	}
	return out
}
